package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"
	"storefront/internal/util"

	"github.com/go-playground/validator/v10"
)

type catalogService struct {
	store    repository.RealtimeStore
	uploader service.ImageUploader
	qrcode   service.QRCodeService
	catalog  usecase.CatalogSync
	validate *validator.Validate
	clock    service.Clock
	logger   *slog.Logger
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(
	store repository.RealtimeStore,
	uploader service.ImageUploader,
	qrcode service.QRCodeService,
	catalog usecase.CatalogSync,
	clock service.Clock,
	logger *slog.Logger,
) usecase.CatalogUsecase {
	if clock == nil {
		clock = service.SystemClock()
	}

	return &catalogService{
		store:    store,
		uploader: uploader,
		qrcode:   qrcode,
		catalog:  catalog,
		validate: util.NewValidator(),
		clock:    clock,
		logger:   logger,
	}
}

// CreateProduct implements usecase.CatalogUsecase. The image is uploaded before anything is
// written; an upload failure leaves the catalog untouched.
func (s *catalogService) CreateProduct(ctx context.Context, input *entity.NewProduct) (*entity.Product, error) {
	if input == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("product input is required")
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}
	if len(input.Image.Data) == 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("image is empty")
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)

	imageURL, err := s.uploader.Upload(ctx, input.Image)
	if err != nil {
		return nil, fmt.Errorf("upload product image: %w", errors.Join(domainerrors.ErrImageUploadFailed, err))
	}

	id, err := s.store.Push(ctx, repository.ProductsPath)
	if err != nil {
		return nil, domainerrors.NewStoreWriteError(err, "allocate product id")
	}

	product := &entity.Product{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    imageURL,
		CreatedAt:   s.clock(),
		RatedBy:     map[string]int{},
	}

	if err := s.store.Set(ctx, repository.ProductPath(id), productFromDomain(product)); err != nil {
		// The uploaded image stays behind; it is content addressed and reused on retry.
		return nil, domainerrors.NewStoreWriteError(err, "write product "+id)
	}

	logger.Info("Product created",
		slog.String("product_id", id),
		slog.String("name", product.Name),
		slog.String("image_url", imageURL),
	)

	return product, nil
}

// ShareQR implements usecase.CatalogUsecase.
func (s *catalogService) ShareQR(_ context.Context, productID string) ([]byte, error) {
	if !repository.ValidKey(productID) {
		return nil, domainerrors.ErrProductNotFound.WithDetails(productID)
	}

	if s.catalog != nil {
		if s.catalog.Loading() {
			return nil, domainerrors.ErrSyncNotReady
		}
		if _, ok := s.catalog.Product(productID); !ok {
			return nil, domainerrors.ErrProductNotFound.WithDetails(productID)
		}
	}

	png, err := s.qrcode.GenerateProductQR(productID)
	if err != nil {
		return nil, fmt.Errorf("generate product QR: %w", err)
	}

	return png, nil
}
