package handler

import (
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	Catalog   usecase.CatalogSync
	CatalogUC usecase.CatalogUsecase
	RatingUC  usecase.RatingUsecase
	Logger    *slog.Logger
}

// ProductHandler serves the catalog view and product actions
type ProductHandler struct {
	catalog   usecase.CatalogSync
	catalogUC usecase.CatalogUsecase
	ratingUC  usecase.RatingUsecase
	logger    *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{
		catalog:   params.Catalog,
		catalogUC: params.CatalogUC,
		ratingUC:  params.RatingUC,
		logger:    params.Logger,
	}
}

// ProductResponse is a product with its display rating
type ProductResponse struct {
	entity.Product
	Rating     entity.RatingSummary `json:"rating"`
	UserRating int                  `json:"user_rating"` // Stars given by the calling client, 0 if none.
}

// ProductListResponse is the catalog view
type ProductListResponse struct {
	Loading  bool              `json:"loading"`
	Products []ProductResponse `json:"products"`
}

// RateProductRequest represents the request body for rating a product
type RateProductRequest struct {
	Stars int `json:"stars"`
}

// RateProductResponse reports the outcome of a rating
type RateProductResponse struct {
	Accepted bool                 `json:"accepted"`
	Rating   entity.RatingSummary `json:"rating"`
}

func newProductResponse(product entity.Product, identity entity.Identity) ProductResponse {
	return ProductResponse{
		Product:    product,
		Rating:     product.Summary(),
		UserRating: product.UserRating(identity),
	}
}

// ListProducts returns the catalog, newest first
func (h *ProductHandler) ListProducts(c echo.Context) error {
	identity := entity.Identity(deliverycontext.GetClientID(c))

	products := h.catalog.Products()
	items := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		items = append(items, newProductResponse(product, identity))
	}

	return response.Success(c, http.StatusOK, ProductListResponse{
		Loading:  h.catalog.Loading(),
		Products: items,
	})
}

// GetProduct returns one product
func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := lookupProduct(h.catalog, c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	identity := entity.Identity(deliverycontext.GetClientID(c))

	return response.Success(c, http.StatusOK, newProductResponse(product, identity))
}

// CreateProduct handles the multipart product form: name, price, description, image
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	price, err := strconv.ParseFloat(strings.TrimSpace(c.FormValue("price")), 64)
	if err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "price must be a number")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "image file is required")
	}

	image, err := readImage(fileHeader)
	if err != nil {
		return errors.Wrap(err, "read uploaded image")
	}

	product, err := h.catalogUC.CreateProduct(c.Request().Context(), &entity.NewProduct{
		Name:        c.FormValue("name"),
		Price:       price,
		Description: c.FormValue("description"),
		Image:       image,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newProductResponse(*product, ""))
}

// ShareQR returns a PNG QR code linking to the product
func (h *ProductHandler) ShareQR(c echo.Context) error {
	png, err := h.catalogUC.ShareQR(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// RateProduct records the calling client's rating
func (h *ProductHandler) RateProduct(c echo.Context) error {
	var req RateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid rating input")
	}

	product, err := lookupProduct(h.catalog, c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	// Range errors are reported by the usecase with its business code
	result, err := h.ratingUC.Rate(c.Request().Context(), product, entity.Identity(deliverycontext.GetClientID(c)), req.Stars)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	rated := product.WithAggregate(result.Aggregate)

	return response.Success(c, http.StatusOK, RateProductResponse{
		Accepted: result.Accepted,
		Rating:   rated.Summary(),
	})
}

// lookupProduct resolves a product from the synced catalog
func lookupProduct(catalog usecase.CatalogSync, id string) (entity.Product, error) {
	if catalog.Loading() {
		return entity.Product{}, domainerrors.ErrSyncNotReady
	}

	product, ok := catalog.Product(id)
	if !ok {
		return entity.Product{}, domainerrors.ErrProductNotFound.WithDetails(id)
	}

	return product, nil
}

func readImage(fileHeader *multipart.FileHeader) (*entity.Image, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &entity.Image{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
		Data:        data,
	}, nil
}
