package impl

import (
	"context"
	"math"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	mockSvc "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type catalogServiceFixtures struct {
	service  usecase.CatalogUsecase
	uploader *mockSvc.MockImageUploader
	qrcode   *mockSvc.MockQRCodeService
}

func createTestCatalogService(t *testing.T, store repository.RealtimeStore, catalog usecase.CatalogSync) catalogServiceFixtures {
	uploader := mockSvc.NewMockImageUploader(t)
	qrcode := mockSvc.NewMockQRCodeService(t)

	return catalogServiceFixtures{
		service:  NewCatalogService(store, uploader, qrcode, catalog, fixedClock, testLogger()),
		uploader: uploader,
		qrcode:   qrcode,
	}
}

func testNewProduct() *entity.NewProduct {
	return &entity.NewProduct{
		Name:        "Tea",
		Price:       20000,
		Description: "green tea",
		Image:       &entity.Image{Filename: "tea.png", ContentType: "image/png", Data: []byte("\x89PNG")},
	}
}

func TestCatalogService_CreateProduct(t *testing.T) {
	store := newStore()
	fx := createTestCatalogService(t, store, nil)
	input := testNewProduct()

	fx.uploader.EXPECT().Upload(mock.Anything, input.Image).Return("https://img.example/tea.png", nil)

	product, err := fx.service.CreateProduct(context.Background(), input)
	require.NoError(t, err)

	assert.NotEmpty(t, product.ID)
	assert.Equal(t, "https://img.example/tea.png", product.ImageURL)
	assert.Zero(t, product.RatingCount)

	var stored map[string]any
	found, err := store.Get(repository.ProductPath(product.ID), &stored)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, map[string]any{
		"name":        "Tea",
		"description": "green tea",
		"price":       20000.0,
		"imageUrl":    "https://img.example/tea.png",
		"createdAt":   float64(testNow.UnixMilli()),
		"ratingTotal": 0.0,
		"ratingCount": 0.0,
	}, stored)
}

func TestCatalogService_CreateProduct_Validation(t *testing.T) {
	fx := createTestCatalogService(t, mockRepo.NewMockRealtimeStore(t), nil)

	blankName := testNewProduct()
	blankName.Name = "  "
	negativePrice := testNewProduct()
	negativePrice.Price = -1
	infinitePrice := testNewProduct()
	infinitePrice.Price = math.Inf(1)
	nanPrice := testNewProduct()
	nanPrice.Price = math.NaN()
	noImage := testNewProduct()
	noImage.Image = nil
	emptyImage := testNewProduct()
	emptyImage.Image.Data = nil

	tests := []struct {
		name  string
		input *entity.NewProduct
	}{
		{name: "nil input", input: nil},
		{name: "blank name", input: blankName},
		{name: "negative price", input: negativePrice},
		{name: "infinite price", input: infinitePrice},
		{name: "NaN price", input: nanPrice},
		{name: "missing image", input: noImage},
		{name: "empty image", input: emptyImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := fx.service.CreateProduct(context.Background(), tt.input)

			assert.Nil(t, product)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
			fx.uploader.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
		})
	}
}

func TestCatalogService_CreateProduct_UploadFailureWritesNothing(t *testing.T) {
	store := newStore()
	fx := createTestCatalogService(t, store, nil)
	input := testNewProduct()

	fx.uploader.EXPECT().Upload(mock.Anything, input.Image).Return("", errors.New("bucket unavailable"))

	product, err := fx.service.CreateProduct(context.Background(), input)

	assert.Nil(t, product)
	assert.ErrorIs(t, err, domainerrors.ErrImageUploadFailed)

	found, getErr := store.Get(repository.ProductsPath, new(any))
	require.NoError(t, getErr)
	assert.False(t, found)
}

func TestCatalogService_CreateProduct_WriteFailure(t *testing.T) {
	store := newStore()
	store.FailWrites(errors.Wrap(repository.ErrStoreUnavailable, "offline"))
	fx := createTestCatalogService(t, store, nil)
	input := testNewProduct()

	fx.uploader.EXPECT().Upload(mock.Anything, input.Image).Return("https://img.example/tea.png", nil)

	_, err := fx.service.CreateProduct(context.Background(), input)

	assert.ErrorIs(t, err, repository.ErrStoreUnavailable)
	assert.True(t, domainerrors.IsStoreWrite(err))
}

func TestCatalogService_CreatedProductAppearsFirst(t *testing.T) {
	store := newStore()
	seed(t, store, repository.ProductPath("-A1"), productRecordValue("Coffee", 25000, nil))
	catalog := startCatalog(t, store)
	fx := createTestCatalogService(t, store, catalog)

	fx.uploader.EXPECT().Upload(mock.Anything, mock.Anything).Return("https://img.example/tea.png", nil)

	product, err := fx.service.CreateProduct(context.Background(), testNewProduct())
	require.NoError(t, err)

	waitUntil(t, func() bool { return len(catalog.Products()) == 2 })
	assert.Equal(t, []string{product.ID, "-A1"}, productIDs(catalog.Products()))
}

func TestCatalogService_ShareQR(t *testing.T) {
	store := newStore()
	seed(t, store, repository.ProductPath("-A1"), productRecordValue("Tea", 20000, nil))
	catalog := startCatalog(t, store)
	fx := createTestCatalogService(t, store, catalog)

	fx.qrcode.EXPECT().GenerateProductQR("-A1").Return([]byte("png"), nil)

	png, err := fx.service.ShareQR(context.Background(), "-A1")
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), png)

	_, err = fx.service.ShareQR(context.Background(), "-missing")
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCatalogService_ShareQRWhileLoading(t *testing.T) {
	catalog := NewCatalogSync(newStore(), testLogger())
	fx := createTestCatalogService(t, newStore(), catalog)

	_, err := fx.service.ShareQR(context.Background(), "-A1")

	assert.ErrorIs(t, err, domainerrors.ErrSyncNotReady)
}
