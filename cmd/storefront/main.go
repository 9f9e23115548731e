package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"storefront/config"
	"storefront/internal/delivery"
	"storefront/internal/delivery/api"
	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router/handler"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/infra/auth"
	"storefront/internal/infra/identity"
	"storefront/internal/infra/imagestore"
	logs "storefront/internal/infra/log"
	"storefront/internal/infra/notification"
	"storefront/internal/infra/pubsub"
	"storefront/internal/infra/qrcode"
	"storefront/internal/infra/realtime"
	"storefront/internal/usecase"
	"storefront/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startSyncEngines,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			fx.Annotate(
				imagestore.NewUploader,
				fx.As(fx.Self()),
				fx.As(new(service.ImageUploader)),
			),
		),
		realtime.Module,
		pubsub.Module,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			identity.NewFileProvider,
			newOperatorNotifier,
			newQRCodeService,
			service.SystemClock,
		),
	)
}

// newOperatorNotifier creates the FCM notifier for operator alerts
func newOperatorNotifier(ctx context.Context, cfg *config.Config) (service.OperatorNotifier, error) {
	if cfg.Firebase == nil || cfg.Firebase.OperatorTopic == "" {
		return nil, nil // Operator alerts are optional
	}

	svc, err := notification.NewFirebaseService(ctx, cfg.Firebase.CredentialsPath, cfg.Firebase.ProjectID, cfg.Firebase.OperatorTopic)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firebase service: %w", err)
	}

	return svc, nil
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M", "")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewCatalogSync,
			impl.NewOrderSync,
			impl.NewCatalogService,
			newRatingService,
			newOrderService,
		),
	)
}

func newRatingService(store repository.RealtimeStore, cfg *config.Config, logger *slog.Logger) (usecase.RatingUsecase, error) {
	var strategy string
	if cfg.Rating != nil {
		strategy = cfg.Rating.Strategy
	}

	return impl.NewRatingService(store, strategy, logger)
}

type orderServiceParams struct {
	fx.In

	Store     repository.RealtimeStore
	Publisher service.EventPublisher
	Notifier  service.OperatorNotifier `optional:"true"`
	Clock     service.Clock
	Config    *config.Config
	Logger    *slog.Logger
}

// newOrderService alerts operators directly only when no event pipeline is configured;
// otherwise storeworker sends the alert from the published event.
func newOrderService(params orderServiceParams) usecase.OrderUsecase {
	notifier := params.Notifier
	if params.Config.PubSub != nil && params.Config.PubSub.Provider != "" {
		notifier = nil
	}

	return impl.NewOrderService(params.Store, params.Publisher, notifier, params.Clock, params.Logger)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewOperatorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewProductHandler,
			handler.NewOrderHandler,
			handler.NewIdentityHandler,
			handler.NewHealthHandler,
			handler.NewWatchHandler,
			newImageHandler,
		),
	)
}

// newImageHandler serves uploaded images back from the bucket
func newImageHandler(uploader *imagestore.BlobUploader) *handler.ImageHandler {
	return handler.NewImageHandler(uploader, imagestore.ErrImageNotFound)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// startSyncEngines subscribes both collections for the lifetime of the process.
// The start hook context only bounds startup, so the engines run on the root context.
func startSyncEngines(lc fx.Lifecycle, ctx context.Context, catalog usecase.CatalogSync, orders usecase.OrderSync) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if err := catalog.Start(ctx); err != nil {
				return err
			}

			return orders.Start(ctx)
		},
		OnStop: func(context.Context) error {
			catalog.Stop()
			orders.Stop()

			return nil
		},
	})
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
