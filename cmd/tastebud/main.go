package main

import (
	"context"
	"log/slog"
	"os"

	"tastebud/config"
	"tastebud/internal/delivery"
	"tastebud/internal/delivery/http"
	"tastebud/internal/delivery/http/middleware"
	"tastebud/internal/delivery/http/router/handler"
	"tastebud/internal/domain/repository"
	"tastebud/internal/domain/service"
	"tastebud/internal/infra/auth"
	logs "tastebud/internal/infra/log"
	"tastebud/internal/infra/mail"
	"tastebud/internal/infra/persistence/file"
	"tastebud/internal/infra/persistence/postgres"
	"tastebud/internal/infra/upload"
	"tastebud/internal/usecase"
	"tastebud/internal/usecase/impl"

	"github.com/pkg/errors"
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
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		newTransactionManager,
	)
}

// newTransactionManager selects the persistence backend from configuration:
// "file" keeps everything in flat JSON files, anything else opens PostgreSQL.
func newTransactionManager(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (repository.TransactionManager, error) {
	switch cfg.Storage.Driver {
	case "file":
		store, err := file.NewStore(file.Params{Config: cfg})
		if err != nil {
			return nil, err
		}

		return file.NewTransactionManager(store), nil
	case "", "postgres":
		db, err := postgres.New(postgres.Params{Lifecycle: lc, Config: cfg, Logger: logger})
		if err != nil {
			return nil, err
		}

		return postgres.NewTransactionManager(db), nil
	default:
		return nil, errors.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewTokenCodec,
			auth.NewVerificationTokenGenerator,
			mail.NewMailer,
			newUploader,
		),
	)
}

// newUploader selects the image upload backend from configuration.
func newUploader(lc fx.Lifecycle, cfg *config.Config) (service.Uploader, error) {
	if cfg.Upload == nil {
		return nil, errors.New("upload configuration is missing")
	}

	switch cfg.Upload.Driver {
	case "uploadthing":
		return upload.NewUploadThingUploader(cfg.Upload.Secret)
	case "", "local":
		return upload.NewLocalUploader(lc, cfg.Upload.Dir)
	default:
		return nil, errors.Errorf("unknown upload driver %q", cfg.Upload.Driver)
	}
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			newCredentialService,
			newUserService,
			impl.NewRestaurantService,
			impl.NewReviewService,
			impl.NewAdminService,
		),
	)
}

func newCredentialService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	codec service.TokenCodec,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.CredentialUsecase {
	return impl.NewCredentialService(txManager, hasher, codec, cfg.SecretKey.SessionTTL, logger)
}

func newUserService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	codec service.TokenCodec,
	generator service.VerificationTokenGenerator,
	mailer service.Mailer,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.UserUsecase {
	return impl.NewUserService(txManager, hasher, codec, generator, mailer,
		cfg.SecretKey.SessionTTL, cfg.Admins, logger)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewRestaurantHandler,
			handler.NewReviewHandler,
			handler.NewAdminHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
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
