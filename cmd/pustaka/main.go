package main

import (
	"context"
	"log/slog"
	"os"

	"pustaka/config"
	"pustaka/internal/delivery"
	"pustaka/internal/delivery/http"
	httpmiddleware "pustaka/internal/delivery/http/middleware"
	"pustaka/internal/delivery/http/router/handler"
	deliverymiddleware "pustaka/internal/delivery/middleware"
	"pustaka/internal/domain/entity"
	"pustaka/internal/domain/repository"
	"pustaka/internal/infra/auth"
	logs "pustaka/internal/infra/log"
	"pustaka/internal/infra/persistence/postgres"
	"pustaka/internal/infra/storage"
	"pustaka/internal/usecase"
	"pustaka/internal/usecase/impl"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
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
		postgres.New,
		storage.New,
	)
}

// injectRepo provides one principal repository per realm, plus the catalog
// repository. The realm instances carry fx name tags so each session
// usecase can ask for its own.
func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				newUserPrincipalRepository,
				fx.ResultTags(`name:"userPrincipalRepo"`),
			),
			fx.Annotate(
				newAdminPrincipalRepository,
				fx.ResultTags(`name:"adminPrincipalRepo"`),
			),
			postgres.NewBookRepository,
		),
	)
}

func newUserPrincipalRepository(db *gorm.DB) repository.PrincipalRepository {
	return postgres.NewPrincipalRepository(db, entity.RealmUser)
}

func newAdminPrincipalRepository(db *gorm.DB) repository.PrincipalRepository {
	return postgres.NewPrincipalRepository(db, entity.RealmAdmin)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				impl.NewSessionService,
				fx.ParamTags(`name:"userPrincipalRepo"`),
				fx.ResultTags(`name:"userSessions"`),
			),
			fx.Annotate(
				impl.NewSessionService,
				fx.ParamTags(`name:"adminPrincipalRepo"`),
				fx.ResultTags(`name:"adminSessions"`),
			),
			fx.Annotate(
				impl.NewPrincipalService,
				fx.ParamTags(`name:"userPrincipalRepo"`),
			),
			impl.NewBookService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			httpmiddleware.NewAuthMiddleware,
			httpmiddleware.NewErrorMiddleware,
			deliverymiddleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				newRealmAuthHandler,
				fx.ParamTags(`name:"userSessions"`),
				fx.ResultTags(`name:"userAuthHandler"`),
			),
			fx.Annotate(
				newRealmAuthHandler,
				fx.ParamTags(`name:"adminSessions"`),
				fx.ResultTags(`name:"adminAuthHandler"`),
			),
			handler.NewBookHandler,
			handler.NewUserHandler,
		),
	)
}

func newRealmAuthHandler(uc usecase.SessionUsecase, cfg *config.Config, logger *slog.Logger) *handler.AuthHandler {
	return handler.NewAuthHandler(uc, cfg, logger)
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
