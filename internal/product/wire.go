package product

import (
	"database/sql"

	"fonda/internal/product/controller"
	"fonda/internal/product/repository"
	"fonda/internal/product/service"

	"go.uber.org/zap"
)

type Module struct {
	Controller *controller.Controller
	Service    *service.CatalogService
}

func NewModule(db *sql.DB, logger *zap.Logger) *Module {
	repo := repository.NewMySQLRepository(db)
	svc := service.NewCatalogService(repo, logger)
	return &Module{
		Controller: controller.NewController(svc, logger),
		Service:    svc,
	}
}
