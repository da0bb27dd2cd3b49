package guisado

import (
	"database/sql"
	"time"

	"fonda/internal/guisado/availability"
	"fonda/internal/guisado/controller"
	"fonda/internal/guisado/repository"
	"fonda/internal/guisado/service"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, publisher service.EventPublisher, hub *availability.Hub, location *time.Location, logger *zap.Logger) *controller.Controller {
	repo := repository.NewMySQLGuisadoRepository(db)
	svc := service.NewGuisadoService(repo, publisher, logger, location)
	return controller.NewController(svc, hub, logger)
}
