package sales

import (
	"database/sql"
	"time"

	orderrepo "fonda/internal/order/repository"
	"fonda/internal/sales/controller"
	"fonda/internal/sales/repository"
	"fonda/internal/sales/service"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, location *time.Location, txTimeout time.Duration, logger *zap.Logger) *controller.Controller {
	svc := service.NewSalesService(
		db,
		repository.NewMySQLSalesRepository(db),
		orderrepo.NewMySQLOrderRepository(db),
		logger,
		location,
		txTimeout,
	)
	return controller.NewController(svc, logger)
}
