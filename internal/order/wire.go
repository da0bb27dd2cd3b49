package order

import (
	"database/sql"

	"fonda/internal/config"
	"fonda/internal/order/controller"
	orderrepo "fonda/internal/order/repository"
	"fonda/internal/order/service"
	"fonda/internal/order/usecase"

	"go.uber.org/zap"
)

func NewModule(
	db *sql.DB,
	customers service.CustomerResolver,
	products usecase.ProductCatalog,
	cfg *config.Config,
	logger *zap.Logger,
) *controller.Controller {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	orderItemRepo := orderrepo.NewMySQLOrderItemRepository(db)
	paymentRepo := orderrepo.NewMySQLPaymentMethodRepository(db)

	submissionSvc := service.NewSubmissionService(
		db,
		customers,
		orderRepo,
		orderItemRepo,
		logger,
		cfg.Order.TxTimeout,
		cfg.Order.CodeAttempts,
		cfg.App.Location,
	)

	submitUseCase := usecase.NewSubmitOrderUseCase(
		products,
		submissionSvc,
		paymentRepo,
		logger,
		cfg.Order.MaxRetryAttempts,
	)

	return controller.NewController(
		submitUseCase,
		service.NewFulfillmentService(orderRepo, logger),
		logger,
	)
}
