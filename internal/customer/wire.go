package customer

import (
	"database/sql"

	"fonda/internal/customer/repository"
	"fonda/internal/customer/service"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, logger *zap.Logger) *service.CustomerService {
	return service.NewCustomerService(repository.NewMySQLCustomerRepository(db), logger)
}
