package comment

import (
	"database/sql"
	"time"

	"fonda/internal/comment/controller"
	"fonda/internal/comment/repository"
	"fonda/internal/comment/service"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, customers service.CustomerResolver, txTimeout time.Duration, logger *zap.Logger) *controller.Controller {
	svc := service.NewCommentService(db, customers, repository.NewMySQLCommentRepository(db), logger, txTimeout)
	return controller.NewController(svc, logger)
}
