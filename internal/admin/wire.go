package admin

import (
	"database/sql"

	"fonda/internal/admin/controller"
	"fonda/internal/admin/repository"
	"fonda/internal/admin/service"
	"fonda/internal/config"

	"go.uber.org/zap"
)

type Module struct {
	Controller *controller.Controller
	Auth       *service.AuthService
}

func NewModule(db *sql.DB, cfg config.AuthConfig, logger *zap.Logger) *Module {
	auth := service.NewAuthService(repository.NewMySQLAdminRepository(db), cfg.JWTSecret, cfg.TokenTTL, logger)
	return &Module{
		Controller: controller.NewController(auth, logger),
		Auth:       auth,
	}
}
