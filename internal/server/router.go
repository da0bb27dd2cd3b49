package server

import (
	"context"
	"net/http"
	"time"

	admincontroller "fonda/internal/admin/controller"
	commentcontroller "fonda/internal/comment/controller"
	"fonda/internal/commons"
	guisadocontroller "fonda/internal/guisado/controller"
	"fonda/internal/infrastructure/logger"
	ordercontroller "fonda/internal/order/controller"
	productcontroller "fonda/internal/product/controller"
	salescontroller "fonda/internal/sales/controller"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handlers struct {
	Product  *productcontroller.Controller
	Guisado  *guisadocontroller.Controller
	Order    *ordercontroller.Controller
	Sales    *salescontroller.Controller
	Comment  *commentcontroller.Controller
	Admin    *admincontroller.Controller
	Verifier admincontroller.TokenVerifier
	DB       Pinger
}

type RouterOptions struct {
	RequireAdminToken bool
	Limiter           *RateLimiter
}

func NewRouter(h Handlers, opts RouterOptions, log *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(logger.Middleware(log))
	r.Use(middleware.Recoverer)

	limit := func(next http.Handler) http.Handler { return next }
	if opts.Limiter != nil {
		limit = opts.Limiter.Middleware
	}

	r.Get("/health", health(h.DB, log))

	r.Route("/api", func(r chi.Router) {
		r.Get("/menu", h.Product.Menu)
		r.Get("/menu/guisados", h.Guisado.ListAvailable)
		r.Get("/menu/guisados/stream", h.Guisado.Stream)

		r.Get("/pedido/productos", h.Product.List)
		r.Get("/pedido/transferencia", h.Order.Transfer)
		r.With(limit).Post("/pedido", h.Order.Submit)

		r.With(limit).Post("/comentarios", h.Comment.Submit)

		r.Route("/admin", func(r chi.Router) {
			r.With(limit).Post("/login", h.Admin.Login)

			r.Group(func(r chi.Router) {
				if opts.RequireAdminToken {
					r.Use(admincontroller.RequireToken(h.Verifier, log))
				}

				r.Get("/", h.Admin.Index)

				r.Get("/productos", h.Product.List)
				r.Post("/productos", h.Product.Create)
				r.Put("/productos/{productId}", h.Product.Update)
				r.Delete("/productos/{productId}", h.Product.Delete)

				r.Get("/guisados", h.Guisado.ListToday)
				r.Post("/guisados", h.Guisado.Create)
				r.Patch("/guisados/{guisadoId}/disponibilidad", h.Guisado.SetAvailability)

				r.Get("/pedidos", h.Order.ListPending)
				r.Get("/pedidos/buscar", h.Order.Search)
				r.Post("/pedidos/{orderId}/finalizar", h.Order.Finalize)
				r.Delete("/pedidos/{orderId}", h.Order.Delete)

				r.Get("/ventas", h.Sales.Summary)
				r.Post("/ventas/cerrar", h.Sales.Close)
				r.Get("/ventas/cierres", h.Sales.Batches)

				r.Get("/comentarios", h.Comment.List)
			})
		})
	})

	return r
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func health(db Pinger, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db == nil {
			commons.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok", Database: "unknown"}, log)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			logger.FromContext(r.Context(), log).Warn("health check: database unreachable", zap.Error(err))
			commons.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "degraded", Database: "down"}, log)
			return
		}
		commons.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok", Database: "up"}, log)
	}
}
