package controller

import (
	"context"
	"net/http"
	"strings"

	"fonda/internal/admin/service"
	"fonda/internal/commons"
	"fonda/internal/dto"

	"go.uber.org/zap"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*service.Session, error)
}

type TokenVerifier interface {
	Verify(token string) (*service.Claims, error)
}

type Controller struct {
	auth   AuthService
	logger *zap.Logger
}

func NewController(auth AuthService, logger *zap.Logger) *Controller {
	return &Controller{auth: auth, logger: logger}
}

func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !commons.DecodeJSON(w, r, &req) {
		return
	}

	session, err := c.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		commons.HandleError(w, r, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.UTC(),
		Name:      session.Admin.Name,
		Message:   service.WelcomeMessage(session.Admin.Name),
	}, c.logger)
}

// Index es el panel de administracion: cada opcion con sus endpoints.
func (c *Controller) Index(w http.ResponseWriter, r *http.Request) {
	commons.WriteJSON(w, http.StatusOK, dto.AdminPanelResponse{
		Title: "Panel de Administración",
		Links: panelLinks,
	}, c.logger)
}

var panelLinks = []dto.AdminLink{
	{Route: "/admin/subirPro", Description: "Agrega un nuevo producto al menú", Endpoints: []string{"POST /api/admin/productos"}},
	{Route: "/admin/guisados", Description: "Agrega un nuevo guisado al menú", Endpoints: []string{"POST /api/admin/guisados"}},
	{Route: "/admin/disgui", Description: "Modifica disponibilidad del menú", Endpoints: []string{"GET /api/admin/guisados", "PATCH /api/admin/guisados/{guisadoId}/disponibilidad"}},
	{Route: "/admin/editarPro", Description: "Modifica producto del menú", Endpoints: []string{"GET /api/admin/productos", "PUT /api/admin/productos/{productId}"}},
	{Route: "/admin/eliminarPro", Description: "Borra un producto del menú", Endpoints: []string{"DELETE /api/admin/productos/{productId}?confirm=true"}},
	{Route: "/admin/comentarios", Description: "Revisa opiniones de clientes", Endpoints: []string{"GET /api/admin/comentarios"}},
	{Route: "/admin/ventasT", Description: "Consulta las ventas totales del negocio", Endpoints: []string{"GET /api/admin/ventas", "POST /api/admin/ventas/cerrar", "GET /api/admin/ventas/cierres"}},
	{Route: "/admin/pedidoR", Description: "Haz un pedido con código de cliente", Endpoints: []string{"GET /api/admin/pedidos/buscar?codigo=", "POST /api/admin/pedidos/{orderId}/finalizar"}},
	{Route: "/admin/verPedidos", Description: "Revisa y elimina pedidos pendientes", Endpoints: []string{"GET /api/admin/pedidos", "DELETE /api/admin/pedidos/{orderId}?confirm=true"}},
}

// RequireToken exige "Authorization: Bearer <token>" emitido por Login.
func RequireToken(verifier TokenVerifier, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			parts := strings.Fields(r.Header.Get("Authorization"))
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				commons.WriteError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid authorization header")
				return
			}

			if _, err := verifier.Verify(parts[1]); err != nil {
				commons.HandleError(w, r, err, log)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
