package controller

import (
	"context"
	"fmt"
	"net/http"

	"fonda/internal/commons"
	"fonda/internal/domain"
	"fonda/internal/dto"
	"fonda/internal/infrastructure/logger"
	"fonda/internal/product/service"

	"go.uber.org/zap"
)

type CatalogService interface {
	Menu(ctx context.Context, filter string) (*service.Menu, error)
	ListAll(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, input service.ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id uint, input service.ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id uint) (*domain.Product, error)
}

type Controller struct {
	service CatalogService
	logger  *zap.Logger
}

func NewController(service CatalogService, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		logger:  logger,
	}
}

func (c *Controller) Menu(w http.ResponseWriter, r *http.Request) {
	menu, err := c.service.Menu(r.Context(), r.URL.Query().Get("categoria"))
	if err != nil {
		commons.HandleError(w, r, err, c.logger)
		return
	}

	groups := make([]dto.MenuCategoryDTO, 0, len(menu.Groups))
	for _, g := range menu.Groups {
		groups = append(groups, dto.MenuCategoryDTO{
			Label:    g.Label,
			Products: ToProductDTOs(g.Products),
		})
	}

	commons.WriteJSON(w, http.StatusOK, dto.MenuResponse{
		Categories: menu.Categories,
		Selected:   menu.Selected,
		Groups:     groups,
	}, c.logger)
}

func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.ListAll(r.Context())
	if err != nil {
		commons.HandleError(w, r, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, ToProductDTOs(products), c.logger)
}

func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductRequest
	if !commons.DecodeJSON(w, r, &req) {
		return
	}

	p, err := c.service.Create(r.Context(), toInput(req))
	if err != nil {
		commons.HandleError(w, r, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusCreated, ToProductDTO(*p), c.logger)
}

func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := commons.URLParamID(w, r, "productId")
	if !ok {
		return
	}

	var req dto.ProductRequest
	if !commons.DecodeJSON(w, r, &req) {
		return
	}

	p, err := c.service.Update(r.Context(), id, toInput(req))
	if err != nil {
		commons.HandleError(w, r, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, ToProductDTO(*p), c.logger)
}

func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := commons.URLParamID(w, r, "productId")
	if !ok {
		return
	}

	if !commons.Confirmed(r) {
		commons.WriteConfirmationRequired(w, r, "¿Estás seguro de que deseas eliminar este producto?")
		return
	}

	p, err := c.service.Delete(r.Context(), id)
	if err != nil {
		commons.HandleError(w, r, err, c.logger)
		return
	}

	logger.FromContext(r.Context(), c.logger).Info("product removed by admin", zap.Uint("productId", id))
	commons.WriteJSON(w, http.StatusOK, dto.MessageResponse{
		TraceID: logger.TraceID(r.Context()),
		Message: fmt.Sprintf("Producto \"%s\" eliminado exitosamente.", p.Name),
	}, c.logger)
}

func toInput(req dto.ProductRequest) service.ProductInput {
	return service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
	}
}

func ToProductDTO(p domain.Product) dto.ProductDTO {
	return dto.ProductDTO{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         dto.Money(p.Price),
		Category:      p.Category,
		CategoryLabel: p.CategoryLabel(),
	}
}

func ToProductDTOs(products []domain.Product) []dto.ProductDTO {
	out := make([]dto.ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, ToProductDTO(p))
	}
	return out
}
