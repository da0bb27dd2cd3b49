package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"fonda/internal/domain"
	apperrors "fonda/internal/errors"
)

const (
	msgRequiredFields = "Por favor, completa los campos obligatorios: Nombre, Precio y Categoría."
	msgInvalidPrice   = "El precio debe ser un número válido mayor a 0."
)

type Repository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id uint) (*domain.Product, error)
	FindByIDs(ctx context.Context, ids []uint) ([]domain.Product, error)
	Insert(ctx context.Context, p domain.Product) (uint, error)
	Update(ctx context.Context, p domain.Product) error
	Delete(ctx context.Context, id uint) error
}

// ProductInput llega del panel; Category acepta codigo o etiqueta.
type ProductInput struct {
	Name        string
	Description string
	Price       *decimal.Decimal
	Category    string
}

type CategoryGroup struct {
	Label    string
	Products []domain.Product
}

type Menu struct {
	Categories []string
	Selected   string
	Groups     []CategoryGroup
}

type CatalogService struct {
	repo   Repository
	logger *zap.Logger
}

func NewCatalogService(repo Repository, logger *zap.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger}
}

func (s *CatalogService) ListAll(ctx context.Context) ([]domain.Product, error) {
	return s.repo.FindAll(ctx)
}

func (s *CatalogService) FindByIDs(ctx context.Context, ids []uint) ([]domain.Product, error) {
	return s.repo.FindByIDs(ctx, ids)
}

// Menu agrupa por etiqueta de categoria conservando el orden del catalogo.
// filter vacio o "Todas" incluye todas las categorias.
func (s *CatalogService) Menu(ctx context.Context, filter string) (*Menu, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	selected := domain.CategoryLabelAll
	if filter != "" && !strings.EqualFold(filter, domain.CategoryLabelAll) {
		code, ok := domain.ParseCategory(filter)
		if !ok {
			return nil, apperrors.NewValidationError("categoría inválida", apperrors.ValidationDetail{
				Field:   "categoria",
				Message: "categoria must be Comida, Bebidas or Todas",
			})
		}
		selected = domain.CategoryLabel(code)
	}

	groups := GroupByCategory(products)

	categories := []string{domain.CategoryLabelAll}
	for _, g := range groups {
		categories = append(categories, g.Label)
	}

	if selected != domain.CategoryLabelAll {
		filtered := groups[:0]
		for _, g := range groups {
			if g.Label == selected {
				filtered = append(filtered, g)
			}
		}
		groups = filtered
	}

	return &Menu{
		Categories: categories,
		Selected:   selected,
		Groups:     groups,
	}, nil
}

func GroupByCategory(products []domain.Product) []CategoryGroup {
	var groups []CategoryGroup
	index := make(map[string]int)
	for _, p := range products {
		label := p.CategoryLabel()
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, CategoryGroup{Label: label})
		}
		groups[i].Products = append(groups[i].Products, p)
	}
	return groups
}

func (s *CatalogService) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	p, err := buildProduct(input)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.Insert(ctx, *p)
	if err != nil {
		return nil, err
	}
	p.ID = id

	s.logger.Info("product created", zap.Uint("productId", id), zap.String("category", p.Category))
	return p, nil
}

func (s *CatalogService) Update(ctx context.Context, id uint, input ProductInput) (*domain.Product, error) {
	p, err := buildProduct(input)
	if err != nil {
		return nil, err
	}
	p.ID = id

	if err := s.repo.Update(ctx, *p); err != nil {
		return nil, err
	}

	s.logger.Info("product updated", zap.Uint("productId", id))
	return p, nil
}

// Delete regresa el producto borrado para poder nombrarlo en la respuesta.
func (s *CatalogService) Delete(ctx context.Context, id uint) (*domain.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info("product deleted", zap.Uint("productId", id))
	return p, nil
}

func buildProduct(input ProductInput) (*domain.Product, error) {
	name := strings.TrimSpace(input.Name)
	var details []apperrors.ValidationDetail

	if name == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	}
	if input.Price == nil {
		details = append(details, apperrors.ValidationDetail{Field: "price", Message: "price is required"})
	}
	category, ok := domain.ParseCategory(input.Category)
	if strings.TrimSpace(input.Category) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "category", Message: "category is required"})
	} else if !ok {
		details = append(details, apperrors.ValidationDetail{Field: "category", Message: "category must be Comida or Bebidas"})
	}

	if len(details) > 0 {
		return nil, apperrors.NewValidationError(msgRequiredFields, details...)
	}

	// la columna guarda dos decimales; mas precision se perderia al guardar
	if !input.Price.IsPositive() || !input.Price.Equal(input.Price.Round(2)) {
		return nil, apperrors.NewValidationError(msgInvalidPrice, apperrors.ValidationDetail{
			Field:   "price",
			Message: "price must be greater than 0 with at most 2 decimals",
		})
	}

	var description *string
	if d := strings.TrimSpace(input.Description); d != "" {
		description = &d
	}

	return &domain.Product{
		Name:        name,
		Description: description,
		Price:       *input.Price,
		Category:    category,
	}, nil
}
