package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"fonda/internal/domain"
	apperrors "fonda/internal/errors"
)

const msgNameRequired = "Por favor, ingresa el nombre del guisado."

type Repository interface {
	Insert(ctx context.Context, g domain.Guisado) (uint, error)
	FindByID(ctx context.Context, id uint) (*domain.Guisado, error)
	FindByDate(ctx context.Context, day time.Time) ([]domain.Guisado, error)
	FindAvailableByDate(ctx context.Context, day time.Time) ([]domain.Guisado, error)
	UpdateAvailability(ctx context.Context, id uint, availability string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, ev domain.AvailabilityEvent) error
}

type GuisadoService struct {
	repo      Repository
	publisher EventPublisher
	logger    *zap.Logger
	location  *time.Location
	now       func() time.Time
}

func NewGuisadoService(repo Repository, publisher EventPublisher, logger *zap.Logger, location *time.Location) *GuisadoService {
	return &GuisadoService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		location:  location,
		now:       time.Now,
	}
}

func (s *GuisadoService) Today() time.Time {
	return domain.BusinessDay(s.now(), s.location)
}

// Create registra un guisado para hoy, disponible de inicio.
func (s *GuisadoService) Create(ctx context.Context, name, description string) (*domain.Guisado, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError(msgNameRequired, apperrors.ValidationDetail{
			Field:   "name",
			Message: "name is required",
		})
	}

	g := domain.Guisado{
		Name:         name,
		Availability: domain.AvailabilityAvailable,
		Date:         s.Today(),
	}
	if d := strings.TrimSpace(description); d != "" {
		g.Description = &d
	}

	id, err := s.repo.Insert(ctx, g)
	if err != nil {
		return nil, err
	}
	g.ID = id

	s.logger.Info("guisado created", zap.Uint("guisadoId", id), zap.String("date", domain.FormatDay(g.Date)))
	s.publish(ctx, g)

	return &g, nil
}

// ListToday es la vista del panel: todos los de hoy, por nombre.
func (s *GuisadoService) ListToday(ctx context.Context) ([]domain.Guisado, error) {
	return s.repo.FindByDate(ctx, s.Today())
}

// ListAvailable es la vista publica: los del dia que no estan agotados.
func (s *GuisadoService) ListAvailable(ctx context.Context, day time.Time) ([]domain.Guisado, error) {
	return s.repo.FindAvailableByDate(ctx, day)
}

func (s *GuisadoService) SetAvailability(ctx context.Context, id uint, value string) (*domain.Guisado, error) {
	state, ok := domain.ParseAvailability(value)
	if !ok {
		return nil, apperrors.NewValidationError("disponibilidad inválida", apperrors.ValidationDetail{
			Field:   "availability",
			Message: "availability must be Disponible, Queda poco or Agotado",
		})
	}

	if err := s.repo.UpdateAvailability(ctx, id, state); err != nil {
		return nil, err
	}

	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("guisado availability updated", zap.Uint("guisadoId", id), zap.String("availability", state))
	s.publish(ctx, *g)

	return g, nil
}

// publish no hace fallar la operacion: el cambio ya quedo guardado y los
// clientes lo veran al recargar.
func (s *GuisadoService) publish(ctx context.Context, g domain.Guisado) {
	if err := s.publisher.Publish(ctx, domain.AvailabilityEvent{Guisado: g}); err != nil {
		s.logger.Warn("failed to publish availability event", zap.Uint("guisadoId", g.ID), zap.Error(err))
	}
}
