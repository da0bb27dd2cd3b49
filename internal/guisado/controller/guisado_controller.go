package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fonda/internal/commons"
	"fonda/internal/domain"
	"fonda/internal/dto"
	"fonda/internal/guisado/availability"
	"fonda/internal/infrastructure/logger"

	"go.uber.org/zap"
)

const heartbeatInterval = 25 * time.Second

type GuisadoService interface {
	Today() time.Time
	Create(ctx context.Context, name, description string) (*domain.Guisado, error)
	ListToday(ctx context.Context) ([]domain.Guisado, error)
	ListAvailable(ctx context.Context, day time.Time) ([]domain.Guisado, error)
	SetAvailability(ctx context.Context, id uint, value string) (*domain.Guisado, error)
}

type Subscriber interface {
	Subscribe(day time.Time) *availability.Subscription
}

type Controller struct {
	service    GuisadoService
	subscriber Subscriber
	logger     *zap.Logger
}

func NewController(service GuisadoService, subscriber Subscriber, logger *zap.Logger) *Controller {
	return &Controller{
		service:    service,
		subscriber: subscriber,
		logger:     logger,
	}
}

func (c *Controller) ListAvailable(w http.ResponseWriter, r *http.Request) {
	guisados, err := c.service.ListAvailable(r.Context(), c.service.Today())
	if err != nil {
		commons.HandleError(w, r, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, ToGuisadoDTOs(guisados), c.logger)
}

func (c *Controller) ListToday(w http.ResponseWriter, r *http.Request) {
	guisados, err := c.service.ListToday(r.Context())
	if err != nil {
		commons.HandleError(w, r, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, ToGuisadoDTOs(guisados), c.logger)
}

func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.GuisadoRequest
	if !commons.DecodeJSON(w, r, &req) {
		return
	}

	g, err := c.service.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		commons.HandleError(w, r, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusCreated, ToGuisadoDTO(*g), c.logger)
}

func (c *Controller) SetAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := commons.URLParamID(w, r, "guisadoId")
	if !ok {
		return
	}

	var req dto.AvailabilityRequest
	if !commons.DecodeJSON(w, r, &req) {
		return
	}

	g, err := c.service.SetAvailability(r.Context(), id, req.Availability)
	if err != nil {
		commons.HandleError(w, r, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, ToGuisadoDTO(*g), c.logger)
}

// Stream envia por Server-Sent Events la lista visible de hoy: primero la
// lista completa y despues la lista recalculada con cada cambio.
func (c *Controller) Stream(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), c.logger)

	flusher, ok := w.(http.Flusher)
	if !ok {
		commons.WriteError(w, r, http.StatusInternalServerError, "STREAMING_UNSUPPORTED", "streaming not supported")
		return
	}

	// el stream vive mas que el WriteTimeout del servidor
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		log.Debug("could not clear write deadline", zap.Error(err))
	}

	day := c.service.Today()

	// suscribir antes de leer para no perder cambios entre la lectura y la suscripcion
	sub := c.subscriber.Subscribe(day)
	defer sub.Unsubscribe()

	list, err := c.service.ListAvailable(r.Context(), day)
	if err != nil {
		commons.HandleError(w, r, err, c.logger)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := writeEvent(w, "snapshot", ToGuisadoDTOs(list)); err != nil {
		return
	}
	flusher.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case ev, ok := <-sub.C:
			if !ok {
				log.Debug("availability subscription closed")
				return
			}
			list = availability.Apply(list, ev)
			if err := writeEvent(w, "guisados", ToGuisadoDTOs(list)); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, name string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, payload)
	return err
}

func ToGuisadoDTO(g domain.Guisado) dto.GuisadoDTO {
	return dto.GuisadoDTO{
		ID:                g.ID,
		Name:              g.Name,
		Description:       g.Description,
		Availability:      g.Availability,
		AvailabilityLabel: domain.AvailabilityLabel(g.Availability),
		Date:              domain.FormatDay(g.Date),
	}
}

func ToGuisadoDTOs(list []domain.Guisado) []dto.GuisadoDTO {
	out := make([]dto.GuisadoDTO, 0, len(list))
	for _, g := range list {
		out = append(out, ToGuisadoDTO(g))
	}
	return out
}
