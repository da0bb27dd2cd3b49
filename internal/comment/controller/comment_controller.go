package controller

import (
	"context"
	"net/http"
	"time"

	"fonda/internal/commons"
	"fonda/internal/domain"
	"fonda/internal/dto"
	"fonda/internal/infrastructure/logger"

	"go.uber.org/zap"
)

type CommentService interface {
	Submit(ctx context.Context, name, email, message string) (*domain.Comment, error)
	ListAll(ctx context.Context) ([]domain.CommentWithCustomer, error)
}

type Controller struct {
	service CommentService
	logger  *zap.Logger
}

func NewController(service CommentService, logger *zap.Logger) *Controller {
	return &Controller{service: service, logger: logger}
}

func (c *Controller) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.CommentRequest
	if !commons.DecodeJSON(w, r, &req) {
		return
	}

	if _, err := c.service.Submit(r.Context(), req.Name, req.Email, req.Message); err != nil {
		commons.HandleError(w, r, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusCreated, dto.MessageResponse{
		TraceID: logger.TraceID(r.Context()),
		Message: "¡Comentario enviado con éxito! Gracias por tu opinión.",
	}, c.logger)
}

func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	comments, err := c.service.ListAll(r.Context())
	if err != nil {
		commons.HandleError(w, r, err, c.logger)
		return
	}

	out := make([]dto.CommentDTO, 0, len(comments))
	for _, cm := range comments {
		out = append(out, dto.CommentDTO{
			ID:            cm.ID,
			Message:       cm.Message,
			CreatedAt:     cm.CreatedAt.Format(time.RFC3339),
			CustomerName:  cm.CustomerName,
			CustomerEmail: cm.CustomerEmail,
		})
	}

	commons.WriteJSON(w, http.StatusOK, out, c.logger)
}
