package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fonda/internal/domain"
	"fonda/internal/dto"
	apperrors "fonda/internal/errors"
)

type stubComments struct {
	err      error
	comments []domain.CommentWithCustomer
	last     [3]string
}

func (s *stubComments) Submit(ctx context.Context, name, email, message string) (*domain.Comment, error) {
	s.last = [3]string{name, email, message}
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Comment{ID: 1, Message: message}, nil
}

func (s *stubComments) ListAll(ctx context.Context) ([]domain.CommentWithCustomer, error) {
	return s.comments, nil
}

func TestSubmit(t *testing.T) {
	stub := &stubComments{}
	c := NewController(stub, zap.NewNop())

	body := `{"name":"Ana","email":"ana@example.com","message":"Muy rico"}`
	rec := httptest.NewRecorder()
	c.Submit(rec, httptest.NewRequest(http.MethodPost, "/api/comentarios", bytes.NewBufferString(body)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Comentario enviado")
	assert.Equal(t, [3]string{"Ana", "ana@example.com", "Muy rico"}, stub.last)
}

func TestSubmit_Validation(t *testing.T) {
	stub := &stubComments{err: apperrors.NewValidationError("Por favor, completa todos los campos: nombre, correo y comentario.")}
	c := NewController(stub, zap.NewNop())

	rec := httptest.NewRecorder()
	c.Submit(rec, httptest.NewRequest(http.MethodPost, "/api/comentarios", bytes.NewBufferString(`{}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestList(t *testing.T) {
	stub := &stubComments{comments: []domain.CommentWithCustomer{{
		Comment:       domain.Comment{ID: 3, Message: "Volveré", CreatedAt: time.Date(2025, 5, 10, 14, 0, 0, 0, time.UTC)},
		CustomerName:  "Ana",
		CustomerEmail: "ana@example.com",
	}}}
	c := NewController(stub, zap.NewNop())

	rec := httptest.NewRecorder()
	c.List(rec, httptest.NewRequest(http.MethodGet, "/api/admin/comentarios", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []dto.CommentDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Ana", resp[0].CustomerName)
	assert.Equal(t, "2025-05-10T14:00:00Z", resp[0].CreatedAt)
}
