package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fonda/internal/domain"
	apperrors "fonda/internal/errors"
)

type mockRepository struct {
	FindByEmailFunc func(ctx context.Context, email string) (*domain.Admin, error)
}

func (m *mockRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return m.FindByEmailFunc(ctx, email)
}

func adminRepo() *mockRepository {
	return &mockRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.Admin, error) {
			if email != "admin@fonda.mx" {
				return nil, apperrors.NewNotFoundError("admin not found")
			}
			return &domain.Admin{ID: 1, Name: "Jorge", Email: email, Password: "secreto"}, nil
		},
	}
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	svc := NewAuthService(adminRepo(), "test-secret", time.Hour, zap.NewNop())

	session, err := svc.Login(context.Background(), " admin@fonda.mx ", "secreto")
	require.NoError(t, err)
	assert.Equal(t, "Jorge", session.Admin.Name)
	assert.NotEmpty(t, session.Token)

	claims, err := svc.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "Jorge", claims.Name)
	assert.Equal(t, "1", claims.Subject)
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name     string
		repo     Repository
		email    string
		password string
		message  string
	}{
		{"unknown email", adminRepo(), "otro@fonda.mx", "secreto", msgAdminNotFound},
		{"wrong password", adminRepo(), "admin@fonda.mx", "nope", msgWrongPassword},
		{"query error", &mockRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*domain.Admin, error) {
				return nil, errors.New("connection refused")
			},
		}, "admin@fonda.mx", "secreto", msgAdminNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(tt.repo, "test-secret", time.Hour, zap.NewNop())

			_, err := svc.Login(context.Background(), tt.email, tt.password)
			ue, ok := apperrors.IsUnauthorizedError(err)
			require.True(t, ok)
			assert.Equal(t, tt.message, ue.Message)
		})
	}
}

func TestVerify_RejectsExpiredAndForeignTokens(t *testing.T) {
	svc := NewAuthService(adminRepo(), "test-secret", time.Hour, zap.NewNop())
	session, err := svc.Login(context.Background(), "admin@fonda.mx", "secreto")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.Verify(session.Token)
	_, ok := apperrors.IsUnauthorizedError(err)
	assert.True(t, ok)

	other := NewAuthService(adminRepo(), "other-secret", time.Hour, zap.NewNop())
	_, err = other.Verify(session.Token)
	_, ok = apperrors.IsUnauthorizedError(err)
	assert.True(t, ok)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Name: "x"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Verify(none)
	_, ok = apperrors.IsUnauthorizedError(err)
	assert.True(t, ok)
}

func TestWelcomeMessage(t *testing.T) {
	assert.Equal(t, "Bienvenido, Jorge", WelcomeMessage("Jorge"))
}
