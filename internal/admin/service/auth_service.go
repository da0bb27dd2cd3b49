package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"fonda/internal/domain"
	apperrors "fonda/internal/errors"
)

const (
	msgAdminNotFound = "Usuario no encontrado o error en la base de datos."
	msgWrongPassword = "Contraseña incorrecta."
	msgInvalidToken  = "Sesión inválida o expirada."
)

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
}

type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	Admin     domain.Admin
}

type AuthService struct {
	repo   Repository
	secret []byte
	ttl    time.Duration
	logger *zap.Logger

	now func() time.Time
}

func NewAuthService(repo Repository, secret string, ttl time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		repo:   repo,
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Login compara la contrasena tal como esta guardada y emite un token HS256.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	admin, err := s.repo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); !ok {
			s.logger.Error("admin lookup failed", zap.Error(err))
		}
		return nil, apperrors.NewUnauthorizedError(msgAdminNotFound)
	}

	if subtle.ConstantTimeCompare([]byte(admin.Password), []byte(password)) != 1 {
		s.logger.Warn("admin login rejected", zap.Uint("adminId", admin.ID))
		return nil, apperrors.NewUnauthorizedError(msgWrongPassword)
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)
	claims := Claims{
		Name: admin.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(admin.ID), 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, apperrors.NewInternalError("signing admin token", err)
	}

	s.logger.Info("admin logged in", zap.Uint("adminId", admin.ID))
	return &Session{Token: token, ExpiresAt: expiresAt, Admin: *admin}, nil
}

func (s *AuthService) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, apperrors.NewUnauthorizedError(msgInvalidToken)
	}
	return claims, nil
}

func WelcomeMessage(name string) string {
	return fmt.Sprintf("Bienvenido, %s", name)
}
