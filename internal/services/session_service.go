package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/logger"
	"spendwise/internal/models"
)

const sessionIssuer = "spendwise-api"

// sessionService stores sessions server-side and hands out signed tokens
// that reference them. The token's jti is the session row ID, so deleting
// the row invalidates the token immediately.
type sessionService struct {
	db     *gorm.DB
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionService creates a new SessionServicer.
func NewSessionService(db *gorm.DB, secret string, ttl time.Duration) SessionServicer {
	return &sessionService{
		db:     db,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Create opens a session for user and returns its token.
func (s *sessionService) Create(user *models.User, meta SessionMeta) (string, error) {
	if user == nil {
		return "", apperrors.ErrUnauthorized
	}

	now := s.now()
	session := &models.Session{
		UserID:    user.ID,
		ExpiresAt: now.Add(s.ttl),
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	}
	if err := s.db.Create(session).Error; err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternal, err)
	}

	claims := jwt.RegisteredClaims{
		ID:        session.ID,
		Subject:   user.ID,
		Issuer:    sessionIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return token, nil
}

// Resolve returns the user behind a token. Invalid, expired and revoked
// tokens all yield ErrUnauthorized.
func (s *sessionService) Resolve(token string) (*models.User, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	var session models.Session
	err = s.db.Preload("User").
		Where("id = ? AND user_id = ?", claims.ID, claims.Subject).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	if session.Expired(s.now()) {
		if err := s.db.Delete(&session).Error; err != nil {
			logger.Get().Warnw("failed to delete expired session", "session_id", session.ID, "error", err)
		}
		return nil, apperrors.ErrUnauthorized
	}

	return &session.User, nil
}

// Revoke deletes the session behind token. It succeeds for missing, invalid
// and already revoked tokens.
func (s *sessionService) Revoke(token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.parse(token, jwt.WithoutClaimsValidation())
	if err != nil || claims.ID == "" {
		return nil
	}

	if err := s.db.Where("id = ?", claims.ID).Delete(&models.Session{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return nil
}

func (s *sessionService) parse(token string, opts ...jwt.ParserOption) (*jwt.RegisteredClaims, error) {
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(sessionIssuer))

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}
	return claims, nil
}
