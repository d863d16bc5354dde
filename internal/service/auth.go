package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
	ErrEmptySecret  = errors.New("auth secret is empty")
)

const tokenLifetime = 7 * 24 * time.Hour

// AuthService guards the HTTP surface with a single shared secret. The secret
// is kept only as a bcrypt hash; sessions are HMAC-signed timestamps.
type AuthService struct {
	secretHash []byte
	signingKey []byte
	now        func() time.Time
}

func NewAuthService(secret string) (*AuthService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash auth secret: %w", err)
	}
	key := sha256.Sum256([]byte("batchenc-session:" + secret))
	return &AuthService{
		secretHash: hash,
		signingKey: key[:],
		now:        time.Now,
	}, nil
}

// ValidatePassword reports whether password matches the configured secret.
func (s *AuthService) ValidatePassword(password string) bool {
	return bcrypt.CompareHashAndPassword(s.secretHash, []byte(password)) == nil
}

func (s *AuthService) GenerateToken() string {
	timestamp := strconv.FormatInt(s.now().Unix(), 10)
	return timestamp + ":" + s.sign(timestamp)
}

func (s *AuthService) ValidateToken(token string) error {
	timestamp, signature, ok := strings.Cut(token, ":")
	if !ok || strings.Contains(signature, ":") {
		return ErrInvalidToken
	}

	if !hmac.Equal([]byte(signature), []byte(s.sign(timestamp))) {
		return ErrInvalidToken
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrInvalidToken
	}

	if s.now().After(time.Unix(ts, 0).Add(tokenLifetime)) {
		return ErrExpiredToken
	}
	return nil
}

func (s *AuthService) sign(payload string) string {
	mac := hmac.New(sha256.New, s.signingKey)
	mac.Write([]byte(payload))
	return base64.URLEncoding.EncodeToString(mac.Sum(nil))
}
