// Package session implements the local sign-in: any username with a password
// of at least four characters is accepted and no credentials are stored.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/storage"
	"github.com/MrJamesThe3rd/tally/internal/validate"
)

const issuer = "tally"

var (
	ErrValidation   = errors.New("invalid credentials")
	ErrNoSession    = errors.New("not logged in")
	ErrInvalidToken = errors.New("invalid session token")
)

type Credentials struct {
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required,min=4"`
	RememberMe bool   `json:"remember_me"`
}

// Session is what gets persisted under storage.KeySession.
type Session struct {
	Username   string    `json:"username"`
	RememberMe bool      `json:"rememberMe"`
	LoggedInAt time.Time `json:"loggedInAt"`
}

type Token struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Service struct {
	kv     storage.Storage
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(kv storage.Storage, secret string, ttl time.Duration) *Service {
	return &Service{kv: kv, secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock returns a copy of s that reads the time from now.
func (s *Service) WithClock(now func() time.Time) *Service {
	c := *s
	c.now = now

	return &c
}

// Login records the session and returns a signed token for API clients.
func (s *Service) Login(ctx context.Context, c Credentials) (*Token, error) {
	c.Username = strings.TrimSpace(c.Username)

	if err := validate.Struct(c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	sess := Session{Username: c.Username, RememberMe: c.RememberMe, LoggedInAt: s.now().UTC()}

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("encoding session: %w", err)
	}

	if err := s.kv.Set(ctx, storage.KeySession, data); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	return s.sign(sess)
}

func (s *Service) sign(sess Session) (*Token, error) {
	expires := sess.LoggedInAt.Add(s.ttl)

	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    issuer,
		Subject:   sess.Username,
		IssuedAt:  jwt.NewNumericDate(sess.LoggedInAt),
		ExpiresAt: jwt.NewNumericDate(expires),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}

	return &Token{Token: signed, Username: sess.Username, ExpiresAt: expires}, nil
}

// Current returns the stored session, or ErrNoSession.
func (s *Service) Current(ctx context.Context) (*Session, error) {
	data, err := s.kv.Get(ctx, storage.KeySession)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoSession
	}

	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}

	return &sess, nil
}

func (s *Service) Logout(ctx context.Context) error {
	if err := s.kv.Delete(ctx, storage.KeySession); err != nil {
		return fmt.Errorf("removing session: %w", err)
	}

	return nil
}

// Verify checks the token signature and expiry and returns the username it was issued to.
func (s *Service) Verify(token string) (string, error) {
	var claims jwt.RegisteredClaims

	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return claims.Subject, nil
}
