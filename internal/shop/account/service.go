// Package account implements member authentication with Redis-backed
// sessions. The first login for an unknown email claims it with that
// password; later logins must present the same password.
package account

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	errx "github.com/aura-storefront/server/internal/core/error"
	"github.com/aura-storefront/server/internal/shop/model"
	"github.com/aura-storefront/server/internal/shop/security"
	logx "github.com/aura-storefront/server/pkg/logger"
)

const DefaultMemberName = "Aura Member"

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

var (
	ErrUnauthorized       = errx.New(errors.New("account: no valid session"), http.StatusUnauthorized, "sign in required")
	ErrInvalidCredentials = errx.New(errors.New("account: password mismatch"), http.StatusUnauthorized, "email or password is incorrect")
	ErrEmailTaken         = errx.New(errors.New("account: email already registered"), http.StatusConflict, "an account with this email already exists")
)

// memberNamespace seeds deterministic member ids.
var memberNamespace = uuid.MustParse("5f1c3a52-9a8e-4d0b-8f53-2c7e1b6a9d40")

type Session struct {
	Token     string     `json:"token"`
	User      model.User `json:"user"`
	ExpiresAt time.Time  `json:"expires_at"`
}

type Service struct {
	store    *RedisStore
	now      func() time.Time
	hashCost int
}

func NewService(store *RedisStore) *Service {
	return &Service{store: store, now: time.Now, hashCost: bcrypt.DefaultCost}
}

// UserID derives the member id from the normalized email.
func UserID(email string) string {
	return uuid.NewSHA1(memberNamespace, []byte(normalizeEmail(email))).String()
}

// AvatarURL builds an initials avatar for name.
func AvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=262320&color=fff"
}

func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	verr := errx.NewValidationError()
	checkCredentials(verr, email, password)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	id := UserID(email)
	p, ok, err := s.store.LoadProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		p, ok, err = s.claim(ctx, member(id, DefaultMemberName, email), password)
		if err != nil {
			return nil, err
		}
		if ok {
			return s.open(ctx, p.User)
		}
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		logx.Info().Str("userID", id).Msg("login rejected")
		return nil, ErrInvalidCredentials
	}
	return s.open(ctx, p.User)
}

func (s *Service) Register(ctx context.Context, name, email, password string) (*Session, error) {
	name = strings.TrimSpace(name)
	verr := errx.NewValidationError()
	if name != "" && !security.Validate(name, security.TextSafe) {
		verr.Add("name", "name contains unsupported characters")
	}
	checkCredentials(verr, email, password)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	if name == "" {
		name = DefaultMemberName
	}

	p, created, err := s.claim(ctx, member(UserID(email), name, email), password)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, ErrEmailTaken
	}
	logx.Info().Str("userID", p.ID).Msg("member registered")
	return s.open(ctx, p.User)
}

// claim creates a profile for u with a hashed password. When another
// request created it first, the stored profile is returned with
// created=false.
func (s *Service) claim(ctx context.Context, u model.User, password string) (Profile, bool, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return Profile{}, false, fmt.Errorf("hash password: %w", err)
	}
	p := Profile{User: u, PasswordHash: string(hash)}
	created, err := s.store.CreateProfile(ctx, p)
	if err != nil || created {
		return p, created, err
	}
	existing, ok, err := s.store.LoadProfile(ctx, u.ID)
	if err != nil {
		return Profile{}, false, err
	}
	if !ok {
		return Profile{}, false, ErrEmailTaken
	}
	return existing, false, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.store.DeleteSession(ctx, token)
}

// Current resolves a bearer token to its member.
func (s *Service) Current(ctx context.Context, token string) (model.User, error) {
	if token == "" {
		return model.User{}, ErrUnauthorized
	}
	return s.store.LoadSession(ctx, token)
}

func (s *Service) open(ctx context.Context, u model.User) (*Session, error) {
	token := uuid.NewString()
	if err := s.store.SaveSession(ctx, token, u); err != nil {
		return nil, err
	}
	return &Session{Token: token, User: u, ExpiresAt: s.now().UTC().Add(s.store.ttl)}, nil
}

func checkCredentials(verr *errx.ValidationError, email, password string) {
	email = strings.TrimSpace(email)
	switch {
	case email == "":
		verr.Add("email", "required")
	case !security.Validate(email, security.Email):
		verr.Add("email", "enter a valid email address")
	}
	switch {
	case password == "":
		verr.Add("password", "required")
	case len(password) > maxPasswordBytes:
		verr.Add("password", "must be at most 72 bytes")
	}
}

func member(id, name, email string) model.User {
	email = normalizeEmail(email)
	username, _, _ := strings.Cut(email, "@")
	return model.User{
		ID:       id,
		Name:     name,
		Email:    email,
		Avatar:   AvatarURL(name),
		Username: username,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
