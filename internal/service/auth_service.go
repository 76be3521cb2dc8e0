package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/prepmaster/prepmaster-backend/internal/config"
	"github.com/prepmaster/prepmaster-backend/internal/model"
	"github.com/prepmaster/prepmaster-backend/internal/store"
)

const minPasswordLength = 6

var (
	ErrInvalidCredentials = errors.New("service: invalid credentials")
	ErrPasswordTooShort   = errors.New("service: password must be at least 6 characters")
)

// AuthService implements the demo authentication model: passwords are
// length-checked but never stored or verified against a hash. Login still
// requires a registered email. Suitable for local demos only.
type AuthService struct {
	store     *store.Store
	jwtSecret []byte
	jwtExpiry time.Duration
	log       zerolog.Logger
}

func NewAuthService(st *store.Store, cfg *config.Config, log zerolog.Logger) *AuthService {
	return &AuthService{
		store:     st,
		jwtSecret: []byte(cfg.JWTSecret),
		jwtExpiry: cfg.JWTExpiry,
		log:       log.With().Str("component", "auth_service").Logger(),
	}
}

// Login authenticates against the user document: the email must match a
// registered profile and the password must be at least six characters. The
// password is never compared against anything stored.
func (s *AuthService) Login(email, password string) (model.User, string, error) {
	if len(password) < minPasswordLength {
		return model.User{}, "", ErrInvalidCredentials
	}

	user, found := s.findUser(email)
	if !found {
		return model.User{}, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user.Email)
	if err != nil {
		return model.User{}, "", err
	}

	s.log.Info().Str("email", email).Msg("user logged in")
	return user, token, nil
}

// Signup registers a new user profile. The password is validated for length
// and then discarded.
func (s *AuthService) Signup(name, email, password string) (model.User, string, error) {
	if len(password) < minPasswordLength {
		return model.User{}, "", ErrPasswordTooShort
	}

	user := model.User{
		Name:   name,
		Email:  email,
		Skills: []string{},
		Goals:  "",
	}

	users := s.store.Users()
	users = append(users, user)
	if err := s.store.SaveUsers(users); err != nil {
		return model.User{}, "", fmt.Errorf("saving user: %w", err)
	}

	token, err := s.issueToken(email)
	if err != nil {
		return model.User{}, "", err
	}

	s.log.Info().Str("email", email).Msg("user signed up")
	return user, token, nil
}

// CurrentUser returns the first registered user, mirroring the single-user
// demo storage model. The second return is false when nobody signed up yet.
func (s *AuthService) CurrentUser() (model.User, bool) {
	users := s.store.Users()
	if len(users) == 0 {
		return model.User{}, false
	}
	return users[0], true
}

func (s *AuthService) findUser(email string) (model.User, bool) {
	for _, u := range s.store.Users() {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return model.User{}, false
}

func (s *AuthService) issueToken(email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": email,
		"iat": now.Unix(),
		"exp": now.Add(s.jwtExpiry).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return token, nil
}
