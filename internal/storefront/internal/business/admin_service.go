package business

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"storefront_api/internal/storefront/internal/models"
	"storefront_api/pkg/logger"
)

type AdminService struct {
	admins AdminRepository
	issuer TokenIssuer
	log    logger.Logger
	cost   int
	// dummyHash keeps unknown-user logins as slow as wrong-password logins.
	dummyHash []byte
}

func NewAdminService(admins AdminRepository, issuer TokenIssuer, log logger.Logger) *AdminService {
	return NewAdminServiceWithCost(admins, issuer, log, bcrypt.DefaultCost)
}

func NewAdminServiceWithCost(admins AdminRepository, issuer TokenIssuer, log logger.Logger, cost int) *AdminService {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("storefront-dummy-password"), cost)
	return &AdminService{admins: admins, issuer: issuer, log: log, cost: cost, dummyHash: dummy}
}

// Login checks the credentials and issues a bearer token.
func (s *AdminService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrInvalidLogin
	}

	account, err := s.admins.FindByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		s.log.Warn("login failed for unknown admin %q", username)
		return "", ErrInvalidLogin
	}
	if err != nil {
		return "", upstream("find admin", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		s.log.Warn("login failed for admin %q", username)
		return "", ErrInvalidLogin
	}

	token, err := s.issuer.Issue(account.Username)
	if err != nil {
		return "", upstream("issue token", err)
	}
	return token, nil
}

// EnsureAdmin creates the bootstrap account unless it already exists.
// An existing account keeps its stored password.
func (s *AdminService) EnsureAdmin(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return invalid("admin", "bootstrap admin username and password are required")
	}

	_, err := s.admins.FindByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return upstream("find admin", err)
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.admins.Create(ctx, models.AdminAccount{Username: username, PasswordHash: hash}); err != nil {
		return upstream("create admin", err)
	}
	s.log.Log("bootstrap admin %q created", username)
	return nil
}

func (s *AdminService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
