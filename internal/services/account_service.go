package services

import (
	"context"
	"time"

	"streamhub-backend/internal/apperr"
	"streamhub-backend/internal/models"
	"streamhub-backend/internal/repository"
	"streamhub-backend/internal/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AuthResult is what a successful authentication hands back to the handler.
type AuthResult struct {
	Account   *models.Account
	Token     string
	ExpiresAt time.Time
}

// AccountService covers registration, authentication and profile selection.
type AccountService interface {
	Register(ctx context.Context, name, email, password string) (*models.Account, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)
	SelectProfile(ctx context.Context, accountID, profileID uint) (*AuthResult, error)
}

type accountService struct {
	accounts repository.AccountRepository
	tokens   *TokenService
	logger   *logrus.Logger
}

func NewAccountService(accounts repository.AccountRepository, tokens *TokenService, logger *logrus.Logger) AccountService {
	return &accountService{
		accounts: accounts,
		tokens:   tokens,
		logger:   logger,
	}
}

func (s *accountService) Register(ctx context.Context, name, email, password string) (*models.Account, error) {
	existing, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if existing != nil {
		return nil, apperr.Conflict("An account with this email already exists")
	}

	hash, err := utils.HashPassword(password, bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	account := &models.Account{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		s.logger.WithError(err).WithField("email", email).Error("Failed to create account")
		return nil, apperr.Internal(err)
	}
	return account, nil
}

func (s *accountService) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if account == nil || !utils.VerifyPassword(account.PasswordHash, password) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	token, exp, err := s.tokens.Generate(account, nil)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &AuthResult{Account: account, Token: token, ExpiresAt: exp}, nil
}

// SelectProfile reissues the access token with active-profile claims after
// verifying the account owns the profile.
func (s *accountService) SelectProfile(ctx context.Context, accountID, profileID uint) (*AuthResult, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if account == nil {
		return nil, apperr.NotFound("Account not found")
	}

	profile := account.FindProfile(profileID)
	if profile == nil {
		return nil, apperr.NotFound("Profile not found")
	}

	token, exp, err := s.tokens.Generate(account, profile)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &AuthResult{Account: account, Token: token, ExpiresAt: exp}, nil
}
