package repository

import (
	"context"
	"errors"
	"time"

	"streamhub-backend/internal/database"
	"streamhub-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AccountRepository is the identity-store surface. Accounts own profiles, so
// lookups load the profile collection the way handlers and the profile
// manager expect it.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	Update(ctx context.Context, account *models.Account) error
	FindByID(ctx context.Context, id uint) (*models.Account, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	CountProfiles(ctx context.Context, accountID uint) (int64, error)
}

type accountRepository struct {
	db      *database.Database
	logger  *logrus.Logger
	timeout time.Duration
}

func NewAccountRepository(db *database.Database, logger *logrus.Logger) AccountRepository {
	return &accountRepository{
		db:      db,
		logger:  logger,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *accountRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(account).Error
}

// Update persists the account record itself. Profile rows are written by the
// profile repository; rewriting them here would clobber concurrent changes.
func (r *accountRepository) Update(ctx context.Context, account *models.Account) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Omit("Profiles").Save(account).Error
}

func (r *accountRepository) FindByID(ctx context.Context, id uint) (*models.Account, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var account models.Account
	err := r.db.WithContext(ctx).Preload("Profiles").First(&account, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.WithError(err).WithField("id", id).Error("Failed to find account")
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var account models.Account
	err := r.db.WithContext(ctx).Preload("Profiles").Where("email = ?", email).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.WithError(err).WithField("email", email).Error("Failed to find account by email")
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) CountProfiles(ctx context.Context, accountID uint) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Profile{}).Where("account_id = ?", accountID).Count(&count).Error
	if err != nil {
		r.logger.WithError(err).WithField("account_id", accountID).Error("Failed to count profiles")
		return 0, err
	}
	return count, nil
}
