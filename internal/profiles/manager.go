package profiles

import (
	"context"

	"streamhub-backend/internal/apperr"
	"streamhub-backend/internal/models"
	"streamhub-backend/internal/repository"

	"github.com/sirupsen/logrus"
)

// Result messages handlers match on when translating to HTTP status codes.
const (
	MsgQuotaReached    = "Maximum number of profiles reached."
	MsgProfileNotFound = "Profile not found"
)

// Store is the slice of the generic repository the manager needs. The
// concrete *repository.Repository[models.Profile] satisfies it; tests use a
// recording fake.
type Store interface {
	Save(ctx context.Context, profile *models.Profile) repository.Result
	Update(ctx context.Context, profile *models.Profile) repository.Result
	Delete(ctx context.Context, profile *models.Profile) repository.Result
}

// Manager orchestrates the profile lifecycle: quota policy, default avatar
// assignment, profile persistence, and the owning account record. A missing
// account is fatal (returned as an error); business denials come back as
// failure Results.
type Manager struct {
	accounts repository.AccountRepository
	store    Store
	policy   CreationPolicy
	avatars  AvatarProvider
	logger   *logrus.Logger
}

func NewManager(accounts repository.AccountRepository, store Store, policy CreationPolicy, avatars AvatarProvider, logger *logrus.Logger) *Manager {
	return &Manager{
		accounts: accounts,
		store:    store,
		policy:   policy,
		avatars:  avatars,
		logger:   logger,
	}
}

// Save creates a profile under the account. The policy check runs before any
// write; on denial the store is never touched.
func (m *Manager) Save(ctx context.Context, accountID uint, profile *models.Profile) (repository.Result, error) {
	account, err := m.loadAccount(ctx, accountID)
	if err != nil {
		return repository.Result{}, err
	}

	allowed, err := m.policy.CanCreateProfile(ctx, accountID)
	if err != nil {
		return repository.Result{}, err
	}
	if !allowed {
		return repository.Failure(MsgQuotaReached), nil
	}

	if profile.Avatar == "" {
		avatar, err := m.avatars.Random()
		if err != nil {
			m.logger.WithError(err).Warn("Failed to pick a default avatar")
		} else {
			profile.Avatar = avatar
		}
	}

	profile.AccountID = account.ID
	account.Profiles = append(account.Profiles, *profile)

	if res := m.store.Save(ctx, profile); !res.IsSuccess {
		return res, nil
	}

	m.touchAccount(ctx, account)
	return repository.Success("Profile created successfully"), nil
}

// Update persists changes to a profile the account owns.
func (m *Manager) Update(ctx context.Context, accountID uint, profile *models.Profile) (repository.Result, error) {
	account, err := m.loadAccount(ctx, accountID)
	if err != nil {
		return repository.Result{}, err
	}

	existing := account.FindProfile(profile.ID)
	if existing == nil {
		return repository.Failure(MsgProfileNotFound), nil
	}

	profile.AccountID = account.ID
	if res := m.store.Update(ctx, profile); !res.IsSuccess {
		return res, nil
	}

	m.touchAccount(ctx, account)
	return repository.Success("Profile updated successfully"), nil
}

// Delete removes a profile from the account. Bookmarks and watch history
// cascade at the store level.
func (m *Manager) Delete(ctx context.Context, accountID, profileID uint) (repository.Result, error) {
	account, err := m.loadAccount(ctx, accountID)
	if err != nil {
		return repository.Result{}, err
	}

	target := account.FindProfile(profileID)
	if target == nil {
		return repository.Failure(MsgProfileNotFound), nil
	}
	// FindProfile points into the collection; copy before compacting so the
	// shift below cannot change which row gets deleted.
	victim := *target

	kept := account.Profiles[:0]
	for _, p := range account.Profiles {
		if p.ID != profileID {
			kept = append(kept, p)
		}
	}
	account.Profiles = kept

	if res := m.store.Delete(ctx, &victim); !res.IsSuccess {
		return res, nil
	}

	m.touchAccount(ctx, account)
	return repository.Success("Profile deleted successfully"), nil
}

// GetByID returns the profile when the account owns it, nil otherwise.
func (m *Manager) GetByID(ctx context.Context, accountID, profileID uint) (*models.Profile, error) {
	account, err := m.loadAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return account.FindProfile(profileID), nil
}

// GetAll returns every profile the account owns.
func (m *Manager) GetAll(ctx context.Context, accountID uint) ([]models.Profile, error) {
	account, err := m.loadAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return account.Profiles, nil
}

func (m *Manager) loadAccount(ctx context.Context, accountID uint) (*models.Account, error) {
	account, err := m.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if account == nil {
		return nil, apperr.NotFound("Account not found")
	}
	return account, nil
}

// touchAccount re-persists the owning account after a profile write. The
// profile row is authoritative; this keeps the account record's timestamps
// moving with its collection, so a failure here is logged, not fatal.
func (m *Manager) touchAccount(ctx context.Context, account *models.Account) {
	if err := m.accounts.Update(ctx, account); err != nil {
		m.logger.WithError(err).WithField("account_id", account.ID).Warn("Failed to refresh account record after profile write")
	}
}
