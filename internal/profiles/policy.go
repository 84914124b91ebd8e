package profiles

import (
	"context"

	"streamhub-backend/internal/apperr"
	"streamhub-backend/internal/repository"
)

// MaxProfilesPerAccount is the quota enforced by the creation policy, not by
// the store. Two concurrent creates can both pass the check before either
// write commits; see the policy tests.
const MaxProfilesPerAccount = 4

// CreationPolicy decides whether an account may create another profile.
type CreationPolicy interface {
	CanCreateProfile(ctx context.Context, accountID uint) (bool, error)
}

type creationPolicy struct {
	accounts repository.AccountRepository
}

func NewCreationPolicy(accounts repository.AccountRepository) CreationPolicy {
	return &creationPolicy{accounts: accounts}
}

func (p *creationPolicy) CanCreateProfile(ctx context.Context, accountID uint) (bool, error) {
	account, err := p.accounts.FindByID(ctx, accountID)
	if err != nil {
		return false, apperr.Internal(err)
	}
	if account == nil {
		return false, apperr.NotFound("Account not found")
	}

	count, err := p.accounts.CountProfiles(ctx, accountID)
	if err != nil {
		return false, apperr.Internal(err)
	}
	return count < MaxProfilesPerAccount, nil
}
