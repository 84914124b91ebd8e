package repository

import (
	"context"
	"testing"

	"streamhub-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepositoryRoundTrip(t *testing.T) {
	repo := NewAccountRepository(testDB(t), testLogger())
	ctx := context.Background()

	account := &models.Account{
		Name:         "Jane",
		Email:        "jane@example.com",
		PasswordHash: "hash",
		Role:         models.RoleUser,
	}
	require.NoError(t, repo.Create(ctx, account))
	require.NotZero(t, account.ID)

	byID, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "jane@example.com", byID.Email)

	byEmail, err := repo.FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, account.ID, byEmail.ID)

	missing, err := repo.FindByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAccountRepositoryLoadsProfilesAndCounts(t *testing.T) {
	db := testDB(t)
	repo := NewAccountRepository(db, testLogger())
	profileRepo := New[models.Profile](db, "Profile", testLogger())
	ctx := context.Background()

	account := &models.Account{Name: "Jane", Email: "jane@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, account))

	for _, name := range []string{"Main", "Kids"} {
		require.True(t, profileRepo.Save(ctx, &models.Profile{Name: name, AccountID: account.ID}).IsSuccess)
	}

	loaded, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Len(t, loaded.Profiles, 2)

	count, err := repo.CountProfiles(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
