package repository

import (
	"context"
	"testing"

	"nakamoto/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateWithWallet(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("creates user and wallet together", func(t *testing.T) {
		user, err := repo.CreateWithWallet(ctx, 123456, "testuser", 5)
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, int64(123456), user.DiscordID)
		assert.Equal(t, "testuser", user.Nickname)
		assert.False(t, user.CreatedAt.IsZero())

		wallet, err := repo.GetWallet(ctx, 123456)
		require.NoError(t, err)
		require.NotNil(t, wallet)
		assert.Equal(t, int64(5), wallet.Favors)
		assert.Equal(t, "testuser", wallet.Nickname)
	})

	t.Run("duplicate discord ID fails", func(t *testing.T) {
		_, err := repo.CreateWithWallet(ctx, 777, "first", 5)
		require.NoError(t, err)

		_, err = repo.CreateWithWallet(ctx, 777, "second", 5)
		assert.Error(t, err)
	})
}

func TestUserRepository_GetByDiscordID(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("unknown user returns nil without error", func(t *testing.T) {
		user, err := repo.GetByDiscordID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("known user", func(t *testing.T) {
		_, err := repo.CreateWithWallet(ctx, 123456, "testuser", 5)
		require.NoError(t, err)

		user, err := repo.GetByDiscordID(ctx, 123456)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "testuser", user.Nickname)
	})
}

func TestUserRepository_UpdateNickname(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("updates stored nickname", func(t *testing.T) {
		_, err := repo.CreateWithWallet(ctx, 123456, "oldnick", 5)
		require.NoError(t, err)

		err = repo.UpdateNickname(ctx, 123456, "newnick")
		require.NoError(t, err)

		user, err := repo.GetByDiscordID(ctx, 123456)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "newnick", user.Nickname)
	})

	t.Run("unknown user fails", func(t *testing.T) {
		err := repo.UpdateNickname(ctx, 999999, "whoever")
		assert.Error(t, err)
	})
}

func TestUserRepository_GetWallet(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("no wallet returns nil without error", func(t *testing.T) {
		wallet, err := repo.GetWallet(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, wallet)
	})
}

func TestUserRepository_AdjustFavors(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.CreateWithWallet(ctx, 123456, "testuser", 5)
	require.NoError(t, err)

	t.Run("positive delta", func(t *testing.T) {
		found, err := repo.AdjustFavors(ctx, 123456, 3)
		require.NoError(t, err)
		assert.True(t, found)

		wallet, err := repo.GetWallet(ctx, 123456)
		require.NoError(t, err)
		assert.Equal(t, int64(8), wallet.Favors)
	})

	t.Run("negative delta can drive the balance below zero", func(t *testing.T) {
		found, err := repo.AdjustFavors(ctx, 123456, -100)
		require.NoError(t, err)
		assert.True(t, found)

		wallet, err := repo.GetWallet(ctx, 123456)
		require.NoError(t, err)
		assert.Equal(t, int64(-92), wallet.Favors)
	})

	t.Run("no wallet reports not found", func(t *testing.T) {
		found, err := repo.AdjustFavors(ctx, 999999, 10)
		require.NoError(t, err)
		assert.False(t, found)
	})
}
