package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bookswapapp/bookswap-server/internal/domain"
	"github.com/bookswapapp/bookswap-server/internal/store"
	"github.com/bookswapapp/bookswap-server/internal/store/sqlite"
)

const (
	testRequesterID = "4f5a1c2e-8b1d-4a77-b8a3-0f3a4b1c2d3e"
	testAccepterID  = "9d8c7b6a-5e4f-4d3c-b2a1-0e9f8d7c6b5a"
	testBookID      = "7c2a9d4e-1f3b-4c5a-8e6d-2b1a0c9d8e7f"
)

type testEnv struct {
	swaps *SwapService
	users *UserService
	books *BookService
	store store.Store
}

func setupTest(t *testing.T) *testEnv {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	testStore, err := sqlite.Open(dbPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() { testStore.Close() })

	logger := slog.New(slog.DiscardHandler)
	return &testEnv{
		swaps: NewSwapService(testStore, logger),
		users: NewUserService(testStore, logger),
		books: NewBookService(testStore, logger),
		store: testStore,
	}
}

// seedSwapParties registers both parties, a catalog entry, and an available
// copy owned by the requester. Returns the copy.
func seedSwapParties(t *testing.T, env *testEnv) *domain.UserBook {
	t.Helper()
	ctx := context.Background()

	_, err := env.users.Register(ctx, testRequesterID)
	require.NoError(t, err)
	_, err = env.users.Register(ctx, testAccepterID)
	require.NoError(t, err)

	_, err = env.books.CreateBook(ctx, CreateBookRequest{
		BookID: testBookID,
		Title:  "The Left Hand of Darkness",
		Author: "Ursula K. Le Guin",
		Genres: []string{"Science Fiction"},
	})
	require.NoError(t, err)

	copy, err := env.books.RegisterCopy(ctx, RegisterCopyRequest{
		OwnerID:       testRequesterID,
		GeneralBookID: testBookID,
		PageCount:     304,
	})
	require.NoError(t, err)
	return copy
}
