package service

import (
	"path/filepath"
	"testing"

	"blogd/database"
	"blogd/database/model"
	"blogd/web/policy"

	"github.com/stretchr/testify/require"
)

// setupDB points the global database handle at a fresh sqlite file for the
// duration of one test.
func setupDB(t *testing.T) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.InitDB(dbPath))
	t.Cleanup(func() {
		_ = database.CloseDB()
	})
}

// seedUser inserts a user with a fixed password hash, bypassing registration.
func seedUser(t *testing.T, username string, role policy.Role) *model.User {
	t.Helper()
	u := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         string(role),
	}
	require.NoError(t, database.GetDB().Create(u).Error)
	return u
}
