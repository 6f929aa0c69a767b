package service

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rohits-web03/blogd/internal/auth"
	"github.com/rohits-web03/blogd/internal/events"
	"github.com/rohits-web03/blogd/internal/images"
	"github.com/rohits-web03/blogd/internal/repositories"
)

type fakeImageStore struct {
	mu      sync.Mutex
	removed []string
}

func (s *fakeImageStore) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	return name, nil
}

func (s *fakeImageStore) Remove(ctx context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, ref)
	return nil
}

func (s *fakeImageStore) URL(ref string) string { return "/" + ref }

func (s *fakeImageStore) Removed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.removed...)
}

type testEnv struct {
	auth     *AuthService
	posts    *PostService
	tokens   *auth.TokenManager
	users    *repositories.UserRepository
	postRepo *repositories.PostRepository
	store    *fakeImageStore
	bus      *events.Broadcaster
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive and shared.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repositories.Migrate(db))

	users := repositories.NewUserRepository(db)
	posts := repositories.NewPostRepository(db)
	tokens := auth.NewTokenManager("test-secret")
	store := &fakeImageStore{}
	bus := events.NewBroadcaster()

	return &testEnv{
		auth:     NewAuthService(users, tokens),
		posts:    NewPostService(users, posts, images.NewManager(store), bus),
		tokens:   tokens,
		users:    users,
		postRepo: posts,
		store:    store,
		bus:      bus,
	}
}

// signup registers a user and returns the id asserted by their token.
func (env *testEnv) signup(t *testing.T, email, name, password string) string {
	t.Helper()

	_, err := env.auth.Register(email, name, password)
	require.NoError(t, err)

	result, err := env.auth.Login(email, password)
	require.NoError(t, err)

	userID, _, ok := env.tokens.Verify(result.Token)
	require.True(t, ok)
	return userID
}

func requireKind(t *testing.T, err error, kind Kind) *Error {
	t.Helper()

	se, ok := AsError(err)
	require.True(t, ok, "expected a service error, got %v", err)
	require.Equal(t, kind, se.Kind)
	return se
}
