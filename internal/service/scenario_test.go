package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/codepad-server/internal/auth"
	"github.com/dtroode/codepad-server/internal/metrics"
	"github.com/dtroode/codepad-server/internal/mocks"
	"github.com/dtroode/codepad-server/internal/model"
	"github.com/dtroode/codepad-server/internal/storage/memory"
	"github.com/dtroode/codepad-server/internal/testutil"
)

// fakeSnippetStore mirrors the postgres upsert and retention semantics in memory.
type fakeSnippetStore struct {
	mu       sync.Mutex
	snippets map[string]model.Snippet
}

func newFakeSnippetStore() *fakeSnippetStore {
	return &fakeSnippetStore{snippets: make(map[string]model.Snippet)}
}

func (f *fakeSnippetStore) Get(_ context.Context, id string) (model.Snippet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.snippets[id]
	if !ok {
		return model.Snippet{}, model.ErrNotFound
	}
	return s, nil
}

func (f *fakeSnippetStore) Upsert(_ context.Context, snippet model.Snippet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.snippets[snippet.ID]; ok {
		existing.Code = snippet.Code
		f.snippets[snippet.ID] = existing
		return nil
	}
	f.snippets[snippet.ID] = snippet
	return nil
}

func (f *fakeSnippetStore) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for id, s := range f.snippets {
		if s.OwnerID != nil && *s.OwnerID == ownerID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (f *fakeSnippetStore) DeleteAnonymousCreatedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	return f.deleteWhere(func(s model.Snippet) bool { return s.Anonymous() && !s.CreatedAt.After(cutoff) }), nil
}

func (f *fakeSnippetStore) DeleteOwnedCreatedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	return f.deleteWhere(func(s model.Snippet) bool { return !s.Anonymous() && !s.CreatedAt.After(cutoff) }), nil
}

func (f *fakeSnippetStore) deleteWhere(match func(model.Snippet) bool) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, s := range f.snippets {
		if match(s) {
			delete(f.snippets, id)
			n++
		}
	}
	return n
}

// fakeUserStore is an in-memory UserStore keyed by email.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]model.User)}
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[email]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (f *fakeUserStore) Create(_ context.Context, user model.User) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.Email]; ok {
		return model.User{}, model.ErrDuplicateIdentity
	}
	f.users[user.Email] = user
	return user, nil
}

func TestScenario_AnonymousSnippetExpires(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }

	store := newFakeSnippetStore()
	editor := NewEditor(store, testutil.MakeNoopLogger(), metrics.NewNoop())
	editor.now = now
	sweeper := NewSweeper(store, testPolicy, testutil.MakeNoopLogger(), metrics.NewNoop())
	sweeper.now = now

	require.NoError(t, editor.Autosave(ctx, "a1b2c3d4", "print(1)", nil))

	code, err := editor.Load(ctx, "a1b2c3d4")
	require.NoError(t, err)
	assert.Equal(t, "print(1)", code)

	clock = clock.Add(6 * time.Minute)
	result, err := sweeper.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Anonymous)

	code, err = editor.Load(ctx, "a1b2c3d4")
	require.NoError(t, err)
	assert.Empty(t, code)
}

func TestScenario_OwnedSnippetOutlivesAnonymousWindow(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }

	store := newFakeSnippetStore()
	editor := NewEditor(store, testutil.MakeNoopLogger(), metrics.NewNoop())
	editor.now = now
	sweeper := NewSweeper(store, testPolicy, testutil.MakeNoopLogger(), metrics.NewNoop())
	sweeper.now = now

	owner := &model.Identity{UserID: uuid.New(), Email: "a@b.c"}
	other := &model.Identity{UserID: uuid.New(), Email: "x@y.z"}
	require.NoError(t, editor.Autosave(ctx, "mine", "v1", owner))
	require.NoError(t, editor.Autosave(ctx, "mine", "v2", other))

	ids, err := editor.ListMine(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, []string{"mine"}, ids, "owner is fixed at creation")

	ids, err = editor.ListMine(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, ids)

	clock = clock.Add(6 * time.Minute)
	_, err = sweeper.RunOnce(ctx)
	require.NoError(t, err)
	code, err := editor.Load(ctx, "mine")
	require.NoError(t, err)
	assert.Equal(t, "v2", code)

	clock = clock.Add(7 * 24 * time.Hour)
	result, err := sweeper.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Owned)
}

func TestScenario_RegisterWithOTPThenListMine(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }
	log := testutil.MakeNoopLogger()

	users := newFakeUserStore()
	challenges := memory.NewChallengeStore()
	t.Cleanup(func() { _ = challenges.Close() })
	mailer := mocks.NewMailer(t)
	mailer.On("Send", mock.Anything, mock.Anything).Return(nil)

	otp := NewOTP(challenges, users, mailer, 10*time.Minute, log, metrics.NewNoop())
	otp.now = now
	otp.generate = func() (string, error) { return "042317", nil }

	hasher := auth.NewArgon2id(auth.Argon2Params{Memory: 1024, Time: 1, Threads: 1, KeyLen: 32, SaltLen: 16})
	authSvc := NewAuth(users, otp, hasher, nil, log, metrics.NewNoop())
	authSvc.now = now

	store := newFakeSnippetStore()
	editor := NewEditor(store, log, metrics.NewNoop())

	require.NoError(t, otp.Issue(ctx, "session-1", "new@example.com"))
	clock = clock.Add(9 * time.Minute)

	identity, err := authSvc.Register(ctx, "session-1", model.RegisterParams{
		Name:     "New",
		Email:    "new@example.com",
		Password: "correct horse",
		OTP:      "042317",
	})
	require.NoError(t, err)

	_, err = editor.ListMine(ctx, &identity)
	require.NoError(t, err)

	assert.ErrorIs(t, otp.Issue(ctx, "session-2", "new@example.com"), model.ErrDuplicateIdentity)

	loggedIn, err := authSvc.Authenticate(ctx, model.PasswordCredential{Email: "new@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, identity.UserID, loggedIn.UserID)

	_, err = authSvc.Authenticate(ctx, model.PasswordCredential{Email: "new@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}
