package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/stories-service/internal/domain"
	"github.com/spec-kit/stories-service/internal/repository"
)

// fakeClock is a settable clock shared between components under test.
type fakeClock struct {
	mu sync.Mutex
	at time.Time
}

func newFakeClock(at time.Time) *fakeClock {
	return &fakeClock{at: at}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.at
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.at = c.at.Add(d)
}

// fakeAccountRepo is an in-memory AccountRepository honoring the same error
// contract as the Postgres implementation.
type fakeAccountRepo struct {
	mu       sync.Mutex
	nextID   int64
	byHandle map[string]*domain.Account
	failWith error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{nextID: 1, byHandle: make(map[string]*domain.Account)}
}

func (r *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	if _, exists := r.byHandle[account.Handle]; exists {
		return repository.ErrDuplicateHandle
	}
	account.ID = r.nextID
	account.CreatedAt = time.Now()
	r.nextID++
	copied := *account
	r.byHandle[account.Handle] = &copied
	return nil
}

func (r *fakeAccountRepo) GetByHandle(_ context.Context, handle string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	account, ok := r.byHandle[handle]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *account
	return &copied, nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id int64) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.byHandle {
		if account.ID == id {
			copied := *account
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// fakeStoryRepo is an in-memory StoryRepository that evaluates the expiry
// predicate against the instant it is handed, like the SQL implementation.
type fakeStoryRepo struct {
	mu       sync.Mutex
	nextID   int64
	stories  []domain.Story
	handles  map[int64]string
	failWith error
}

func newFakeStoryRepo() *fakeStoryRepo {
	return &fakeStoryRepo{nextID: 1, handles: make(map[int64]string)}
}

func (r *fakeStoryRepo) Create(_ context.Context, story *domain.Story) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	story.ID = r.nextID
	r.nextID++
	r.stories = append(r.stories, *story)
	return nil
}

func (r *fakeStoryRepo) ListActive(_ context.Context, now time.Time) ([]domain.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	var active []domain.Story
	for _, story := range r.stories {
		if story.ExpiresAt.After(now) {
			story.OwnerHandle = r.handles[story.AccountID]
			active = append(active, story)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})
	return active, nil
}

func (r *fakeStoryRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []domain.Story
	var deleted int64
	for _, story := range r.stories {
		if story.ExpiresAt.After(now) {
			kept = append(kept, story)
		} else {
			deleted++
		}
	}
	r.stories = kept
	return deleted, nil
}

func (r *fakeStoryRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stories)
}

// fakeUploader returns a canned URL or error without any network traffic.
type fakeUploader struct {
	url      string
	failWith error
	calls    int
}

func (u *fakeUploader) Upload(_ context.Context, payload []byte, _ string) (string, error) {
	u.calls++
	if u.failWith != nil {
		return "", u.failWith
	}
	return u.url, nil
}
