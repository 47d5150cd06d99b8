package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/stories-service/internal/domain"
	"github.com/spec-kit/stories-service/internal/events"
	"github.com/spec-kit/stories-service/internal/media"
	"github.com/spec-kit/stories-service/internal/repository"
	apperrors "github.com/spec-kit/stories-service/pkg/util"
)

// StoryService owns ephemeral content: it runs the ingestion pipeline for
// new posts and serves the time-bounded listing.
type StoryService struct {
	stories    repository.StoryRepository
	uploader   media.Uploader
	dispatcher events.Dispatcher
	ttl        time.Duration
	now        func() time.Time
}

// StoryDependencies encapsulates requirements for the story service.
type StoryDependencies struct {
	Stories    repository.StoryRepository
	Uploader   media.Uploader
	Dispatcher events.Dispatcher
	// Now overrides the clock; nil defaults to time.Now.
	Now func() time.Time
}

// NewStoryService builds the service with the configured visibility TTL.
func NewStoryService(ttl time.Duration, deps StoryDependencies) *StoryService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &StoryService{
		stories:    deps.Stories,
		uploader:   deps.Uploader,
		dispatcher: deps.Dispatcher,
		ttl:        ttl,
		now:        now,
	}
}

// Create ingests the payload through the media store and persists the story.
// The expiry is computed exactly once here, as creation time plus the TTL,
// and is never mutated afterwards. An empty payload fails before the store
// is contacted; a store failure leaves no partial write.
func (s *StoryService) Create(ctx context.Context, accountID int64, payload []byte, mimeType string) (*domain.Story, error) {
	if len(payload) == 0 {
		return nil, apperrors.NewValidationError("no image payload provided")
	}

	mediaURL, err := s.uploader.Upload(ctx, payload, mimeType)
	if err != nil {
		if errors.Is(err, media.ErrNoPayload) {
			return nil, apperrors.NewValidationError("no image payload provided")
		}
		return nil, apperrors.NewUpstreamUnavailable(err)
	}

	createdAt := s.now()
	story := &domain.Story{
		AccountID: accountID,
		MediaURL:  mediaURL,
		CreatedAt: createdAt,
		ExpiresAt: createdAt.Add(s.ttl),
	}
	if err := s.stories.Create(ctx, story); err != nil {
		return nil, apperrors.NewPersistenceFailure(err)
	}

	s.publish(ctx, story)
	return story, nil
}

// ListActive returns the unexpired stories, newest first, joined with the
// owner handle. Each call is a point-in-time snapshot against the current
// clock; a story may expire between calls.
func (s *StoryService) ListActive(ctx context.Context) ([]domain.Story, error) {
	stories, err := s.stories.ListActive(ctx, s.now())
	if err != nil {
		return nil, apperrors.NewPersistenceFailure(err)
	}
	return stories, nil
}

func (s *StoryService) publish(ctx context.Context, story *domain.Story) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventStoryCreated,
		AccountID: story.AccountID,
		Timestamp: story.CreatedAt,
		Payload: events.StoryCreatedPayload{
			StoryID:   story.ID,
			MediaURL:  story.MediaURL,
			ExpiresAt: story.ExpiresAt,
		},
	})
}
