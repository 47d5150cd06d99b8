package dto

import (
	"time"

	"github.com/spec-kit/stories-service/internal/domain"
)

// StoryResponse is the public view of one story.
type StoryResponse struct {
	ID        int64     `json:"id"`
	AccountID int64     `json:"account_id"`
	Handle    string    `json:"handle,omitempty"`
	MediaURL  string    `json:"media_url"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateStoryResponse is returned from story creation.
type CreateStoryResponse struct {
	Message string        `json:"message"`
	Story   StoryResponse `json:"story"`
}

// ListStoriesResponse is returned from the listing endpoint.
type ListStoriesResponse struct {
	Stories []StoryResponse `json:"stories"`
}

// NewStoryResponse maps a domain story to its public view.
func NewStoryResponse(story *domain.Story) StoryResponse {
	return StoryResponse{
		ID:        story.ID,
		AccountID: story.AccountID,
		Handle:    story.OwnerHandle,
		MediaURL:  story.MediaURL,
		CreatedAt: story.CreatedAt,
		ExpiresAt: story.ExpiresAt,
	}
}
