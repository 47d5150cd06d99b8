package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/stories-service/internal/api/dto"
	"github.com/spec-kit/stories-service/internal/auth"
	"github.com/spec-kit/stories-service/internal/service"
	apperrors "github.com/spec-kit/stories-service/pkg/util"
)

// StoriesHandler exposes story creation and listing. Both routes sit behind
// the authentication gate.
type StoriesHandler struct {
	stories *service.StoryService
}

// NewStoriesHandler constructs handler.
func NewStoriesHandler(storyService *service.StoryService) *StoriesHandler {
	return &StoriesHandler{stories: storyService}
}

// Create handles POST /stories. The image arrives as a multipart field and
// is held in memory for the duration of the request.
func (h *StoriesHandler) Create(c *fiber.Ctx) error {
	accountID, ok := auth.AccountIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no token provided")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return apperrors.NewValidationError("no image file provided")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewValidationError("unreadable image file")
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		return apperrors.NewValidationError("unreadable image file")
	}

	story, err := h.stories.Create(c.UserContext(), accountID, payload, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return err
	}

	return c.JSON(dto.CreateStoryResponse{
		Message: "Story created successfully",
		Story:   dto.NewStoryResponse(story),
	})
}

// List handles GET /stories.
func (h *StoriesHandler) List(c *fiber.Ctx) error {
	stories, err := h.stories.ListActive(c.UserContext())
	if err != nil {
		return err
	}

	response := dto.ListStoriesResponse{Stories: make([]dto.StoryResponse, 0, len(stories))}
	for i := range stories {
		response.Stories = append(response.Stories, dto.NewStoryResponse(&stories[i]))
	}
	return c.JSON(response)
}
