package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/playdeck/internal/models"
	"github.com/desertthunder/playdeck/internal/shared"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// PublishRequest is a playlist ready to be created in the CMS.
type PublishRequest struct {
	Name     string
	VideoIDs []models.ID
}

// NewPublishRequest builds a request from the board's playlist pane.
func NewPublishRequest(name string, b Board) PublishRequest {
	return PublishRequest{Name: strings.TrimSpace(name), VideoIDs: b.VideoIDs()}
}

// Validate checks the name is not blank and at least one video is selected.
func (r PublishRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.By(notBlank), validation.Length(1, 255)),
		validation.Field(&r.VideoIDs, validation.Required.Error("select at least one video")),
	)
}

func notBlank(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return validation.NewError("validation_blank", "cannot be blank")
	}
	return nil
}

// CanPublish reports whether name and b would pass validation.
func CanPublish(name string, b Board) bool {
	return NewPublishRequest(name, b).Validate() == nil
}

// Create validates req and creates the playlist in the CMS.
func (e *Engine) Create(ctx context.Context, prog chan<- ProgressUpdate, req PublishRequest) (*models.Created, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	if e.svc == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(prog, publishingUpdate(req))

	created, err := e.svc.CreatePlaylist(ctx, req.Name, req.VideoIDs)
	if err != nil {
		return nil, err
	}

	e.sendProgress(prog, publishedUpdate(created))
	e.logger.Info("published playlist", "id", created.ID, "title", created.Title, "videos", len(req.VideoIDs))
	return created, nil
}

// Publish creates the playlist assembled on b and returns the board with its playlist cleared.
//
// On failure the board is returned unchanged.
func (e *Engine) Publish(ctx context.Context, prog chan<- ProgressUpdate, name string, b Board) (*models.Created, Board, error) {
	created, err := e.Create(ctx, prog, NewPublishRequest(name, b))
	if err != nil {
		return nil, b, err
	}
	return created, b.ClearPlaylist(), nil
}
