package services

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/playdeck/internal/models"
	"github.com/desertthunder/playdeck/internal/shared"
)

// Service defines the operations the application needs from the CMS.
type Service interface {
	// GetPlaylists retrieves all playlists with their components populated.
	GetPlaylists(ctx context.Context) ([]models.Playlist, error)

	// GetPlaylist retrieves a single playlist by ID with its components populated.
	GetPlaylist(ctx context.Context, id string) (*models.Playlist, error)

	// GetVideos retrieves the uploaded video files offered for assembly, newest first.
	GetVideos(ctx context.Context) ([]models.Video, error)

	// CreatePlaylist creates a playlist with one video component per video ID, in order.
	CreatePlaylist(ctx context.Context, name string, videoIDs []models.ID) (*models.Created, error)

	// Name returns the name of the backend (e.g., "Strapi", "Sample")
	Name() string
}

// NewService returns a [StrapiService] for cfg, or a [SampleService] when no token is configured.
func NewService(cfg shared.CMSConfig, logger *log.Logger) Service {
	if cfg.Offline() {
		if logger != nil {
			logger.Warn("no API token configured, serving sample data", "env", shared.EnvToken)
		}
		return NewSampleService()
	}
	return NewStrapiService(cfg, logger)
}
