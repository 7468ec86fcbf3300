// Offline implementation of [Service] serving fixed sample content
package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/desertthunder/playdeck/internal/models"
	"github.com/desertthunder/playdeck/internal/shared"
)

const sampleVideoBase = "https://storage.googleapis.com/gtv-videos-bucket/sample/"

// SampleService implements [Service] without a CMS.
//
// Created playlists are acknowledged with generated IDs and are not added to the catalogue.
type SampleService struct {
	mu    sync.Mutex
	newID func() string
}

// NewSampleService creates a service serving [SampleVideos] and [SamplePlaylists].
func NewSampleService() *SampleService {
	return &SampleService{newID: shared.GenerateID}
}

func (s *SampleService) Name() string {
	return "Sample"
}

func (s *SampleService) GetPlaylists(ctx context.Context) ([]models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return SamplePlaylists(), nil
}

func (s *SampleService) GetPlaylist(ctx context.Context, id string) (*models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id = strings.TrimSpace(id)
	for _, p := range SamplePlaylists() {
		if p.ID.String() == id {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
}

func (s *SampleService) GetVideos(ctx context.Context) ([]models.Video, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return SampleVideos(), nil
}

func (s *SampleService) CreatePlaylist(ctx context.Context, name string, videoIDs []models.ID) (*models.Created, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return &models.Created{
		ID:         models.ID(s.newID()),
		Title:      name,
		Components: len(videoIDs),
	}, nil
}

// SampleVideos returns the offline video catalogue.
func SampleVideos() []models.Video {
	return []models.Video{
		{
			ID:          "1",
			Title:       "Introduction to Design",
			Description: "Learn the basics of design thinking",
			Duration:    "5:20",
			VideoURL:    sampleVideoBase + "BigBuckBunny.mp4",
			Label:       "INTRODUCTION",
		},
		{
			ID:          "2",
			Title:       "User Research Methods",
			Description: "Understanding user needs and behaviors",
			Duration:    "8:15",
			VideoURL:    sampleVideoBase + "ElephantsDream.mp4",
			Label:       "RESEARCH",
		},
		{
			ID:          "3",
			Title:       "Prototyping Techniques",
			Description: "Creating effective prototypes",
			Duration:    "6:45",
			VideoURL:    sampleVideoBase + "ForBiggerBlazes.mp4",
			Label:       "DESIGN",
		},
	}
}

func media(url string) *models.MediaRef {
	return &models.MediaRef{Data: &models.MediaData{Attributes: &models.MediaAttributes{URL: url}}}
}

// SamplePlaylists returns the offline playlists: one using every card kind and one empty.
func SamplePlaylists() []models.Playlist {
	company := media("https://placehold.co/600x400")
	company.Data.Attributes.Name = "Example Company Image"
	company.Data.Attributes.AlternativeText = "Company Logo"
	company.Data.Attributes.Width = 600
	company.Data.Attributes.Height = 400
	company.Data.Attributes.Hash = "example_hash"
	company.Data.Attributes.Ext = ".jpg"
	company.Data.Attributes.Mime = "image/jpeg"
	company.Data.Attributes.Size = 54.32

	return []models.Playlist{
		{
			ID: "1",
			Attributes: models.PlaylistAttributes{
				Title:       "Example Playlist",
				Description: "A demonstration playlist",
				Components: models.Components{
					{
						ID:          "1",
						Component:   "playlist-components.company-card",
						LabelText:   "Company",
						LabelColour: "#4CAF50",
						ImageSource: company,
					},
					{
						ID:          "2",
						Component:   "playlist-components.video",
						Title:       "Introduction Video",
						Description: "Welcome to our platform",
						LabelText:   "INTRO",
						LabelColour: "#2196F3",
						Video:       media(sampleVideoBase + "BigBuckBunny.mp4"),
					},
					{
						ID:          "3",
						Component:   "playlist-components.section-card",
						Title:       "Getting Started",
						Description: "Learn the basics",
						LabelText:   "SECTION",
					},
					{
						ID:          "4",
						Component:   "playlist-components.input-card",
						Title:       "User Information",
						Description: "Please provide your details",
						LabelText:   "FORM",
						LabelColour: "#9C27B0",
						InputFields: []models.InputField{
							{Label: "Full Name", IsRequired: true, Placeholder: "Enter your full name"},
							{Label: "Email", IsRequired: true, Placeholder: "Enter your email"},
						},
					},
					{
						ID:               "5",
						Component:        "playlist-components.link-card",
						Title:            "Additional Resources",
						Description:      "Check out these helpful links",
						LabelText:        "RESOURCES",
						LabelColour:      "#FF9800",
						CTAText:          "Learn More",
						BackgroundColour: "#FFF3E0",
						TextColour:       "#E65100",
					},
				},
				CreatedAt:   "2024-01-01T00:00:00.000Z",
				UpdatedAt:   "2024-01-01T00:00:00.000Z",
				PublishedAt: "2024-01-01T00:00:00.000Z",
			},
		},
		{
			ID: "2",
			Attributes: models.PlaylistAttributes{
				Title:       "Another Playlist",
				Description: "More example content",
				Components:  models.Components{},
				CreatedAt:   "2024-01-02T00:00:00.000Z",
				UpdatedAt:   "2024-01-02T00:00:00.000Z",
				PublishedAt: "2024-01-02T00:00:00.000Z",
			},
		},
	}
}
