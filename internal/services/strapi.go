// Strapi implementation of [Service]
//
// Response shapes follow the Strapi v4 REST API: collection endpoints wrap records in
// {"data": ...} while the upload plugin returns a bare array of files.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/playdeck/internal/models"
	"github.com/desertthunder/playdeck/internal/shared"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// VideoComponent is the discriminant of components created by [StrapiService.CreatePlaylist].
const VideoComponent = "playlist-components.video-component"

// defaultDuration is shown for uploaded files, which carry no duration.
const defaultDuration = "0:00"

// StrapiFile is an entry of the upload plugin's file list.
type StrapiFile struct {
	ID   models.ID `json:"id"`
	Name string    `json:"name"`
	URL  string    `json:"url"`
	Mime string    `json:"mime,omitempty"`
}

type playlistList struct {
	Data []models.Playlist `json:"data"`
}

type playlistItem struct {
	Data models.Playlist `json:"data"`
}

type connectRef struct {
	ID models.ID `json:"id"`
}

type videoRelation struct {
	Connect []connectRef `json:"connect"`
}

type videoComponentInput struct {
	Component string        `json:"__component"`
	Video     videoRelation `json:"video"`
}

type createPlaylistInput struct {
	Data struct {
		Title      string                `json:"title"`
		Components []videoComponentInput `json:"Components"`
	} `json:"data"`
}

// StrapiService implements [Service] against the Strapi REST API.
type StrapiService struct {
	baseURL    string
	endpoint   string
	pageSize   int
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewStrapiService creates a service for the CMS described by cfg.
//
// Requests carry cfg.Token as a bearer token and time out after [shared.CMSConfig.Timeout].
// A RateLimit of zero disables limiting.
func NewStrapiService(cfg shared.CMSConfig, logger *log.Logger) *StrapiService {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 25
	}

	return &StrapiService{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		endpoint:   cfg.Endpoint(),
		pageSize:   pageSize,
		httpClient: NewTokenClient(cfg),
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger,
	}
}

// NewTokenClient returns an HTTP client that attaches cfg.Token as a bearer token.
func NewTokenClient(cfg shared.CMSConfig) *http.Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: strings.TrimSpace(cfg.Token),
		TokenType:   "Bearer",
	})
	client := oauth2.NewClient(context.Background(), src)
	client.Timeout = cfg.Timeout()
	return client
}

func (s *StrapiService) Name() string {
	return "Strapi"
}

// PopulateQuery returns the populate parameters that make Strapi include every component
// field, nested media and form inputs in playlist responses.
func PopulateQuery() url.Values {
	q := url.Values{}
	q.Set("populate[Components][populate][*]", "true")
	q.Set("populate[Components][populate][image_source][populate][0]", "data")
	q.Set("populate[Components][populate][image_source][populate][1]", "data.attributes")
	q.Set("populate[Components][populate][video][populate]", "*")
	q.Set("populate[Components][populate][input_fields][populate]", "*")
	return q
}

// doRequest performs a rate-limited, authenticated request and returns the raw response body.
func (s *StrapiService) doRequest(ctx context.Context, op operation, method, path string, query url.Values, body any) ([]byte, error) {
	apiURL := s.endpoint + path
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, op.transport(apiURL, err)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	s.logger.Debug("cms request", "method", method, "url", apiURL)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, op.transport(apiURL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, op.fail(resp.StatusCode, apiURL, nil, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode == http.StatusUnauthorized {
		s.logger.Error("authentication failed, check the API token", "url", apiURL)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, op.fail(resp.StatusCode, apiURL, decodeBody(data), nil)
	}

	return data, nil
}

// decodeChecked validates data against schema before decoding it into result.
func decodeChecked(op operation, apiURL string, data []byte, schema *jsonschema.Schema, result any) error {
	doc := decodeBody(data)
	if doc == nil {
		return &RequestError{Message: msgInvalidFormat, StatusCode: http.StatusInternalServerError, URL: apiURL}
	}
	if err := schema.Validate(doc); err != nil {
		return &RequestError{Message: msgInvalidFormat, StatusCode: http.StatusInternalServerError, URL: apiURL, Response: doc, Err: err}
	}
	if err := json.Unmarshal(data, result); err != nil {
		return op.fail(http.StatusInternalServerError, apiURL, doc, fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

// GetPlaylists retrieves all playlists with their components populated.
func (s *StrapiService) GetPlaylists(ctx context.Context) ([]models.Playlist, error) {
	data, err := s.doRequest(ctx, opListPlaylists, http.MethodGet, "/playlists", PopulateQuery(), nil)
	if err != nil {
		return nil, err
	}

	var out playlistList
	if err := decodeChecked(opListPlaylists, s.endpoint+"/playlists", data, listEnvelope, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetPlaylist retrieves one playlist by ID.
func (s *StrapiService) GetPlaylist(ctx context.Context, id string) (*models.Playlist, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}

	path := "/playlists/" + url.PathEscape(id)
	data, err := s.doRequest(ctx, opGetPlaylist, http.MethodGet, path, PopulateQuery(), nil)
	if err != nil {
		return nil, err
	}

	var out playlistItem
	if err := decodeChecked(opGetPlaylist, s.endpoint+path, data, itemEnvelope, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// GetVideos retrieves the most recent uploaded video files.
func (s *StrapiService) GetVideos(ctx context.Context) ([]models.Video, error) {
	q := url.Values{}
	q.Set("filters[mime][$contains]", "video")
	q.Set("pagination[page]", "1")
	q.Set("pagination[pageSize]", strconv.Itoa(s.pageSize))
	q.Set("sort", "createdAt:desc")

	data, err := s.doRequest(ctx, opListVideos, http.MethodGet, "/upload/files", q, nil)
	if err != nil {
		return nil, err
	}

	var files []StrapiFile
	if err := decodeChecked(opListVideos, s.endpoint+"/upload/files", data, uploadList, &files); err != nil {
		return nil, err
	}

	videos := make([]models.Video, 0, len(files))
	for _, f := range files {
		videos = append(videos, models.Video{
			ID:       f.ID,
			Title:    f.Name,
			Duration: defaultDuration,
			VideoURL: s.resolveURL(f.URL),
		})
	}
	return videos, nil
}

// CreatePlaylist creates a playlist holding one video component per ID, in order.
func (s *StrapiService) CreatePlaylist(ctx context.Context, name string, videoIDs []models.ID) (*models.Created, error) {
	var input createPlaylistInput
	input.Data.Title = name
	input.Data.Components = make([]videoComponentInput, 0, len(videoIDs))
	for _, id := range videoIDs {
		input.Data.Components = append(input.Data.Components, videoComponentInput{
			Component: VideoComponent,
			Video:     videoRelation{Connect: []connectRef{{ID: id}}},
		})
	}

	data, err := s.doRequest(ctx, opCreatePlaylist, http.MethodPost, "/playlists", nil, input)
	if err != nil {
		return nil, err
	}

	created := &models.Created{Title: name, Components: len(videoIDs)}

	var out playlistItem
	if err := json.Unmarshal(data, &out); err != nil {
		s.logger.Warn("unexpected create response", "error", err)
		return created, nil
	}
	created.ID = out.Data.ID
	if t := out.Data.Attributes.Title; t != "" {
		created.Title = t
	}
	return created, nil
}

// resolveURL makes upload paths such as /uploads/a.mp4 absolute against the CMS host.
func (s *StrapiService) resolveURL(raw string) string {
	if raw == "" || s.baseURL == "" {
		return raw
	}
	ref, err := url.Parse(raw)
	if err != nil || ref.IsAbs() {
		return raw
	}
	base, err := url.Parse(s.baseURL + "/")
	if err != nil {
		return raw
	}
	return base.ResolveReference(ref).String()
}
