package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/desertthunder/playdeck/internal/shared"
)

// Default messages for failed CMS operations.
const (
	msgInvalidFormat     = "Invalid response format from server"
	msgFetchPlaylists    = "Failed to fetch playlists"
	msgPlaylistsServer   = "Internal server error while fetching playlists"
	msgPlaylistsNotFound = "Playlist endpoint not found"
	msgFetchPlaylist     = "Failed to fetch playlist"
	msgFetchVideos       = "Failed to fetch videos"
	msgCreatePlaylist    = "Failed to create playlist"
)

// RequestError is a failed CMS request.
type RequestError struct {
	Message    string
	StatusCode int
	URL        string
	// Response is the decoded response body, when there was one.
	Response any
	Err      error
}

func (e *RequestError) Error() string {
	msg := fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	if e.URL != "" {
		msg += ": " + e.URL
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the transport error and the sentinel errors matching the status.
func (e *RequestError) Unwrap() []error {
	errs := []error{shared.ErrAPIRequest}
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		errs = append(errs, shared.ErrAuthFailed)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// AsRequestError extracts a [*RequestError] from err.
func AsRequestError(err error) (*RequestError, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr, true
	}
	return nil, false
}

// operation names the default messages of one CMS call.
type operation struct {
	fallback string
	byStatus map[int]string
	notFound error
}

var (
	opListPlaylists = operation{
		fallback: msgFetchPlaylists,
		byStatus: map[int]string{
			http.StatusInternalServerError: msgPlaylistsServer,
			http.StatusNotFound:            msgPlaylistsNotFound,
		},
	}
	opGetPlaylist = operation{
		fallback: msgFetchPlaylist,
		byStatus: map[int]string{
			http.StatusInternalServerError: msgPlaylistsServer,
		},
		notFound: shared.ErrPlaylistNotFound,
	}
	opListVideos     = operation{fallback: msgFetchVideos, notFound: shared.ErrVideoNotFound}
	opCreatePlaylist = operation{fallback: msgCreatePlaylist}
)

// message picks the CMS-supplied error message, then the per-status default, then the fallback.
func (op operation) message(status int, body any) string {
	if msg := cmsErrorMessage(body); msg != "" {
		return msg
	}
	if msg, ok := op.byStatus[status]; ok {
		return msg
	}
	return op.fallback
}

func (op operation) fail(status int, url string, body any, err error) *RequestError {
	if err == nil && status == http.StatusNotFound && op.notFound != nil {
		err = op.notFound
	}
	return &RequestError{
		Message:    op.message(status, body),
		StatusCode: status,
		URL:        url,
		Response:   body,
		Err:        err,
	}
}

// transport reports a request that never produced a response.
func (op operation) transport(url string, err error) *RequestError {
	return &RequestError{
		Message:    op.fallback,
		StatusCode: http.StatusInternalServerError,
		URL:        url,
		Err:        err,
	}
}

// cmsErrorMessage reads error.message from a Strapi error body.
func cmsErrorMessage(body any) string {
	obj, ok := body.(map[string]any)
	if !ok {
		return ""
	}
	inner, ok := obj["error"].(map[string]any)
	if !ok {
		return ""
	}
	msg, _ := inner["message"].(string)
	return msg
}

func decodeBody(data []byte) any {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	return v
}
