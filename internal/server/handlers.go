package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/playdeck/internal/formatter"
	"github.com/desertthunder/playdeck/internal/models"
	"github.com/desertthunder/playdeck/internal/services"
	"github.com/desertthunder/playdeck/internal/shared"
	"github.com/desertthunder/playdeck/internal/tasks"
)

const maxBodyBytes = 1 << 20

// Route patterns served by [API].
const (
	RouteListPlaylists  = "GET /api/playlists"
	RouteCreatePlaylist = "POST /api/playlists"
	RouteSequence       = "GET /api/playlists/{id}/sequence"
	RouteListVideos     = "GET /api/videos"
)

// API serves playlists, assembled sequences and videos as JSON.
type API struct {
	engine *tasks.Engine
	logger *log.Logger
}

var _ Handler = (*API)(nil)

// NewAPI creates the JSON handler over engine.
func NewAPI(engine *tasks.Engine, logger *log.Logger) *API {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &API{engine: engine, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (a *API) Routes() []string {
	return []string{RouteListPlaylists, RouteCreatePlaylist, RouteSequence, RouteListVideos}
}

// ServeHTTP dispatches on the matched route pattern.
func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Pattern {
	case RouteListPlaylists:
		a.listPlaylists(w, r)
	case RouteCreatePlaylist:
		a.createPlaylist(w, r)
	case RouteSequence:
		a.sequence(w, r)
	case RouteListVideos:
		a.listVideos(w, r)
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

type listResponse[T any] struct {
	Data  []T `json:"data"`
	Count int `json:"count"`
}

func newList[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Data: items, Count: len(items)}
}

func (a *API) service(w http.ResponseWriter, r *http.Request) (services.Service, bool) {
	svc := a.engine.Service()
	if svc == nil {
		a.fail(w, r, shared.ErrServiceUnavailable)
		return nil, false
	}
	return svc, true
}

func (a *API) listPlaylists(w http.ResponseWriter, r *http.Request) {
	svc, ok := a.service(w, r)
	if !ok {
		return
	}
	playlists, err := svc.GetPlaylists(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(playlists))
}

func (a *API) listVideos(w http.ResponseWriter, r *http.Request) {
	svc, ok := a.service(w, r)
	if !ok {
		return
	}
	videos, err := svc.GetVideos(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(videos))
}

func (a *API) sequence(w http.ResponseWriter, r *http.Request) {
	p, seq, err := a.engine.Sequence(r.Context(), nil, r.PathValue("id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, formatter.NewExport(*p, seq))
}

// createRequest is the body of POST /api/playlists.
type createRequest struct {
	Name     string      `json:"name"`
	VideoIDs []models.ID `json:"videoIds"`
}

func (a *API) createPlaylist(w http.ResponseWriter, r *http.Request) {
	var body createRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := a.engine.Create(r.Context(), nil, tasks.PublishRequest{Name: body.Name, VideoIDs: body.VideoIDs})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// fail maps err to a status code and writes it as a JSON error.
func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, message := http.StatusInternalServerError, err.Error()

	if reqErr, ok := services.AsRequestError(err); ok {
		status, message = reqErr.StatusCode, reqErr.Message
	}
	switch {
	case errors.Is(err, shared.ErrInvalidInput), errors.Is(err, shared.ErrMissingArgument):
		status = http.StatusBadRequest
	case errors.Is(err, shared.ErrPlaylistNotFound):
		status = http.StatusNotFound
	case errors.Is(err, shared.ErrServiceUnavailable):
		status = http.StatusServiceUnavailable
	}
	if status < 400 {
		status = http.StatusBadGateway
	}

	a.logger.Warn("request failed", "path", r.URL.Path, "status", status, "error", err, "request_id", RequestIDFrom(r.Context()))
	writeError(w, status, message)
}

// Health reports the backing service name.
func Health(svc services.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := "none"
		if svc != nil {
			name = svc.Name()
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": name})
	})
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Status: status, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := shared.MarshalJSON(v, false)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}

// NewRouter assembles the preview server routes over engine.
func NewRouter(engine *tasks.Engine, logger *log.Logger) *BasicRouter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	router := NewBasicRouter()
	router.Use(Recover(logger), RequestID, Logging(logger))
	router.Handler(NewAPI(engine, logger))
	router.Handle(http.MethodGet, "/health", Health(engine.Service()))
	return router
}
