package tasks

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/playdeck/internal/cards"
	"github.com/desertthunder/playdeck/internal/models"
	"github.com/desertthunder/playdeck/internal/services"
	"github.com/desertthunder/playdeck/internal/shared"
	"golang.org/x/sync/errgroup"
)

// Catalog is everything the assembly view needs at startup.
type Catalog struct {
	Playlists []models.Playlist
	Videos    []models.Video
}

// Engine runs playlist operations against a [services.Service].
type Engine struct {
	svc        services.Service
	dispatcher *cards.Dispatcher
	logger     *log.Logger
}

// NewEngine creates an engine. A nil dispatcher uses the default registry; a nil logger discards output.
func NewEngine(svc services.Service, d *cards.Dispatcher, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if d == nil {
		d = cards.NewDispatcher(nil, logger)
	}
	return &Engine{svc: svc, dispatcher: d, logger: logger}
}

// Dispatcher returns the dispatcher used to assemble sequences.
func (e *Engine) Dispatcher() *cards.Dispatcher { return e.dispatcher }

// Service returns the backing service.
func (e *Engine) Service() services.Service { return e.svc }

// sendProgress sends a progress update through the channel without blocking.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Load fetches playlists and videos concurrently. The first failure cancels the other request.
func (e *Engine) Load(ctx context.Context, prog chan<- ProgressUpdate) (*Catalog, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}

	var catalog Catalog
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		playlists, err := e.svc.GetPlaylists(gctx)
		if err != nil {
			return err
		}
		catalog.Playlists = playlists
		e.sendProgress(prog, fetchPlaylistsUpdate(len(playlists)))
		return nil
	})

	g.Go(func() error {
		videos, err := e.svc.GetVideos(gctx)
		if err != nil {
			return err
		}
		catalog.Videos = videos
		e.sendProgress(prog, fetchVideosUpdate(len(videos)))
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// Sequence fetches the playlist with id and assembles its cards.
func (e *Engine) Sequence(ctx context.Context, prog chan<- ProgressUpdate, id string) (*models.Playlist, cards.Sequence, error) {
	if e.svc == nil {
		return nil, cards.Sequence{}, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(prog, fetchPlaylistUpdate(id))

	p, err := e.svc.GetPlaylist(ctx, id)
	if err != nil {
		return nil, cards.Sequence{}, err
	}

	seq := cards.AssemblePlaylist(e.dispatcher, *p)
	e.logger.Debug("assembled sequence", "playlist", p.ID, "cards", len(seq.Items), "skipped", seq.Skipped)
	return p, seq, nil
}
