package cards

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/playdeck/internal/models"
)

// Skip reasons reported by [Dispatcher.Explain].
var (
	ErrMissingRecord = errors.New("component record is absent")
	ErrMissingKind   = errors.New("component record has no discriminant")
	ErrUnknownKind   = errors.New("unknown component kind")
	ErrMissingMedia  = errors.New("component requires media but none resolved")
)

// Dispatcher resolves component records against a [Registry].
type Dispatcher struct {
	registry *Registry
	logger   *log.Logger
}

// NewDispatcher creates a dispatcher over registry, which defaults to [DefaultRegistry].
//
// Skip diagnostics are written to logger at warn level; a nil logger discards them.
func NewDispatcher(registry *Registry, logger *log.Logger) *Dispatcher {
	if registry == nil {
		registry = DefaultRegistry()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Dispatcher{registry: registry, logger: logger}
}

// Registry returns the registry the dispatcher resolves against.
func (d *Dispatcher) Registry() *Registry { return d.registry }

// Dispatch returns the normalized request for rec, or false when the record should render nothing.
//
// Every skip emits one diagnostic; Dispatch itself never fails.
func (d *Dispatcher) Dispatch(rec *models.ComponentRecord) (Request, bool) {
	req, err := d.resolve(rec)
	if err != nil {
		d.logger.Warn("skipping component", "id", recordID(rec), "component", recordTag(rec), "reason", err)
		return Request{}, false
	}
	return req, true
}

// Explain reports why rec would be skipped, or nil when it renders. It emits no diagnostics.
func (d *Dispatcher) Explain(rec *models.ComponentRecord) error {
	_, err := d.resolve(rec)
	return err
}

func (d *Dispatcher) resolve(rec *models.ComponentRecord) (Request, error) {
	if rec == nil {
		return Request{}, ErrMissingRecord
	}

	kind := rec.Kind()
	if kind == "" {
		return Request{}, ErrMissingKind
	}

	spec, ok := d.registry.Lookup(kind)
	if !ok {
		return Request{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	req := spec.Normalize(rec)
	req.ID = rec.ID
	if req.Kind == "" {
		req.Kind = spec.Kind
	}

	if spec.SkipWithoutMedia && strings.TrimSpace(req.MediaURL()) == "" {
		return Request{}, fmt.Errorf("%w: %s", ErrMissingMedia, spec.Kind)
	}
	return req, nil
}

func recordID(rec *models.ComponentRecord) string {
	if rec == nil {
		return ""
	}
	return rec.ID.String()
}

func recordTag(rec *models.ComponentRecord) string {
	if rec == nil {
		return ""
	}
	return rec.Component
}
