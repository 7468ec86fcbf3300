package cards

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/desertthunder/playdeck/internal/models"
)

var (
	// ErrInvalidSpec indicates a spec without a kind or normalize function.
	ErrInvalidSpec = errors.New("cards: invalid spec")
	// ErrDuplicateKind indicates the kind or alias is already registered.
	ErrDuplicateKind = errors.New("cards: kind already registered")
	// ErrKindNotFound indicates an alias target that is not registered.
	ErrKindNotFound = errors.New("cards: kind not registered")
)

// NormalizeFunc maps a record onto the request its renderer consumes.
//
// It is only called with non-nil records and must not fail: missing values become defaults.
type NormalizeFunc func(rec *models.ComponentRecord) Request

// FieldSpec declares one request field a renderer consumes.
type FieldSpec struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
	Default  any    `json:"default,omitempty"`
}

// Spec describes how one discriminant is rendered.
type Spec struct {
	Kind   string      `json:"kind"`
	Fields []FieldSpec `json:"fields"`
	// SkipWithoutMedia drops the record when its normalized media URL is empty
	// instead of rendering a card without an image.
	SkipWithoutMedia bool          `json:"skipWithoutMedia,omitempty"`
	Normalize        NormalizeFunc `json:"-"`
}

// Required returns the names of the required fields.
func (s Spec) Required() []string {
	var names []string
	for _, f := range s.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// Optional returns the names of the optional fields.
func (s Spec) Optional() []string {
	var names []string
	for _, f := range s.Fields {
		if !f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// Registry is a thread-safe map from discriminant to [Spec].
type Registry struct {
	mu      sync.RWMutex
	specs   map[string]Spec
	aliases map[string]string
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		specs:   make(map[string]Spec),
		aliases: make(map[string]string),
	}
}

// Register stores a spec under its kind.
func (r *Registry) Register(spec Spec) error {
	kind := canonicalKind(spec.Kind)
	if kind == "" {
		return fmt.Errorf("%w: kind is required", ErrInvalidSpec)
	}
	if spec.Normalize == nil {
		return fmt.Errorf("%w: %s has no normalize function", ErrInvalidSpec, kind)
	}
	spec.Kind = kind

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.taken(kind) {
		return fmt.Errorf("%w: %s", ErrDuplicateKind, kind)
	}
	r.specs[kind] = spec
	return nil
}

// Alias makes alias resolve to the spec registered under kind.
func (r *Registry) Alias(alias, kind string) error {
	alias, kind = canonicalKind(alias), canonicalKind(kind)
	if alias == "" {
		return fmt.Errorf("%w: alias is required", ErrInvalidSpec)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.specs[kind]; !ok {
		return fmt.Errorf("%w: %s", ErrKindNotFound, kind)
	}
	if r.taken(alias) {
		return fmt.Errorf("%w: %s", ErrDuplicateKind, alias)
	}
	r.aliases[alias] = kind
	return nil
}

// Lookup returns the spec for kind. Namespaced discriminants such as
// "playlist-components.video" resolve the same as "video".
func (r *Registry) Lookup(kind string) (Spec, bool) {
	kind = canonicalKind(kind)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if target, ok := r.aliases[kind]; ok {
		kind = target
	}
	spec, ok := r.specs[kind]
	return spec, ok
}

// Kinds returns the registered kinds in name order, aliases excluded.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.specs))
	for kind := range r.specs {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Aliases returns a copy of the alias table.
func (r *Registry) Aliases() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]string, len(r.aliases))
	for k, v := range r.aliases {
		out[k] = v
	}
	return out
}

func (r *Registry) taken(name string) bool {
	_, spec := r.specs[name]
	_, alias := r.aliases[name]
	return spec || alias
}

func canonicalKind(input string) string {
	rec := models.ComponentRecord{Component: input}
	return rec.Kind()
}
