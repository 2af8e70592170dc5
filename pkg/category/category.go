// Package category keeps the ordered set of todo category labels.
package category

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"tableflip.dev/memo/pkg/logging"
	"tableflip.dev/memo/pkg/store"
)

// Defaults seed an empty registry, in display order.
var Defaults = []string{"Personal", "Work", "Shopping", "Health", "Other"}

// Backend is the slot storage the registry persists to.
type Backend interface {
	Read(slot store.Slot) ([]byte, bool, error)
	Write(slot store.Slot, data []byte) error
}

// Registry is an insertion-ordered, grow-only set of category names.
// Names are compared exactly, so "work" and "Work" are distinct.
type Registry struct {
	b   Backend
	log *log.Logger
}

// New returns a registry stored in the taskCategories slot of b.
func New(b Backend, l *log.Logger) *Registry {
	if l == nil {
		l = logging.Discard()
	}
	return &Registry{b: b, log: l}
}

// List returns the registered categories. A missing or unreadable slot
// yields the defaults.
func (r *Registry) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, ok, err := r.b.Read(store.SlotCategories)
	if err != nil {
		return nil, fmt.Errorf("category: read: %w", err)
	}
	if !ok || len(data) == 0 {
		return slices.Clone(Defaults), nil
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		r.log.Warn("category slot unreadable, using defaults", "err", err)
		return slices.Clone(Defaults), nil
	}
	if names == nil {
		return slices.Clone(Defaults), nil
	}
	return names, nil
}

// Ensure appends name when it is not registered yet and persists the
// registry. It reports whether name was added. Blank names are ignored.
func (r *Registry) Ensure(ctx context.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}
	names, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	if slices.Contains(names, name) {
		return false, nil
	}
	names = append(names, name)
	data, err := json.Marshal(names)
	if err != nil {
		return false, fmt.Errorf("category: encode: %w", err)
	}
	if err := r.b.Write(store.SlotCategories, data); err != nil {
		return false, fmt.Errorf("category: write: %w", err)
	}
	r.log.Debug("registered category", "name", name)
	return true, nil
}
