// Package store persists memo's collections as named slots in a diskv
// key-value store. Each slot holds one whole, text-encoded value.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/peterbourgon/diskv/v3"
)

// Slot names one persisted value.
type Slot string

const (
	SlotNotes      Slot = "notes"
	SlotTodos      Slot = "todos"
	SlotCategories Slot = "taskCategories"
	SlotTheme      Slot = "theme"
)

// Slots lists every slot memo writes.
func Slots() []Slot {
	return []Slot{SlotNotes, SlotTodos, SlotCategories, SlotTheme}
}

const tempDirName = ".tmp"

// Config locates the store on disk.
type Config interface {
	BasePath() string
}

// Option customises a Persistence.
type Option func(*Persistence)

// WithLogger sets the logger used for soft failures and write traces.
func WithLogger(l *log.Logger) Option {
	return func(p *Persistence) {
		p.log = l
	}
}

// Persistence reads and writes slots. Writes replace a slot's whole value
// atomically and notify in-process subscribers.
type Persistence struct {
	d        *diskv.Diskv
	basePath string
	log      *log.Logger

	mu   sync.Mutex
	subs []chan Event
}

// Load opens the diskv store rooted at cfg's base path.
func Load(cfg Config, opts ...Option) (*Persistence, error) {
	if cfg == nil || cfg.BasePath() == "" {
		return nil, errors.New("store: base path required")
	}
	basePath := cfg.BasePath()
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	p := &Persistence{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			TempDir:      filepath.Join(basePath, tempDirName),
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		basePath: basePath,
		log:      log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// BasePath is the directory the slots live in.
func (p *Persistence) BasePath() string {
	return p.basePath
}

// Logger returns the logger the store reports soft failures to.
func (p *Persistence) Logger() *log.Logger {
	return p.log
}

// Read returns the raw value of slot. ok is false when the slot was never
// written or has been erased.
func (p *Persistence) Read(slot Slot) (data []byte, ok bool, err error) {
	key := string(slot)
	if !p.d.Has(key) {
		return nil, false, nil
	}
	// Bypass the cache so writes from other processes are seen.
	rc, err := p.d.ReadStream(key, true)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("store: read %s: %w", slot, err)
	}
	defer rc.Close()
	data, err = io.ReadAll(rc)
	if err != nil {
		return nil, false, fmt.Errorf("store: read %s: %w", slot, err)
	}
	return data, true, nil
}

// Write replaces the whole value of slot.
func (p *Persistence) Write(slot Slot, data []byte) error {
	if err := p.d.Write(string(slot), data); err != nil {
		return fmt.Errorf("store: write %s: %w", slot, err)
	}
	p.log.Debug("slot written", "slot", slot, "bytes", len(data))
	p.notify(Event{Type: EventSlotChanged, Slot: slot})
	return nil
}

// Erase removes slot. Erasing a missing slot is not an error.
func (p *Persistence) Erase(slot Slot) error {
	key := string(slot)
	if p.d.Has(key) {
		if err := p.d.Erase(key); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("store: erase %s: %w", slot, err)
		}
	}
	p.log.Debug("slot erased", "slot", slot)
	p.notify(Event{Type: EventSlotChanged, Slot: slot})
	return nil
}

// Has reports whether slot currently holds a value.
func (p *Persistence) Has(slot Slot) bool {
	return p.d.Has(string(slot))
}

// Changes subscribes to in-process change events until ctx is done, when the
// subscription is dropped and the channel closed. The channel is buffered;
// events are dropped for subscribers that fall behind.
func (p *Persistence) Changes(ctx context.Context) <-chan Event {
	ch := make(chan Event, 16)
	p.mu.Lock()
	p.subs = append(p.subs, ch)
	p.mu.Unlock()

	go func() {
		<-ctx.Done()
		p.mu.Lock()
		defer p.mu.Unlock()
		p.subs = slices.DeleteFunc(p.subs, func(c chan Event) bool { return c == ch })
		close(ch)
	}()
	return ch
}

func (p *Persistence) notify(ev Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, ch := range p.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
