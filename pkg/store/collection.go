package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrOutOfRange is returned for a position outside the collection.
var ErrOutOfRange = errors.New("store: index out of range")

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("store: record not found")

// Record is a value with a stable id that can be re-stamped with a new one.
type Record[T any] interface {
	RecordID() string
	WithID(id string) T
}

// Collection is an ordered list of records stored as a JSON array in a single
// slot. Every mutation reads the whole slot, changes it and writes it back.
type Collection[T Record[T]] struct {
	p     *Persistence
	slot  Slot
	merge func(prev, next T) T
}

// NewCollection binds a collection to slot. merge, when not nil, is applied
// when Save overwrites an existing record and decides what state survives.
func NewCollection[T Record[T]](p *Persistence, slot Slot, merge func(prev, next T) T) *Collection[T] {
	return &Collection[T]{p: p, slot: slot, merge: merge}
}

// Slot is the slot backing the collection.
func (c *Collection[T]) Slot() Slot {
	return c.slot
}

// LoadAll returns every record in stored order. A missing or undecodable
// slot loads as an empty collection. Records stored without an id are given
// one, and the slot is rewritten so the ids stick.
func (c *Collection[T]) LoadAll(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, ok, err := c.p.Read(c.slot)
	if err != nil {
		return nil, err
	}
	if !ok || len(data) == 0 {
		return []T{}, nil
	}
	var all []T
	if err := json.Unmarshal(data, &all); err != nil {
		c.p.log.Warn("slot unreadable, treating as empty", "slot", c.slot, "err", err)
		return []T{}, nil
	}
	if all == nil {
		all = []T{}
	}
	assigned := 0
	for i, rec := range all {
		if rec.RecordID() == "" {
			all[i] = rec.WithID(newID())
			assigned++
		}
	}
	if assigned > 0 {
		c.p.log.Info("assigned ids to stored records", "slot", c.slot, "count", assigned)
		if err := c.write(all); err != nil {
			return nil, err
		}
	}
	return all, nil
}

// At returns the record at position i.
func (c *Collection[T]) At(ctx context.Context, i int) (T, error) {
	var zero T
	all, err := c.LoadAll(ctx)
	if err != nil {
		return zero, err
	}
	if i < 0 || i >= len(all) {
		return zero, fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, len(all))
	}
	return all[i], nil
}

// Get returns the record with id and its position.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, int, error) {
	var zero T
	all, err := c.LoadAll(ctx)
	if err != nil {
		return zero, -1, err
	}
	i := indexOf(all, id)
	if i < 0 {
		return zero, -1, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return all[i], i, nil
}

// Save overwrites the record with id in place, or appends rec when id is
// empty. Overwrites keep the id and pass through the merge function. An id
// that matches nothing is an error. The saved record is returned.
func (c *Collection[T]) Save(ctx context.Context, rec T, id string) (T, error) {
	var zero T
	all, err := c.LoadAll(ctx)
	if err != nil {
		return zero, err
	}
	if id == "" {
		rec = rec.WithID(newID())
		all = append(all, rec)
	} else {
		i := indexOf(all, id)
		if i < 0 {
			return zero, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		rec = rec.WithID(id)
		if c.merge != nil {
			rec = c.merge(all[i], rec)
		}
		all[i] = rec
	}
	if err := c.write(all); err != nil {
		return zero, err
	}
	return rec, nil
}

// Update applies fn to the record with id and stores the result as is.
func (c *Collection[T]) Update(ctx context.Context, id string, fn func(T) T) (T, error) {
	var zero T
	all, err := c.LoadAll(ctx)
	if err != nil {
		return zero, err
	}
	i := indexOf(all, id)
	if i < 0 {
		return zero, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	all[i] = fn(all[i]).WithID(id)
	if err := c.write(all); err != nil {
		return zero, err
	}
	return all[i], nil
}

// DeleteAt removes the record at position i.
func (c *Collection[T]) DeleteAt(ctx context.Context, i int) (T, error) {
	var zero T
	all, err := c.LoadAll(ctx)
	if err != nil {
		return zero, err
	}
	if i < 0 || i >= len(all) {
		return zero, fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, len(all))
	}
	removed := all[i]
	all = append(all[:i], all[i+1:]...)
	if err := c.write(all); err != nil {
		return zero, err
	}
	return removed, nil
}

// Delete removes the record with id.
func (c *Collection[T]) Delete(ctx context.Context, id string) (T, error) {
	var zero T
	_, i, err := c.Get(ctx, id)
	if err != nil {
		return zero, err
	}
	return c.DeleteAt(ctx, i)
}

// DeleteAll clears the collection by erasing its slot.
func (c *Collection[T]) DeleteAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.p.Erase(c.slot)
}

func (c *Collection[T]) write(all []T) error {
	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", c.slot, err)
	}
	return c.p.Write(c.slot, data)
}

func indexOf[T Record[T]](all []T, id string) int {
	if id == "" {
		return -1
	}
	for i, rec := range all {
		if rec.RecordID() == id {
			return i
		}
	}
	return -1
}

func newID() string {
	return uuid.NewString()
}
