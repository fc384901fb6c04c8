package profile

import (
	"context"
	"errors"
)

// ErrNotFound is wrapped by StaticLoader when an id has no record.
var ErrNotFound = errors.New("profile: record not found")

// StaticLoader serves records from memory. It is handy for offline runs and
// tests.
type StaticLoader map[string]Record

// FetchProfile returns the record stored under id.
func (s StaticLoader) FetchProfile(ctx context.Context, id string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, &LoadError{ID: id, Op: OpRequest, Err: err}
	}
	rec, ok := s[id]
	if !ok {
		return Record{}, &LoadError{ID: id, Op: OpStatus, Err: ErrNotFound}
	}
	return rec, nil
}
