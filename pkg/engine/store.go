// Package engine holds the in-memory owner store and the audit trail that
// back the back office API and its embedded SDK mode.
package engine

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrNotFound is matched by every lookup miss in the engine.
var ErrNotFound = errors.New("not found")

// NotFoundError reports a missing record. It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func ownerNotFound(id string) error {
	return &NotFoundError{Entity: "Owner", ID: id}
}

// Option configures a MemStore or an AuditLog.
type Option func(*options)

type options struct {
	now   func() time.Time
	log   *zap.Logger
	newID func() string
}

func defaultOptions() options {
	return options{
		now: time.Now,
		log: zap.NewNop(),
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock replaces time.Now as the source of timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger sets the logger used for debug output of mutations.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithIDGenerator replaces the uuid generator used for audit entry ids.
func WithIDGenerator(gen func() string) Option {
	return func(o *options) {
		if gen != nil {
			o.newID = gen
		}
	}
}
