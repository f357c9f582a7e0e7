package library

import (
	"github.com/agentstation/utc"

	"github.com/mattiajb/library-management-system-sub000/pkg/archive"
	"github.com/mattiajb/library-management-system-sub000/pkg/constants"
)

// options is a struct that contains the options for the client.
type options struct {
	path        string
	archive     *archive.Archive
	emailSuffix string
	now         func() utc.Time
}

// apply applies the given options to the client options.
func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// defaults returns the default options for a client.
func defaults() *options {
	return &options{
		emailSuffix: constants.DefaultEmailSuffix,
		now:         utc.Now,
	}
}

// Option configures a client.
type Option func(*options)

// WithPath configures the snapshot file location. Without a path the client
// runs in memory mode: commits apply to the live archive but nothing is
// written to disk.
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithArchive injects a pre-built archive, skipping the snapshot load.
// Useful for tests that need a known starting state.
func WithArchive(arc *archive.Archive) Option {
	return func(o *options) {
		o.archive = arc
	}
}

// WithEmailSuffix sets the institutional email domain users must belong to.
func WithEmailSuffix(suffix string) Option {
	return func(o *options) {
		if suffix != "" {
			o.emailSuffix = suffix
		}
	}
}

// WithClock sets the time source used for loan dates, due-date checks and
// release-year validation. Tests use this for deterministic days.
func WithClock(now func() utc.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
