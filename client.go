package library

import (
	"sync"

	"github.com/agentstation/utc"

	"github.com/mattiajb/library-management-system-sub000/pkg/archive"
	"github.com/mattiajb/library-management-system-sub000/pkg/logging"
)

// client is the internal implementation of the Client interface.
type client struct {
	mu      sync.Mutex
	options *options
	archive *archive.Archive // live instance, nil until first access
}

// Archive returns the live archive, loading it from the snapshot on first
// access. A missing snapshot file yields a fresh empty archive.
func (c *client) Archive() (*archive.Archive, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.archiveLocked()
}

// archiveLocked returns the live archive. Callers must hold c.mu.
func (c *client) archiveLocked() (*archive.Archive, error) {
	if c.archive != nil {
		return c.archive, nil
	}

	if c.options.path == "" {
		c.archive = archive.New()
		return c.archive, nil
	}

	arc, err := archive.LoadSnapshot(c.options.path)
	if err != nil {
		return nil, err
	}

	logging.Debug().
		Str("path", c.options.path).
		Int("books", len(arc.Books())).
		Int("users", len(arc.Users())).
		Int("loans", len(arc.Loans())).
		Msg("Archive loaded")

	c.archive = arc
	return c.archive, nil
}

// commit runs a mutation against a deep copy of the live archive, persists
// the copy, and only then swaps it in as the live instance. If the mutation
// or the snapshot write fails, the live archive is untouched and disk keeps
// its previous content.
func (c *client) commit(mutate func(*archive.Archive) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	live, err := c.archiveLocked()
	if err != nil {
		return err
	}

	staged := live.Copy()
	if err := mutate(staged); err != nil {
		return err
	}

	if c.options.path != "" {
		if err := staged.SaveSnapshot(c.options.path); err != nil {
			logging.Err(err).Str("path", c.options.path).Msg("Snapshot write failed, mutation discarded")
			return err
		}
	}

	c.archive = staged
	return nil
}

// Save writes the live archive to the configured snapshot path. In memory
// mode this is a no-op.
func (c *client) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.options.path == "" {
		return nil
	}

	live, err := c.archiveLocked()
	if err != nil {
		return err
	}
	return live.SaveSnapshot(c.options.path)
}

// Books returns the book service.
func (c *client) Books() *BookService {
	return &BookService{client: c}
}

// Users returns the user service.
func (c *client) Users() *UserService {
	return &UserService{client: c}
}

// Loans returns the loan service.
func (c *client) Loans() *LoanService {
	return &LoanService{client: c}
}

// now returns the current time from the configured clock.
func (c *client) now() utc.Time {
	return c.options.now()
}
