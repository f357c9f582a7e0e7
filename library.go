// Package library provides the domain consistency engine for a desktop
// catalog and loan-tracking tool. It wraps an in-memory archive of books,
// users and loans with three services that validate inputs, enforce
// cross-entity rules (copy-count bookkeeping, per-user loan limits, deletion
// guards, ISBN/email/code uniqueness) and persist the whole archive as one
// snapshot after every committed mutation.
//
// The client is the archive access facade: it lazily loads the archive from
// the configured snapshot path (a missing file yields an empty archive),
// vends the single live instance to the three services, and owns
// persistence. Mutations are staged against a deep copy that is written to
// disk before it is swapped in as the live archive, so a failed write never
// leaves memory and disk inconsistent.
//
// Example usage:
//
//	lib, err := library.New(library.WithPath("archive.yaml"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	book := archive.NewBook("Clean Code", []string{"Robert C. Martin"}, 2008, "9780132350884", 3)
//	if err := lib.Books().AddBook(book); err != nil {
//	    log.Fatal(err)
//	}
//
//	user := archive.NewUser("Mario", "Rossi", "mario.rossi@campus.edu", "S123456")
//	if err := lib.Users().AddUser(user); err != nil {
//	    log.Fatal(err)
//	}
//
//	due := utc.New(time.Now().AddDate(0, 0, 30))
//	loan, err := lib.Loans().RegisterLoan(user, book, due)
package library

import (
	"github.com/mattiajb/library-management-system-sub000/pkg/archive"
)

// Compile-time interface checks to ensure proper implementation.
var (
	_ Client      = (*client)(nil)
	_ Archiver    = (*client)(nil)
	_ Persistence = (*client)(nil)
)

// Archiver vends the live archive instance.
type Archiver interface {
	// Archive returns the live archive, loading it from the snapshot on
	// first access.
	Archive() (*archive.Archive, error)
}

// Persistence handles archive persistence operations.
type Persistence interface {
	// Save writes the live archive to the configured snapshot path.
	Save() error
}

// Client is the archive access facade. All three services obtained from one
// client operate on the same live archive, so a mutation committed by one
// service is immediately visible to the others.
type Client interface {
	// Archiver vends the live archive instance
	Archiver

	// Persistence handles archive persistence operations
	Persistence

	// Books returns the book service
	Books() *BookService

	// Users returns the user service
	Users() *UserService

	// Loans returns the loan service
	Loans() *LoanService
}

// New creates a new client with the given options.
// WithPath(path) = snapshot-backed archive with lazy load
// WithArchive(arc) = injected archive (tests, memory mode).
func New(opts ...Option) (Client, error) {
	c := &client{
		options: defaults().apply(opts...),
	}

	// An injected archive skips the lazy load entirely.
	if c.options.archive != nil {
		c.archive = c.options.archive
	}

	return c, nil
}
