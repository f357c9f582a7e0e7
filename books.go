package library

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mattiajb/library-management-system-sub000/pkg/archive"
	"github.com/mattiajb/library-management-system-sub000/pkg/errors"
	"github.com/mattiajb/library-management-system-sub000/pkg/logging"
)

// BookService validates and commits catalog mutations and serves the
// read-side projections over books.
type BookService struct {
	client *client
}

// AddBook validates the book, checks ISBN uniqueness against the archive,
// inserts it and persists the snapshot.
func (s *BookService) AddBook(book *archive.Book) error {
	if err := s.validate(book); err != nil {
		return err
	}

	return s.client.commit(func(arc *archive.Archive) error {
		if arc.HasBook(book.ISBN) {
			return errors.NewInvalidISBNError(book.ISBN, "already in the catalog")
		}
		if err := arc.AddBook(book); err != nil {
			return err
		}
		logging.Debug().Str("isbn", book.ISBN).Str("title", book.Title).Msg("Book added")
		return nil
	})
}

// UpdateBook validates the edited book, replaces the archived entry with the
// same ISBN and persists the snapshot. The ISBN is the immutable identity;
// changing it means removing the book and adding a new one. Circulation state
// is owned by the loan flow: an update keeps the stored availability, and
// only re-derives it from the open-loan count when the copy count changes.
func (s *BookService) UpdateBook(book *archive.Book) error {
	if err := s.validate(book); err != nil {
		return err
	}

	return s.client.commit(func(arc *archive.Archive) error {
		stored, ok := arc.FindBookByISBN(book.ISBN)
		if !ok {
			return errors.NewNotFoundError("book", book.ISBN)
		}

		updated := book.Copy()
		updated.AvailableCopies = stored.AvailableCopies
		if updated.TotalCopies != stored.TotalCopies {
			open := 0
			for _, loan := range arc.FindLoansByBook(book.ISBN) {
				if loan.Active() {
					open++
				}
			}
			if updated.TotalCopies < open {
				return errors.NewMandatoryFieldError("totalCopies", "cannot be fewer than the open loans")
			}
			updated.AvailableCopies = updated.TotalCopies - open
		}
		return arc.SetBook(updated)
	})
}

// RemoveBook removes the book unless an open loan still references it.
func (s *BookService) RemoveBook(book *archive.Book) error {
	if book == nil {
		return errors.NewMandatoryFieldError("book", "cannot be nil")
	}

	return s.client.commit(func(arc *archive.Archive) error {
		if !arc.HasBook(book.ISBN) {
			return errors.NewNotFoundError("book", book.ISBN)
		}
		if arc.HasActiveLoanForBook(book.ISBN) {
			return errors.NewActiveLoanError("book", book.ISBN)
		}
		if err := arc.RemoveBook(book.ISBN); err != nil {
			return err
		}
		logging.Debug().Str("isbn", book.ISBN).Msg("Book removed")
		return nil
	})
}

// BooksSortedByTitle returns the catalog sorted by title, case-insensitive.
// Blank titles sort first, as empty strings.
func (s *BookService) BooksSortedByTitle() ([]*archive.Book, error) {
	return s.sorted(func(c *collate.Collator, a, b *archive.Book) bool {
		return c.CompareString(a.Title, b.Title) < 0
	})
}

// BooksSortedByAuthor returns the catalog sorted by first author,
// case-insensitive. Books without authors sort as empty string.
func (s *BookService) BooksSortedByAuthor() ([]*archive.Book, error) {
	return s.sorted(func(c *collate.Collator, a, b *archive.Book) bool {
		return c.CompareString(firstAuthor(a), firstAuthor(b)) < 0
	})
}

// BooksSortedByYear returns the catalog sorted by release year, ascending.
func (s *BookService) BooksSortedByYear() ([]*archive.Book, error) {
	return s.sorted(func(_ *collate.Collator, a, b *archive.Book) bool {
		return a.ReleaseYear < b.ReleaseYear
	})
}

// SearchBooks matches the query case-insensitively against title, any author
// and ISBN. A blank query returns the full catalog; results are always
// sorted by title regardless of which field matched.
func (s *BookService) SearchBooks(query string) ([]*archive.Book, error) {
	books, err := s.BooksSortedByTitle()
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return books, nil
	}

	matches := make([]*archive.Book, 0)
	for _, book := range books {
		if bookMatches(book, query) {
			matches = append(matches, book)
		}
	}
	return matches, nil
}

// validate checks the mandatory fields and the ISBN format.
func (s *BookService) validate(book *archive.Book) error {
	if book == nil {
		return errors.NewMandatoryFieldError("book", "cannot be nil")
	}
	if strings.TrimSpace(book.Title) == "" {
		return errors.NewMandatoryFieldError("title", "cannot be blank")
	}
	if len(book.Authors) == 0 {
		return errors.NewMandatoryFieldError("authors", "at least one author is required")
	}
	for _, author := range book.Authors {
		if strings.TrimSpace(author) == "" {
			return errors.NewMandatoryFieldError("authors", "author names cannot be blank")
		}
	}
	currentYear := s.client.now().Year()
	if book.ReleaseYear <= 0 || book.ReleaseYear > currentYear {
		return errors.NewMandatoryFieldError("releaseYear", "must be a year up to the current one")
	}
	if strings.TrimSpace(book.ISBN) == "" {
		return errors.NewMandatoryFieldError("isbn", "cannot be blank")
	}
	if !archive.ValidISBN(book.ISBN) {
		return errors.NewInvalidISBNError(book.ISBN, "must contain 10 or 13 digits")
	}
	if book.TotalCopies <= 0 {
		return errors.NewMandatoryFieldError("totalCopies", "must be positive")
	}
	if book.AvailableCopies < 0 || book.AvailableCopies > book.TotalCopies {
		return errors.NewMandatoryFieldError("availableCopies", "must be between 0 and totalCopies")
	}
	return nil
}

func (s *BookService) sorted(less func(*collate.Collator, *archive.Book, *archive.Book) bool) ([]*archive.Book, error) {
	arc, err := s.client.Archive()
	if err != nil {
		return nil, err
	}

	books := arc.Books()
	collator := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(books, func(i, j int) bool {
		return less(collator, books[i], books[j])
	})
	return books, nil
}

func firstAuthor(book *archive.Book) string {
	if len(book.Authors) == 0 {
		return ""
	}
	return book.Authors[0]
}

func bookMatches(book *archive.Book, query string) bool {
	if strings.Contains(strings.ToLower(book.Title), query) {
		return true
	}
	for _, author := range book.Authors {
		if strings.Contains(strings.ToLower(author), query) {
			return true
		}
	}
	isbn := strings.ToLower(book.ISBN)
	return strings.Contains(isbn, query) ||
		strings.Contains(archive.NormalizeISBN(isbn), archive.NormalizeISBN(query))
}
