package archive

import "slices"

// Book represents one catalog entry. Identity and equality are by ISBN alone;
// the ISBN is normalized (spaces and hyphens stripped) before any comparison.
type Book struct {
	Title           string   `json:"title" yaml:"title"`
	Authors         []string `json:"authors" yaml:"authors"`
	ReleaseYear     int      `json:"release_year" yaml:"release_year"`
	ISBN            string   `json:"isbn" yaml:"isbn"`
	TotalCopies     int      `json:"total_copies" yaml:"total_copies"`
	AvailableCopies int      `json:"available_copies" yaml:"available_copies"`
}

// NewBook creates a book with every copy available.
func NewBook(title string, authors []string, releaseYear int, isbn string, totalCopies int) *Book {
	return &Book{
		Title:           title,
		Authors:         slices.Clone(authors),
		ReleaseYear:     releaseYear,
		ISBN:            isbn,
		TotalCopies:     totalCopies,
		AvailableCopies: totalCopies,
	}
}

// Key returns the normalized ISBN used to index this book.
func (b *Book) Key() string {
	return NormalizeISBN(b.ISBN)
}

// Equal reports whether other identifies the same book.
func (b *Book) Equal(other *Book) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.Key() == other.Key()
}

// Copy returns a deep copy of the book.
func (b *Book) Copy() *Book {
	if b == nil {
		return nil
	}
	dup := *b
	dup.Authors = slices.Clone(b.Authors)
	return &dup
}
