package archive

import (
	"fmt"
	"maps"
	"sync"
)

// Books is a concurrent safe map of books keyed by normalized ISBN.
type Books struct {
	mu    sync.RWMutex
	books map[string]*Book
}

// NewBooks creates a new Books map.
func NewBooks() *Books {
	return &Books{
		books: make(map[string]*Book),
	}
}

// Get returns a book by normalized ISBN and whether it exists.
func (b *Books) Get(isbn string) (*Book, bool) {
	b.mu.RLock()
	book, ok := b.books[NormalizeISBN(isbn)]
	b.mu.RUnlock()
	return book, ok
}

// Set sets a book by its ISBN key (upsert). Returns an error if book is nil.
func (b *Books) Set(book *Book) error {
	if book == nil {
		return fmt.Errorf("book cannot be nil")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.books[book.Key()] = book
	return nil
}

// Add adds a book, returning an error if its ISBN is already present.
func (b *Books) Add(book *Book) error {
	if book == nil {
		return fmt.Errorf("book cannot be nil")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.books[book.Key()]; exists {
		return fmt.Errorf("book with ISBN %s already exists", book.ISBN)
	}

	b.books[book.Key()] = book
	return nil
}

// Delete removes a book by ISBN. Returns an error if the book doesn't exist.
func (b *Books) Delete(isbn string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := NormalizeISBN(isbn)
	if _, exists := b.books[key]; !exists {
		return fmt.Errorf("book with ISBN %s not found", isbn)
	}

	delete(b.books, key)
	return nil
}

// Exists checks if a book exists without returning it.
func (b *Books) Exists(isbn string) bool {
	b.mu.RLock()
	_, exists := b.books[NormalizeISBN(isbn)]
	b.mu.RUnlock()
	return exists
}

// Len returns the number of books.
func (b *Books) Len() int {
	b.mu.RLock()
	length := len(b.books)
	b.mu.RUnlock()
	return length
}

// List returns a slice of all books.
func (b *Books) List() []*Book {
	b.mu.RLock()
	books := make([]*Book, 0, len(b.books))
	for _, book := range b.books {
		books = append(books, book)
	}
	b.mu.RUnlock()
	return books
}

// Map returns a copy of the underlying map.
func (b *Books) Map() map[string]*Book {
	b.mu.RLock()
	defer b.mu.RUnlock()

	result := make(map[string]*Book, len(b.books))
	maps.Copy(result, b.books)
	return result
}

// ForEach applies a function to each book. The function should not modify the
// book. If the function returns false, iteration stops early.
func (b *Books) ForEach(fn func(isbn string, book *Book) bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for isbn, book := range b.books {
		if !fn(isbn, book) {
			break
		}
	}
}

// Clear removes all books.
func (b *Books) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for k := range b.books {
		delete(b.books, k)
	}
}
