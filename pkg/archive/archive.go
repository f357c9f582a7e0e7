// Package archive provides the in-memory aggregate for the library system.
// It owns the book, user and loan collections plus the loan ID counter, and
// exposes the only mutation surface over them. The archive is a mechanical
// store: it enforces no business rules, those live in the services that
// operate on it.
//
// Every accessor returns fresh copies of the stored entities, so callers can
// never mutate archive state through a returned value. Mutations go through
// the Add/Set/Remove operations, which copy values on the way in.
//
// Example usage:
//
//	arc := archive.New()
//	_ = arc.AddBook(archive.NewBook("Clean Code", []string{"Robert C. Martin"}, 2008, "9780132350884", 3))
//	_ = arc.AddUser(archive.NewUser("Mario", "Rossi", "mario.rossi@campus.edu", "S123456"))
//	loan, _ := arc.AddLoan("S123456", "9780132350884", utc.Now(), due)
package archive

import (
	"fmt"
	"sync"

	"github.com/agentstation/utc"
)

// Archive is the aggregate root owning the three collections and the loan ID
// counter. All services operate on the same live instance, so a mutation
// committed by one service is immediately visible to the others.
type Archive struct {
	books *Books
	users *Users
	loans *Loans

	mu         sync.Mutex
	nextLoanID int64
}

// New creates an empty archive. Loan IDs start at 1.
func New() *Archive {
	return &Archive{
		books:      NewBooks(),
		users:      NewUsers(),
		loans:      NewLoans(),
		nextLoanID: 1,
	}
}

// Books

// AddBook inserts a copy of the book. Fails if the ISBN key is already taken.
func (a *Archive) AddBook(book *Book) error {
	if book == nil {
		return fmt.Errorf("book cannot be nil")
	}
	return a.books.Add(book.Copy())
}

// SetBook stores a copy of the book, replacing any entry with the same ISBN.
func (a *Archive) SetBook(book *Book) error {
	if book == nil {
		return fmt.Errorf("book cannot be nil")
	}
	return a.books.Set(book.Copy())
}

// RemoveBook removes a book by ISBN.
func (a *Archive) RemoveBook(isbn string) error {
	return a.books.Delete(isbn)
}

// FindBookByISBN returns a copy of the book with the given (possibly
// unnormalized) ISBN.
func (a *Archive) FindBookByISBN(isbn string) (*Book, bool) {
	book, ok := a.books.Get(isbn)
	if !ok {
		return nil, false
	}
	return book.Copy(), true
}

// HasBook checks whether a book with the given ISBN exists.
func (a *Archive) HasBook(isbn string) bool {
	return a.books.Exists(isbn)
}

// Books returns copies of all books, in no particular order.
func (a *Archive) Books() []*Book {
	stored := a.books.List()
	books := make([]*Book, len(stored))
	for i, book := range stored {
		books[i] = book.Copy()
	}
	return books
}

// Users

// AddUser inserts a copy of the user. Fails if the code is already taken.
func (a *Archive) AddUser(user *User) error {
	if user == nil {
		return fmt.Errorf("user cannot be nil")
	}
	return a.users.Add(user.Copy())
}

// SetUser stores a copy of the user, replacing any entry with the same code.
func (a *Archive) SetUser(user *User) error {
	if user == nil {
		return fmt.Errorf("user cannot be nil")
	}
	return a.users.Set(user.Copy())
}

// RemoveUser removes a user by code.
func (a *Archive) RemoveUser(code string) error {
	return a.users.Delete(code)
}

// FindUserByCode returns a copy of the user with the given code.
func (a *Archive) FindUserByCode(code string) (*User, bool) {
	user, ok := a.users.Get(code)
	if !ok {
		return nil, false
	}
	return user.Copy(), true
}

// HasUser checks whether a user with the given code exists.
func (a *Archive) HasUser(code string) bool {
	return a.users.Exists(code)
}

// Users returns copies of all users, in no particular order.
func (a *Archive) Users() []*User {
	stored := a.users.List()
	users := make([]*User, len(stored))
	for i, user := range stored {
		users[i] = user.Copy()
	}
	return users
}

// Loans

// GenerateLoanID returns the next loan ID and advances the counter. IDs are
// strictly increasing and never reused, including across snapshot round-trips.
func (a *Archive) GenerateLoanID() int64 {
	a.mu.Lock()
	id := a.nextLoanID
	a.nextLoanID++
	a.mu.Unlock()
	return id
}

// NextLoanID returns the counter value without advancing it.
func (a *Archive) NextLoanID() int64 {
	a.mu.Lock()
	id := a.nextLoanID
	a.mu.Unlock()
	return id
}

// AddLoan creates an open loan for the given user and book, stamping the loan
// date and assigning the next ID. It returns a copy of the created loan.
// The archive does not check availability or loan caps; those rules belong to
// the loan service.
func (a *Archive) AddLoan(userCode, bookISBN string, loanDate, dueDate utc.Time) (*Loan, error) {
	if userCode == "" {
		return nil, fmt.Errorf("user code cannot be empty")
	}
	if bookISBN == "" {
		return nil, fmt.Errorf("book ISBN cannot be empty")
	}

	loan := &Loan{
		ID:       a.GenerateLoanID(),
		UserCode: userCode,
		BookISBN: NormalizeISBN(bookISBN),
		LoanDate: loanDate,
		DueDate:  dueDate,
	}
	if err := a.loans.Add(loan); err != nil {
		return nil, err
	}
	return loan.Copy(), nil
}

// SetLoan stores a copy of the loan, replacing any entry with the same ID.
func (a *Archive) SetLoan(loan *Loan) error {
	if loan == nil {
		return fmt.Errorf("loan cannot be nil")
	}
	return a.loans.Set(loan.Copy())
}

// RemoveLoan removes a loan by ID.
func (a *Archive) RemoveLoan(id int64) error {
	return a.loans.Delete(id)
}

// FindLoanByID returns a copy of the loan with the given ID.
func (a *Archive) FindLoanByID(id int64) (*Loan, bool) {
	loan, ok := a.loans.Get(id)
	if !ok {
		return nil, false
	}
	return loan.Copy(), true
}

// FindLoansByUser returns copies of all loans held by the given user code.
func (a *Archive) FindLoansByUser(code string) []*Loan {
	return a.filterLoans(func(loan *Loan) bool {
		return loan.UserCode == code
	})
}

// FindLoansByBook returns copies of all loans against the given ISBN.
func (a *Archive) FindLoansByBook(isbn string) []*Loan {
	key := NormalizeISBN(isbn)
	return a.filterLoans(func(loan *Loan) bool {
		return loan.BookISBN == key
	})
}

// ActiveLoans returns copies of all loans not yet returned.
func (a *Archive) ActiveLoans() []*Loan {
	return a.filterLoans((*Loan).Active)
}

// ReturnedLoans returns copies of all closed loans.
func (a *Archive) ReturnedLoans() []*Loan {
	return a.filterLoans((*Loan).Returned)
}

// Loans returns copies of all loans, in no particular order.
func (a *Archive) Loans() []*Loan {
	return a.filterLoans(func(*Loan) bool { return true })
}

// CountActiveLoansByUser counts the user's open loans from the loan index.
func (a *Archive) CountActiveLoansByUser(code string) int {
	count := 0
	a.loans.ForEach(func(_ int64, loan *Loan) bool {
		if loan.Active() && loan.UserCode == code {
			count++
		}
		return true
	})
	return count
}

// HasActiveLoanForBook reports whether any open loan references the ISBN.
func (a *Archive) HasActiveLoanForBook(isbn string) bool {
	key := NormalizeISBN(isbn)
	found := false
	a.loans.ForEach(func(_ int64, loan *Loan) bool {
		if loan.Active() && loan.BookISBN == key {
			found = true
			return false
		}
		return true
	})
	return found
}

// HasActiveLoanForUser reports whether any open loan references the user code.
func (a *Archive) HasActiveLoanForUser(code string) bool {
	found := false
	a.loans.ForEach(func(_ int64, loan *Loan) bool {
		if loan.Active() && loan.UserCode == code {
			found = true
			return false
		}
		return true
	})
	return found
}

func (a *Archive) filterLoans(keep func(*Loan) bool) []*Loan {
	loans := make([]*Loan, 0)
	a.loans.ForEach(func(_ int64, loan *Loan) bool {
		if keep(loan) {
			loans = append(loans, loan.Copy())
		}
		return true
	})
	return loans
}
