package archive

import (
	"github.com/agentstation/utc"
)

// Loan records one lending of one copy of a book to a user. Identity and
// equality are by ID, assigned by the archive and never reused. The loan
// references its user and book by identity key so the snapshot graph stays
// acyclic.
//
// A loan is active iff ReturnDate is nil. There is no separate status flag;
// the return date is the single source of truth for the Active/Closed state.
type Loan struct {
	ID         int64     `json:"id" yaml:"id"`
	UserCode   string    `json:"user_code" yaml:"user_code"`
	BookISBN   string    `json:"book_isbn" yaml:"book_isbn"`
	LoanDate   utc.Time  `json:"loan_date" yaml:"loan_date"`
	DueDate    utc.Time  `json:"due_date" yaml:"due_date"`
	ReturnDate *utc.Time `json:"return_date,omitempty" yaml:"return_date,omitempty"`
}

// Active reports whether the loan is still open.
func (l *Loan) Active() bool {
	return l != nil && l.ReturnDate == nil
}

// Returned reports whether the loan has been closed.
func (l *Loan) Returned() bool {
	return l != nil && l.ReturnDate != nil
}

// Equal reports whether other identifies the same loan.
func (l *Loan) Equal(other *Loan) bool {
	if l == nil || other == nil {
		return l == other
	}
	return l.ID == other.ID
}

// Copy returns a deep copy of the loan.
func (l *Loan) Copy() *Loan {
	if l == nil {
		return nil
	}
	dup := *l
	if l.ReturnDate != nil {
		returned := *l.ReturnDate
		dup.ReturnDate = &returned
	}
	return &dup
}
