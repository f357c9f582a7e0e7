package library

import (
	"sort"
	"strconv"

	"github.com/agentstation/utc"

	"github.com/mattiajb/library-management-system-sub000/pkg/archive"
	"github.com/mattiajb/library-management-system-sub000/pkg/constants"
	"github.com/mattiajb/library-management-system-sub000/pkg/errors"
	"github.com/mattiajb/library-management-system-sub000/pkg/logging"
)

// LoanService commits the loan state machine (Active -> Closed, one-way) and
// serves the read-side projections over loans.
type LoanService struct {
	client *client
}

// RegisterLoan opens a loan of one copy of the book to the user. Guards run
// in order: availability, then the per-user loan cap, then due-date sanity;
// each is checked against the archive's loan index, not any cached view. On
// success the book's available copies drop by exactly one, the loan and the
// copy count are committed together, and the created loan is returned.
func (s *LoanService) RegisterLoan(user *archive.User, book *archive.Book, dueDate utc.Time) (*archive.Loan, error) {
	if user == nil {
		return nil, errors.NewMandatoryFieldError("user", "cannot be nil")
	}
	if book == nil {
		return nil, errors.NewMandatoryFieldError("book", "cannot be nil")
	}
	if dueDate.IsZero() {
		return nil, errors.NewMandatoryFieldError("dueDate", "cannot be empty")
	}

	var created *archive.Loan
	err := s.client.commit(func(arc *archive.Archive) error {
		stored, ok := arc.FindBookByISBN(book.ISBN)
		if !ok {
			return errors.NewNotFoundError("book", book.ISBN)
		}
		if !arc.HasUser(user.Code) {
			return errors.NewNotFoundError("user", user.Code)
		}

		if stored.AvailableCopies == 0 {
			return errors.NewNoAvailableCopiesError(stored.ISBN, stored.Title)
		}
		if arc.CountActiveLoansByUser(user.Code) >= constants.MaxActiveLoans {
			return errors.NewMaxLoansReachedError(user.Code, constants.MaxActiveLoans)
		}
		today := s.client.now()
		if beforeDay(dueDate, today) {
			return errors.NewMandatoryFieldError("dueDate", "cannot be in the past")
		}

		loan, err := arc.AddLoan(user.Code, stored.ISBN, today, dueDate)
		if err != nil {
			return err
		}

		stored.AvailableCopies--
		if err := arc.SetBook(stored); err != nil {
			return err
		}

		created = loan
		logging.Debug().
			Int64("loan_id", loan.ID).
			Str("user", user.Code).
			Str("isbn", stored.ISBN).
			Int("available", stored.AvailableCopies).
			Msg("Loan registered")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ReturnLoan closes an open loan, stamps today's return date and puts the
// book's copy back in circulation. Returning an already-closed loan fails
// and never double-increments the available copies.
func (s *LoanService) ReturnLoan(loan *archive.Loan) error {
	if loan == nil {
		return errors.NewMandatoryFieldError("loan", "cannot be nil")
	}

	return s.client.commit(func(arc *archive.Archive) error {
		stored, ok := arc.FindLoanByID(loan.ID)
		if !ok {
			return errors.NewNotFoundError("loan", formatLoanID(loan.ID))
		}
		if stored.Returned() {
			return errors.NewMandatoryFieldError("loan", "already returned")
		}

		today := s.client.now()
		stored.ReturnDate = &today
		if err := arc.SetLoan(stored); err != nil {
			return err
		}

		if book, ok := arc.FindBookByISBN(stored.BookISBN); ok {
			book.AvailableCopies++
			if err := arc.SetBook(book); err != nil {
				return err
			}
		}

		logging.Debug().Int64("loan_id", stored.ID).Str("user", stored.UserCode).Msg("Loan returned")
		return nil
	})
}

// Late reports whether the loan is overdue: active with a due date on an
// earlier calendar day than today. Nil, closed and undated loans are never
// late.
func (s *LoanService) Late(loan *archive.Loan) bool {
	if loan == nil || !loan.Active() || loan.DueDate.IsZero() {
		return false
	}
	return beforeDay(loan.DueDate, s.client.now())
}

// ActiveLoans returns all open loans sorted ascending by due date, undated
// last.
func (s *LoanService) ActiveLoans() ([]*archive.Loan, error) {
	arc, err := s.client.Archive()
	if err != nil {
		return nil, err
	}
	return sortByDueDate(arc.ActiveLoans()), nil
}

// LoansSortedByDueDate returns every loan, open and closed, sorted ascending
// by due date, undated last.
func (s *LoanService) LoansSortedByDueDate() ([]*archive.Loan, error) {
	arc, err := s.client.Archive()
	if err != nil {
		return nil, err
	}
	return sortByDueDate(arc.Loans()), nil
}

// OverdueLoans returns the open loans whose due date has passed, sorted
// ascending by due date.
func (s *LoanService) OverdueLoans() ([]*archive.Loan, error) {
	loans, err := s.ActiveLoans()
	if err != nil {
		return nil, err
	}

	overdue := make([]*archive.Loan, 0)
	for _, loan := range loans {
		if s.Late(loan) {
			overdue = append(overdue, loan)
		}
	}
	return overdue, nil
}

func sortByDueDate(loans []*archive.Loan) []*archive.Loan {
	sort.SliceStable(loans, func(i, j int) bool {
		a, b := loans[i].DueDate, loans[j].DueDate
		switch {
		case a.IsZero():
			return false
		case b.IsZero():
			return true
		default:
			return a.Before(b)
		}
	})
	return loans
}

func formatLoanID(id int64) string {
	return strconv.FormatInt(id, 10)
}
