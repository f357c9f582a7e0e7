package library_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	library "github.com/mattiajb/library-management-system-sub000"
	"github.com/mattiajb/library-management-system-sub000/pkg/archive"
	pkgerrors "github.com/mattiajb/library-management-system-sub000/pkg/errors"
)

func seedLoanFixture(t *testing.T) (library.Client, *testClock) {
	t.Helper()
	lib, clock := newTestClient(t)
	require.NoError(t, lib.Books().AddBook(testBook()))
	require.NoError(t, lib.Users().AddUser(testUser()))
	return lib, clock
}

func TestRegisterLoanMandatoryFields(t *testing.T) {
	lib, clock := seedLoanFixture(t)
	loans := lib.Loans()

	_, err := loans.RegisterLoan(nil, testBook(), clock.Plus(7))
	assert.True(t, pkgerrors.IsMandatoryField(err))

	_, err = loans.RegisterLoan(testUser(), nil, clock.Plus(7))
	assert.True(t, pkgerrors.IsMandatoryField(err))

	_, err = loans.RegisterLoan(testUser(), testBook(), utc.Time{})
	assert.True(t, pkgerrors.IsMandatoryField(err))
}

func TestRegisterLoanUnknownEntities(t *testing.T) {
	lib, clock := seedLoanFixture(t)

	ghost := archive.NewUser("Gianni", "Verdi", "gianni.verdi@campus.edu", "S999999")
	_, err := lib.Loans().RegisterLoan(ghost, testBook(), clock.Plus(7))
	assert.True(t, pkgerrors.IsNotFound(err))

	unknown := archive.NewBook("Ghost", []string{"Nobody"}, 2000, "9780134190440", 1)
	_, err = lib.Loans().RegisterLoan(testUser(), unknown, clock.Plus(7))
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestRegisterLoanStampsAndDecrements(t *testing.T) {
	lib, clock := seedLoanFixture(t)

	loan, err := lib.Loans().RegisterLoan(testUser(), testBook(), clock.Plus(7))
	require.NoError(t, err)

	assert.Equal(t, int64(1), loan.ID)
	assert.Equal(t, "S123456", loan.UserCode)
	assert.Equal(t, "9780132350884", loan.BookISBN)
	assert.True(t, loan.Active())
	assert.Equal(t, clock.Now().Format(time.RFC3339), loan.LoanDate.Format(time.RFC3339))

	arc, err := lib.Archive()
	require.NoError(t, err)
	book, ok := arc.FindBookByISBN("9780132350884")
	require.True(t, ok)
	assert.Equal(t, 2, book.AvailableCopies)
	assert.Equal(t, 3, book.TotalCopies)
}

func TestRegisterLoanDueToday(t *testing.T) {
	lib, clock := seedLoanFixture(t)

	// Due today is allowed; only strictly-past due dates are rejected.
	_, err := lib.Loans().RegisterLoan(testUser(), testBook(), clock.Now())
	assert.NoError(t, err)

	_, err = lib.Loans().RegisterLoan(testUser(), testBook(), clock.Plus(-1))
	assert.True(t, pkgerrors.IsMandatoryField(err))
}

// Scenario: the last copy goes out, then the next request is rejected.
func TestRegisterLoanExhaustsAvailability(t *testing.T) {
	lib, clock := newTestClient(t)
	single := archive.NewBook("Designing Data-Intensive Applications", []string{"Martin Kleppmann"}, 2017, "9781449373320", 1)
	require.NoError(t, lib.Books().AddBook(single))
	require.NoError(t, lib.Users().AddUser(testUser()))
	other := archive.NewUser("Maria", "Bianchi", "maria.bianchi@campus.edu", "S654321")
	require.NoError(t, lib.Users().AddUser(other))

	_, err := lib.Loans().RegisterLoan(testUser(), single, clock.Plus(7))
	require.NoError(t, err)

	arc, aerr := lib.Archive()
	require.NoError(t, aerr)
	book, _ := arc.FindBookByISBN("9781449373320")
	assert.Equal(t, 0, book.AvailableCopies)

	_, err = lib.Loans().RegisterLoan(other, single, clock.Plus(7))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNoAvailableCopies(err))
}

// Scenario: a user with three open loans cannot take a fourth, whatever the book.
func TestRegisterLoanCap(t *testing.T) {
	lib, clock := newTestClient(t)
	require.NoError(t, lib.Users().AddUser(testUser()))

	isbns := []string{"9780132350884", "9780201616224", "9781449373320", "9780134190440"}
	for i, isbn := range isbns {
		book := archive.NewBook(fmt.Sprintf("Volume %d", i+1), []string{"Prolific Author"}, 2010, isbn, 2)
		require.NoError(t, lib.Books().AddBook(book))
	}

	for _, isbn := range isbns[:3] {
		_, err := lib.Loans().RegisterLoan(testUser(), &archive.Book{ISBN: isbn}, clock.Plus(7))
		require.NoError(t, err)
	}

	_, err := lib.Loans().RegisterLoan(testUser(), &archive.Book{ISBN: isbns[3]}, clock.Plus(7))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsMaxLoansReached(err))

	arc, aerr := lib.Archive()
	require.NoError(t, aerr)
	assert.Equal(t, 3, arc.CountActiveLoansByUser("S123456"))

	// Returning one frees a slot.
	active := arc.FindLoansByUser("S123456")
	require.NotEmpty(t, active)
	require.NoError(t, lib.Loans().ReturnLoan(active[0]))

	_, err = lib.Loans().RegisterLoan(testUser(), &archive.Book{ISBN: isbns[3]}, clock.Plus(7))
	assert.NoError(t, err)
}

// Guard order: availability is reported before the loan cap.
func TestRegisterLoanGuardOrder(t *testing.T) {
	lib, clock := newTestClient(t)
	require.NoError(t, lib.Users().AddUser(testUser()))
	other := archive.NewUser("Maria", "Bianchi", "maria.bianchi@campus.edu", "S654321")
	require.NoError(t, lib.Users().AddUser(other))

	isbns := []string{"9780132350884", "9780201616224", "9781449373320"}
	for i, isbn := range isbns {
		book := archive.NewBook(fmt.Sprintf("Volume %d", i+1), []string{"Prolific Author"}, 2010, isbn, 1)
		require.NoError(t, lib.Books().AddBook(book))
	}
	contested := archive.NewBook("Contested", []string{"Prolific Author"}, 2010, "9780134190440", 1)
	require.NoError(t, lib.Books().AddBook(contested))

	for _, isbn := range isbns {
		_, err := lib.Loans().RegisterLoan(testUser(), &archive.Book{ISBN: isbn}, clock.Plus(7))
		require.NoError(t, err)
	}
	_, err := lib.Loans().RegisterLoan(other, contested, clock.Plus(7))
	require.NoError(t, err)

	// testUser is at the cap AND the book has no copies AND the due date is
	// past: availability must win, then the cap, then the date.
	_, err = lib.Loans().RegisterLoan(testUser(), contested, clock.Plus(-1))
	assert.True(t, pkgerrors.IsNoAvailableCopies(err))

	// With copies available the cap is reported next.
	roomy := archive.NewBook("Roomy", []string{"Prolific Author"}, 2010, "9788804668236", 5)
	require.NoError(t, lib.Books().AddBook(roomy))
	_, err = lib.Loans().RegisterLoan(testUser(), roomy, clock.Plus(-1))
	assert.True(t, pkgerrors.IsMaxLoansReached(err))

	// And only then the due date.
	_, err = lib.Loans().RegisterLoan(other, roomy, clock.Plus(-1))
	assert.True(t, pkgerrors.IsMandatoryField(err))
}

func TestReturnLoan(t *testing.T) {
	lib, clock := seedLoanFixture(t)

	loan, err := lib.Loans().RegisterLoan(testUser(), testBook(), clock.Plus(7))
	require.NoError(t, err)

	t.Run("nil loan", func(t *testing.T) {
		assert.True(t, pkgerrors.IsMandatoryField(lib.Loans().ReturnLoan(nil)))
	})

	t.Run("unknown loan", func(t *testing.T) {
		assert.True(t, pkgerrors.IsNotFound(lib.Loans().ReturnLoan(&archive.Loan{ID: 999})))
	})

	t.Run("closes and increments exactly once", func(t *testing.T) {
		clock.Advance(3)
		require.NoError(t, lib.Loans().ReturnLoan(loan))

		arc, err := lib.Archive()
		require.NoError(t, err)

		stored, ok := arc.FindLoanByID(loan.ID)
		require.True(t, ok)
		require.True(t, stored.Returned())
		assert.Equal(t, clock.Now().Format(time.RFC3339), stored.ReturnDate.Format(time.RFC3339))

		book, _ := arc.FindBookByISBN("9780132350884")
		assert.Equal(t, 3, book.AvailableCopies)
	})

	t.Run("second return fails and never double-increments", func(t *testing.T) {
		err := lib.Loans().ReturnLoan(loan)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsMandatoryField(err))

		arc, aerr := lib.Archive()
		require.NoError(t, aerr)
		book, _ := arc.FindBookByISBN("9780132350884")
		assert.Equal(t, 3, book.AvailableCopies)
	})
}

// Availability stays within [0, total] across register/return pairs.
func TestCopyCountInvariant(t *testing.T) {
	lib, clock := seedLoanFixture(t)

	checkInvariant := func() {
		arc, err := lib.Archive()
		require.NoError(t, err)
		book, ok := arc.FindBookByISBN("9780132350884")
		require.True(t, ok)
		assert.GreaterOrEqual(t, book.AvailableCopies, 0)
		assert.LessOrEqual(t, book.AvailableCopies, book.TotalCopies)
	}

	checkInvariant()
	for i := 0; i < 3; i++ {
		loan, err := lib.Loans().RegisterLoan(testUser(), testBook(), clock.Plus(7))
		require.NoError(t, err)
		checkInvariant()
		require.NoError(t, lib.Loans().ReturnLoan(loan))
		checkInvariant()
	}
}

func TestLate(t *testing.T) {
	lib, clock := seedLoanFixture(t)
	loans := lib.Loans()

	t.Run("nil loan is never late", func(t *testing.T) {
		assert.False(t, loans.Late(nil))
	})

	t.Run("fresh loan due tomorrow is not late", func(t *testing.T) {
		loan, err := loans.RegisterLoan(testUser(), testBook(), clock.Plus(1))
		require.NoError(t, err)
		assert.False(t, loans.Late(loan))

		// On the due day itself the loan is still on time.
		clock.Advance(1)
		assert.False(t, loans.Late(loan))

		// The day after, it is late.
		clock.Advance(1)
		assert.True(t, loans.Late(loan))

		// A closed loan is never late, however overdue it was.
		require.NoError(t, loans.ReturnLoan(loan))
		closed := loan.Copy()
		returned := clock.Now()
		closed.ReturnDate = &returned
		assert.False(t, loans.Late(closed))
	})
}

func TestLoanProjections(t *testing.T) {
	lib, clock := newTestClient(t)
	require.NoError(t, lib.Users().AddUser(testUser()))

	dues := map[string]int{
		"9780132350884": 14,
		"9780201616224": 7,
		"9781449373320": 21,
	}
	for isbn, days := range dues {
		book := archive.NewBook("Title "+isbn, []string{"Author"}, 2010, isbn, 1)
		require.NoError(t, lib.Books().AddBook(book))
		_, err := lib.Loans().RegisterLoan(testUser(), book, clock.Plus(days))
		require.NoError(t, err)
	}

	t.Run("active loans ascending by due date", func(t *testing.T) {
		active, err := lib.Loans().ActiveLoans()
		require.NoError(t, err)
		require.Len(t, active, 3)
		assert.Equal(t, "9780201616224", active[0].BookISBN)
		assert.Equal(t, "9780132350884", active[1].BookISBN)
		assert.Equal(t, "9781449373320", active[2].BookISBN)
	})

	t.Run("returned loans drop out of the active view", func(t *testing.T) {
		active, err := lib.Loans().ActiveLoans()
		require.NoError(t, err)
		require.NoError(t, lib.Loans().ReturnLoan(active[0]))

		active, err = lib.Loans().ActiveLoans()
		require.NoError(t, err)
		assert.Len(t, active, 2)

		all, err := lib.Loans().LoansSortedByDueDate()
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("overdue view", func(t *testing.T) {
		overdue, err := lib.Loans().OverdueLoans()
		require.NoError(t, err)
		assert.Empty(t, overdue)

		clock.Advance(15)
		overdue, err = lib.Loans().OverdueLoans()
		require.NoError(t, err)
		require.Len(t, overdue, 1)
		assert.Equal(t, "9780132350884", overdue[0].BookISBN)
	})
}
