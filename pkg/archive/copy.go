package archive

// Copy creates a deep copy of the archive, including the loan ID counter.
// The staged-commit path in the facade mutates a copy and swaps it in only
// after a successful snapshot write.
func (a *Archive) Copy() *Archive {
	dup := New()

	a.books.ForEach(func(_ string, book *Book) bool {
		_ = dup.books.Set(book.Copy())
		return true
	})
	a.users.ForEach(func(_ string, user *User) bool {
		_ = dup.users.Set(user.Copy())
		return true
	})
	a.loans.ForEach(func(_ int64, loan *Loan) bool {
		_ = dup.loans.Set(loan.Copy())
		return true
	})

	a.mu.Lock()
	dup.nextLoanID = a.nextLoanID
	a.mu.Unlock()

	return dup
}
