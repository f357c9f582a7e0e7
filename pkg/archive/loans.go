package archive

import (
	"fmt"
	"maps"
	"sync"
)

// Loans is a concurrent safe map of loans keyed by loan ID.
type Loans struct {
	mu    sync.RWMutex
	loans map[int64]*Loan
}

// NewLoans creates a new Loans map.
func NewLoans() *Loans {
	return &Loans{
		loans: make(map[int64]*Loan),
	}
}

// Get returns a loan by ID and whether it exists.
func (l *Loans) Get(id int64) (*Loan, bool) {
	l.mu.RLock()
	loan, ok := l.loans[id]
	l.mu.RUnlock()
	return loan, ok
}

// Set sets a loan by ID (upsert). Returns an error if loan is nil.
func (l *Loans) Set(loan *Loan) error {
	if loan == nil {
		return fmt.Errorf("loan cannot be nil")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loans[loan.ID] = loan
	return nil
}

// Add adds a loan, returning an error if the ID is already taken.
func (l *Loans) Add(loan *Loan) error {
	if loan == nil {
		return fmt.Errorf("loan cannot be nil")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.loans[loan.ID]; exists {
		return fmt.Errorf("loan with ID %d already exists", loan.ID)
	}

	l.loans[loan.ID] = loan
	return nil
}

// Delete removes a loan by ID. Returns an error if the loan doesn't exist.
func (l *Loans) Delete(id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.loans[id]; !exists {
		return fmt.Errorf("loan with ID %d not found", id)
	}

	delete(l.loans, id)
	return nil
}

// Exists checks if a loan exists without returning it.
func (l *Loans) Exists(id int64) bool {
	l.mu.RLock()
	_, exists := l.loans[id]
	l.mu.RUnlock()
	return exists
}

// Len returns the number of loans.
func (l *Loans) Len() int {
	l.mu.RLock()
	length := len(l.loans)
	l.mu.RUnlock()
	return length
}

// List returns a slice of all loans.
func (l *Loans) List() []*Loan {
	l.mu.RLock()
	loans := make([]*Loan, 0, len(l.loans))
	for _, loan := range l.loans {
		loans = append(loans, loan)
	}
	l.mu.RUnlock()
	return loans
}

// Map returns a copy of the underlying map.
func (l *Loans) Map() map[int64]*Loan {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[int64]*Loan, len(l.loans))
	maps.Copy(result, l.loans)
	return result
}

// ForEach applies a function to each loan. The function should not modify the
// loan. If the function returns false, iteration stops early.
func (l *Loans) ForEach(fn func(id int64, loan *Loan) bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for id, loan := range l.loans {
		if !fn(id, loan) {
			break
		}
	}
}

// Clear removes all loans.
func (l *Loans) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for k := range l.loans {
		delete(l.loans, k)
	}
}
