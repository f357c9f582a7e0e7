// Package errors provides custom error types for the library system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the library system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrMandatoryField indicates that a required field is missing or invalid
	ErrMandatoryField = errors.New("mandatory field")

	// ErrInvalidISBN indicates that an ISBN is malformed or already in use
	ErrInvalidISBN = errors.New("invalid ISBN")

	// ErrInvalidEmail indicates that an email fails the institutional domain rule
	ErrInvalidEmail = errors.New("invalid email")

	// ErrNoAvailableCopies indicates a loan request on a book with no free copies
	ErrNoAvailableCopies = errors.New("no available copies")

	// ErrMaxLoansReached indicates that a user is already at the active loan cap
	ErrMaxLoansReached = errors.New("max loans reached")

	// ErrActiveLoan indicates a deletion blocked by a still-open loan
	ErrActiveLoan = errors.New("active loan")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// MandatoryFieldError represents a missing or out-of-range required field
type MandatoryFieldError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *MandatoryFieldError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("mandatory field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("mandatory field: %s", e.Message)
}

// Is implements errors.Is support
func (e *MandatoryFieldError) Is(target error) bool {
	return target == ErrMandatoryField
}

// NewMandatoryFieldError creates a new MandatoryFieldError
func NewMandatoryFieldError(field, message string) *MandatoryFieldError {
	return &MandatoryFieldError{Field: field, Message: message}
}

// InvalidISBNError represents an ISBN that fails format rules or collides
// with an existing catalog entry
type InvalidISBNError struct {
	ISBN    string
	Message string
}

// Error implements the error interface
func (e *InvalidISBNError) Error() string {
	return fmt.Sprintf("invalid ISBN %q: %s", e.ISBN, e.Message)
}

// Is implements errors.Is support
func (e *InvalidISBNError) Is(target error) bool {
	return target == ErrInvalidISBN
}

// NewInvalidISBNError creates a new InvalidISBNError
func NewInvalidISBNError(isbn, message string) *InvalidISBNError {
	return &InvalidISBNError{ISBN: isbn, Message: message}
}

// InvalidEmailError represents an email outside the institutional domain
type InvalidEmailError struct {
	Email  string
	Suffix string
}

// Error implements the error interface
func (e *InvalidEmailError) Error() string {
	return fmt.Sprintf("invalid email %q: must end with %s", e.Email, e.Suffix)
}

// Is implements errors.Is support
func (e *InvalidEmailError) Is(target error) bool {
	return target == ErrInvalidEmail
}

// NewInvalidEmailError creates a new InvalidEmailError
func NewInvalidEmailError(email, suffix string) *InvalidEmailError {
	return &InvalidEmailError{Email: email, Suffix: suffix}
}

// NoAvailableCopiesError represents a loan request on a fully lent-out book
type NoAvailableCopiesError struct {
	ISBN  string
	Title string
}

// Error implements the error interface
func (e *NoAvailableCopiesError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("no available copies of %q (ISBN %s)", e.Title, e.ISBN)
	}
	return fmt.Sprintf("no available copies of ISBN %s", e.ISBN)
}

// Is implements errors.Is support
func (e *NoAvailableCopiesError) Is(target error) bool {
	return target == ErrNoAvailableCopies
}

// NewNoAvailableCopiesError creates a new NoAvailableCopiesError
func NewNoAvailableCopiesError(isbn, title string) *NoAvailableCopiesError {
	return &NoAvailableCopiesError{ISBN: isbn, Title: title}
}

// MaxLoansReachedError represents a user already holding the maximum number
// of active loans
type MaxLoansReachedError struct {
	Code  string
	Limit int
}

// Error implements the error interface
func (e *MaxLoansReachedError) Error() string {
	return fmt.Sprintf("user %s already has %d active loans", e.Code, e.Limit)
}

// Is implements errors.Is support
func (e *MaxLoansReachedError) Is(target error) bool {
	return target == ErrMaxLoansReached
}

// NewMaxLoansReachedError creates a new MaxLoansReachedError
func NewMaxLoansReachedError(code string, limit int) *MaxLoansReachedError {
	return &MaxLoansReachedError{Code: code, Limit: limit}
}

// ActiveLoanError represents a Book or User deletion blocked by an open loan
type ActiveLoanError struct {
	Resource string // "book" or "user"
	ID       string
}

// Error implements the error interface
func (e *ActiveLoanError) Error() string {
	return fmt.Sprintf("%s %s has an active loan", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *ActiveLoanError) Is(target error) bool {
	return target == ErrActiveLoan
}

// NewActiveLoanError creates a new ActiveLoanError
func NewActiveLoanError(resource, id string) *ActiveLoanError {
	return &ActiveLoanError{Resource: resource, ID: id}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "yaml", "json", etc.
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "delete"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsMandatoryField checks if an error is a mandatory field violation
func IsMandatoryField(err error) bool {
	return errors.Is(err, ErrMandatoryField)
}

// IsInvalidISBN checks if an error is an ISBN format or uniqueness violation
func IsInvalidISBN(err error) bool {
	return errors.Is(err, ErrInvalidISBN)
}

// IsInvalidEmail checks if an error is an institutional email violation
func IsInvalidEmail(err error) bool {
	return errors.Is(err, ErrInvalidEmail)
}

// IsNoAvailableCopies checks if an error is an availability violation
func IsNoAvailableCopies(err error) bool {
	return errors.Is(err, ErrNoAvailableCopies)
}

// IsMaxLoansReached checks if an error is a loan cap violation
func IsMaxLoansReached(err error) bool {
	return errors.Is(err, ErrMaxLoansReached)
}

// IsActiveLoan checks if an error is a deletion guard violation
func IsActiveLoan(err error) bool {
	return errors.Is(err, ErrActiveLoan)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
