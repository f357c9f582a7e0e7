package archive

// User represents a registered borrower. Identity and equality are by the
// institutional code (matricola). Active loans are not cached on the user;
// the archive's loan index is the single source of truth and per-user views
// are derived from it on demand.
type User struct {
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
	Email     string `json:"email" yaml:"email"`
	Code      string `json:"code" yaml:"code"`
}

// NewUser creates a user.
func NewUser(firstName, lastName, email, code string) *User {
	return &User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Code:      code,
	}
}

// Equal reports whether other identifies the same user.
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.Code == other.Code
}

// Copy returns a copy of the user.
func (u *User) Copy() *User {
	if u == nil {
		return nil
	}
	dup := *u
	return &dup
}
