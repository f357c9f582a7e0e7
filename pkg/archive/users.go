package archive

import (
	"fmt"
	"maps"
	"sync"
)

// Users is a concurrent safe map of users keyed by institutional code.
type Users struct {
	mu    sync.RWMutex
	users map[string]*User
}

// NewUsers creates a new Users map.
func NewUsers() *Users {
	return &Users{
		users: make(map[string]*User),
	}
}

// Get returns a user by code and whether it exists.
func (u *Users) Get(code string) (*User, bool) {
	u.mu.RLock()
	user, ok := u.users[code]
	u.mu.RUnlock()
	return user, ok
}

// Set sets a user by code (upsert). Returns an error if user is nil.
func (u *Users) Set(user *User) error {
	if user == nil {
		return fmt.Errorf("user cannot be nil")
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	u.users[user.Code] = user
	return nil
}

// Add adds a user, returning an error if the code is already taken.
func (u *Users) Add(user *User) error {
	if user == nil {
		return fmt.Errorf("user cannot be nil")
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if _, exists := u.users[user.Code]; exists {
		return fmt.Errorf("user with code %s already exists", user.Code)
	}

	u.users[user.Code] = user
	return nil
}

// Delete removes a user by code. Returns an error if the user doesn't exist.
func (u *Users) Delete(code string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if _, exists := u.users[code]; !exists {
		return fmt.Errorf("user with code %s not found", code)
	}

	delete(u.users, code)
	return nil
}

// Exists checks if a user exists without returning it.
func (u *Users) Exists(code string) bool {
	u.mu.RLock()
	_, exists := u.users[code]
	u.mu.RUnlock()
	return exists
}

// Len returns the number of users.
func (u *Users) Len() int {
	u.mu.RLock()
	length := len(u.users)
	u.mu.RUnlock()
	return length
}

// List returns a slice of all users.
func (u *Users) List() []*User {
	u.mu.RLock()
	users := make([]*User, 0, len(u.users))
	for _, user := range u.users {
		users = append(users, user)
	}
	u.mu.RUnlock()
	return users
}

// Map returns a copy of the underlying map.
func (u *Users) Map() map[string]*User {
	u.mu.RLock()
	defer u.mu.RUnlock()

	result := make(map[string]*User, len(u.users))
	maps.Copy(result, u.users)
	return result
}

// ForEach applies a function to each user. The function should not modify the
// user. If the function returns false, iteration stops early.
func (u *Users) ForEach(fn func(code string, user *User) bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	for code, user := range u.users {
		if !fn(code, user) {
			break
		}
	}
}

// Clear removes all users.
func (u *Users) Clear() {
	u.mu.Lock()
	defer u.mu.Unlock()
	for k := range u.users {
		delete(u.users, k)
	}
}
