package library

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mattiajb/library-management-system-sub000/pkg/archive"
	"github.com/mattiajb/library-management-system-sub000/pkg/errors"
	"github.com/mattiajb/library-management-system-sub000/pkg/logging"
)

// UserService validates and commits user mutations and serves the read-side
// projections over users.
type UserService struct {
	client *client
}

// AddUser validates the user, checks code uniqueness against the archive,
// inserts them and persists the snapshot.
func (s *UserService) AddUser(user *archive.User) error {
	if err := s.validate(user); err != nil {
		return err
	}

	return s.client.commit(func(arc *archive.Archive) error {
		if arc.HasUser(user.Code) {
			return errors.NewMandatoryFieldError("code", "already registered")
		}
		if err := arc.AddUser(user); err != nil {
			return err
		}
		logging.Debug().Str("code", user.Code).Msg("User added")
		return nil
	})
}

// UpdateUser validates the edited user and replaces the archived entry with
// the same code. The code is the immutable identity: an update may only
// touch the record that already holds that code, so a caller constructing a
// new user with someone else's code cannot overwrite them through AddUser,
// and an update to an unregistered code is rejected outright.
func (s *UserService) UpdateUser(user *archive.User) error {
	if err := s.validate(user); err != nil {
		return err
	}

	return s.client.commit(func(arc *archive.Archive) error {
		if !arc.HasUser(user.Code) {
			return errors.NewNotFoundError("user", user.Code)
		}
		return arc.SetUser(user)
	})
}

// RemoveUser removes the user unless they still hold an open loan. The guard
// queries the archive's loan index, never a per-user cache.
func (s *UserService) RemoveUser(user *archive.User) error {
	if user == nil {
		return errors.NewMandatoryFieldError("user", "cannot be nil")
	}

	return s.client.commit(func(arc *archive.Archive) error {
		if !arc.HasUser(user.Code) {
			return errors.NewNotFoundError("user", user.Code)
		}
		if arc.HasActiveLoanForUser(user.Code) {
			return errors.NewActiveLoanError("user", user.Code)
		}
		if err := arc.RemoveUser(user.Code); err != nil {
			return err
		}
		logging.Debug().Str("code", user.Code).Msg("User removed")
		return nil
	})
}

// UsersSortedByLastName returns all users sorted by last name,
// case-insensitive. Blank last names sort first.
func (s *UserService) UsersSortedByLastName() ([]*archive.User, error) {
	arc, err := s.client.Archive()
	if err != nil {
		return nil, err
	}

	users := arc.Users()
	collator := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(users, func(i, j int) bool {
		return collator.CompareString(users[i].LastName, users[j].LastName) < 0
	})
	return users, nil
}

// SearchUsers matches the query case-insensitively against last name, first
// name, code and email. A blank query returns all users sorted by last name.
func (s *UserService) SearchUsers(query string) ([]*archive.User, error) {
	users, err := s.UsersSortedByLastName()
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return users, nil
	}

	matches := make([]*archive.User, 0)
	for _, user := range users {
		if userMatches(user, query) {
			matches = append(matches, user)
		}
	}
	return matches, nil
}

// validate checks the mandatory fields and the institutional email domain.
func (s *UserService) validate(user *archive.User) error {
	if user == nil {
		return errors.NewMandatoryFieldError("user", "cannot be nil")
	}
	if strings.TrimSpace(user.FirstName) == "" {
		return errors.NewMandatoryFieldError("firstName", "cannot be blank")
	}
	if strings.TrimSpace(user.LastName) == "" {
		return errors.NewMandatoryFieldError("lastName", "cannot be blank")
	}
	if strings.TrimSpace(user.Code) == "" {
		return errors.NewMandatoryFieldError("code", "cannot be blank")
	}
	if strings.TrimSpace(user.Email) == "" {
		return errors.NewMandatoryFieldError("email", "cannot be blank")
	}

	suffix := s.client.options.emailSuffix
	email := strings.ToLower(user.Email)
	if !strings.HasSuffix(email, strings.ToLower(suffix)) || len(email) <= len(suffix) {
		return errors.NewInvalidEmailError(user.Email, suffix)
	}
	return nil
}

func userMatches(user *archive.User, query string) bool {
	return strings.Contains(strings.ToLower(user.LastName), query) ||
		strings.Contains(strings.ToLower(user.FirstName), query) ||
		strings.Contains(strings.ToLower(user.Code), query) ||
		strings.Contains(strings.ToLower(user.Email), query)
}
