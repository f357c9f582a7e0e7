package archive

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/mattiajb/library-management-system-sub000/pkg/constants"
	"github.com/mattiajb/library-management-system-sub000/pkg/errors"
)

// snapshot is the on-disk form of the whole archive graph. The file is
// rewritten wholesale after every committed mutation; there is no delta
// format and no schema versioning.
type snapshot struct {
	Books      []*Book `yaml:"books"`
	Users      []*User `yaml:"users"`
	Loans      []*Loan `yaml:"loans"`
	NextLoanID int64   `yaml:"next_loan_id"`
}

// LoadSnapshot reads the archive graph from path. A missing file yields a
// fresh empty archive; any other read or parse failure is returned wrapped.
func LoadSnapshot(path string) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, errors.WrapIO("read", path, err)
	}

	var snap snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}

	arc := New()
	for _, book := range snap.Books {
		_ = arc.books.Set(book)
	}
	for _, user := range snap.Users {
		_ = arc.users.Set(user)
	}
	for _, loan := range snap.Loans {
		_ = arc.loans.Set(loan)
	}
	if snap.NextLoanID > 0 {
		arc.nextLoanID = snap.NextLoanID
	}
	return arc, nil
}

// SaveSnapshot writes the whole archive graph to path, overwriting any
// existing content. Collections are sorted by identity key so the output is
// deterministic.
func (a *Archive) SaveSnapshot(path string) error {
	snap := snapshot{
		Books:      a.Books(),
		Users:      a.Users(),
		Loans:      a.Loans(),
		NextLoanID: a.NextLoanID(),
	}
	sort.Slice(snap.Books, func(i, j int) bool { return snap.Books[i].Key() < snap.Books[j].Key() })
	sort.Slice(snap.Users, func(i, j int) bool { return snap.Users[i].Code < snap.Users[j].Code })
	sort.Slice(snap.Loans, func(i, j int) bool { return snap.Loans[i].ID < snap.Loans[j].ID })

	data, err := yaml.Marshal(snap)
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
