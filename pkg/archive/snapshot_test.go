package archive

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/mattiajb/library-management-system-sub000/pkg/errors"
)

func TestSnapshotRoundTrip(t *testing.T) {
	arc := New()
	require.NoError(t, arc.AddBook(NewBook("Clean Code", []string{"Robert C. Martin"}, 2008, "9780132350884", 3)))
	require.NoError(t, arc.AddBook(NewBook("The Go Programming Language", []string{"Alan A. A. Donovan", "Brian W. Kernighan"}, 2015, "9780134190440", 1)))
	require.NoError(t, arc.AddUser(NewUser("Mario", "Rossi", "mario.rossi@campus.edu", "S123456")))
	require.NoError(t, arc.AddUser(NewUser("Maria", "Bianchi", "maria.bianchi@campus.edu", "S654321")))

	loan, err := arc.AddLoan("S123456", "9780132350884", day(2026, time.March, 1), day(2026, time.March, 31))
	require.NoError(t, err)
	closed, err := arc.AddLoan("S654321", "9780134190440", day(2026, time.February, 1), day(2026, time.March, 3))
	require.NoError(t, err)
	returned := day(2026, time.February, 20)
	closed.ReturnDate = &returned
	require.NoError(t, arc.SetLoan(closed))

	path := filepath.Join(t.TempDir(), "archive.yaml")
	require.NoError(t, arc.SaveSnapshot(path))

	loaded, err := LoadSnapshot(path)
	require.NoError(t, err)

	assert.Len(t, loaded.Books(), 2)
	assert.Len(t, loaded.Users(), 2)
	assert.Len(t, loaded.Loans(), 2)
	assert.Equal(t, arc.NextLoanID(), loaded.NextLoanID())

	book, ok := loaded.FindBookByISBN("9780132350884")
	require.True(t, ok)
	assert.Equal(t, "Clean Code", book.Title)
	assert.Equal(t, []string{"Robert C. Martin"}, book.Authors)
	assert.Equal(t, 3, book.AvailableCopies)

	user, ok := loaded.FindUserByCode("S654321")
	require.True(t, ok)
	assert.Equal(t, "Bianchi", user.LastName)

	open, ok := loaded.FindLoanByID(loan.ID)
	require.True(t, ok)
	assert.True(t, open.Active())
	assert.Equal(t, "S123456", open.UserCode)
	assert.Equal(t, loan.DueDate.Format(time.RFC3339), open.DueDate.Format(time.RFC3339))

	done, ok := loaded.FindLoanByID(closed.ID)
	require.True(t, ok)
	assert.True(t, done.Returned())
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.yaml")

	arc, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.Empty(t, arc.Books())
	assert.Empty(t, arc.Users())
	assert.Empty(t, arc.Loans())
	assert.Equal(t, int64(1), arc.NextLoanID())
}

func TestLoadSnapshotCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.yaml")
	require.NoError(t, os.WriteFile(path, []byte("books: [broken"), 0o644))

	_, err := LoadSnapshot(path)
	require.Error(t, err)

	var parseErr *pkgerrors.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestSaveSnapshotOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.yaml")

	arc := New()
	require.NoError(t, arc.AddBook(NewBook("Clean Code", []string{"Robert C. Martin"}, 2008, "9780132350884", 3)))
	require.NoError(t, arc.SaveSnapshot(path))

	require.NoError(t, arc.RemoveBook("9780132350884"))
	require.NoError(t, arc.SaveSnapshot(path))

	loaded, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.Empty(t, loaded.Books())
}

func TestSaveSnapshotCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "archive.yaml")

	require.NoError(t, New().SaveSnapshot(path))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestSaveSnapshotIOError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	// Parent "directory" is a regular file, so MkdirAll fails.
	err := New().SaveSnapshot(filepath.Join(blocker, "archive.yaml"))
	require.Error(t, err)

	var ioErr *pkgerrors.IOError
	assert.True(t, errors.As(err, &ioErr))
}
