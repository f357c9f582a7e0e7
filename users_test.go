package library_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	library "github.com/mattiajb/library-management-system-sub000"
	"github.com/mattiajb/library-management-system-sub000/pkg/archive"
	pkgerrors "github.com/mattiajb/library-management-system-sub000/pkg/errors"
)

func TestAddUserValidation(t *testing.T) {
	lib, _ := newTestClient(t)
	users := lib.Users()

	tests := []struct {
		name   string
		mutate func(*archive.User)
		check  func(error) bool
	}{
		{"nil user", nil, pkgerrors.IsMandatoryField},
		{"blank first name", func(u *archive.User) { u.FirstName = " " }, pkgerrors.IsMandatoryField},
		{"blank last name", func(u *archive.User) { u.LastName = "" }, pkgerrors.IsMandatoryField},
		{"blank code", func(u *archive.User) { u.Code = "" }, pkgerrors.IsMandatoryField},
		{"blank email", func(u *archive.User) { u.Email = "" }, pkgerrors.IsMandatoryField},
		{"wrong email domain", func(u *archive.User) { u.Email = "mario.rossi@gmail.com" }, pkgerrors.IsInvalidEmail},
		{"email is only the suffix", func(u *archive.User) { u.Email = "@campus.edu" }, pkgerrors.IsInvalidEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var user *archive.User
			if tt.mutate != nil {
				user = testUser()
				tt.mutate(user)
			}
			err := users.AddUser(user)
			require.Error(t, err)
			assert.True(t, tt.check(err), err)
		})
	}

	t.Run("valid user is accepted", func(t *testing.T) {
		require.NoError(t, users.AddUser(testUser()))
	})

	t.Run("email domain check is case-insensitive", func(t *testing.T) {
		user := archive.NewUser("Maria", "Bianchi", "Maria.Bianchi@CAMPUS.EDU", "S654321")
		assert.NoError(t, users.AddUser(user))
	})
}

func TestAddUserCodeUniqueness(t *testing.T) {
	lib, _ := newTestClient(t)
	users := lib.Users()

	require.NoError(t, users.AddUser(testUser()))

	impostor := archive.NewUser("Maria", "Bianchi", "maria.bianchi@campus.edu", "S123456")
	err := users.AddUser(impostor)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsMandatoryField(err))

	all, err := users.UsersSortedByLastName()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Rossi", all[0].LastName)
}

func TestUpdateUser(t *testing.T) {
	lib, _ := newTestClient(t)
	users := lib.Users()
	require.NoError(t, users.AddUser(testUser()))

	t.Run("edits are committed", func(t *testing.T) {
		edited := testUser()
		edited.LastName = "Rossi-Verdi"
		require.NoError(t, users.UpdateUser(edited))

		arc, err := lib.Archive()
		require.NoError(t, err)
		stored, ok := arc.FindUserByCode("S123456")
		require.True(t, ok)
		assert.Equal(t, "Rossi-Verdi", stored.LastName)
	})

	t.Run("unregistered code is rejected", func(t *testing.T) {
		ghost := archive.NewUser("Gianni", "Verdi", "gianni.verdi@campus.edu", "S999999")
		assert.True(t, pkgerrors.IsNotFound(users.UpdateUser(ghost)))
	})

	t.Run("validation still applies", func(t *testing.T) {
		bad := testUser()
		bad.Email = "mario@elsewhere.org"
		assert.True(t, pkgerrors.IsInvalidEmail(users.UpdateUser(bad)))
	})
}

func TestRemoveUser(t *testing.T) {
	lib, clock := newTestClient(t)

	require.NoError(t, lib.Books().AddBook(testBook()))
	require.NoError(t, lib.Users().AddUser(testUser()))

	t.Run("nil user", func(t *testing.T) {
		assert.True(t, pkgerrors.IsMandatoryField(lib.Users().RemoveUser(nil)))
	})

	t.Run("blocked while a loan is open", func(t *testing.T) {
		loan, err := lib.Loans().RegisterLoan(testUser(), testBook(), clock.Plus(7))
		require.NoError(t, err)

		err = lib.Users().RemoveUser(testUser())
		assert.True(t, pkgerrors.IsActiveLoan(err))

		require.NoError(t, lib.Loans().ReturnLoan(loan))
		assert.NoError(t, lib.Users().RemoveUser(testUser()))
	})
}

func TestUserProjections(t *testing.T) {
	lib, _ := newTestClient(t)
	for _, user := range []*archive.User{
		archive.NewUser("Mario", "rossi", "mario.rossi@campus.edu", "S111111"),
		archive.NewUser("Maria", "Bianchi", "maria.bianchi@campus.edu", "S222222"),
		archive.NewUser("Gianni", "Verdi", "gianni.verdi@campus.edu", "S333333"),
	} {
		require.NoError(t, lib.Users().AddUser(user))
	}

	t.Run("sorted by last name is case-insensitive", func(t *testing.T) {
		users, err := lib.Users().UsersSortedByLastName()
		require.NoError(t, err)
		require.Len(t, users, 3)
		assert.Equal(t, "Bianchi", users[0].LastName)
		assert.Equal(t, "rossi", users[1].LastName)
		assert.Equal(t, "Verdi", users[2].LastName)
	})

	t.Run("search across all fields", func(t *testing.T) {
		byCode, err := lib.Users().SearchUsers("s22")
		require.NoError(t, err)
		require.Len(t, byCode, 1)
		assert.Equal(t, "Bianchi", byCode[0].LastName)

		byEmail, err := lib.Users().SearchUsers("gianni.verdi@")
		require.NoError(t, err)
		assert.Len(t, byEmail, 1)

		byFirst, err := lib.Users().SearchUsers("MARIA")
		require.NoError(t, err)
		assert.Len(t, byFirst, 1)
	})

	t.Run("blank query returns everyone", func(t *testing.T) {
		users, err := lib.Users().SearchUsers("")
		require.NoError(t, err)
		assert.Len(t, users, 3)
	})

	t.Run("no match returns empty non-nil slice", func(t *testing.T) {
		users, err := lib.Users().SearchUsers("nobody")
		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)
	})
}

func TestCustomEmailSuffix(t *testing.T) {
	lib, err := library.New(library.WithEmailSuffix("@studenti.unimi.it"))
	require.NoError(t, err)

	rejected := archive.NewUser("Mario", "Rossi", "mario.rossi@campus.edu", "S123456")
	assert.True(t, pkgerrors.IsInvalidEmail(lib.Users().AddUser(rejected)))

	accepted := archive.NewUser("Mario", "Rossi", "mario.rossi@studenti.unimi.it", "S123456")
	assert.NoError(t, lib.Users().AddUser(accepted))
}
