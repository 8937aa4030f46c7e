package service

import (
	"testing"

	"minibook/database"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupDB(t *testing.T) {
	t.Helper()
	require.NoError(t, database.InitTestDB())
}

func registerParams(email string) RegisterParams {
	return RegisterParams{
		FirstName:     "Alice",
		LastName:      "Smith",
		Email:         email,
		Password:      "Abcdef1!",
		Photo:         "https://img.example/alice.png",
		TermsAccepted: true,
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	setupDB(t)
	userService := UserService{}

	user, err := userService.Register(registerParams("alice@example.com"))
	require.NoError(t, err)
	require.NotEmpty(t, user.Id)
	require.Equal(t, "alice@example.com", user.Email)
	require.True(t, user.TermsAccepted)

	require.NotEqual(t, "Abcdef1!", user.PasswordHash)
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Abcdef1!"))
	require.NoError(t, err, "stored hash should verify against the plaintext")
}

func TestRegisterDefaultsPhoto(t *testing.T) {
	setupDB(t)
	userService := UserService{}

	p := registerParams("bob@example.com")
	p.Photo = ""
	user, err := userService.Register(p)
	require.NoError(t, err)
	require.NotEmpty(t, user.Photo)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setupDB(t)
	userService := UserService{}

	_, err := userService.Register(registerParams("alice@example.com"))
	require.NoError(t, err)

	// Same address in different case is still a duplicate.
	_, err = userService.Register(registerParams("Alice@Example.COM"))
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterCapacity(t *testing.T) {
	setupDB(t)
	t.Setenv("MB_MAX_USERS", "2")
	userService := UserService{}

	_, err := userService.Register(registerParams("one@example.com"))
	require.NoError(t, err)
	_, err = userService.Register(registerParams("two@example.com"))
	require.NoError(t, err)

	_, err = userService.Register(registerParams("three@example.com"))
	require.ErrorIs(t, err, ErrCapacityExceeded)

	count, err := userService.CountUsers()
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
}

func TestCheckUserUnknownEmail(t *testing.T) {
	setupDB(t)
	userService := UserService{}

	user, err := userService.CheckUser("nobody@example.com", "Abcdef1!")
	require.ErrorIs(t, err, ErrNotFound)
	require.Nil(t, user)
}

func TestCheckUserWrongPassword(t *testing.T) {
	setupDB(t)
	userService := UserService{}

	_, err := userService.Register(registerParams("alice@example.com"))
	require.NoError(t, err)

	user, err := userService.CheckUser("alice@example.com", "WrongPass1!")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.Nil(t, user)
}

func TestCheckUserSuccess(t *testing.T) {
	setupDB(t)
	userService := UserService{}

	created, err := userService.Register(registerParams("alice@example.com"))
	require.NoError(t, err)

	// Email lookup is case-insensitive.
	user, err := userService.CheckUser("ALICE@example.com", "Abcdef1!")
	require.NoError(t, err)
	require.Equal(t, created.Id, user.Id)
}

func TestGetUser(t *testing.T) {
	setupDB(t)
	userService := UserService{}

	created, err := userService.Register(registerParams("alice@example.com"))
	require.NoError(t, err)

	user, err := userService.GetUser(created.Id)
	require.NoError(t, err)
	require.Equal(t, "Alice Smith", user.FullName())

	_, err = userService.GetUser("missing-id")
	require.ErrorIs(t, err, ErrNotFound)
}
