package user

import (
	"errors"
	"testing"

	"github.com/confdeck/deck-manager/internal/errdef"
	"github.com/confdeck/deck-manager/pkg/inttest"
	"github.com/go-mail/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDialer struct {
	sent []*mail.Message
}

func (d *fakeDialer) DialAndSend(m ...*mail.Message) error {
	d.sent = append(d.sent, m...)
	return nil
}

func setup(t *testing.T) (*Service, *fakeDialer) {
	t.Helper()

	db := inttest.SetupDB(t)
	dialer := &fakeDialer{}
	return NewService("http://localhost:3000", NewRepository(db), dialer), dialer
}

func TestSignUp(t *testing.T) {
	service, dialer := setup(t)

	user, err := service.SignUp("user@confdeck.org", "oneoneoneoneoneone111!")

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "user@confdeck.org", user.Email)
	assert.NotEqual(t, "oneoneoneoneoneone111!", user.Password, "the password is stored hashed")
	assert.False(t, user.Validated)
	require.Len(t, dialer.sent, 1)
	assert.Equal(t, []string{"user@confdeck.org"}, dialer.sent[0].GetHeader("To"))
}

func TestSignUpDuplicateEmail(t *testing.T) {
	service, dialer := setup(t)

	_, err := service.SignUp("user@confdeck.org", "oneoneoneoneoneone111!")
	require.NoError(t, err)

	_, err = service.SignUp("user@confdeck.org", "anotherpassword111!")
	require.True(t, errdef.IsDuplicated(err), "expected duplicated, got %v", err)
	assert.Len(t, dialer.sent, 1, "the rejected sign-up sends no email")
}

type failingDialer struct{}

func (failingDialer) DialAndSend(...*mail.Message) error {
	return errors.New("connection refused")
}

func TestSignUpEmailDeliveryFailure(t *testing.T) {
	db := inttest.SetupDB(t)
	service := NewService("http://localhost:3000", NewRepository(db), failingDialer{})

	user, err := service.SignUp("user@confdeck.org", "oneoneoneoneoneone111!")

	require.NoError(t, err, "registration does not depend on the mail server")
	assert.NotZero(t, user.ID)
}

func TestValidateEmail(t *testing.T) {
	service, _ := setup(t)

	user, err := service.SignUp("user@confdeck.org", "oneoneoneoneoneone111!")
	require.NoError(t, err)

	err = service.ValidateEmail(user.EmailToken)
	require.NoError(t, err)

	validated, err := service.FindById(user.ID)
	require.NoError(t, err)
	assert.True(t, validated.Validated)
}

func TestSignIn(t *testing.T) {
	service, _ := setup(t)

	user, err := service.SignUp("user@confdeck.org", "oneoneoneoneoneone111!")
	require.NoError(t, err)
	require.NoError(t, service.ValidateEmail(user.EmailToken))

	signedIn, err := service.SignIn("user@confdeck.org", "oneoneoneoneoneone111!")

	require.NoError(t, err)
	assert.Equal(t, user.ID, signedIn.ID)
}

func TestSignInWrongPassword(t *testing.T) {
	service, _ := setup(t)

	user, err := service.SignUp("user@confdeck.org", "oneoneoneoneoneone111!")
	require.NoError(t, err)
	require.NoError(t, service.ValidateEmail(user.EmailToken))

	_, err = service.SignIn("user@confdeck.org", "wrong")

	require.True(t, errdef.IsUnauthorized(err), "expected unauthorized, got %v", err)
}

func TestSignInUnknownEmail(t *testing.T) {
	service, _ := setup(t)

	_, err := service.SignIn("nobody@confdeck.org", "whatever")

	require.True(t, errdef.IsUnauthorized(err), "expected unauthorized, got %v", err)
}

func TestSignInNotValidated(t *testing.T) {
	service, _ := setup(t)

	_, err := service.SignUp("user@confdeck.org", "oneoneoneoneoneone111!")
	require.NoError(t, err)

	_, err = service.SignIn("user@confdeck.org", "oneoneoneoneoneone111!")

	require.True(t, errdef.IsForbidden(err), "expected forbidden, got %v", err)
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hashed, err := hashPassword("oneoneoneoneoneone111!")
	require.NoError(t, err)

	match, err := comparePasswords(hashed, "oneoneoneoneoneone111!")
	require.NoError(t, err)
	assert.True(t, match)

	match, err = comparePasswords(hashed, "something else")
	require.NoError(t, err)
	assert.False(t, match)
}
