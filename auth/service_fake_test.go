package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/Charchl1/Blog-Project/forms"
)

// fakeService is the in-memory stand-in for Service used by the middleware
// and handler tests.
type fakeService struct {
	registerUser    *User
	registerSession *Session
	registerErr     error
	registerCalls   int

	loginUser    *User
	loginSession *Session
	loginErr     error
	loginCalls   int

	identity    *Identity
	identityErr error

	logoutCalls int
	lastLogout  uuid.UUID

	purgeCount int64
	purgeErr   error
}

var _ Service = (*fakeService)(nil)

func (f *fakeService) Register(ctx context.Context, form *forms.RegisterForm) (*User, *Session, error) {
	f.registerCalls++
	if f.registerErr != nil {
		return nil, nil, f.registerErr
	}
	return f.registerUser, f.registerSession, nil
}

func (f *fakeService) Login(ctx context.Context, form *forms.LoginForm) (*User, *Session, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return nil, nil, f.loginErr
	}
	return f.loginUser, f.loginSession, nil
}

func (f *fakeService) Logout(ctx context.Context, token uuid.UUID) error {
	f.logoutCalls++
	f.lastLogout = token
	return nil
}

func (f *fakeService) IdentityForToken(ctx context.Context, token uuid.UUID) (*Identity, error) {
	if f.identityErr != nil {
		return nil, f.identityErr
	}
	return f.identity, nil
}

func (f *fakeService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	if f.purgeErr != nil {
		return 0, f.purgeErr
	}
	return f.purgeCount, nil
}
