// Package session owns the authentication identity and its async
// lifecycle: register, login, logout, the silent startup probe, profile
// updates and the password-reset flow.
package session

import (
	"context"
	"sync"

	"github.com/stellarburgers/orderclient/client"
	"github.com/stellarburgers/orderclient/credentials"
	"github.com/stellarburgers/orderclient/pkg/logger"
)

const (
	registerErr = "registration failed"
	loginErr    = "login failed"
	logoutErr   = "logout failed"
	updateErr   = "failed to update user"
	resetErr    = "password reset failed"
)

// Gateway is the slice of the remote gateway sessions need.
type Gateway interface {
	Register(ctx context.Context, data client.RegisterData) (client.AuthResult, error)
	Login(ctx context.Context, data client.LoginData) (client.AuthResult, error)
	Logout(ctx context.Context) error
	User(ctx context.Context) (client.User, error)
	UpdateUser(ctx context.Context, data client.UpdateUserData) (client.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, password, token string) error
}

// Snapshot is a copy of the session state. AuthChecked latches true once
// the first identity round-trip completes, success or not, and never
// reverts; it distinguishes "checked and anonymous" from "not yet
// checked".
type Snapshot struct {
	User        *client.User
	AuthChecked bool
	Loading     bool
	Err         string
}

// Store is the session container. Safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	gw    Gateway
	creds *credentials.Keeper
	log   *logger.Logger

	user        *client.User
	authChecked bool
	loading     bool
	err         string
}

// New creates an anonymous session over the given gateway and credential
// keeper.
func New(gw Gateway, creds *credentials.Keeper, log *logger.Logger) *Store {
	if log == nil {
		log = logger.NewDefault("session")
	}
	return &Store{gw: gw, creds: creds, log: log}
}

func (s *Store) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

// Register creates an account, persists the credential pair, and signs the
// user in.
func (s *Store) Register(ctx context.Context, data client.RegisterData) error {
	s.begin()
	res, err := s.gw.Register(ctx, data)
	return s.finishAuth(res, err, registerErr)
}

// Login signs in and persists the credential pair.
func (s *Store) Login(ctx context.Context, data client.LoginData) error {
	s.begin()
	res, err := s.gw.Login(ctx, data)
	return s.finishAuth(res, err, loginErr)
}

func (s *Store) finishAuth(res client.AuthResult, err error, fallback string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = client.ErrorMessage(err, fallback)
		s.log.WithError(err).Warn("auth request failed")
		return err
	}

	s.creds.SetAccessToken(res.AccessToken)
	if perr := s.creds.SetRefreshToken(res.RefreshToken); perr != nil {
		s.log.WithError(perr).Error("failed to persist refresh token")
	}

	u := res.User
	s.user = &u
	s.authChecked = true
	return nil
}

// Logout invalidates the session server-side and clears both stored
// credentials. AuthChecked stays true.
func (s *Store) Logout(ctx context.Context) error {
	s.begin()
	err := s.gw.Logout(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = client.ErrorMessage(err, logoutErr)
		return err
	}
	s.user = nil
	if cerr := s.creds.Clear(); cerr != nil {
		s.log.WithError(cerr).Error("failed to clear credentials")
	}
	return nil
}

// Check silently probes the stored session at startup. Both outcomes latch
// AuthChecked; a failure leaves the session anonymous without recording an
// error, since an expired or absent session is not worth surfacing.
func (s *Store) Check(ctx context.Context) error {
	s.begin()
	user, err := s.gw.User(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.authChecked = true
	if err != nil {
		s.user = nil
		s.log.WithError(err).Debug("session check: anonymous")
		return err
	}
	s.user = &user
	return nil
}

// Update patches the profile. Identity fields are replaced; AuthChecked is
// untouched.
func (s *Store) Update(ctx context.Context, data client.UpdateUserData) error {
	s.begin()
	user, err := s.gw.UpdateUser(ctx, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = client.ErrorMessage(err, updateErr)
		return err
	}
	s.user = &user
	return nil
}

// ForgotPassword starts the password-reset flow.
func (s *Store) ForgotPassword(ctx context.Context, email string) error {
	s.begin()
	err := s.gw.ForgotPassword(ctx, email)
	return s.finishPlain(err)
}

// ResetPassword completes the password-reset flow with the emailed token.
func (s *Store) ResetPassword(ctx context.Context, password, token string) error {
	s.begin()
	err := s.gw.ResetPassword(ctx, password, token)
	return s.finishPlain(err)
}

func (s *Store) finishPlain(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = client.ErrorMessage(err, resetErr)
		return err
	}
	return nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	var user *client.User
	if s.user != nil {
		u := *s.user
		user = &u
	}
	return Snapshot{
		User:        user,
		AuthChecked: s.authChecked,
		Loading:     s.loading,
		Err:         s.err,
	}
}
