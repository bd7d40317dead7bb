// Package portal implements the client-side identity flows of the InternX
// portal: credential exchange for both principal kinds, the OTP-gated
// registration pipeline, and session restore/logout. All state lives in the
// injected session store; the service itself only tracks which emails have
// an outstanding verification request.
package portal

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"

	"github.com/Raghugowd/Internx-sub001/internal/client/api"
	"github.com/Raghugowd/Internx-sub001/internal/client/session"
)

// ValidationError is a pre-flight failure resolved locally; no network call
// was made when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// emailPattern is the basic syntactic gate: local part, "@", domain with a
// dot. Full validation is the server's job.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Service ties the API client and session store together.
type Service struct {
	api   *api.Client
	store *session.Store

	mu        sync.Mutex
	requested map[string]bool // emails with an OTP requested this process
}

// New creates a portal Service.
func New(apiClient *api.Client, store *session.Store) *Service {
	return &Service{
		api:       apiClient,
		store:     store,
		requested: make(map[string]bool),
	}
}

// RestoreSession rehydrates the persisted session, then confirms the token
// is still accepted by the server. A rejected token clears the session; a
// server that is merely unreachable leaves it in place so offline restarts
// keep their principal.
func (s *Service) RestoreSession(ctx context.Context) error {
	s.store.Restore()

	cur := s.store.Current()
	if cur == nil {
		return nil
	}

	var err error
	switch cur.Kind {
	case session.KindUser:
		_, err = s.api.UserProfile(ctx)
	case session.KindAdmin:
		_, err = s.api.AdminProfile(ctx)
	}

	// Any definitive server rejection (invalid token, account gone) means
	// the persisted session is dead; only transport failures keep it.
	if err != nil && !errors.Is(err, api.ErrServerUnavailable) {
		return s.store.Clear()
	}
	return nil
}

// LoginAsUser exchanges email + password for a user session. The store is
// only touched once a fully-formed (token, user) pair is in hand.
func (s *Service) LoginAsUser(ctx context.Context, email, password string) (*session.Principal, error) {
	token, user, err := s.api.LoginUser(ctx, email, password)
	if err != nil {
		return nil, err
	}

	p := session.Principal{Kind: session.KindUser, User: user}
	if err := s.store.Commit(token, p); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoginAsAdmin exchanges username + password for an admin session.
func (s *Service) LoginAsAdmin(ctx context.Context, username, password string) (*session.Principal, error) {
	token, admin, err := s.api.LoginAdmin(ctx, username, password)
	if err != nil {
		return nil, err
	}

	p := session.Principal{Kind: session.KindAdmin, Admin: admin}
	if err := s.store.Commit(token, p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Logout erases the persisted session and the bearer credential. Idempotent.
func (s *Service) Logout() error {
	return s.store.Clear()
}

// Current returns the resident principal, or nil when logged out.
func (s *Service) Current() *session.Principal {
	return s.store.Current()
}

// RequestOTP starts (or restarts) the verification challenge for an email.
// A re-request replaces the outstanding code server-side; it never stacks.
func (s *Service) RequestOTP(ctx context.Context, email string) error {
	if !emailPattern.MatchString(email) {
		return &ValidationError{Field: "email", Reason: "must be a valid email address"}
	}

	if err := s.api.SendOTP(ctx, email); err != nil {
		return err
	}

	s.mu.Lock()
	s.requested[email] = true
	s.mu.Unlock()
	return nil
}

// otpRequested reports whether RequestOTP succeeded for the email during
// this process. Per-email, so concurrent drafts for different emails don't
// interfere.
func (s *Service) otpRequested(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requested[email]
}
