// Package session holds the process-wide "current principal": which account,
// if any, is logged in, of which kind, and under which bearer token. The
// store is injectable so tests can run against isolated instances, and it is
// the only mutable shared state on the client side.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Raghugowd/Internx-sub001/internal/model"
)

// Kind tags the resident principal variant.
type Kind string

const (
	KindUser  Kind = "user"
	KindAdmin Kind = "admin"
)

// Principal is a tagged variant: exactly one of User or Admin is set,
// matching Kind. Commit rejects anything else.
type Principal struct {
	Kind  Kind
	User  *model.User
	Admin *model.Admin
}

// TokenSink receives the bearer credential whenever the store installs or
// removes one. The API client implements it; committing a session is what
// makes every subsequent outbound call authenticated.
type TokenSink interface {
	SetToken(token string)
	ClearToken()
}

// record is the persisted session layout: the token, the kind tag, and one
// snapshot slot per principal kind. The four slots are always written and
// erased together.
type record struct {
	Token string       `json:"token"`
	Kind  Kind         `json:"kind"`
	User  *model.User  `json:"user,omitempty"`
	Admin *model.Admin `json:"admin,omitempty"`
}

// Store persists and serves the current principal. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	path    string
	sink    TokenSink
	token   string
	current *Principal
}

// NewStore creates a Store persisting to path, feeding tokens into sink.
func NewStore(path string, sink TokenSink) *Store {
	return &Store{path: path, sink: sink}
}

// DefaultPath returns the session file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "internx", "session.json"), nil
}

// Restore loads the persisted session record, if present, and installs its
// token as the default bearer credential. A missing, corrupt, or partial
// record is treated as "no session" — Restore never fails outward.
func (s *Store) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		s.resetLocked()
		return
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		s.resetLocked()
		return
	}

	p, err := principalFromRecord(&rec)
	if err != nil {
		s.resetLocked()
		return
	}

	s.token = rec.Token
	s.current = p
	s.sink.SetToken(rec.Token)
}

// Commit atomically persists the session record, installs the bearer
// credential, and makes p the current principal. The previous principal of
// either kind is fully overwritten (last-writer-wins).
func (s *Store) Commit(token string, p Principal) error {
	if token == "" {
		return errors.New("session: commit requires a token")
	}
	if err := validate(&p); err != nil {
		return err
	}

	rec := record{Token: token, Kind: p.Kind, User: p.User, Admin: p.Admin}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeLocked(&rec); err != nil {
		return err
	}

	s.token = token
	s.current = &p
	s.sink.SetToken(token)
	return nil
}

// Clear erases the persisted record and the bearer credential, and empties
// both in-memory slots. Idempotent.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	s.resetLocked()
	return nil
}

// Current returns the resident principal, or nil when logged out.
func (s *Store) Current() *Principal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Token returns the current bearer credential, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// writeLocked persists the record with a temp-file rename so a crash can
// never leave a half-written session on disk.
func (s *Store) writeLocked(rec *record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

func (s *Store) resetLocked() {
	s.token = ""
	s.current = nil
	s.sink.ClearToken()
}

// principalFromRecord rebuilds the tagged variant, rejecting records where
// the token, kind tag, and snapshot don't agree.
func principalFromRecord(rec *record) (*Principal, error) {
	if rec.Token == "" {
		return nil, errors.New("session: record has no token")
	}
	p := &Principal{Kind: rec.Kind, User: rec.User, Admin: rec.Admin}
	if err := validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

func validate(p *Principal) error {
	switch p.Kind {
	case KindUser:
		if p.User == nil || p.Admin != nil {
			return errors.New("session: user principal must carry exactly a user snapshot")
		}
	case KindAdmin:
		if p.Admin == nil || p.User != nil {
			return errors.New("session: admin principal must carry exactly an admin snapshot")
		}
	default:
		return fmt.Errorf("session: unknown principal kind %q", p.Kind)
	}
	return nil
}
