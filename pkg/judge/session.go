package judge

import (
	"context"
	"errors"
	"sync"
)

// Status is the session's request phase. Checking covers only the silent
// revalidation at startup; Loading covers login/register/logout.
type Status int

const (
	StatusIdle Status = iota
	StatusChecking
	StatusLoading
)

// Snapshot is a read-only view of the session state handed to observers.
// Invariant: Authenticated implies User != nil.
type Snapshot struct {
	User          *User
	Authenticated bool
	Status        Status
	LastError     string
}

// IsAdmin reports whether the session belongs to an admin.
func (s Snapshot) IsAdmin() bool {
	return s.Authenticated && s.User != nil && s.User.Role == "admin"
}

// Session owns the authentication lifecycle: anonymous, checking,
// authenticated as user or admin. All mutation goes through the four
// named operations; views observe via Subscribe.
type Session struct {
	client *Client

	mu        sync.Mutex
	user      *User
	auth      bool
	status    Status
	lastErr   string
	listeners []func(Snapshot)
}

// NewSession creates the session in the Checking state: the application
// is expected to call CheckSession once at startup.
func NewSession(client *Client) *Session {
	return &Session{
		client: client,
		status: StatusChecking,
	}
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		User:          s.user,
		Authenticated: s.auth,
		Status:        s.status,
		LastError:     s.lastErr,
	}
}

// Subscribe registers an observer called after every state transition.
func (s *Session) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// transition applies a mutation and notifies observers outside the lock.
func (s *Session) transition(mutate func()) {
	s.mu.Lock()
	mutate()
	snap := s.snapshotLocked()
	listeners := make([]func(Snapshot), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

// CheckSession silently revalidates a persisted credential. With no
// stored token it resolves to anonymous without touching the network.
// A 401 is the expected "not logged in" answer: the stale credential is
// cleared and no error is recorded. Any other failure records the error.
func (s *Session) CheckSession(ctx context.Context) {
	if s.client.tokens.Token() == "" {
		s.transition(func() {
			s.user = nil
			s.auth = false
			s.status = StatusIdle
			s.lastErr = ""
		})
		return
	}

	user, err := s.client.CheckSession(ctx)

	switch {
	case err == nil:
		s.transition(func() {
			s.user = user
			s.auth = true
			s.status = StatusIdle
			s.lastErr = ""
		})
	case errors.Is(err, ErrUnauthorized):
		s.client.tokens.Clear()
		s.transition(func() {
			s.user = nil
			s.auth = false
			s.status = StatusIdle
			s.lastErr = ""
		})
	default:
		s.transition(func() {
			s.user = nil
			s.auth = false
			s.status = StatusIdle
			s.lastErr = err.Error()
		})
	}
}

// Login authenticates with credentials, persisting the returned token on
// success. On failure the session stays anonymous and the server's
// message (or a generic fallback) is recorded for display.
func (s *Session) Login(ctx context.Context, creds Credentials) error {
	return s.authenticate(func() (*AuthResponse, error) {
		return s.client.Login(ctx, creds)
	}, "Login failed")
}

// Register has the same contract as Login against the register endpoint.
func (s *Session) Register(ctx context.Context, reg Registration) error {
	return s.authenticate(func() (*AuthResponse, error) {
		return s.client.Register(ctx, reg)
	}, "Registration failed")
}

func (s *Session) authenticate(call func() (*AuthResponse, error), fallback string) error {
	s.transition(func() {
		s.status = StatusLoading
		s.lastErr = ""
	})

	resp, err := call()
	if err != nil {
		msg := fallback
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			msg = apiErr.Message
		} else if errors.Is(err, ErrUnauthorized) {
			msg = "Invalid credentials"
		}
		s.transition(func() {
			s.user = nil
			s.auth = false
			s.status = StatusIdle
			s.lastErr = msg
		})
		return err
	}

	if resp.Token != "" {
		s.client.tokens.SetToken(resp.Token)
	}
	user := resp.User
	s.transition(func() {
		s.user = &user
		s.auth = true
		s.status = StatusIdle
		s.lastErr = ""
	})
	return nil
}

// Logout ends the session. The remote call is best-effort: whatever it
// returns, the credential is cleared and the session goes anonymous,
// because the user's intent to end the session must be honored.
func (s *Session) Logout(ctx context.Context) {
	s.transition(func() {
		s.status = StatusLoading
	})

	s.client.Logout(ctx)

	s.client.tokens.Clear()
	s.transition(func() {
		s.user = nil
		s.auth = false
		s.status = StatusIdle
		s.lastErr = ""
	})
}
