package judge

// Policy controls who may enter a route.
type Policy int

const (
	// Public routes render for everyone, signed in or not.
	Public Policy = iota
	// RequireAuth routes need an authenticated session.
	RequireAuth
	// RequireAdmin routes additionally need the admin role.
	RequireAdmin
)

// Decision is the gate's verdict for a navigation attempt.
type Decision int

const (
	// Allow renders the route.
	Allow Decision = iota
	// Wait holds navigation while the startup check is still running.
	Wait
	// RedirectLogin sends the visitor to the login page; the attempted
	// location is preserved so they can be returned after signing in.
	RedirectLogin
	// RedirectHome bounces an authenticated non-admin off admin routes.
	RedirectHome
)

// GateResult pairs the decision with the location to restore after a
// login redirect.
type GateResult struct {
	Decision Decision
	// ReturnTo is set only for RedirectLogin.
	ReturnTo string
}

// Gate evaluates a navigation attempt against the session. Public
// routes never redirect: a signed-in visitor on the login page is the
// page's own concern, not the gate's.
func (s *Session) Gate(policy Policy, location string) GateResult {
	snap := s.Snapshot()

	if policy == Public {
		return GateResult{Decision: Allow}
	}

	if snap.Status == StatusChecking {
		return GateResult{Decision: Wait}
	}

	if !snap.Authenticated {
		return GateResult{Decision: RedirectLogin, ReturnTo: location}
	}

	if policy == RequireAdmin && !snap.IsAdmin() {
		return GateResult{Decision: RedirectHome}
	}

	return GateResult{Decision: Allow}
}
