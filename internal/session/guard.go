package session

import "strings"

// Guard classifies paths as protected and decides redirects from session
// snapshots. While the session is loading no decision fires, so gated
// content is never flashed before the session resolves.
type Guard struct {
	// ProtectedPrefixes lists path prefixes that require authentication.
	// "/" matches only the root path exactly; every other prefix matches
	// itself and its sub-paths.
	ProtectedPrefixes []string
	LoginPath         string
	LandingPath       string
}

// NewGuard returns the guard used by the web client: dashboard, wizard and
// editor routes are protected, login is the escape hatch.
func NewGuard() *Guard {
	return &Guard{
		ProtectedPrefixes: []string{"/", "/wizard", "/editor", "/dashboard"},
		LoginPath:         "/login",
		LandingPath:       "/",
	}
}

// Decision is the outcome of one guard evaluation. RedirectTo is empty when
// the current path may render.
type Decision struct {
	Suspend    bool
	RedirectTo string
}

// IsProtected reports whether a path requires an authenticated session.
func (g *Guard) IsProtected(path string) bool {
	for _, prefix := range g.ProtectedPrefixes {
		if prefix == "/" {
			if path == "/" {
				return true
			}
			continue
		}
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// Decide evaluates the guard for the current path and session state.
// Loading suspends rendering; an anonymous session on a protected path
// redirects to login; an authenticated session sitting on the login path
// redirects to the landing path.
func (g *Guard) Decide(state State, path string) Decision {
	switch state {
	case StateLoading:
		return Decision{Suspend: true}
	case StateAnonymous:
		if g.IsProtected(path) {
			return Decision{RedirectTo: g.LoginPath}
		}
	case StateAuthenticated:
		if path == g.LoginPath {
			return Decision{RedirectTo: g.LandingPath}
		}
	}
	return Decision{}
}
