package rbac

// Decision is the outcome of a route-level access check.
type Decision int

const (
	// Loading: the session store has not finished rehydrating; render a
	// neutral indicator, never redirect.
	Loading Decision = iota
	// Unauthenticated: no principal once the store is ready; the caller
	// redirects to the login entry point, at most once per transition.
	Unauthenticated
	// Forbidden: a principal is present but lacks the required tag;
	// render access-denied in place, no redirect.
	Forbidden
	// Authorized: render the page.
	Authorized
)

func (d Decision) String() string {
	switch d {
	case Loading:
		return "loading"
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	case Authorized:
		return "authorized"
	default:
		return "unknown"
	}
}

// Guard gates page-level access. Pure: the same inputs always produce the
// same decision. An empty required tag only demands authentication.
func Guard(p *Principal, required Permission, ready bool) Decision {
	if !ready {
		return Loading
	}
	if p == nil {
		return Unauthenticated
	}
	if required != "" && !HasPermission(p, required) {
		return Forbidden
	}
	return Authorized
}
