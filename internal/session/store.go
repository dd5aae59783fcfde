// Package session holds the client-side auth session state machine and the
// route guard that decides redirects for protected paths. The store replaces
// the ambient auth globals of the web client with an explicit object and a
// defined subscription contract: events are delivered serially, in order,
// to every subscriber.
package session

import "sync"

// State is the resolution state of the auth session.
type State int

const (
	// StateLoading is the initial state, before the first session check has
	// resolved. Guards suspend while loading.
	StateLoading State = iota
	// StateAuthenticated means a user is signed in.
	StateAuthenticated
	// StateAnonymous means the session resolved to no user.
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// EventType identifies a provider auth event.
type EventType string

const (
	EventInitialSession EventType = "INITIAL_SESSION"
	EventSignedIn       EventType = "SIGNED_IN"
	EventSignedOut      EventType = "SIGNED_OUT"
	EventTokenRefreshed EventType = "TOKEN_REFRESHED"
	EventUserUpdated    EventType = "USER_UPDATED"
)

// Event is one auth state change. UserID is empty when the event resolves
// to no user.
type Event struct {
	Type        EventType
	UserID      string
	AccessToken string
}

// Snapshot is the store's state at one point in time.
type Snapshot struct {
	State       State
	UserID      string
	AccessToken string
}

// Subscriber receives every event together with the snapshot the event
// produced.
type Subscriber func(Event, Snapshot)

// Store is the session state machine. All transitions go through Dispatch,
// which serializes delivery under a single mutex, mirroring the provider's
// serial event ordering.
type Store struct {
	mu      sync.Mutex
	state   State
	userID  string
	token   string
	nextSub int
	subs    map[int]Subscriber
}

// NewStore creates a Store in the loading state.
func NewStore() *Store {
	return &Store{
		state: StateLoading,
		subs:  make(map[int]Subscriber),
	}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{State: s.state, UserID: s.userID, AccessToken: s.token}
}

// Subscribe registers a subscriber and returns its unsubscribe function.
// The subscriber immediately receives no events; only future dispatches.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Dispatch applies an auth event to the state machine and notifies
// subscribers. Sign-in style events (initial session with a user, signed
// in, token refreshed, user updated) resolve to authenticated; sign-out and
// a userless initial session resolve to anonymous.
func (s *Store) Dispatch(event Event) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch event.Type {
	case EventSignedOut:
		s.state = StateAnonymous
		s.userID = ""
		s.token = ""
	case EventInitialSession, EventSignedIn, EventTokenRefreshed, EventUserUpdated:
		if event.UserID == "" {
			s.state = StateAnonymous
			s.userID = ""
			s.token = ""
		} else {
			s.state = StateAuthenticated
			s.userID = event.UserID
			s.token = event.AccessToken
		}
	}

	snapshot := Snapshot{State: s.state, UserID: s.userID, AccessToken: s.token}
	for _, fn := range s.subs {
		fn(event, snapshot)
	}
	return snapshot
}
