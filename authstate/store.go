package authstate

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/user/signalforge-go/account"
	"github.com/user/signalforge-go/profiles"
)

// Store composes the session backend and the role resolver into one readable
// auth state plus the imperative operations (sign in, sign up, sign out,
// update profile). It has an explicit lifecycle: NewStore, Start, Close.
//
// Two producers write to the state cell: the backend change subscription and
// the initial session fetch. They race; whichever resolves first ends the
// loading phase, and later arrivals still apply (last write wins). Role
// resolutions are tagged with a request id so a slow stale resolution can
// never overwrite a newer one.
type Store struct {
	backend  account.Backend
	roles    RoleResolver
	profiles ProfileWriter
	log      *zap.Logger

	mu          sync.Mutex
	state       State
	sub         account.Subscription
	subscribers map[int]chan State
	nextSub     int
	roleReq     uint64
	started     bool
	closed      bool
}

// NewStore builds a Store in the loading state. Nothing happens until Start.
func NewStore(backend account.Backend, roles RoleResolver, profileWriter ProfileWriter, log *zap.Logger) *Store {
	return &Store{
		backend:     backend,
		roles:       roles,
		profiles:    profileWriter,
		log:         log,
		state:       State{IsLoading: true},
		subscribers: make(map[int]chan State),
	}
}

// Start bootstraps the state. The change subscription is registered before
// the initial session fetch so a change firing during the fetch is not
// missed; the fetch then runs concurrently. Start is idempotent.
func (s *Store) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started || s.closed {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	sub := s.backend.OnAuthStateChange(func(ev account.Event) {
		switch ev.Type {
		case account.EventSignedOut:
			s.applySession(ctx, nil)
		default:
			s.applySession(ctx, ev.Session)
		}
	})

	s.mu.Lock()
	if s.closed {
		// Close raced the registration; it never saw this subscription.
		s.mu.Unlock()
		sub.Unsubscribe()
		return
	}
	s.sub = sub
	s.mu.Unlock()

	go func() {
		sess, err := s.backend.GetSession(ctx)
		if err != nil {
			// degrade to the signed-out state; never crash the shell
			s.log.Warn("initial session fetch failed", zap.Error(err))
			s.applySession(ctx, nil)
			return
		}
		s.applySession(ctx, sess)
	}()
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe returns a channel of state snapshots and a cancel function.
// Cancel is idempotent. A slow consumer misses snapshots rather than
// blocking the Store.
func (s *Store) Subscribe() (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan State, 8)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	s.subscribers[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			if c, ok := s.subscribers[id]; ok {
				delete(s.subscribers, id)
				close(c)
			}
			s.mu.Unlock()
		})
	}
	return ch, cancel
}

// Close unsubscribes from the backend and stops all notification. No state
// is mutated after Close; late backend events and role resolutions are
// ignored.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.roleReq++ // invalidate in-flight role resolutions
	for id, ch := range s.subscribers {
		delete(s.subscribers, id)
		close(ch)
	}
	sub := s.sub
	s.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}
}

// applySession replaces the session-derived fields. A nil session resolves
// immediately (signed out, not admin, not loading); a user session keeps
// loading until its role resolution completes.
func (s *Store) applySession(ctx context.Context, sess *account.Session) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	s.roleReq++

	if sess == nil || sess.User == nil {
		s.state.User = nil
		s.state.Session = nil
		s.state.IsAdmin = false
		s.state.IsLoading = false
		s.notifyLocked()
		s.mu.Unlock()
		return
	}

	prevID := ""
	if s.state.User != nil {
		prevID = s.state.User.ID
	}
	s.state.User = sess.User
	s.state.Session = sess
	if prevID != sess.User.ID {
		// a different user means the old admin flag is meaningless
		s.state.IsAdmin = false
	}
	req := s.roleReq
	uid := sess.User.ID
	s.notifyLocked()
	s.mu.Unlock()

	go s.resolveRole(ctx, uid, req)
}

// resolveRole runs the fail-closed admin lookup and applies the result only
// if it is still the newest resolution for the current user.
func (s *Store) resolveRole(ctx context.Context, userID string, req uint64) {
	isAdmin := s.roles.IsAdmin(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || req != s.roleReq {
		return // superseded by a newer state change
	}
	if s.state.User == nil || s.state.User.ID != userID {
		return // user changed while the lookup was in flight
	}

	s.state.IsAdmin = isAdmin
	s.state.IsLoading = false
	s.notifyLocked()
}

// notifyLocked fans the current snapshot out to subscribers. Callers hold mu.
func (s *Store) notifyLocked() {
	for _, ch := range s.subscribers {
		select {
		case ch <- s.state:
		default:
		}
	}
}

// SignIn delegates to the backend. On success the change subscription
// updates the state; on failure the state is untouched and the error carries
// a human-readable message. IsLoading is never mutated here.
func (s *Store) SignIn(ctx context.Context, email, password string) error {
	return s.backend.SignInWithPassword(ctx, email, password)
}

// SignUp registers an account. Success does not imply a session exists; the
// backend may require verification before the first sign-in.
func (s *Store) SignUp(ctx context.Context, email, password, fullName string) error {
	return s.backend.SignUp(ctx, email, password, fullName)
}

// SignOut delegates to the backend, resets the state to its signed-out
// shape, and returns the public route the caller should navigate to.
func (s *Store) SignOut(ctx context.Context) (string, error) {
	if err := s.backend.SignOut(ctx); err != nil {
		return "", err
	}
	// the subscription delivers the same reset; applying here keeps the
	// caller's next Snapshot deterministic
	s.applySession(ctx, nil)
	return SignOutRedirect, nil
}

// UpdateProfile writes permitted profile fields for the signed-in user.
// Calling it without a user is a contract violation and returns
// ErrNotAuthenticated. Privilege elevation is not reachable from here.
func (s *Store) UpdateProfile(ctx context.Context, upd profiles.Update) (*profiles.Profile, error) {
	s.mu.Lock()
	user := s.state.User
	s.mu.Unlock()

	if user == nil {
		return nil, ErrNotAuthenticated
	}
	return s.profiles.UpdateSelf(ctx, user.ID, upd)
}
