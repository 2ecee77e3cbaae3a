package account

import (
	"context"
	"sync"

	"github.com/user/signalforge-go/apperror"
)

// Subscription is the unsubscribe handle returned by OnAuthStateChange.
type Subscription interface {
	Unsubscribe()
}

// Backend is the auth backend contract the rest of the application consumes.
// It is the client-side view of a single user agent: one token slot, one
// change feed. Implemented by *Client; tests substitute doubles.
type Backend interface {
	// GetSession returns the current persisted session, or nil when signed out.
	GetSession(ctx context.Context) (*Session, error)
	// OnAuthStateChange registers a callback invoked on every auth-state
	// change visible to this client, and returns an unsubscribe handle.
	OnAuthStateChange(fn func(Event)) Subscription
	SignInWithPassword(ctx context.Context, email, password string) error
	// SignUp creates the account. It does not authenticate the caller; a
	// session only exists after a subsequent sign-in.
	SignUp(ctx context.Context, email, password, fullName string) error
	SignOut(ctx context.Context) error
	// BeginOAuth returns the external provider's authorization URL.
	BeginOAuth(provider, redirectTo string) (string, error)
	// ExchangeCode trades a one-time OAuth code for a session.
	ExchangeCode(ctx context.Context, code string) (*Session, error)
	UpdateUser(ctx context.Context, meta UserMetadata) error
}

// backendAPI is the slice of *Service the client depends on.
type backendAPI interface {
	Register(ctx context.Context, email, password, fullName string) (*User, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
	SessionFromToken(ctx context.Context, accessToken string) (*Session, error)
	UpdateUserMeta(ctx context.Context, userID string, meta UserMetadata) (*User, error)
	AuthorizeURL(provider, redirectTo string) (string, error)
	ExchangeOAuthCode(ctx context.Context, code string) (*Session, error)
	Feed() *Feed
}

var _ backendAPI = (*Service)(nil)

// Client binds a session slot and the change feed to the backend service.
// Each user agent (browser tab, SSE connection, test) owns one Client.
// Events published by other clients of the same user are applied here too,
// so a sign-out elsewhere is reflected everywhere.
type Client struct {
	api    backendAPI
	feedID string

	mu        sync.Mutex
	session   *Session
	callbacks map[int]func(Event)
	nextCB    int
	closed    bool
}

var _ Backend = (*Client)(nil)

// NewClient creates a signed-out client subscribed to the change feed.
func NewClient(api backendAPI) *Client {
	c := &Client{
		api:       api,
		callbacks: make(map[int]func(Event)),
	}
	id, events := api.Feed().Subscribe()
	c.feedID = id
	go c.consume(events)
	return c
}

// NewClientWithToken creates a client seeded from an access token, as when a
// browser reconnects with a stored session. An unresolvable token simply
// yields a signed-out client.
func NewClientWithToken(ctx context.Context, api backendAPI, accessToken string) *Client {
	c := NewClient(api)
	if accessToken == "" {
		return c
	}
	if sess, err := api.SessionFromToken(ctx, accessToken); err == nil {
		c.mu.Lock()
		c.session = sess
		c.mu.Unlock()
	}
	return c
}

// Close unsubscribes from the feed and stops callback delivery. Late feed
// events are ignored after Close.
func (c *Client) Close() {
	c.mu.Lock()
	c.closed = true
	c.callbacks = make(map[int]func(Event))
	c.mu.Unlock()
	c.api.Feed().Unsubscribe(c.feedID)
}

// consume applies feed events from other clients of the same user.
func (c *Client) consume(events <-chan Event) {
	for ev := range events {
		if ev.Origin == c.feedID {
			continue // own operations are delivered synchronously
		}

		c.mu.Lock()
		if c.closed || c.session == nil || c.session.User == nil || c.session.User.ID != ev.UserID {
			c.mu.Unlock()
			continue
		}
		switch ev.Type {
		case EventSignedOut:
			c.session = nil
		case EventSignedIn, EventUserUpdated:
			if ev.Session != nil {
				c.session = ev.Session
			}
		}
		fns := c.snapshotCallbacks()
		c.mu.Unlock()

		for _, fn := range fns {
			fn(ev)
		}
	}
}

// GetSession returns the current session, transparently refreshing an expired
// access token. When the refresh fails the session is destroyed and nil is
// returned, exactly as if the user had signed out.
func (c *Client) GetSession(ctx context.Context) (*Session, error) {
	c.mu.Lock()
	sess := c.session
	c.mu.Unlock()

	if sess == nil {
		return nil, nil
	}
	if !sess.Expired() {
		return sess, nil
	}

	if sess.RefreshToken != "" {
		if fresh, err := c.api.Refresh(ctx, sess.RefreshToken); err == nil {
			c.setSession(fresh)
			return fresh, nil
		}
	}

	// expiry without a usable refresh token destroys the session
	ev := Event{Type: EventSignedOut, UserID: sess.User.ID, Origin: c.feedID}
	c.mu.Lock()
	c.session = nil
	fns := c.snapshotCallbacks()
	c.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
	return nil, nil
}

// OnAuthStateChange registers fn and returns its unsubscribe handle.
// Unsubscribe is idempotent.
func (c *Client) OnAuthStateChange(fn func(Event)) Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextCB
	c.nextCB++
	c.callbacks[id] = fn

	var once sync.Once
	client := c
	return &subscription{cancel: func() {
		once.Do(func() {
			client.mu.Lock()
			delete(client.callbacks, id)
			client.mu.Unlock()
		})
	}}
}

type subscription struct {
	cancel func()
}

func (s *subscription) Unsubscribe() { s.cancel() }

// SignInWithPassword authenticates and adopts the issued session. On failure
// the session slot is left unchanged.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) error {
	sess, err := c.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	c.adopt(sess, EventSignedIn)
	return nil
}

// SignUp registers the account without signing the caller in.
func (c *Client) SignUp(ctx context.Context, email, password, fullName string) error {
	_, err := c.api.Register(ctx, email, password, fullName)
	return err
}

// SignOut destroys the session and broadcasts the change. Signing out while
// already signed out is a no-op.
func (c *Client) SignOut(ctx context.Context) error {
	c.mu.Lock()
	sess := c.session
	c.session = nil
	fns := c.snapshotCallbacks()
	c.mu.Unlock()

	if sess == nil || sess.User == nil {
		return nil
	}

	ev := Event{Type: EventSignedOut, UserID: sess.User.ID, Origin: c.feedID}
	for _, fn := range fns {
		fn(ev)
	}
	c.api.Feed().Publish(ev)
	return nil
}

// BeginOAuth returns the provider authorization URL for a browser redirect.
func (c *Client) BeginOAuth(provider, redirectTo string) (string, error) {
	return c.api.AuthorizeURL(provider, redirectTo)
}

// ExchangeCode completes the OAuth flow and adopts the issued session.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*Session, error) {
	sess, err := c.api.ExchangeOAuthCode(ctx, code)
	if err != nil {
		return nil, err
	}
	c.adopt(sess, EventSignedIn)
	return sess, nil
}

// UpdateUser writes display metadata for the signed-in user.
func (c *Client) UpdateUser(ctx context.Context, meta UserMetadata) error {
	c.mu.Lock()
	sess := c.session
	c.mu.Unlock()

	if sess == nil || sess.User == nil {
		return apperror.NewAuthError("not authenticated", nil)
	}

	user, err := c.api.UpdateUserMeta(ctx, sess.User.ID, meta)
	if err != nil {
		return err
	}

	updated := *sess
	updated.User = user
	c.adopt(&updated, EventUserUpdated)
	return nil
}

// adopt replaces the session wholesale and delivers the change to this
// client's callbacks and to the process-wide feed.
func (c *Client) adopt(sess *Session, evType EventType) {
	c.mu.Lock()
	c.session = sess
	fns := c.snapshotCallbacks()
	c.mu.Unlock()

	ev := Event{Type: evType, UserID: sess.User.ID, Session: sess, Origin: c.feedID}
	for _, fn := range fns {
		fn(ev)
	}
	c.api.Feed().Publish(ev)
}

func (c *Client) setSession(sess *Session) {
	c.mu.Lock()
	c.session = sess
	c.mu.Unlock()
}

// snapshotCallbacks must be called with c.mu held.
func (c *Client) snapshotCallbacks() []func(Event) {
	fns := make([]func(Event), 0, len(c.callbacks))
	for _, fn := range c.callbacks {
		fns = append(fns, fn)
	}
	return fns
}
