package authstate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/user/signalforge-go/account"
)

// bootstrapTimeout caps how long the state route waits for the first
// resolved snapshot before answering with whatever it has.
const bootstrapTimeout = 5 * time.Second

// ClientFactory builds a Backend bound to the request's session token.
// Wired to account.NewClientWithToken in main.
type ClientFactory func(ctx context.Context, accessToken string) (account.Backend, func())

// Handlers serves the auth-state routes: a one-shot snapshot and a
// server-sent-events stream of state changes.
type Handlers struct {
	clients  ClientFactory
	roles    RoleResolver
	profiles ProfileWriter
	log      *zap.Logger
}

// NewHandlers constructs the auth-state HTTP adapter.
func NewHandlers(clients ClientFactory, roles RoleResolver, profileWriter ProfileWriter, log *zap.Logger) *Handlers {
	return &Handlers{clients: clients, roles: roles, profiles: profileWriter, log: log}
}

// HandleState godoc
// @Summary Current auth state
// @Description Returns the resolved auth state for the caller's session.
// @Tags Auth
// @Produce json
// @Success 200 {object} authstate.State
// @Router /auth/state [get]
func (h *Handlers) HandleState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		backend, closeBackend := h.clients(r.Context(), account.TokenFromRequest(r))
		defer closeBackend()

		store := NewStore(backend, h.roles, h.profiles, h.log)
		defer store.Close()

		ch, cancel := store.Subscribe()
		defer cancel()
		store.Start(r.Context())

		state := store.Snapshot()
		deadline := time.NewTimer(bootstrapTimeout)
		defer deadline.Stop()
	wait:
		for state.IsLoading {
			select {
			case next, ok := <-ch:
				if !ok {
					break wait
				}
				state = next
			case <-deadline.C:
				// answer with the loading snapshot; the client may retry
				state = store.Snapshot()
				break wait
			case <-r.Context().Done():
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(state)
	}
}

// HandleEvents godoc
// @Summary Auth state change stream
// @Description Streams auth-state snapshots as server-sent events until the client disconnects.
// @Tags Auth
// @Produce text/event-stream
// @Router /auth/events [get]
func (h *Handlers) HandleEvents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		backend, closeBackend := h.clients(r.Context(), account.TokenFromRequest(r))
		defer closeBackend()

		store := NewStore(backend, h.roles, h.profiles, h.log)
		defer store.Close()

		ch, cancel := store.Subscribe()
		defer cancel()
		store.Start(r.Context())

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		writeState := func(state State) bool {
			payload, err := json.Marshal(state)
			if err != nil {
				return false
			}
			if _, err := fmt.Fprintf(w, "event: auth_state\ndata: %s\n\n", payload); err != nil {
				return false
			}
			flusher.Flush()
			return true
		}

		if !writeState(store.Snapshot()) {
			return
		}

		for {
			select {
			case state, open := <-ch:
				if !open {
					return
				}
				if !writeState(state) {
					return
				}
			case <-r.Context().Done():
				// disconnect: deferred cancel and Close unsubscribe; any
				// still-in-flight resolution is discarded, never applied
				return
			}
		}
	}
}
