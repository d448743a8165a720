// Package main is the privileged demonstration surface: the combat tick
// trigger and an inbox-tail relay. Grounded on the teacher's
// internal/delivery/http/router.go (mux subrouters) and the upgrader/
// client shape from internal/delivery/websocket/hello_hub.go, repurposed
// from a broadcast hub into a combat-event-driven tail of a single
// player's already-persisted inbox: the handler subscribes to the event
// bus's CombatResolved events and pushes newly delivered reports as they
// land, rather than reading the inbox once.
package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"villagecore/internal/clock"
	"villagecore/internal/combat"
	"villagecore/internal/config"
	"villagecore/internal/events"
	"villagecore/internal/inbox"
	"villagecore/internal/logger"
	"villagecore/internal/middleware"
	"villagecore/internal/rng"
	"villagecore/internal/store"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func main() {
	cfg := config.Load()
	if err := logger.Init(&cfg.LogLevel); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Shutdown()

	villageStore := store.NewMemoryStore()
	bus := events.NewInMemoryEventBus()
	defer bus.Close()
	middleware.LogDomainEvents(bus)

	playerInbox := inbox.NewMemoryInbox()
	resolver := combat.NewResolver(villageStore, clock.System{}, rng.System{}, playerInbox, bus)
	dispatcher := combat.NewDispatcher(villageStore, clock.System{}, resolver, cfg.GameSpeed, bus)

	r := mux.NewRouter()
	r.Use(recoveryMiddleware)

	admin := r.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/combat/tick", handleCombatTick(dispatcher)).Methods(http.MethodPost)
	admin.HandleFunc("/ws/inbox/{playerId}", handleInboxTail(playerInbox, bus)).Methods(http.MethodGet)

	log.Printf("village core admin surface listening on port %s", cfg.AdminPort)
	if err := http.ListenAndServe(":"+cfg.AdminPort, r); err != nil {
		log.Fatalf("admin server failed to start: %v", err)
	}
}

// recoveryMiddleware converts a handler panic into a 500 instead of
// crashing the process, mirroring the gin ZapRecovery shape for this
// mux-based router.
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic recovered in admin router")
				w.WriteHeader(http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, req)
	})
}

func handleCombatTick(d *combat.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resolved, err := d.Tick(r.Context())
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]int{"resolved": resolved})
	}
}

// handleInboxTail upgrades to a websocket connection, writes the player's
// current inbox tail, then keeps the connection open and pushes any
// message newly delivered to that inbox as combat resolves — driven by a
// live subscription to the event bus's CombatResolved events, not a poll.
func handleInboxTail(ib *inbox.MemoryInbox, bus events.EventBus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := mux.Vars(r)["playerId"]

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("inbox tail upgrade failed")
			return
		}
		defer conn.Close()

		sent := 0
		if n := len(ib.List(playerID)); n > 50 {
			sent = n - 50
		}
		flush := func() bool {
			all := ib.List(playerID)
			for ; sent < len(all); sent++ {
				if err := conn.WriteJSON(all[sent]); err != nil {
					return false
				}
			}
			return true
		}
		if !flush() {
			return
		}

		resolved := make(chan struct{}, 1)
		onCombatResolved := func(ctx context.Context, event events.Event) error {
			select {
			case resolved <- struct{}{}:
			default:
			}
			return nil
		}
		subID := bus.Subscribe(events.TypeCombatResolved, onCombatResolved)
		defer bus.Unsubscribe(events.TypeCombatResolved, subID)

		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-closed:
				return
			case <-resolved:
				if !flush() {
					return
				}
			}
		}
	}
}
