// Package launcher serves menu-bar searches: it gates on the accessibility
// permission, pulls the frontmost application's item snapshot, and ranks
// the entries against the query text.
package launcher

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/gomenu/internal/ax"
	"github.com/example/gomenu/internal/config"
	"github.com/example/gomenu/internal/logging"
	"github.com/example/gomenu/internal/menu"
	"github.com/example/gomenu/internal/notify"
)

// Query is one search request.
type Query struct {
	// ID correlates log lines across the dispatch hop.
	ID   string
	Text string
}

// NewQuery wraps query text with a fresh correlation id.
func NewQuery(text string) Query {
	return Query{ID: uuid.NewString(), Text: text}
}

// RankItem pairs an item with its relevance, in (0, 1], for the host's
// result merge.
type RankItem struct {
	Item  *menu.Item
	Score float64
}

// Handler answers queries for the frontmost application's menu entries.
type Handler struct {
	source  menu.Source
	call    menu.CallFunc
	cache   *menu.Cache
	trusted func() bool
	prompt  func()
	timeout time.Duration

	mu      sync.Mutex
	trigger string
	fuzzy   bool
	max     int
	denied  bool
}

// New wires a production handler: the OS trust check as the gate and a
// dialog as the one-time prompt.
func New(source menu.Source, call menu.CallFunc, cfg config.Config) *Handler {
	return newHandler(source, call, cfg, ax.Trusted, func() {
		// The dialog blocks until answered; queries must not.
		go notify.PermissionPrompt()
	})
}

func newHandler(source menu.Source, call menu.CallFunc, cfg config.Config, trusted func() bool, prompt func()) *Handler {
	return &Handler{
		source:  source,
		call:    call,
		cache:   menu.NewCache(source, call, cfg.IncludeAppleMenu),
		trusted: trusted,
		prompt:  prompt,
		timeout: cfg.WalkTimeout(),
		trigger: cfg.Trigger,
		fuzzy:   cfg.Fuzzy,
		max:     cfg.MaxResults,
	}
}

// Trigger returns the query prefix the host should route to this handler.
func (h *Handler) Trigger() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.trigger
}

// Fuzzy reports whether fuzzy matching is active.
func (h *Handler) Fuzzy() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.fuzzy
}

// SetFuzzy switches between substring and fuzzy matching.
func (h *Handler) SetFuzzy(fuzzy bool) {
	h.mu.Lock()
	h.fuzzy = fuzzy
	h.mu.Unlock()
}

// Call exposes the dispatcher this handler performs items through.
func (h *Handler) Call() menu.CallFunc {
	return h.call
}

// Close releases the cached snapshot.
func (h *Handler) Close() {
	h.cache.Close()
}

// Handle matches the query against the frontmost application's menu
// entries. It cannot fail: a missing permission, a missing frontmost
// application and traversal trouble all produce an empty list. An empty
// query returns every entry in traversal order for browsing.
func (h *Handler) Handle(ctx context.Context, q Query) []RankItem {
	if !h.gate() {
		return nil
	}

	app, err := h.source.Frontmost()
	if err != nil {
		log.Printf("launcher: no frontmost application: %v", err)
		return nil
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	items := h.cache.ItemsFor(ctx, app)

	h.mu.Lock()
	fuzzy, max := h.fuzzy, h.max
	h.mu.Unlock()

	text := strings.TrimSpace(q.Text)
	if text == "" {
		// Browse mode: the full snapshot, unranked and uncapped.
		all := make([]RankItem, 0, len(items))
		for _, it := range items {
			all = append(all, RankItem{Item: it})
		}
		logging.Debugf("launcher: query %s browsing %d items of %q", q.ID, len(all), app.Name)
		return all
	}

	ranked := Rank(items, text, fuzzy, max)
	logging.Debugf("launcher: query %s %q matched %d of %d items of %q",
		q.ID, text, len(ranked), len(items), app.Name)
	return ranked
}

// gate enforces the accessibility permission. The first denied query of an
// episode triggers the prompt; later ones stay quiet until the permission
// shows up and is lost again.
func (h *Handler) gate() bool {
	if h.trusted() {
		h.mu.Lock()
		h.denied = false
		h.mu.Unlock()
		return true
	}
	h.mu.Lock()
	first := !h.denied
	h.denied = true
	h.mu.Unlock()
	if first {
		log.Printf("launcher: accessibility permission missing, prompting")
		h.prompt()
	}
	return false
}
