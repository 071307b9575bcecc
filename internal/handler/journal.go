package handler

import (
	"net/http"
	"net/url"
	"slices"

	"github.com/gorilla/websocket"

	"github.com/pkordes/travel-journal/backend/internal/domain"
	"github.com/pkordes/travel-journal/backend/internal/realtime"
)

// GetSelf handles GET /api/self.
func (s *Server) GetSelf(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// GetJournal handles GET /api/journal: every resolved adventure plus the
// category list, recomputed from a fresh fetch.
func (s *Server) GetJournal(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Journal.Load(r.Context(), user.ID))
}

// GetResolvedAdventure handles GET /api/journal/adventures/{id}.
func (s *Server) GetResolvedAdventure(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	rm := s.deps.Journal.Load(r.Context(), user.ID)
	i := slices.IndexFunc(rm.Adventures, func(a domain.ResolvedAdventure) bool { return a.ID == id })
	if i < 0 {
		notFound(w, "adventure not found")
		return
	}
	writeJSON(w, http.StatusOK, rm.Adventures[i])
}

// JournalSocket handles GET /api/journal/ws. The connection first receives
// the current read-model, then every recompute triggered by a mutation or the
// midnight rollover.
func (s *Server) JournalSocket(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered the client.
		s.log.WarnContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}

	initial, err := realtime.NewMessage(realtime.TypeJournalUpdated, s.deps.Journal.Load(r.Context(), user.ID)).JSON()
	if err != nil {
		s.log.ErrorContext(r.Context(), "encode initial journal", "error", err)
		initial = nil
	}
	realtime.Serve(s.deps.Hub, conn, realtime.NewClient(user.ID), initial, s.log)
}

// checkOrigin accepts same-host requests, requests without an Origin header
// (non-browser clients) and the configured CORS origins.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if u.Host == r.Host {
		return true
	}
	return slices.Contains(s.deps.AllowedOrigins, origin)
}
