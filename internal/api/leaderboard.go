package api

import (
	"net/http"
	"strconv"

	"github.com/agentarena/agentarena/internal/leaderboard"
)

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	tab := leaderboard.Tab(r.URL.Query().Get("tab"))
	if tab == "" {
		tab = leaderboard.TabOverall
	}

	limit := s.cfg.Leaderboard.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	if limit > s.cfg.Leaderboard.MaxLimit {
		limit = s.cfg.Leaderboard.MaxLimit
	}

	entries, err := s.svc.Leaderboard(tab, limit)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"tab":     tab,
		"entries": entries,
	})
}
