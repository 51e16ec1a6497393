package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/agentarena/agentarena/internal/core"
)

type contextKey string

const agentKey contextKey = "agent"

// requireAgent authenticates the bearer API key and puts the resolved agent
// on the request context
func (s *Server) requireAgent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		key, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || key == "" {
			s.respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		agent, err := s.svc.Authenticate(key)
		if err != nil {
			s.respondError(w, http.StatusUnauthorized, "invalid API key")
			return
		}

		ctx := context.WithValue(r.Context(), agentKey, agent)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestAgent returns the authenticated agent from the context.
// Only valid behind requireAgent.
func requestAgent(r *http.Request) *core.Agent {
	return r.Context().Value(agentKey).(*core.Agent)
}
