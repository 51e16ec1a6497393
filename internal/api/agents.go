package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		Platform string `json:"platform"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	result, err := s.svc.Connect(input.Name, input.Platform)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, result)
}

func (s *Server) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	agent := requestAgent(r)

	if err := s.svc.Disconnect(agent.ID); err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"status": "disconnected"})
}

func (s *Server) handleRotateKey(w http.ResponseWriter, r *http.Request) {
	agent := requestAgent(r)

	key, err := s.svc.RotateKey(agent.ID)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"api_key": key})
}

func (s *Server) handleHeartbeat(w http.ResponseWriter, r *http.Request) {
	agent := requestAgent(r)

	// Body is optional for heartbeats.
	var input struct {
		Metadata map[string]any `json:"metadata"`
	}
	json.NewDecoder(r.Body).Decode(&input)

	result, err := s.svc.Heartbeat(agent.ID, input.Metadata)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	agent := requestAgent(r)

	profile, err := s.svc.Profile(agent.ID)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, profile)
}
