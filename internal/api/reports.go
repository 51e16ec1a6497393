package api

import (
	"encoding/json"
	"net/http"

	"github.com/agentarena/agentarena/internal/arena"
)

func (s *Server) handleReportActivity(w http.ResponseWriter, r *http.Request) {
	agent := requestAgent(r)

	var input struct {
		Activities []arena.ActivityReport `json:"activities"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	result, err := s.svc.ReportActivities(agent.ID, input.Activities)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleReportSkills(w http.ResponseWriter, r *http.Request) {
	agent := requestAgent(r)

	var input struct {
		Skills         []arena.SkillReport `json:"skills"`
		RemoveUnlisted bool                `json:"remove_unlisted"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	result, err := s.svc.ReportSkills(agent.ID, input.Skills, input.RemoveUnlisted)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleReportMemory(w http.ResponseWriter, r *http.Request) {
	agent := requestAgent(r)

	var input arena.MemoryReport
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	result, err := s.svc.ReportMemory(agent.ID, input)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleReportIntegrations(w http.ResponseWriter, r *http.Request) {
	agent := requestAgent(r)

	var input struct {
		Integrations   []arena.IntegrationReport `json:"integrations"`
		RemoveUnlisted bool                      `json:"remove_unlisted"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	result, err := s.svc.ReportIntegrations(agent.ID, input.Integrations, input.RemoveUnlisted)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, result)
}
