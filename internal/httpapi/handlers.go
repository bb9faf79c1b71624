package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campaignhq/maestro/pkg/team"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createSessionRequest struct {
	Name    string                 `json:"name"`
	Brand   string                 `json:"brand"`
	Context map[string]interface{} `json:"context"`
	OwnerID string                 `json:"owner_id"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err, nil)
		return
	}

	session, err := s.service.CreateSession(team.CreateSessionParams{
		Name:    req.Name,
		Brand:   req.Brand,
		Context: req.Context,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		s.writeError(w, err, nil)
		return
	}
	s.writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.service.GetSession(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err, nil)
		return
	}
	s.writeJSON(w, http.StatusOK, session)
}

type mergeContextRequest struct {
	Context map[string]interface{} `json:"context"`
}

func (s *Server) handleMergeSessionContext(w http.ResponseWriter, r *http.Request) {
	var req mergeContextRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err, nil)
		return
	}

	session, err := s.service.MergeSessionContext(chi.URLParam(r, "id"), req.Context)
	if err != nil {
		s.writeError(w, err, nil)
		return
	}
	s.writeJSON(w, http.StatusOK, session)
}

type registerAgentRequest struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Role           string                 `json:"role"`
	Specialization string                 `json:"specialization"`
	SystemPrompt   string                 `json:"system_prompt"`
	Metadata       map[string]interface{} `json:"metadata"`
}

func (s *Server) handleRegisterAgent(w http.ResponseWriter, r *http.Request) {
	var req registerAgentRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err, nil)
		return
	}

	agent, err := s.service.RegisterAgent(team.RegisterAgentParams{
		ID:             req.ID,
		Name:           req.Name,
		Role:           req.Role,
		Specialization: req.Specialization,
		SystemPrompt:   req.SystemPrompt,
		Metadata:       req.Metadata,
	})
	if err != nil {
		s.writeError(w, err, nil)
		return
	}
	s.writeJSON(w, http.StatusOK, agent)
}

func (s *Server) handleGetAgent(w http.ResponseWriter, r *http.Request) {
	agent, err := s.service.GetAgent(chi.URLParam(r, "agent_id"))
	if err != nil {
		s.writeError(w, err, nil)
		return
	}
	s.writeJSON(w, http.StatusOK, agent)
}

func (s *Server) handleListAgents(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"agents": s.service.ListAgents(),
	})
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	status := team.TaskStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		s.writeError(w, team.NewValidationError("invalid status filter: %s", status), nil)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"tasks": s.service.ListTasks(status),
	})
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.service.GetTask(chi.URLParam(r, "task_id"))
	if err != nil {
		s.writeError(w, err, nil)
		return
	}
	s.writeJSON(w, http.StatusOK, task)
}

type executeTaskRequest struct {
	AgentID     string                 `json:"agent_id"`
	Description string                 `json:"description"`
	Priority    string                 `json:"priority"`
	Context     map[string]interface{} `json:"context"`
	SessionID   string                 `json:"session_id"`
	Sync        *bool                  `json:"sync"`
}

func (s *Server) handleExecuteTask(w http.ResponseWriter, r *http.Request) {
	var req executeTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err, nil)
		return
	}

	// sync defaults to true when omitted
	sync := true
	if req.Sync != nil {
		sync = *req.Sync
	}

	task, err := s.service.ExecuteTask(r.Context(), team.ExecuteTaskParams{
		AgentID:     req.AgentID,
		Description: req.Description,
		Priority:    req.Priority,
		Context:     req.Context,
		SessionID:   req.SessionID,
		Sync:        sync,
	})
	if err != nil {
		s.writeError(w, err, task)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"task": task})
}

type routeTaskRequest struct {
	Description string                 `json:"description"`
	Context     map[string]interface{} `json:"context"`
	SessionID   string                 `json:"session_id"`
}

func (s *Server) handleRouteTask(w http.ResponseWriter, r *http.Request) {
	var req routeTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err, nil)
		return
	}

	result, err := s.service.RouteTask(r.Context(), team.RouteTaskParams{
		Description: req.Description,
		Context:     req.Context,
		SessionID:   req.SessionID,
	})
	if err != nil {
		var task *team.Task
		if result != nil {
			task = result.Task
		}
		s.writeError(w, err, task)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}
