package rest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/clintrovert/tracksync/internal/gateway"
)

// Handler handles gateway REST API requests.
type Handler struct {
	svc    *gateway.Service
	logger *zap.Logger
}

// NewHandler creates a new REST handler.
func NewHandler(svc *gateway.Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// ListProjectsRequest scopes a project listing to a caller-supplied token.
type ListProjectsRequest struct {
	APIToken string `json:"apiToken"`
}

// CreateTaskRequest represents a request to create a tracker task.
type CreateTaskRequest struct {
	TaskName      string `json:"taskName"`
	Description   string `json:"description"`
	EstimatedTime string `json:"estimatedTime,omitempty"`
	TaskLink      string `json:"taskLink,omitempty"`
}

// CreateTaskResponse represents the result of a successful task creation.
type CreateTaskResponse struct {
	Success       bool   `json:"success"`
	RemoteTaskGID string `json:"remoteTaskGid"`
	RemoteTaskURL string `json:"remoteTaskUrl"`
}

// CompleteTaskRequest represents a request to mark a tracker task complete.
type CompleteTaskRequest struct {
	APIToken     string `json:"apiToken"`
	RemoteTaskID string `json:"remoteTaskId"`
}

// CompleteTaskResponse carries the tracker's updated task payload.
type CompleteTaskResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

type projectEntry struct {
	GID  string `json:"gid"`
	Name string `json:"name"`
}

type annotatedProjectEntry struct {
	GID       string `json:"gid"`
	Name      string `json:"name"`
	Workspace string `json:"workspace"`
}

// ListProjects handles POST /projects
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	var req ListProjectsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	projects, err := h.svc.DiscoverProjects(r.Context(), req.APIToken)
	if err != nil {
		h.writeError(w, err)
		return
	}

	entries := make([]projectEntry, 0, len(projects))
	for _, p := range projects {
		entries = append(entries, projectEntry{GID: p.GID, Name: p.Name})
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": entries})
}

// ListWorkspaceProjects handles POST /workspaces/projects
func (h *Handler) ListWorkspaceProjects(w http.ResponseWriter, r *http.Request) {
	var req ListProjectsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	projects, err := h.svc.DiscoverProjects(r.Context(), req.APIToken)
	if err != nil {
		h.writeError(w, err)
		return
	}

	entries := make([]annotatedProjectEntry, 0, len(projects))
	for _, p := range projects {
		entries = append(entries, annotatedProjectEntry{
			GID:       p.GID,
			Name:      p.Name,
			Workspace: p.WorkspaceName,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": entries})
}

// CreateTask handles POST /tasks
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.CreateTask(r.Context(), gateway.CreateTaskInput{
		Name:          req.TaskName,
		Description:   req.Description,
		EstimatedTime: req.EstimatedTime,
		TaskLink:      req.TaskLink,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, CreateTaskResponse{
		Success:       true,
		RemoteTaskGID: result.TaskGID,
		RemoteTaskURL: result.TaskURL,
	})
}

// CompleteTask handles POST /tasks/complete
func (h *Handler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	var req CompleteTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	data, err := h.svc.CompleteTask(r.Context(), req.APIToken, req.RemoteTaskID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, CompleteTaskResponse{Success: true, Data: data})
}

// RegisterRoutes registers REST API routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/projects", h.ListProjects)
	r.Post("/workspaces/projects", h.ListWorkspaceProjects)
	r.Post("/tasks", h.CreateTask)
	r.Post("/tasks/complete", h.CompleteTask)
}
