package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/clintrovert/tracksync/internal/asana"
	"github.com/clintrovert/tracksync/internal/store"
	"github.com/clintrovert/tracksync/pkg/types"
)

// Service mediates between inbound requests and the tracker API. It is
// stateless: every remote entity is fetched fresh per call.
type Service struct {
	store           *store.Client
	tracker         *asana.Client
	appURL          string
	integrationType string
	logger          *zap.Logger
	now             func() time.Time
}

// NewService creates a new gateway service.
func NewService(store *store.Client, tracker *asana.Client, appURL, integrationType string, logger *zap.Logger) *Service {
	return &Service{
		store:           store,
		tracker:         tracker,
		appURL:          strings.TrimRight(appURL, "/"),
		integrationType: integrationType,
		logger:          logger,
		now:             time.Now,
	}
}

// CreateTaskInput carries the caller-provided task fields.
type CreateTaskInput struct {
	Name          string
	Description   string
	EstimatedTime string
	TaskLink      string
}

// ResolveConfig returns the active integration record for the configured
// integration type.
func (s *Service) ResolveConfig(ctx context.Context) (*types.IntegrationConfig, error) {
	record, err := s.store.FindActive(ctx, s.integrationType)
	if err != nil {
		return nil, &StoreError{Err: err}
	}
	if record == nil || record.APIToken == "" {
		return nil, &NotConfiguredError{
			Reason: fmt.Sprintf("%s integration is not configured", s.integrationType),
		}
	}
	return record, nil
}

// LookupAssignee resolves an assignee email to a tracker user gid within
// the given workspace, comparing emails case-insensitively. The lookup is
// best-effort: any failure is logged and an empty gid returned so task
// creation proceeds without an assignee.
func (s *Service) LookupAssignee(ctx context.Context, token, workspaceGID, email string) string {
	users, err := s.tracker.Users(ctx, token, workspaceGID)
	if err != nil {
		s.logger.Warn("assignee lookup failed",
			zap.String("workspace", workspaceGID),
			zap.String("email", email),
			zap.Error(err),
		)
		return ""
	}
	for _, user := range users {
		if strings.EqualFold(user.Email, email) {
			return user.GID
		}
	}
	return ""
}

// DiscoverProjects lists every project the token can reach, each
// annotated with the name of its workspace. Workspaces are fetched
// sequentially so the result keeps workspace order, then the provider's
// own project order within each workspace. A workspace whose project
// fetch fails is skipped rather than failing the whole listing.
func (s *Service) DiscoverProjects(ctx context.Context, token string) ([]types.RemoteProject, error) {
	if strings.TrimSpace(token) == "" {
		return nil, &ValidationError{Field: "apiToken"}
	}

	workspaces, err := s.tracker.Workspaces(ctx, token)
	if err != nil {
		return nil, err
	}
	if len(workspaces) == 0 {
		return nil, &NoWorkspacesError{}
	}

	projects := make([]types.RemoteProject, 0)
	for _, ws := range workspaces {
		wsProjects, err := s.tracker.Projects(ctx, token, ws.GID)
		if err != nil {
			s.logger.Warn("skipping workspace: project fetch failed",
				zap.String("workspace", ws.Name),
				zap.Error(err),
			)
			continue
		}
		for _, p := range wsProjects {
			p.WorkspaceName = ws.Name
			projects = append(projects, p)
		}
	}

	return projects, nil
}

// CreateTask creates a task in the tracker using the stored integration
// routing and returns the new task's gid and deep link. Validation runs
// before any network call.
func (s *Service) CreateTask(ctx context.Context, input CreateTaskInput) (*types.TaskCreationResult, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, &ValidationError{Field: "taskName"}
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, &ValidationError{Field: "description"}
	}

	cfg, err := s.ResolveConfig(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.ProjectID == "" {
		return nil, &NotConfiguredError{
			Reason: fmt.Sprintf("%s integration has no project configured", s.integrationType),
		}
	}

	assignee := ""
	if cfg.DefaultAssigneeEmail != "" {
		assignee = s.resolveDefaultAssignee(ctx, cfg.APIToken, cfg.DefaultAssigneeEmail)
	}

	notes := input.Description
	if input.EstimatedTime != "" {
		notes += "\n\nEstimated Time: " + input.EstimatedTime
	}
	if input.TaskLink != "" {
		notes += "\n\nTask Link: " + input.TaskLink
	}

	taskGID, err := s.tracker.CreateTask(ctx, cfg.APIToken, asana.NewTask{
		Name:     input.Name,
		Notes:    notes,
		Projects: []string{cfg.ProjectID},
		DueOn:    s.now().UTC().Format("2006-01-02"),
		Assignee: assignee,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("created tracker task",
		zap.String("task_gid", taskGID),
		zap.String("project_id", cfg.ProjectID),
	)

	// The tracker's accepted deep-link scheme. Fixed format contract.
	return &types.TaskCreationResult{
		TaskGID: taskGID,
		TaskURL: fmt.Sprintf("%s/0/%s/%s", s.appURL, cfg.ProjectID, taskGID),
	}, nil
}

// CompleteTask marks a tracker task complete and returns the raw updated
// task payload. The tracker treats repeat completions as a no-op and the
// gateway keeps no state of its own, so the call is idempotent.
func (s *Service) CompleteTask(ctx context.Context, token, taskID string) (json.RawMessage, error) {
	if strings.TrimSpace(token) == "" {
		return nil, &ValidationError{Field: "apiToken"}
	}
	if strings.TrimSpace(taskID) == "" {
		return nil, &ValidationError{Field: "remoteTaskId"}
	}
	return s.tracker.CompleteTask(ctx, token, taskID)
}

// resolveDefaultAssignee picks the workspace to search and resolves the
// configured assignee email in it. Best-effort like the lookup itself.
func (s *Service) resolveDefaultAssignee(ctx context.Context, token, email string) string {
	workspaces, err := s.tracker.Workspaces(ctx, token)
	if err != nil || len(workspaces) == 0 {
		s.logger.Warn("assignee lookup skipped: no workspace available", zap.Error(err))
		return ""
	}
	return s.LookupAssignee(ctx, token, workspaces[0].GID, email)
}
