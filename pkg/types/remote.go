package types

// RemoteWorkspace is a tracker workspace, fetched fresh per request and
// never persisted.
type RemoteWorkspace struct {
	GID  string `json:"gid"`
	Name string `json:"name"`
}

// RemoteProject is a tracker project. WorkspaceName is denormalized onto
// the project at fetch time so listings can say where each project lives.
type RemoteProject struct {
	GID           string `json:"gid"`
	Name          string `json:"name"`
	WorkspaceName string `json:"-"`
}

// RemoteUser is a tracker user, used only to resolve an assignee.
type RemoteUser struct {
	GID   string `json:"gid"`
	Email string `json:"email"`
}

// TaskCreationResult contains the identifiers of a newly created task.
type TaskCreationResult struct {
	TaskGID string
	TaskURL string
}
