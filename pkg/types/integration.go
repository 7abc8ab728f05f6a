package types

// IntegrationConfig is a stored integration record: the credential and
// routing configuration for one integration type. At most one record is
// active per type; the store owns that invariant.
type IntegrationConfig struct {
	Type                 string `json:"type"`
	IsActive             bool   `json:"active"`
	APIToken             string `json:"api_token"`
	ProjectID            string `json:"project_id"`
	DefaultAssigneeEmail string `json:"default_assignee_email,omitempty"`
}
