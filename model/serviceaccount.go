package model

// ServiceAccount is an identity-service account acting on behalf of a
// project rather than a human. Exactly one exists per project, named by
// convention (see usecase.Config.ServiceAccountName).
type ServiceAccount struct {
	ID        AccountID `json:"id"`
	Name      string    `json:"name"`
	ProjectID ProjectID `json:"project_id"`
	Enabled   bool      `json:"enabled"`
	Email     string    `json:"email,omitempty"`
}
