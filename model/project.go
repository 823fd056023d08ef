package model

// Project is a tenant owned by the identity service. The id is assigned by
// the service on creation and is never guessed beforehand.
type Project struct {
	ID          ProjectID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Enabled     bool      `json:"enabled"`
}

// ProjectUpdate carries the mutable tenant fields; nil means "keep".
type ProjectUpdate struct {
	Name        *string
	Description *string
	Enabled     *bool
}
