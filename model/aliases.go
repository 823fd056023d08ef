package model

type (
	// ProjectID is the identity-service-assigned tenant id.
	ProjectID = string
	AccountID = string
	RoleID    = string
	TeamID    = string
	AreaID    = string
)
