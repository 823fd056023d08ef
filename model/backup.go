package model

const BackupRegistrationType = "backup_registration" // also, memdb schema name

// BackupRegistration marks that a container has a job configured in the
// external backup system. Existence of the row is the source of truth for
// "is backup enabled" queries.
type BackupRegistration struct {
	UUID        string    `json:"uuid"` // PK
	Container   string    `json:"container"`
	ProjectID   ProjectID `json:"project_id"`
	ProjectName string    `json:"project_name"`
}

func (b *BackupRegistration) ObjType() string {
	return BackupRegistrationType
}

func (b *BackupRegistration) ObjId() string {
	return b.UUID
}
