package usecase

import "fmt"

// Config carries the fixed knobs of the lifecycle orchestrators. Every
// service receives it explicitly; there is no process-wide state.
type Config struct {
	// ServiceAccountPrefix yields service account names u_<prefix>_<project>.
	ServiceAccountPrefix string
	// DefaultRoleName is granted to a project's service account on creation.
	DefaultRoleName string

	// BackupAccountName and BackupRoleName identify the fixed account the
	// backup system acts as and the role it needs on a project with active
	// backups.
	BackupAccountName string
	BackupRoleName    string

	// MaxBackupObjects and MaxBackupBytes gate backup enablement.
	MaxBackupObjects int64
	MaxBackupBytes   int64
}

func (c Config) ServiceAccountName(projectName string) string {
	return fmt.Sprintf("u_%s_%s", c.ServiceAccountPrefix, projectName)
}
