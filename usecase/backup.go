package usecase

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/greenstack/stackconsole/backup_client"
	"github.com/greenstack/stackconsole/iam_client"
	"github.com/greenstack/stackconsole/model"
	"github.com/greenstack/stackconsole/repo"
	"github.com/greenstack/stackconsole/storage_client"
)

// BackupService keeps three things consistent per container: the job in the
// external backup system, the local registration row, and the backup
// account's role on the project.
type BackupService struct {
	store    *repo.Store
	storage  storage_client.Client
	backup   backup_client.Client
	accounts iam_client.Accounts
	roles    iam_client.Roles
	cfg      Config
	logger   hclog.Logger
}

func NewBackupService(store *repo.Store, storage storage_client.Client, backup backup_client.Client,
	accounts iam_client.Accounts, roles iam_client.Roles, cfg Config, logger hclog.Logger) *BackupService {
	return &BackupService{
		store:    store,
		storage:  storage,
		backup:   backup,
		accounts: accounts,
		roles:    roles,
		cfg:      cfg,
		logger:   logger.Named("backup"),
	}
}

func (s *BackupService) SetBackupStatus(container string, projectID model.ProjectID, projectName string, enabled bool) error {
	logger := s.logger.Named("SetBackupStatus")
	logger.Debug("started", "container", container, "project", projectName, "enabled", enabled)

	if err := s.checkLimits(container); err != nil {
		return err
	}

	job := projectName + "_" + container
	source := backup_client.Source{Account: projectID, Container: container}

	if enabled {
		if err := s.backup.Register(job, source); err != nil {
			return err
		}
	} else {
		if err := s.backup.Deregister(job); err != nil {
			return err
		}
	}

	if err := s.storeRegistration(container, projectID, projectName, enabled); err != nil {
		return err
	}

	if err := s.reconcileBackupRole(projectID); err != nil {
		s.reverse(job, source, enabled)
		return err
	}

	logger.Debug("normal finish", "container", container)
	return nil
}

// ListBackups reports the containers with backup enabled for the project.
// The local rows are the source of truth; the backup system is not asked.
func (s *BackupService) ListBackups(projectID model.ProjectID) ([]*model.BackupRegistration, error) {
	tx := s.store.Txn(false)
	defer tx.Abort()
	return repo.NewBackupRepository(tx).ListByProject(projectID)
}

func (s *BackupService) checkLimits(container string) error {
	meta, err := s.storage.GetContainerMeta(container)
	if err != nil {
		return err
	}
	if meta.ObjectCount >= s.cfg.MaxBackupObjects {
		return fmt.Errorf("%w: container %q holds %d objects, limit is %d",
			model.ErrPreconditionFailed, container, meta.ObjectCount, s.cfg.MaxBackupObjects)
	}
	if meta.BytesUsed >= s.cfg.MaxBackupBytes {
		return fmt.Errorf("%w: container %q holds %d bytes, limit is %d",
			model.ErrPreconditionFailed, container, meta.BytesUsed, s.cfg.MaxBackupBytes)
	}
	return nil
}

// storeRegistration mirrors the backup system's state into the local rows.
// Both directions are idempotent: an existing row stays untouched, a missing
// row is not an error.
func (s *BackupService) storeRegistration(container string, projectID model.ProjectID, projectName string, enabled bool) error {
	tx := s.store.Txn(true)
	defer tx.Abort()
	backups := repo.NewBackupRepository(tx)

	if enabled {
		_, err := backups.Find(container, projectID)
		switch {
		case err == nil:
			// already recorded
			return nil
		case errors.Is(err, model.ErrNotFound):
			err := backups.Create(&model.BackupRegistration{
				Container:   container,
				ProjectID:   projectID,
				ProjectName: projectName,
			})
			if err != nil {
				return fmt.Errorf("%w: backup row for %q: %s", model.ErrAssociationFailed, container, err)
			}
		default:
			return fmt.Errorf("%w: backup row lookup for %q: %s", model.ErrAssociationFailed, container, err)
		}
	} else {
		if err := backups.DeleteByContainer(container, projectID); err != nil {
			return fmt.Errorf("%w: backup row removal for %q: %s", model.ErrAssociationFailed, container, err)
		}
	}

	tx.Commit()
	return nil
}

// reconcileBackupRole aligns the backup account's role on the project with
// the remaining registrations: held while at least one backup is active,
// revoked once none are.
func (s *BackupService) reconcileBackupRole(projectID model.ProjectID) error {
	account, err := s.accounts.FindAccount(s.cfg.BackupAccountName)
	if err != nil {
		return fmt.Errorf("resolve backup account %q: %w", s.cfg.BackupAccountName, err)
	}
	role, err := s.roles.FindRole(s.cfg.BackupRoleName)
	if err != nil {
		return fmt.Errorf("resolve backup role %q: %w", s.cfg.BackupRoleName, err)
	}

	tx := s.store.Txn(false)
	remaining, err := repo.NewBackupRepository(tx).ListByProject(projectID)
	tx.Abort()
	if err != nil {
		return fmt.Errorf("%w: backup rows for %q: %s", model.ErrAssociationFailed, projectID, err)
	}

	if len(remaining) == 0 {
		err := s.roles.RevokeRole(account.ID, projectID, role.ID)
		if errors.Is(err, model.ErrNotFound) {
			// never granted, which is the desired end state
			return nil
		}
		return err
	}

	err = s.roles.GrantRole(account.ID, projectID, role.ID)
	if errors.Is(err, model.ErrAlreadyExists) {
		// the role is already held
		return nil
	}
	return err
}

// reverse undoes the backup API call after a failed role reconciliation so
// the external system never disagrees with the caller-visible outcome. Its
// own failure is logged, never surfaced over the original error.
func (s *BackupService) reverse(job string, source backup_client.Source, enabled bool) {
	var err error
	if enabled {
		err = s.backup.Deregister(job)
	} else {
		err = s.backup.Register(job, source)
	}
	if err != nil {
		s.logger.Error("backup call reversal failed", "job", job, "err", err)
	}
}
