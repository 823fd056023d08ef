package usecase

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/greenstack/stackconsole/iam_client"
	"github.com/greenstack/stackconsole/model"
	"github.com/greenstack/stackconsole/repo"
	"github.com/greenstack/stackconsole/storage_client"
)

// probeContainer is created before the storage account delete so the
// account exists even if it was never written to.
const probeContainer = "deprovision_probe"

// DeprovisionService tears projects down. Unlike provisioning it does not
// compensate forward progress: every step treats already-removed resources
// as satisfied, so re-invoking DeleteProject after a failure resumes where
// the previous attempt stopped.
type DeprovisionService struct {
	store    *repo.Store
	tenants  iam_client.Tenants
	accounts iam_client.Accounts
	storage  storage_client.Client
	cfg      Config
	logger   hclog.Logger
}

func NewDeprovisionService(store *repo.Store, tenants iam_client.Tenants, accounts iam_client.Accounts,
	storage storage_client.Client, cfg Config, logger hclog.Logger) *DeprovisionService {
	return &DeprovisionService{
		store:    store,
		tenants:  tenants,
		accounts: accounts,
		storage:  storage,
		cfg:      cfg,
		logger:   logger.Named("deprovision"),
	}
}

type deprovisionStep struct {
	name string
	run  func(*model.Project) error
}

func (s *DeprovisionService) DeleteProject(name string) error {
	logger := s.logger.Named("DeleteProject")
	logger.Debug("started", "project", name)

	project, err := s.tenants.GetTenantByName(name)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return fmt.Errorf("%w: project %q", model.ErrNotFound, name)
		}
		return fmt.Errorf("resolve project %q: %w", name, err)
	}

	steps := []deprovisionStep{
		{"storage account", s.purgeStorage},
		{"service account", s.deleteServiceAccount},
		{"associations", s.removeAssociations},
		{"tenant", s.deleteTenant},
	}
	for _, step := range steps {
		if err := step.run(project); err != nil {
			logger.Error("teardown aborted", "project", name, "step", step.name, "err", err)
			return fmt.Errorf("%w: deleting %q at step %q: %s", model.ErrPartialFailure, name, step.name, err)
		}
	}

	logger.Debug("normal finish", "project", name)
	return nil
}

func (s *DeprovisionService) purgeStorage(project *model.Project) error {
	accountURL := s.storage.AccountURL(project.ID)

	// An account no request ever touched 404s on DELETE; the no-op container
	// creation materializes it first.
	if err := s.storage.PutAccountContainer(accountURL, probeContainer); err != nil {
		return err
	}

	status, err := s.storage.DeleteAccount(accountURL)
	if err != nil {
		return err
	}
	switch {
	case status == http.StatusNotFound:
		// already gone, fine on a re-run
		return nil
	case status < 200 || status >= 300:
		return fmt.Errorf("storage account delete: status %d", status)
	}
	return nil
}

func (s *DeprovisionService) deleteServiceAccount(project *model.Project) error {
	account, err := s.accounts.FindAccount(s.cfg.ServiceAccountName(project.Name))
	if errors.Is(err, model.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	err = s.accounts.DeleteAccount(account.ID)
	if errors.Is(err, model.ErrNotFound) {
		return nil
	}
	return err
}

func (s *DeprovisionService) removeAssociations(project *model.Project) error {
	tx := s.store.Txn(true)
	defer tx.Abort()

	var errs *multierror.Error
	if err := repo.NewTeamLinkRepository(tx).DeleteByProject(project.ID); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := repo.NewAreaLinkRepository(tx).DeleteByProject(project.ID); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := repo.NewBackupRepository(tx).DeleteByProject(project.ID); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %s", model.ErrAssociationFailed, err)
	}

	tx.Commit()
	return nil
}

func (s *DeprovisionService) deleteTenant(project *model.Project) error {
	err := s.tenants.DeleteTenant(project.ID)
	if errors.Is(err, model.ErrNotFound) {
		return nil
	}
	return err
}
