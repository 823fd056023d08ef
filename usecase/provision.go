package usecase

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/greenstack/stackconsole/iam_client"
	"github.com/greenstack/stackconsole/model"
	"github.com/greenstack/stackconsole/repo"
)

// ProvisionService creates projects across the identity service and the
// local association store. No cross-system transaction exists, so failures
// after the first committed step trigger compensation in reverse order; the
// caller always learns the original failure, never a cleanup one.
type ProvisionService struct {
	store    *repo.Store
	tenants  iam_client.Tenants
	accounts iam_client.Accounts
	roles    iam_client.Roles
	cfg      Config
	logger   hclog.Logger
}

func NewProvisionService(store *repo.Store, tenants iam_client.Tenants, accounts iam_client.Accounts,
	roles iam_client.Roles, cfg Config, logger hclog.Logger) *ProvisionService {
	return &ProvisionService{
		store:    store,
		tenants:  tenants,
		accounts: accounts,
		roles:    roles,
		cfg:      cfg,
		logger:   logger.Named("provision"),
	}
}

// ProvisionResult returns everything a fresh project consists of. Password
// is the service account's plaintext password, observable only here.
type ProvisionResult struct {
	Project        *model.Project
	ServiceAccount *model.ServiceAccount
	Password       string
}

func (s *ProvisionService) CreateProject(name, ownerTeamID, areaID, description string) (*ProvisionResult, error) {
	logger := s.logger.Named("CreateProject")
	logger.Debug("started", "project", name, "team", ownerTeamID)

	// read-only, so resolved before anything is created
	role, err := s.roles.FindRole(s.cfg.DefaultRoleName)
	if err != nil {
		return nil, fmt.Errorf("resolve default role %q: %w", s.cfg.DefaultRoleName, err)
	}

	project, err := s.tenants.CreateTenant(name, description, true)
	if err != nil {
		if errors.Is(err, model.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: project %q", model.ErrDuplicateName, name)
		}
		return nil, fmt.Errorf("create project %q: %w", name, err)
	}

	pass, err := generatePassword()
	if err != nil {
		s.compensate(project, nil)
		return nil, fmt.Errorf("generate password for %q: %w", name, err)
	}

	account, err := s.accounts.CreateAccount(s.cfg.ServiceAccountName(name), pass, project.ID, true, "", role.ID)
	if err != nil {
		s.compensate(project, nil)
		return nil, fmt.Errorf("create service account for %q: %w", name, err)
	}

	tx := s.store.Txn(true)
	defer tx.Abort()

	err = repo.NewTeamLinkRepository(tx).Create(&model.TeamProjectLink{
		TeamID:    ownerTeamID,
		ProjectID: project.ID,
		Owner:     true,
	})
	if err != nil {
		s.compensate(project, account)
		return nil, fmt.Errorf("%w: team link for %q: %s", model.ErrAssociationFailed, name, err)
	}

	err = repo.NewAreaLinkRepository(tx).Create(&model.AreaProjectLink{
		AreaID:    areaID,
		ProjectID: project.ID,
	})
	if err != nil {
		s.compensate(project, account)
		return nil, fmt.Errorf("%w: area link for %q: %s", model.ErrAssociationFailed, name, err)
	}

	tx.Commit()
	logger.Debug("normal finish", "project", name, "id", project.ID)
	return &ProvisionResult{
		Project:        project,
		ServiceAccount: account,
		Password:       pass,
	}, nil
}

// UpdateProject is a thin passthrough used by the console's edit screen.
func (s *ProvisionService) UpdateProject(id model.ProjectID, upd model.ProjectUpdate) (*model.Project, error) {
	project, err := s.tenants.UpdateTenant(id, upd)
	if err != nil {
		if errors.Is(err, model.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: project %q", model.ErrDuplicateName, id)
		}
		return nil, err
	}
	return project, nil
}

func (s *ProvisionService) GetProject(name string) (*model.Project, error) {
	return s.tenants.GetTenantByName(name)
}

// compensate undoes completed steps in reverse order. Its own failures are
// logged and aggregated but never replace the original error: the caller
// must learn why the operation failed, not why cleanup failed afterward.
func (s *ProvisionService) compensate(project *model.Project, account *model.ServiceAccount) {
	var errs *multierror.Error
	if account != nil {
		if err := s.accounts.DeleteAccount(account.ID); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("delete service account %q: %s", account.Name, err))
		}
	}
	if err := s.tenants.DeleteTenant(project.ID); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("delete tenant %q: %s", project.ID, err))
	}
	if err := errs.ErrorOrNil(); err != nil {
		s.logger.Error("provisioning cleanup failed", "project", project.Name, "err", err)
	}
}
