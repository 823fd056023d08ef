package usecase

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/greenstack/stackconsole/model"
	"github.com/greenstack/stackconsole/repo"
)

// OwnerService maintains the single-owner invariant on team project links:
// at most one link per project carries the owner flag.
type OwnerService struct {
	store  *repo.Store
	logger hclog.Logger
}

func NewOwnerService(store *repo.Store, logger hclog.Logger) *OwnerService {
	return &OwnerService{store: store, logger: logger.Named("owner")}
}

// SetProjectOwner reassigns which team owns the project. The demote of the
// previous owner and the promote (or create) of the new one happen inside
// one store transaction, so no observer ever sees zero or two owners.
func (s *OwnerService) SetProjectOwner(projectID model.ProjectID, newTeamID model.TeamID) error {
	tx := s.store.Txn(true)
	defer tx.Abort()
	links := repo.NewTeamLinkRepository(tx)

	owner, err := links.GetOwner(projectID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("%w: owner lookup for %q: %s", model.ErrAssociationFailed, projectID, err)
	}

	if owner != nil {
		if owner.TeamID == newTeamID {
			// already the owner, nothing to write
			return nil
		}
		demoted := *owner
		demoted.Owner = false
		if err := links.Update(&demoted); err != nil {
			return fmt.Errorf("%w: demote owner of %q: %s", model.ErrAssociationFailed, projectID, err)
		}
	}

	existing, err := links.Get(newTeamID, projectID)
	switch {
	case err == nil:
		promoted := *existing
		promoted.Owner = true
		if err := links.Update(&promoted); err != nil {
			return fmt.Errorf("%w: promote team %q on %q: %s", model.ErrAssociationFailed, newTeamID, projectID, err)
		}
	case errors.Is(err, model.ErrNotFound):
		err := links.Create(&model.TeamProjectLink{
			TeamID:    newTeamID,
			ProjectID: projectID,
			Owner:     true,
		})
		if err != nil {
			return fmt.Errorf("%w: create owner link for %q: %s", model.ErrAssociationFailed, projectID, err)
		}
	default:
		return fmt.Errorf("%w: link lookup for %q: %s", model.ErrAssociationFailed, projectID, err)
	}

	tx.Commit()
	s.logger.Debug("owner transferred", "project", projectID, "team", newTeamID)
	return nil
}

// ProjectOwner returns the owning team's link, or model.ErrNotFound when the
// project has no owner.
func (s *OwnerService) ProjectOwner(projectID model.ProjectID) (*model.TeamProjectLink, error) {
	tx := s.store.Txn(false)
	defer tx.Abort()
	return repo.NewTeamLinkRepository(tx).GetOwner(projectID)
}

func (s *OwnerService) TeamProjects(teamID model.TeamID) ([]*model.TeamProjectLink, error) {
	tx := s.store.Txn(false)
	defer tx.Abort()
	return repo.NewTeamLinkRepository(tx).ListByTeam(teamID)
}
