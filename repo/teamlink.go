package repo

import (
	"github.com/hashicorp/go-memdb"

	"github.com/greenstack/stackconsole/model"
	"github.com/greenstack/stackconsole/uuid"
)

const TeamIndex = "team"

func TeamProjectLinkSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			model.TeamProjectLinkType: {
				Name: model.TeamProjectLinkType,
				Indexes: map[string]*memdb.IndexSchema{
					PK: {
						Name:   PK,
						Unique: true,
						Indexer: &memdb.UUIDFieldIndex{
							Field: "UUID",
						},
					},
					ProjectIndex: {
						Name: ProjectIndex,
						Indexer: &memdb.StringFieldIndex{
							Field: "ProjectID",
						},
					},
					TeamIndex: {
						Name: TeamIndex,
						Indexer: &memdb.StringFieldIndex{
							Field: "TeamID",
						},
					},
				},
			},
		},
	}
}

type TeamLinkRepository struct {
	db *Txn // called "db" not to provoke transaction semantics
}

func NewTeamLinkRepository(tx *Txn) *TeamLinkRepository {
	return &TeamLinkRepository{db: tx}
}

func (r *TeamLinkRepository) save(link *model.TeamProjectLink) error {
	if link.UUID == "" {
		link.UUID = uuid.New()
	}
	return r.db.Insert(model.TeamProjectLinkType, link)
}

func (r *TeamLinkRepository) Create(link *model.TeamProjectLink) error {
	return r.save(link)
}

// Update replaces the stored link carrying the same UUID.
func (r *TeamLinkRepository) Update(link *model.TeamProjectLink) error {
	raw, err := r.db.First(model.TeamProjectLinkType, PK, link.UUID)
	if err != nil {
		return err
	}
	if raw == nil {
		return model.ErrNotFound
	}
	return r.save(link)
}

func (r *TeamLinkRepository) Get(teamID model.TeamID, projectID model.ProjectID) (*model.TeamProjectLink, error) {
	links, err := r.ListByProject(projectID)
	if err != nil {
		return nil, err
	}
	for _, link := range links {
		if link.TeamID == teamID {
			return link, nil
		}
	}
	return nil, model.ErrNotFound
}

// GetOwner returns the link holding the owner flag for the project.
func (r *TeamLinkRepository) GetOwner(projectID model.ProjectID) (*model.TeamProjectLink, error) {
	links, err := r.ListByProject(projectID)
	if err != nil {
		return nil, err
	}
	for _, link := range links {
		if link.Owner {
			return link, nil
		}
	}
	return nil, model.ErrNotFound
}

func (r *TeamLinkRepository) ListByProject(projectID model.ProjectID) ([]*model.TeamProjectLink, error) {
	iter, err := r.db.Get(model.TeamProjectLinkType, ProjectIndex, projectID)
	if err != nil {
		return nil, err
	}

	list := []*model.TeamProjectLink{}
	for {
		raw := iter.Next()
		if raw == nil {
			break
		}
		list = append(list, raw.(*model.TeamProjectLink))
	}
	return list, nil
}

func (r *TeamLinkRepository) ListByTeam(teamID model.TeamID) ([]*model.TeamProjectLink, error) {
	iter, err := r.db.Get(model.TeamProjectLinkType, TeamIndex, teamID)
	if err != nil {
		return nil, err
	}

	list := []*model.TeamProjectLink{}
	for {
		raw := iter.Next()
		if raw == nil {
			break
		}
		list = append(list, raw.(*model.TeamProjectLink))
	}
	return list, nil
}

// DeleteByProject removes every link of the project. Absence is not an error,
// so deprovisioning can re-run this step.
func (r *TeamLinkRepository) DeleteByProject(projectID model.ProjectID) error {
	links, err := r.ListByProject(projectID)
	if err != nil {
		return err
	}
	for _, link := range links {
		if err := r.db.Delete(model.TeamProjectLinkType, link); err != nil {
			return err
		}
	}
	return nil
}
