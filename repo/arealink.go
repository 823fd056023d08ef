package repo

import (
	"github.com/hashicorp/go-memdb"

	"github.com/greenstack/stackconsole/model"
	"github.com/greenstack/stackconsole/uuid"
)

const AreaIndex = "area"

func AreaProjectLinkSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			model.AreaProjectLinkType: {
				Name: model.AreaProjectLinkType,
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
					AreaIndex: {
						Name: AreaIndex,
						Indexer: &memdb.StringFieldIndex{
							Field: "AreaID",
						},
					},
				},
			},
		},
	}
}

type AreaLinkRepository struct {
	db *Txn
}

func NewAreaLinkRepository(tx *Txn) *AreaLinkRepository {
	return &AreaLinkRepository{db: tx}
}

func (r *AreaLinkRepository) Create(link *model.AreaProjectLink) error {
	if link.UUID == "" {
		link.UUID = uuid.New()
	}
	return r.db.Insert(model.AreaProjectLinkType, link)
}

func (r *AreaLinkRepository) ListByProject(projectID model.ProjectID) ([]*model.AreaProjectLink, error) {
	iter, err := r.db.Get(model.AreaProjectLinkType, ProjectIndex, projectID)
	if err != nil {
		return nil, err
	}

	list := []*model.AreaProjectLink{}
	for {
		raw := iter.Next()
		if raw == nil {
			break
		}
		list = append(list, raw.(*model.AreaProjectLink))
	}
	return list, nil
}

func (r *AreaLinkRepository) DeleteByProject(projectID model.ProjectID) error {
	links, err := r.ListByProject(projectID)
	if err != nil {
		return err
	}
	for _, link := range links {
		if err := r.db.Delete(model.AreaProjectLinkType, link); err != nil {
			return err
		}
	}
	return nil
}
