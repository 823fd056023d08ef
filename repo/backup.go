package repo

import (
	"github.com/hashicorp/go-memdb"

	"github.com/greenstack/stackconsole/model"
	"github.com/greenstack/stackconsole/uuid"
)

const ContainerIndex = "container"

func BackupRegistrationSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			model.BackupRegistrationType: {
				Name: model.BackupRegistrationType,
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
					ContainerIndex: {
						Name: ContainerIndex,
						Indexer: &memdb.StringFieldIndex{
							Field: "Container",
						},
					},
				},
			},
		},
	}
}

type BackupRepository struct {
	db *Txn
}

func NewBackupRepository(tx *Txn) *BackupRepository {
	return &BackupRepository{db: tx}
}

func (r *BackupRepository) Create(reg *model.BackupRegistration) error {
	if reg.UUID == "" {
		reg.UUID = uuid.New()
	}
	return r.db.Insert(model.BackupRegistrationType, reg)
}

// Find returns the registration of the container under the project, or
// model.ErrNotFound.
func (r *BackupRepository) Find(container string, projectID model.ProjectID) (*model.BackupRegistration, error) {
	iter, err := r.db.Get(model.BackupRegistrationType, ContainerIndex, container)
	if err != nil {
		return nil, err
	}
	for {
		raw := iter.Next()
		if raw == nil {
			break
		}
		reg := raw.(*model.BackupRegistration)
		if reg.ProjectID == projectID {
			return reg, nil
		}
	}
	return nil, model.ErrNotFound
}

func (r *BackupRepository) ListByProject(projectID model.ProjectID) ([]*model.BackupRegistration, error) {
	iter, err := r.db.Get(model.BackupRegistrationType, ProjectIndex, projectID)
	if err != nil {
		return nil, err
	}

	list := []*model.BackupRegistration{}
	for {
		raw := iter.Next()
		if raw == nil {
			break
		}
		list = append(list, raw.(*model.BackupRegistration))
	}
	return list, nil
}

// DeleteByContainer removes the registration rows of the container under the
// project. Absence is not an error.
func (r *BackupRepository) DeleteByContainer(container string, projectID model.ProjectID) error {
	iter, err := r.db.Get(model.BackupRegistrationType, ContainerIndex, container)
	if err != nil {
		return err
	}
	regs := []*model.BackupRegistration{}
	for {
		raw := iter.Next()
		if raw == nil {
			break
		}
		reg := raw.(*model.BackupRegistration)
		if reg.ProjectID == projectID {
			regs = append(regs, reg)
		}
	}
	for _, reg := range regs {
		if err := r.db.Delete(model.BackupRegistrationType, reg); err != nil {
			return err
		}
	}
	return nil
}

func (r *BackupRepository) DeleteByProject(projectID model.ProjectID) error {
	regs, err := r.ListByProject(projectID)
	if err != nil {
		return err
	}
	for _, reg := range regs {
		if err := r.db.Delete(model.BackupRegistrationType, reg); err != nil {
			return err
		}
	}
	return nil
}
