package repo

import (
	"fmt"

	"github.com/hashicorp/go-memdb"
)

const (
	// PK is the alias for "id". Index "id" is required by all tables.
	// In the domain, the primary key is not always "id".
	PK = "id"

	ProjectIndex = "project"
)

// Txn is a store transaction. Writes stay invisible to readers until Commit.
type Txn = memdb.Txn

// Store is the local association store: team and area links plus backup
// registrations, held in memdb tables.
type Store struct {
	*memdb.MemDB
}

func NewStore() (*Store, error) {
	schema, err := GetSchema()
	if err != nil {
		return nil, err
	}
	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, err
	}
	return &Store{db}, nil
}

func (s *Store) Txn(write bool) *Txn {
	return s.MemDB.Txn(write)
}

func mergeSchema() (*memdb.DBSchema, error) {
	included := []*memdb.DBSchema{
		TeamProjectLinkSchema(),
		AreaProjectLinkSchema(),
		BackupRegistrationSchema(),
	}

	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{},
	}

	for _, s := range included {
		for name, table := range s.Tables {
			if _, ok := schema.Tables[name]; ok {
				return nil, fmt.Errorf("table %q already there", name)
			}
			schema.Tables[name] = table
		}
	}
	return schema, nil
}

func GetSchema() (*memdb.DBSchema, error) {
	schema, err := mergeSchema()
	if err != nil {
		return nil, err
	}
	err = schema.Validate()
	if err != nil {
		return nil, err
	}
	return schema, nil
}
