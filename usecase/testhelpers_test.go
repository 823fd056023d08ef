package usecase

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-memdb"
	"github.com/stretchr/testify/require"

	"github.com/greenstack/stackconsole/fixtures"
	"github.com/greenstack/stackconsole/model"
	"github.com/greenstack/stackconsole/repo"
)

func testConfig() Config {
	return Config{
		ServiceAccountPrefix: "vault",
		DefaultRoleName:      "member",
		BackupAccountName:    "backupper",
		BackupRoleName:       "backup",
		MaxBackupObjects:     10000,
		MaxBackupBytes:       1 << 30,
	}
}

func testLogger() hclog.Logger {
	return hclog.NewNullLogger()
}

func newTestStore(t *testing.T) *repo.Store {
	store, err := repo.NewStore()
	require.NoError(t, err)
	return store
}

// partialStore builds a store that is missing some tables, so writes to the
// omitted ones fail. Used to inject local-store faults into orchestrations.
func partialStore(t *testing.T, schemas ...*memdb.DBSchema) *repo.Store {
	merged := &memdb.DBSchema{Tables: map[string]*memdb.TableSchema{}}
	for _, s := range schemas {
		for name, table := range s.Tables {
			merged.Tables[name] = table
		}
	}
	db, err := memdb.NewMemDB(merged)
	require.NoError(t, err)
	return &repo.Store{MemDB: db}
}

func defaultRoleFixture(f *identityFake) {
	f.roles = append(f.roles, &model.Role{ID: fixtures.RoleID1, Name: "member"})
}

func ownerLinkCount(t *testing.T, store *repo.Store, projectID model.ProjectID) int {
	links, err := repo.NewTeamLinkRepository(store.Txn(false)).ListByProject(projectID)
	require.NoError(t, err)
	owners := 0
	for _, link := range links {
		if link.Owner {
			owners++
		}
	}
	return owners
}
