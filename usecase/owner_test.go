package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greenstack/stackconsole/fixtures"
	"github.com/greenstack/stackconsole/model"
	"github.com/greenstack/stackconsole/repo"
)

func seedLinks(t *testing.T, store *repo.Store, links ...model.TeamProjectLink) {
	tx := store.Txn(true)
	linkRepo := repo.NewTeamLinkRepository(tx)
	for _, link := range links {
		tmp := link
		require.NoError(t, linkRepo.Create(&tmp))
	}
	tx.Commit()
}

func Test_SetProjectOwner_Transfer(t *testing.T) {
	store := newTestStore(t)
	seedLinks(t, store, model.TeamProjectLink{
		TeamID: fixtures.TeamID1, ProjectID: fixtures.ProjectID1, Owner: true,
	})
	service := NewOwnerService(store, testLogger())

	err := service.SetProjectOwner(fixtures.ProjectID1, fixtures.TeamID2)

	require.NoError(t, err)
	owner, err := service.ProjectOwner(fixtures.ProjectID1)
	require.NoError(t, err)
	require.Equal(t, fixtures.TeamID2, owner.TeamID)

	// the previous owner keeps its link, demoted
	demoted, err := repo.NewTeamLinkRepository(store.Txn(false)).Get(fixtures.TeamID1, fixtures.ProjectID1)
	require.NoError(t, err)
	require.False(t, demoted.Owner)

	require.Equal(t, 1, ownerLinkCount(t, store, fixtures.ProjectID1))
}

func Test_SetProjectOwner_PromotesExistingLink(t *testing.T) {
	store := newTestStore(t)
	seedLinks(t, store,
		model.TeamProjectLink{TeamID: fixtures.TeamID1, ProjectID: fixtures.ProjectID1, Owner: true},
		model.TeamProjectLink{TeamID: fixtures.TeamID2, ProjectID: fixtures.ProjectID1},
	)
	service := NewOwnerService(store, testLogger())

	err := service.SetProjectOwner(fixtures.ProjectID1, fixtures.TeamID2)

	require.NoError(t, err)
	links, err := repo.NewTeamLinkRepository(store.Txn(false)).ListByProject(fixtures.ProjectID1)
	require.NoError(t, err)
	require.Len(t, links, 2) // promoted in place, not duplicated
	require.Equal(t, 1, ownerLinkCount(t, store, fixtures.ProjectID1))
}

func Test_SetProjectOwner_SameTeamIsNoop(t *testing.T) {
	store := newTestStore(t)
	seedLinks(t, store, model.TeamProjectLink{
		TeamID: fixtures.TeamID1, ProjectID: fixtures.ProjectID1, Owner: true,
	})
	service := NewOwnerService(store, testLogger())
	before, err := service.ProjectOwner(fixtures.ProjectID1)
	require.NoError(t, err)

	err = service.SetProjectOwner(fixtures.ProjectID1, fixtures.TeamID1)

	require.NoError(t, err)
	after, err := service.ProjectOwner(fixtures.ProjectID1)
	require.NoError(t, err)
	require.Equal(t, before.UUID, after.UUID)
	require.Equal(t, 1, ownerLinkCount(t, store, fixtures.ProjectID1))
}

func Test_SetProjectOwner_NoCurrentOwner(t *testing.T) {
	store := newTestStore(t)
	service := NewOwnerService(store, testLogger())

	err := service.SetProjectOwner(fixtures.ProjectID1, fixtures.TeamID1)

	require.NoError(t, err)
	owner, err := service.ProjectOwner(fixtures.ProjectID1)
	require.NoError(t, err)
	require.Equal(t, fixtures.TeamID1, owner.TeamID)
}

// at most one link per project holds the owner flag at every observation
// point, whatever sequence of transfers ran before
func Test_SetProjectOwner_SingleOwnerInvariant(t *testing.T) {
	store := newTestStore(t)
	service := NewOwnerService(store, testLogger())

	sequence := []model.TeamID{
		fixtures.TeamID1, fixtures.TeamID2, fixtures.TeamID2,
		fixtures.TeamID1, fixtures.TeamID2, fixtures.TeamID1,
	}
	for _, team := range sequence {
		require.NoError(t, service.SetProjectOwner(fixtures.ProjectID1, team))
		require.Equal(t, 1, ownerLinkCount(t, store, fixtures.ProjectID1))
	}
}

func Test_TeamProjects(t *testing.T) {
	store := newTestStore(t)
	seedLinks(t, store, fixtures.TeamLinks()...)
	service := NewOwnerService(store, testLogger())

	links, err := service.TeamProjects(fixtures.TeamID1)

	require.NoError(t, err)
	require.Len(t, links, 2)
}
