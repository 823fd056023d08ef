package fixtures

import "github.com/greenstack/stackconsole/model"

const (
	ProjectID1   = "00000001-0000-0000-0000-000000000000"
	ProjectID2   = "00000002-0000-0000-0000-000000000000"
	ProjectName1 = "alpha"
	ProjectName2 = "beta"

	TeamID1 = "7"
	TeamID2 = "8"
	AreaID1 = "3"

	AccountID1 = "00000011-0000-0000-0000-000000000000"
	RoleID1    = "00000021-0000-0000-0000-000000000000"
)

func Projects() []model.Project {
	return []model.Project{
		{ID: ProjectID1, Name: ProjectName1, Description: "demo", Enabled: true},
		{ID: ProjectID2, Name: ProjectName2, Description: "demo", Enabled: true},
	}
}

func TeamLinks() []model.TeamProjectLink {
	return []model.TeamProjectLink{
		{TeamID: TeamID1, ProjectID: ProjectID1, Owner: true},
		{TeamID: TeamID1, ProjectID: ProjectID2},
		{TeamID: TeamID2, ProjectID: ProjectID2, Owner: true},
	}
}
