package model

const TeamProjectLinkType = "team_project_link" // also, memdb schema name

// TeamProjectLink associates a team with a project. At most one link per
// project may carry Owner=true; ownership transfer demotes the old link and
// promotes (or creates) the new one inside a single store transaction.
type TeamProjectLink struct {
	UUID      string    `json:"uuid"` // PK
	TeamID    TeamID    `json:"team_id"`
	ProjectID ProjectID `json:"project_id"`
	Owner     bool      `json:"owner"`
}

func (l *TeamProjectLink) ObjType() string {
	return TeamProjectLinkType
}

func (l *TeamProjectLink) ObjId() string {
	return l.UUID
}
