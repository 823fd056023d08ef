package model

const AreaProjectLinkType = "area_project_link" // also, memdb schema name

type AreaProjectLink struct {
	UUID      string    `json:"uuid"` // PK
	AreaID    AreaID    `json:"area_id"`
	ProjectID ProjectID `json:"project_id"`
}

func (l *AreaProjectLink) ObjType() string {
	return AreaProjectLinkType
}

func (l *AreaProjectLink) ObjId() string {
	return l.UUID
}
