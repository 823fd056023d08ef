package model

type Role struct {
	ID   RoleID `json:"id"`
	Name string `json:"name"`
}
