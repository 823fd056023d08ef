package uuid

import guuid "github.com/google/uuid"

func New() string {
	v, err := guuid.NewRandom()
	if err != nil {
		return New()
	}
	return v.String()
}
