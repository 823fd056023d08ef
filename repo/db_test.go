package repo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_TeamProjectLinkSchema(t *testing.T) {
	if err := TeamProjectLinkSchema().Validate(); err != nil {
		t.Fatalf("team project link schema is invalid: %v", err)
	}
}

func Test_AreaProjectLinkSchema(t *testing.T) {
	if err := AreaProjectLinkSchema().Validate(); err != nil {
		t.Fatalf("area project link schema is invalid: %v", err)
	}
}

func Test_BackupRegistrationSchema(t *testing.T) {
	if err := BackupRegistrationSchema().Validate(); err != nil {
		t.Fatalf("backup registration schema is invalid: %v", err)
	}
}

func Test_MergedSchema(t *testing.T) {
	schema, err := GetSchema()

	require.NoError(t, err)
	require.Len(t, schema.Tables, 3)
}
