package storage_client

import "github.com/greenstack/stackconsole/model"

// ContainerMeta is the slice of account metadata the backup preconditions
// look at.
type ContainerMeta struct {
	ObjectCount int64
	BytesUsed   int64
}

// Client is the object storage boundary. Container-level operations work on
// the console's own storage account; the account-scoped operations take an
// explicit account URL because teardown reaches into other tenants' accounts
// with reseller rights.
type Client interface {
	// HeadContainer returns the container's headers; model.ErrNotFound when
	// the container does not exist.
	HeadContainer(container string) (map[string]string, error)
	PutContainer(container string, headers map[string]string) error
	// PostContainer replaces the given metadata headers on the container.
	PostContainer(container string, headers map[string]string) error
	DeleteContainer(container string) error
	DeleteObject(container, object string) error
	GetContainerMeta(container string) (*ContainerMeta, error)

	AccountURL(projectID model.ProjectID) string
	// PutAccountContainer creates a container directly under the given
	// account URL. Creation of an existing container is a no-op.
	PutAccountContainer(accountURL, container string) error
	// DeleteAccount removes the whole storage account and returns the
	// upstream status code; interpreting it is the caller's business.
	DeleteAccount(accountURL string) (int, error)
}
