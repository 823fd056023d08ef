package iam_client

import (
	"fmt"

	"github.com/gophercloud/gophercloud/openstack/identity/v3/users"

	"github.com/greenstack/stackconsole/model"
)

type Accounts interface {
	// CreateAccount creates the account under the project and, when roleID
	// is non-empty, grants that role on the project in the same call.
	CreateAccount(name, pass string, projectID model.ProjectID, enabled bool, email string, roleID model.RoleID) (*model.ServiceAccount, error)
	// FindAccount resolves an account by exact name; model.ErrNotFound when
	// absent.
	FindAccount(name string) (*model.ServiceAccount, error)
	ListAccounts(projectID model.ProjectID) ([]*model.ServiceAccount, error)
	DeleteAccount(id model.AccountID) error
}

func (c *KeystoneClient) CreateAccount(name, pass string, projectID model.ProjectID, enabled bool, email string, roleID model.RoleID) (*model.ServiceAccount, error) {
	logger := c.logger.Named("CreateAccount")
	logger.Debug("started", "name", name, "project", projectID)

	opts := users.CreateOpts{
		Name:             name,
		Password:         pass,
		DefaultProjectID: projectID,
		Enabled:          &enabled,
	}
	if email != "" {
		opts.Extra = map[string]interface{}{"email": email}
	}

	u, err := users.Create(c.identity, opts).Extract()
	if err != nil {
		return nil, mapError(fmt.Sprintf("create account %q", name), err)
	}
	account := userToAccount(u)

	// The identity service has no create-with-role; the grant is a second
	// wire call behind the same contract. Undo the creation if it fails so
	// the account never exists half-provisioned.
	if roleID != "" {
		if err := c.GrantRole(account.ID, projectID, roleID); err != nil {
			if delErr := c.DeleteAccount(account.ID); delErr != nil {
				logger.Error("rollback of half-created account failed", "account", name, "err", delErr)
			}
			return nil, err
		}
	}

	logger.Debug("normal finish", "id", account.ID)
	return account, nil
}

func (c *KeystoneClient) FindAccount(name string) (*model.ServiceAccount, error) {
	pages, err := users.List(c.identity, users.ListOpts{Name: name}).AllPages()
	if err != nil {
		return nil, mapError(fmt.Sprintf("list accounts named %q", name), err)
	}
	found, err := users.ExtractUsers(pages)
	if err != nil {
		return nil, mapError("extract accounts", err)
	}
	for i := range found {
		if found[i].Name == name {
			return userToAccount(&found[i]), nil
		}
	}
	return nil, fmt.Errorf("%w: account %q", model.ErrNotFound, name)
}

func (c *KeystoneClient) ListAccounts(projectID model.ProjectID) ([]*model.ServiceAccount, error) {
	pages, err := users.List(c.identity, users.ListOpts{}).AllPages()
	if err != nil {
		return nil, mapError("list accounts", err)
	}
	all, err := users.ExtractUsers(pages)
	if err != nil {
		return nil, mapError("extract accounts", err)
	}

	// The v3 user listing has no project filter; filter on the default
	// project locally.
	list := []*model.ServiceAccount{}
	for i := range all {
		if projectID == "" || all[i].DefaultProjectID == projectID {
			list = append(list, userToAccount(&all[i]))
		}
	}
	return list, nil
}

func (c *KeystoneClient) DeleteAccount(id model.AccountID) error {
	err := users.Delete(c.identity, id).ExtractErr()
	return mapError(fmt.Sprintf("delete account %q", id), err)
}

func userToAccount(u *users.User) *model.ServiceAccount {
	account := &model.ServiceAccount{
		ID:        u.ID,
		Name:      u.Name,
		ProjectID: u.DefaultProjectID,
		Enabled:   u.Enabled,
	}
	if email, ok := u.Extra["email"].(string); ok {
		account.Email = email
	}
	return account
}
