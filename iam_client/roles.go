package iam_client

import (
	"fmt"

	"github.com/gophercloud/gophercloud/openstack/identity/v3/roles"

	"github.com/greenstack/stackconsole/model"
)

type Roles interface {
	ListRoles() ([]*model.Role, error)
	// FindRole resolves a role by exact name; model.ErrNotFound when absent.
	FindRole(name string) (*model.Role, error)
	// GrantRole assigns the role on the project. Granting an already-held
	// role yields model.ErrAlreadyExists.
	GrantRole(accountID model.AccountID, projectID model.ProjectID, roleID model.RoleID) error
	RevokeRole(accountID model.AccountID, projectID model.ProjectID, roleID model.RoleID) error
}

func (c *KeystoneClient) ListRoles() ([]*model.Role, error) {
	pages, err := roles.List(c.identity, roles.ListOpts{}).AllPages()
	if err != nil {
		return nil, mapError("list roles", err)
	}
	found, err := roles.ExtractRoles(pages)
	if err != nil {
		return nil, mapError("extract roles", err)
	}

	list := make([]*model.Role, 0, len(found))
	for i := range found {
		list = append(list, &model.Role{ID: found[i].ID, Name: found[i].Name})
	}
	return list, nil
}

func (c *KeystoneClient) FindRole(name string) (*model.Role, error) {
	list, err := c.ListRoles()
	if err != nil {
		return nil, err
	}
	for _, role := range list {
		if role.Name == name {
			return role, nil
		}
	}
	return nil, fmt.Errorf("%w: role %q", model.ErrNotFound, name)
}

func (c *KeystoneClient) GrantRole(accountID model.AccountID, projectID model.ProjectID, roleID model.RoleID) error {
	err := roles.Assign(c.identity, roleID, roles.AssignOpts{
		UserID:    accountID,
		ProjectID: projectID,
	}).ExtractErr()
	return mapError(fmt.Sprintf("grant role %q on %q", roleID, projectID), err)
}

func (c *KeystoneClient) RevokeRole(accountID model.AccountID, projectID model.ProjectID, roleID model.RoleID) error {
	err := roles.Unassign(c.identity, roleID, roles.UnassignOpts{
		UserID:    accountID,
		ProjectID: projectID,
	}).ExtractErr()
	return mapError(fmt.Sprintf("revoke role %q on %q", roleID, projectID), err)
}
