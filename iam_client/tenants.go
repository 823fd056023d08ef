package iam_client

import (
	"fmt"

	"github.com/gophercloud/gophercloud/openstack/identity/v3/projects"

	"github.com/greenstack/stackconsole/model"
)

type Tenants interface {
	CreateTenant(name, description string, enabled bool) (*model.Project, error)
	GetTenant(id model.ProjectID) (*model.Project, error)
	GetTenantByName(name string) (*model.Project, error)
	UpdateTenant(id model.ProjectID, upd model.ProjectUpdate) (*model.Project, error)
	DeleteTenant(id model.ProjectID) error
}

func (c *KeystoneClient) CreateTenant(name, description string, enabled bool) (*model.Project, error) {
	logger := c.logger.Named("CreateTenant")
	logger.Debug("started", "name", name)

	p, err := projects.Create(c.identity, projects.CreateOpts{
		Name:        name,
		Description: description,
		Enabled:     &enabled,
	}).Extract()
	if err != nil {
		return nil, mapError(fmt.Sprintf("create tenant %q", name), err)
	}

	logger.Debug("normal finish", "id", p.ID)
	return tenantToProject(p), nil
}

func (c *KeystoneClient) GetTenant(id model.ProjectID) (*model.Project, error) {
	p, err := projects.Get(c.identity, id).Extract()
	if err != nil {
		return nil, mapError(fmt.Sprintf("get tenant %q", id), err)
	}
	return tenantToProject(p), nil
}

func (c *KeystoneClient) GetTenantByName(name string) (*model.Project, error) {
	pages, err := projects.List(c.identity, projects.ListOpts{Name: name}).AllPages()
	if err != nil {
		return nil, mapError(fmt.Sprintf("list tenants named %q", name), err)
	}
	found, err := projects.ExtractProjects(pages)
	if err != nil {
		return nil, mapError("extract tenants", err)
	}
	for i := range found {
		if found[i].Name == name {
			return tenantToProject(&found[i]), nil
		}
	}
	return nil, fmt.Errorf("%w: tenant %q", model.ErrNotFound, name)
}

func (c *KeystoneClient) UpdateTenant(id model.ProjectID, upd model.ProjectUpdate) (*model.Project, error) {
	opts := projects.UpdateOpts{
		Description: upd.Description,
		Enabled:     upd.Enabled,
	}
	if upd.Name != nil {
		opts.Name = *upd.Name
	}

	p, err := projects.Update(c.identity, id, opts).Extract()
	if err != nil {
		return nil, mapError(fmt.Sprintf("update tenant %q", id), err)
	}
	return tenantToProject(p), nil
}

func (c *KeystoneClient) DeleteTenant(id model.ProjectID) error {
	err := projects.Delete(c.identity, id).ExtractErr()
	return mapError(fmt.Sprintf("delete tenant %q", id), err)
}

// tenantToProject narrows the raw resource down to the attributes the
// orchestrators rely on.
func tenantToProject(p *projects.Project) *model.Project {
	return &model.Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Enabled:     p.Enabled,
	}
}
