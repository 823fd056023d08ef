package usecase

import (
	"fmt"

	"github.com/greenstack/stackconsole/backup_client"
	"github.com/greenstack/stackconsole/model"
	"github.com/greenstack/stackconsole/storage_client"
)

// identityFake implements iam_client.Tenants, Accounts and Roles over plain
// maps so the tests can observe what survived an orchestration.
type identityFake struct {
	nextTenantID  string
	nextAccountID int

	tenants  map[string]*model.Project
	accounts map[string]*model.ServiceAccount
	roles    []*model.Role
	grants   map[string]bool

	createTenantErr  error
	updateTenantErr  error
	createAccountErr error
	grantErr         error
	revokeErr        error

	createAccountCalls int
	grantCalls         int
	revokeCalls        int
}

func newIdentityFake() *identityFake {
	return &identityFake{
		nextTenantID: "t-1",
		tenants:      map[string]*model.Project{},
		accounts:     map[string]*model.ServiceAccount{},
		grants:       map[string]bool{},
	}
}

func grantKey(accountID, projectID, roleID string) string {
	return accountID + "|" + projectID + "|" + roleID
}

func (f *identityFake) CreateTenant(name, description string, enabled bool) (*model.Project, error) {
	if f.createTenantErr != nil {
		return nil, f.createTenantErr
	}
	for _, t := range f.tenants {
		if t.Name == name {
			return nil, fmt.Errorf("%w: tenant %q", model.ErrAlreadyExists, name)
		}
	}
	project := &model.Project{ID: f.nextTenantID, Name: name, Description: description, Enabled: enabled}
	f.tenants[project.ID] = project
	return project, nil
}

func (f *identityFake) GetTenant(id model.ProjectID) (*model.Project, error) {
	if t, ok := f.tenants[id]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: tenant %q", model.ErrNotFound, id)
}

func (f *identityFake) GetTenantByName(name string) (*model.Project, error) {
	for _, t := range f.tenants {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: tenant %q", model.ErrNotFound, name)
}

func (f *identityFake) UpdateTenant(id model.ProjectID, upd model.ProjectUpdate) (*model.Project, error) {
	if f.updateTenantErr != nil {
		return nil, f.updateTenantErr
	}
	t, ok := f.tenants[id]
	if !ok {
		return nil, fmt.Errorf("%w: tenant %q", model.ErrNotFound, id)
	}
	if upd.Name != nil {
		t.Name = *upd.Name
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.Enabled != nil {
		t.Enabled = *upd.Enabled
	}
	return t, nil
}

func (f *identityFake) DeleteTenant(id model.ProjectID) error {
	if _, ok := f.tenants[id]; !ok {
		return fmt.Errorf("%w: tenant %q", model.ErrNotFound, id)
	}
	delete(f.tenants, id)
	return nil
}

func (f *identityFake) CreateAccount(name, pass string, projectID model.ProjectID, enabled bool, email string, roleID model.RoleID) (*model.ServiceAccount, error) {
	f.createAccountCalls++
	if f.createAccountErr != nil {
		return nil, f.createAccountErr
	}
	f.nextAccountID++
	account := &model.ServiceAccount{
		ID:        fmt.Sprintf("a-%d", f.nextAccountID),
		Name:      name,
		ProjectID: projectID,
		Enabled:   enabled,
		Email:     email,
	}
	f.accounts[account.ID] = account
	if roleID != "" {
		f.grants[grantKey(account.ID, projectID, roleID)] = true
	}
	return account, nil
}

func (f *identityFake) FindAccount(name string) (*model.ServiceAccount, error) {
	for _, a := range f.accounts {
		if a.Name == name {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: account %q", model.ErrNotFound, name)
}

func (f *identityFake) ListAccounts(projectID model.ProjectID) ([]*model.ServiceAccount, error) {
	list := []*model.ServiceAccount{}
	for _, a := range f.accounts {
		if projectID == "" || a.ProjectID == projectID {
			list = append(list, a)
		}
	}
	return list, nil
}

func (f *identityFake) DeleteAccount(id model.AccountID) error {
	if _, ok := f.accounts[id]; !ok {
		return fmt.Errorf("%w: account %q", model.ErrNotFound, id)
	}
	delete(f.accounts, id)
	return nil
}

func (f *identityFake) ListRoles() ([]*model.Role, error) {
	return f.roles, nil
}

func (f *identityFake) FindRole(name string) (*model.Role, error) {
	for _, role := range f.roles {
		if role.Name == name {
			return role, nil
		}
	}
	return nil, fmt.Errorf("%w: role %q", model.ErrNotFound, name)
}

func (f *identityFake) GrantRole(accountID model.AccountID, projectID model.ProjectID, roleID model.RoleID) error {
	f.grantCalls++
	if f.grantErr != nil {
		return f.grantErr
	}
	key := grantKey(accountID, projectID, roleID)
	if f.grants[key] {
		return fmt.Errorf("%w: role %q on %q", model.ErrAlreadyExists, roleID, projectID)
	}
	f.grants[key] = true
	return nil
}

func (f *identityFake) RevokeRole(accountID model.AccountID, projectID model.ProjectID, roleID model.RoleID) error {
	f.revokeCalls++
	if f.revokeErr != nil {
		return f.revokeErr
	}
	key := grantKey(accountID, projectID, roleID)
	if !f.grants[key] {
		return fmt.Errorf("%w: role %q on %q", model.ErrNotFound, roleID, projectID)
	}
	delete(f.grants, key)
	return nil
}

// storageFake implements storage_client.Client. Posted headers are recorded
// so ACL tests can inspect the exact serialized form sent over the wire.
type storageFake struct {
	headers map[string]map[string]string
	meta    map[string]*storage_client.ContainerMeta

	posted          []map[string]string
	probeContainers []string
	deletedAccounts []string

	deleteAccountStatus int
	deleteAccountErr    error
	putAccountErr       error
	headErr             error
	postErr             error
}

func newStorageFake() *storageFake {
	return &storageFake{
		headers:             map[string]map[string]string{},
		meta:                map[string]*storage_client.ContainerMeta{},
		deleteAccountStatus: 204,
	}
}

func (f *storageFake) HeadContainer(container string) (map[string]string, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	headers, ok := f.headers[container]
	if !ok {
		return nil, fmt.Errorf("%w: container %q", model.ErrNotFound, container)
	}
	out := map[string]string{}
	for k, v := range headers {
		out[k] = v
	}
	return out, nil
}

func (f *storageFake) PutContainer(container string, headers map[string]string) error {
	if _, ok := f.headers[container]; !ok {
		f.headers[container] = map[string]string{}
	}
	for k, v := range headers {
		f.headers[container][k] = v
	}
	return nil
}

func (f *storageFake) PostContainer(container string, headers map[string]string) error {
	if f.postErr != nil {
		return f.postErr
	}
	if _, ok := f.headers[container]; !ok {
		return fmt.Errorf("%w: container %q", model.ErrNotFound, container)
	}
	for k, v := range headers {
		f.headers[container][k] = v
	}
	copied := map[string]string{}
	for k, v := range headers {
		copied[k] = v
	}
	f.posted = append(f.posted, copied)
	return nil
}

func (f *storageFake) DeleteContainer(container string) error {
	delete(f.headers, container)
	return nil
}

func (f *storageFake) DeleteObject(container, object string) error {
	return nil
}

func (f *storageFake) GetContainerMeta(container string) (*storage_client.ContainerMeta, error) {
	if meta, ok := f.meta[container]; ok {
		return meta, nil
	}
	return &storage_client.ContainerMeta{}, nil
}

func (f *storageFake) AccountURL(projectID model.ProjectID) string {
	return "https://storage.test/v1/AUTH_" + projectID
}

func (f *storageFake) PutAccountContainer(accountURL, container string) error {
	if f.putAccountErr != nil {
		return f.putAccountErr
	}
	f.probeContainers = append(f.probeContainers, accountURL+"/"+container)
	return nil
}

func (f *storageFake) DeleteAccount(accountURL string) (int, error) {
	if f.deleteAccountErr != nil {
		return 0, f.deleteAccountErr
	}
	f.deletedAccounts = append(f.deletedAccounts, accountURL)
	return f.deleteAccountStatus, nil
}

// backupFake implements backup_client.Client.
type backupFake struct {
	jobs map[string]backup_client.Source

	registerErr   error
	deregisterErr error

	registerCalls   int
	deregisterCalls int
}

func newBackupFake() *backupFake {
	return &backupFake{jobs: map[string]backup_client.Source{}}
}

func (f *backupFake) Register(name string, source backup_client.Source) error {
	f.registerCalls++
	if f.registerErr != nil {
		return f.registerErr
	}
	f.jobs[name] = source
	return nil
}

func (f *backupFake) Deregister(name string) error {
	f.deregisterCalls++
	if f.deregisterErr != nil {
		return f.deregisterErr
	}
	delete(f.jobs, name)
	return nil
}
