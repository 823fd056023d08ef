package iam_client

import (
	"fmt"

	"github.com/gophercloud/gophercloud"
	"github.com/gophercloud/gophercloud/openstack"
	"github.com/hashicorp/go-hclog"

	"github.com/greenstack/stackconsole/model"
)

type Config struct {
	AuthURL     string
	Username    string
	Password    string
	DomainName  string
	ProjectName string // scope of the admin session
	Region      string
}

// KeystoneClient talks to the identity service v3 API. It implements
// Tenants, Accounts and Roles; orchestrators receive whichever of the three
// they need.
type KeystoneClient struct {
	identity *gophercloud.ServiceClient
	logger   hclog.Logger
}

func NewKeystoneClient(cfg Config, logger hclog.Logger) (*KeystoneClient, error) {
	provider, err := openstack.AuthenticatedClient(gophercloud.AuthOptions{
		IdentityEndpoint: cfg.AuthURL,
		Username:         cfg.Username,
		Password:         cfg.Password,
		DomainName:       cfg.DomainName,
		TenantName:       cfg.ProjectName,
		AllowReauth:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: identity auth: %s", model.ErrUpstreamUnavailable, err)
	}

	identity, err := openstack.NewIdentityV3(provider, gophercloud.EndpointOpts{
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: identity endpoint: %s", model.ErrUpstreamUnavailable, err)
	}

	return &KeystoneClient{
		identity: identity,
		logger:   logger.Named("keystone"),
	}, nil
}

// mapError translates identity service responses into the error kinds the
// orchestrators branch on. Anything unexpected counts as an upstream outage
// and is safe for the caller to retry.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	switch err.(type) {
	case gophercloud.ErrDefault404:
		return fmt.Errorf("%w: %s", model.ErrNotFound, op)
	case gophercloud.ErrDefault401, gophercloud.ErrDefault403:
		return fmt.Errorf("%w: %s", model.ErrPermissionDenied, op)
	case gophercloud.ErrDefault409:
		return fmt.Errorf("%w: %s", model.ErrAlreadyExists, op)
	}
	return fmt.Errorf("%w: %s: %s", model.ErrUpstreamUnavailable, op, err)
}
