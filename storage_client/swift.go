package storage_client

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-hclog"
	"github.com/ncw/swift"

	"github.com/greenstack/stackconsole/model"
)

type Config struct {
	AuthURL     string
	UserName    string
	APIKey      string
	Tenant      string
	Domain      string
	Region      string
	AuthVersion int

	// StorageBaseURL plus ResellerPrefix plus a tenant id addresses that
	// tenant's storage account, e.g. https://swift.local/v1 + AUTH_ + <id>.
	StorageBaseURL string
	ResellerPrefix string
}

type SwiftClient struct {
	conn   *swift.Connection
	http   *http.Client
	cfg    Config
	logger hclog.Logger
}

func NewSwiftClient(cfg Config, logger hclog.Logger) (*SwiftClient, error) {
	conn := &swift.Connection{
		UserName:    cfg.UserName,
		ApiKey:      cfg.APIKey,
		AuthUrl:     cfg.AuthURL,
		Tenant:      cfg.Tenant,
		Domain:      cfg.Domain,
		Region:      cfg.Region,
		Timeout:     60 * time.Second,
		AuthVersion: cfg.AuthVersion,
	}
	if err := conn.Authenticate(); err != nil {
		return nil, fmt.Errorf("%w: storage auth: %s", model.ErrUpstreamUnavailable, err)
	}

	httpClient := cleanhttp.DefaultClient()
	httpClient.Timeout = 60 * time.Second

	return &SwiftClient{
		conn:   conn,
		http:   httpClient,
		cfg:    cfg,
		logger: logger.Named("swift"),
	}, nil
}

func (c *SwiftClient) HeadContainer(container string) (map[string]string, error) {
	_, headers, err := c.conn.Container(container)
	if err != nil {
		return nil, c.mapErr(fmt.Sprintf("head container %q", container), err)
	}
	return map[string]string(headers), nil
}

func (c *SwiftClient) PutContainer(container string, headers map[string]string) error {
	err := c.conn.ContainerCreate(container, swift.Headers(headers))
	return c.mapErr(fmt.Sprintf("put container %q", container), err)
}

func (c *SwiftClient) PostContainer(container string, headers map[string]string) error {
	err := c.conn.ContainerUpdate(container, swift.Headers(headers))
	return c.mapErr(fmt.Sprintf("post container %q", container), err)
}

func (c *SwiftClient) DeleteContainer(container string) error {
	err := c.conn.ContainerDelete(container)
	return c.mapErr(fmt.Sprintf("delete container %q", container), err)
}

func (c *SwiftClient) DeleteObject(container, object string) error {
	err := c.conn.ObjectDelete(container, object)
	return c.mapErr(fmt.Sprintf("delete object %q/%q", container, object), err)
}

func (c *SwiftClient) GetContainerMeta(container string) (*ContainerMeta, error) {
	info, _, err := c.conn.Container(container)
	if err != nil {
		return nil, c.mapErr(fmt.Sprintf("stat container %q", container), err)
	}
	return &ContainerMeta{
		ObjectCount: info.Count,
		BytesUsed:   info.Bytes,
	}, nil
}

func (c *SwiftClient) AccountURL(projectID model.ProjectID) string {
	return strings.TrimRight(c.cfg.StorageBaseURL, "/") + "/" + c.cfg.ResellerPrefix + projectID
}

// PutAccountContainer and DeleteAccount bypass the swift library: it scopes
// every call to the authenticated account and has no reseller account
// deletion, so these two go over raw authenticated requests.

func (c *SwiftClient) PutAccountContainer(accountURL, container string) error {
	status, err := c.rawRequest(http.MethodPut, accountURL+"/"+container)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("%w: put container at %q: status %d", model.ErrUpstreamUnavailable, accountURL, status)
	}
	return nil
}

func (c *SwiftClient) DeleteAccount(accountURL string) (int, error) {
	return c.rawRequest(http.MethodDelete, accountURL)
}

func (c *SwiftClient) rawRequest(method, url string) (int, error) {
	if !c.conn.Authenticated() {
		if err := c.conn.Authenticate(); err != nil {
			return 0, fmt.Errorf("%w: storage reauth: %s", model.ErrUpstreamUnavailable, err)
		}
	}

	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %s: %s", model.ErrUpstreamUnavailable, method, url, err)
	}
	req.Header.Set("X-Auth-Token", c.conn.AuthToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %s: %s", model.ErrUpstreamUnavailable, method, url, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("raw storage call", "method", method, "url", url, "status", resp.StatusCode)
	return resp.StatusCode, nil
}

func (c *SwiftClient) mapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if se, ok := err.(*swift.Error); ok {
		switch se.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", model.ErrNotFound, op)
		case http.StatusForbidden, http.StatusUnauthorized:
			return fmt.Errorf("%w: %s", model.ErrPermissionDenied, op)
		case http.StatusConflict:
			return fmt.Errorf("%w: %s", model.ErrAlreadyExists, op)
		}
	}
	return fmt.Errorf("%w: %s: %s", model.ErrUpstreamUnavailable, op, err)
}
