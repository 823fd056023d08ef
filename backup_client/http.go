package backup_client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-hclog"
	"github.com/tidwall/gjson"

	"github.com/greenstack/stackconsole/model"
)

type Config struct {
	BaseURL string
	Token   string
}

// HTTPClient drives the backup system's job API: POST /jobs registers,
// DELETE /jobs/<name> deregisters.
type HTTPClient struct {
	cfg    Config
	http   *http.Client
	logger hclog.Logger
}

func NewHTTPClient(cfg Config, logger hclog.Logger) *HTTPClient {
	httpClient := cleanhttp.DefaultClient()
	httpClient.Timeout = 30 * time.Second

	return &HTTPClient{
		cfg:    cfg,
		http:   httpClient,
		logger: logger.Named("backup"),
	}
}

func (c *HTTPClient) Register(name string, source Source) error {
	payload, err := json.Marshal(map[string]interface{}{
		"name":   name,
		"source": source,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.jobsURL(""), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: register %q: %s", model.ErrUpstreamUnavailable, name, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, fmt.Sprintf("register %q", name), nil)
}

func (c *HTTPClient) Deregister(name string) error {
	req, err := http.NewRequest(http.MethodDelete, c.jobsURL(name), nil)
	if err != nil {
		return fmt.Errorf("%w: deregister %q: %s", model.ErrUpstreamUnavailable, name, err)
	}

	// a job that is already gone is the desired state
	return c.do(req, fmt.Sprintf("deregister %q", name), []int{http.StatusNotFound})
}

func (c *HTTPClient) do(req *http.Request, op string, tolerated []int) error {
	if c.cfg.Token != "" {
		req.Header.Set("X-Auth-Token", c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %s", model.ErrUpstreamUnavailable, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	for _, status := range tolerated {
		if resp.StatusCode == status {
			return nil
		}
	}

	body, _ := ioutil.ReadAll(resp.Body)
	message := gjson.GetBytes(body, "message").String()
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	c.logger.Error("backup api call failed", "op", op, "status", resp.StatusCode, "message", message)
	return fmt.Errorf("%w: %s: %s", model.ErrUpstreamUnavailable, op, message)
}

func (c *HTTPClient) jobsURL(name string) string {
	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/jobs"
	if name != "" {
		url += "/" + name
	}
	return url
}
