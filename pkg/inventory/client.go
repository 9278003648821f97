// Package inventory queries the wireless controller's REST data API for
// access point radio and serial details.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/newtron-network/reinv/pkg/model"
	"github.com/newtron-network/reinv/pkg/util"
)

const (
	radioDetailsResource = "RadioDetails.json"
	apDetailsResource    = "AccessPointDetails.json"

	// DefaultTimeout bounds a single inventory request.
	DefaultTimeout = 30 * time.Second
)

// Config holds the connection parameters for the inventory service.
type Config struct {
	// BaseURL is the data API root, e.g. "https://prime.example.net/webacs/api/v3/data/".
	BaseURL  string
	Username string
	Password string
	Trust    TrustPolicy
	Timeout  time.Duration

	// HTTPClient replaces the client built from Trust and Timeout.
	HTTPClient *http.Client
}

// Client is a Basic-Auth client for the controller data API.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

// NewClient validates cfg and builds a client.
func NewClient(cfg Config) (*Client, error) {
	var v util.ValidationBuilder
	v.Add(cfg.BaseURL != "", "inventory base URL is required")
	v.Add(cfg.Username != "", "inventory username is required")
	if cfg.BaseURL != "" {
		if u, err := url.Parse(cfg.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			v.AddErrorf("inventory base URL %q is not an absolute URL", cfg.BaseURL)
		}
	}
	if err := v.Build(); err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		tlsCfg, err := cfg.Trust.TLSConfig()
		if err != nil {
			return nil, err
		}
		if cfg.Trust.InsecureSkipVerify {
			util.WithField("url", cfg.BaseURL).Warn("inventory certificate verification disabled")
		}
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				TLSClientConfig: tlsCfg,
			},
		}
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/") + "/",
		username:   cfg.Username,
		password:   cfg.Password,
		httpClient: httpClient,
	}, nil
}

// RadiosByName returns the radios of every AP whose name starts with prefix.
func (c *Client) RadiosByName(ctx context.Context, prefix string) ([]model.InventoryRecord, error) {
	u := fmt.Sprintf("%s%s?.full=true&apName=startsWith(%s)",
		c.baseURL, radioDetailsResource, url.QueryEscape(prefix))
	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	records := parseRadios(body)
	if len(records) == 0 {
		return nil, &util.NotFoundError{Resource: "AP name", Key: prefix}
	}
	return records, nil
}

// RadiosByEthernet returns the radios of the AP(s) whose Ethernet MAC starts
// with mac. mac must be in colon-grouped form.
func (c *Client) RadiosByEthernet(ctx context.Context, mac string) ([]model.InventoryRecord, error) {
	u := fmt.Sprintf("%s%s?.full=true&ethernetMac=startsWith(%%22%s%%22)",
		c.baseURL, radioDetailsResource, url.QueryEscape(mac))
	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	records := parseRadios(body)
	if len(records) == 0 {
		return nil, &util.NotFoundError{Resource: "Ethernet MAC", Key: mac}
	}
	return records, nil
}

// SerialByEthernet returns the serial number of the AP with Ethernet MAC mac.
func (c *Client) SerialByEthernet(ctx context.Context, mac string) (string, error) {
	u := fmt.Sprintf("%s%s?.full=true&ethernetMac=%%22%s%%22",
		c.baseURL, apDetailsResource, url.QueryEscape(mac))
	body, err := c.get(ctx, u)
	if err != nil {
		return "", err
	}
	serials := parseSerials(body)
	if len(serials) == 0 {
		return "", &util.NotFoundError{Resource: "Ethernet MAC", Key: mac}
	}
	return serials[0], nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &TransportError{URL: u, Err: err}
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")

	util.WithField("url", u).Debug("inventory request")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, StatusError(resp.StatusCode, u)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, URL: u, Err: err}
	}
	if !gjson.ValidBytes(body) {
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			URL:        u,
			Err:        errors.New("response is not valid JSON"),
		}
	}
	return body, nil
}

// forEachEntity visits queryResponse.entity, which the API renders as an
// object when there is exactly one result and as a list otherwise.
func forEachEntity(body []byte, fn func(entity gjson.Result)) {
	entities := gjson.GetBytes(body, "queryResponse.entity")
	switch {
	case entities.IsArray():
		entities.ForEach(func(_, e gjson.Result) bool {
			fn(e)
			return true
		})
	case entities.IsObject():
		fn(entities)
	}
}

func parseRadios(body []byte) []model.InventoryRecord {
	var records []model.InventoryRecord
	forEachEntity(body, func(e gjson.Result) {
		dto := e.Get("radioDetailsDTO")
		name := dto.Get("apName").String()
		mac := dto.Get("baseRadioMac").String()
		if name == "" || mac == "" {
			return
		}
		if norm, err := util.NormalizeMAC(mac); err == nil {
			mac = norm
		}
		records = append(records, model.InventoryRecord{Hostname: name, RadioMAC: mac})
	})
	return records
}

func parseSerials(body []byte) []string {
	var serials []string
	forEachEntity(body, func(e gjson.Result) {
		if s := e.Get("accessPointDetailsDTO.serialNumber").String(); s != "" {
			serials = append(serials, s)
		}
	})
	return serials
}
