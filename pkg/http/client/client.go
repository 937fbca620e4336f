package client

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Client sends requests to one remote service and turns its problem
// responses into *RemoteError.
type Client struct {
	name    string
	baseURL *url.URL
	http    *http.Client
}

func newClient(name string, cfg ClientConfig) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return nil, err
	}
	return &Client{
		name:    name,
		baseURL: base,
		http:    newHTTPClient(cfg),
	}, nil
}

func newHTTPClient(cfg ClientConfig) *http.Client {
	dialer := &net.Dialer{
		Timeout: 5 * time.Second,
	}
	transport := &http.Transport{
		DialContext:         dialer.DialContext,
		MaxIdleConnsPerHost: *cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     *cfg.IdleConnTimeout,
	}
	return &http.Client{
		Timeout:   *cfg.Timeout,
		Transport: transport,
	}
}

// Name returns the configured client name.
func (c *Client) Name() string {
	return c.name
}

// HTTP returns the underlying client.
func (c *Client) HTTP() *http.Client {
	return c.http
}

// URL resolves path against the base URL.
func (c *Client) URL(path string) string {
	return c.baseURL.String() + "/" + strings.TrimPrefix(path, "/")
}

// Do sends req. Responses outside 2xx are returned together with a
// *RemoteError; the body stays readable.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.name, err)
	}
	if err := CheckResponse(resp); err != nil {
		var remote *RemoteError
		if errors.As(err, &remote) {
			remote.Service = c.name
		}
		return resp, err
	}
	return resp, nil
}

// ProvideHTTPClient returns a provider function that creates a client from config
// Usage with fx:
//
//	fx.Provide(fx.Private, client.ProvideHTTPClient("orders-service"))
func ProvideHTTPClient(name string) func(*viper.Viper) (*Client, ClientConfig, error) {
	return func(v *viper.Viper) (*Client, ClientConfig, error) {
		var cfg ClientConfig
		if err := v.UnmarshalKey("clients."+name, &cfg); err != nil {
			return nil, ClientConfig{}, fmt.Errorf("failed to unmarshal client config %q: %w", name, err)
		}
		if err := cfg.validate(); err != nil {
			return nil, ClientConfig{}, fmt.Errorf("invalid client config %q: %w", name, err)
		}
		cfg.applyDefaults()

		c, err := newClient(name, cfg)
		if err != nil {
			return nil, ClientConfig{}, fmt.Errorf("failed to create client %q: %w", name, err)
		}
		return c, cfg, nil
	}
}
