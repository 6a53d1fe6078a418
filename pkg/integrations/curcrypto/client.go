package curcrypto

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mahesh00009/CurToCryptoFrontend/pkg/types/convert"

	"github.com/pkg/errors"
)

var (
	_ convert.Client = (*Client)(nil)
)

const (
	DefaultBaseURL = "https://curcrypto.onrender.com"
	DefaultTimeout = 10 * time.Second
)

type Client struct {
	BaseURL string
	Client  *http.Client

	timeout time.Duration
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.Client = hc
	}
}

// WithTimeout sets the request timeout. It applies to a copy of the HTTP
// client, so a shared client passed to WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Client == nil {
		c.Client = &http.Client{Timeout: DefaultTimeout}
	}
	if c.timeout > 0 {
		hc := *c.Client
		hc.Timeout = c.timeout
		c.Client = &hc
	}
	return c
}

type topCryptosResponse struct {
	Data []convert.Currency `json:"data"`
}

// TopCryptos returns the supported cryptocurrencies in service order.
func (c *Client) TopCryptos(ctx context.Context) ([]convert.Currency, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/topCryptos", nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}

	var result topCryptosResponse
	if err := c.do(req, &result); err != nil {
		return nil, errors.Wrap(err, "failed to fetch top cryptos")
	}
	if result.Data == nil {
		return []convert.Currency{}, nil
	}
	return result.Data, nil
}

func (c *Client) ConvertCurrency(ctx context.Context, conv convert.Request) (convert.Result, error) {
	body, err := json.Marshal(conv)
	if err != nil {
		return convert.Result{}, errors.Wrap(err, "failed to encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/convertCurrency", bytes.NewReader(body))
	if err != nil {
		return convert.Result{}, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")

	var result convert.Result
	if err := c.do(req, &result); err != nil {
		return convert.Result{}, errors.Wrapf(err, "failed to convert %s %s to %s", conv.Amount, conv.Symbol, conv.Convert)
	}
	return result, nil
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status code: %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
