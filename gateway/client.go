// Package gateway is the HTTP client for a registry node. It implements the
// NodeClient contract consumed by the names package.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"namechain/codec"
	"namechain/names"
)

const defaultPollInterval = 2 * time.Second

// Client wraps the node's external REST endpoints and, for the name
// mutation transactions, its operator-side internal listener.
type Client struct {
	baseURL      *url.URL
	internalURL  *url.URL
	httpClient   *http.Client
	pollInterval time.Duration
	limiter      *rate.Limiter
}

// Option mutates the client configuration during construction.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithInternalURL points the update/transfer/revoke transaction endpoints at
// the node's internal listener. They default to the base URL.
func WithInternalURL(internalURL string) Option {
	return func(c *Client) {
		if parsed, err := url.Parse(strings.TrimSpace(internalURL)); err == nil {
			c.internalURL = parsed
		}
	}
}

// WithPollInterval sets how often WaitForNextBlock re-reads the chain
// height.
func WithPollInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval > 0 {
			c.pollInterval = interval
		}
	}
}

// WithRateLimit throttles outgoing requests to rps per second.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// New constructs a client pointed at the supplied node base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, fmt.Errorf("gateway: baseURL required")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("gateway: invalid baseURL: %w", err)
	}
	client := &Client{
		baseURL:      parsed,
		internalURL:  parsed,
		httpClient:   http.DefaultClient,
		pollInterval: defaultPollInterval,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = http.DefaultClient
	}
	return client, nil
}

// StatusError reports a non-2xx answer from the node with its body
// preserved.
type StatusError struct {
	Code int
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gateway: node returned %d: %s", e.Code, strings.TrimSpace(string(e.Body)))
}

// LookupName fetches the registry entry for domain. An absent entry is
// reported as names.ErrNameNotFound.
func (c *Client) LookupName(ctx context.Context, domain string) (*names.NameRecord, error) {
	raw, err := c.get(ctx, c.baseURL, "/names/"+url.PathEscape(domain), nil)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", names.ErrNameNotFound, domain)
		}
		return nil, err
	}
	var entry struct {
		NameTTL  uint64          `json:"name_ttl"`
		Pointers json.RawMessage `json:"pointers"`
	}
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("gateway: decode name entry: %w", err)
	}
	pointers, err := decodePointers(entry.Pointers)
	if err != nil {
		return nil, err
	}
	return &names.NameRecord{NameTTL: entry.NameTTL, Pointers: pointers, Raw: raw}, nil
}

// ChainHeight reads the current top block height.
func (c *Client) ChainHeight(ctx context.Context) (uint64, error) {
	raw, err := c.get(ctx, c.baseURL, "/chain/height", nil)
	if err != nil {
		return 0, err
	}
	var reply struct {
		Height uint64 `json:"height"`
	}
	if err := json.Unmarshal(raw, &reply); err != nil {
		return 0, fmt.Errorf("gateway: decode height: %w", err)
	}
	return reply.Height, nil
}

// Commitment asks the node for the commitment hash binding (domain, salt).
// A response without a commitment is returned with an empty Commitment for
// the caller to surface; it is not an error at this layer.
func (c *Client) Commitment(ctx context.Context, domain string, salt uint64) (*names.CommitmentReply, error) {
	query := url.Values{
		"name": []string{domain},
		"salt": []string{strconv.FormatUint(salt, 10)},
	}
	raw, err := c.get(ctx, c.baseURL, "/names/commitment", query)
	if err != nil {
		return nil, err
	}
	var reply struct {
		Commitment string `json:"commitment"`
	}
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, fmt.Errorf("gateway: decode commitment: %w", err)
	}
	return &names.CommitmentReply{Commitment: reply.Commitment, Raw: raw}, nil
}

// SubmitPreclaim asks the node to build the commitment transaction.
func (c *Client) SubmitPreclaim(ctx context.Context, tx names.PreclaimTx) (*names.TxReply, error) {
	return c.postTx(ctx, c.baseURL, "/tx/name/preclaim", tx)
}

// SubmitClaim asks the node to build the reveal transaction.
func (c *Client) SubmitClaim(ctx context.Context, tx names.ClaimTx) (*names.TxReply, error) {
	return c.postTx(ctx, c.baseURL, "/tx/name/claim", tx)
}

// SubmitUpdate submits a pointer update through the internal listener.
func (c *Client) SubmitUpdate(ctx context.Context, tx names.UpdateTx) (*names.TxReply, error) {
	return c.postTx(ctx, c.internalURL, "/tx/name/update", tx)
}

// SubmitTransfer submits an ownership transfer through the internal
// listener.
func (c *Client) SubmitTransfer(ctx context.Context, tx names.TransferTx) (*names.TxReply, error) {
	return c.postTx(ctx, c.internalURL, "/tx/name/transfer", tx)
}

// SubmitRevoke submits a revocation through the internal listener.
func (c *Client) SubmitRevoke(ctx context.Context, tx names.RevokeTx) (*names.TxReply, error) {
	return c.postTx(ctx, c.internalURL, "/tx/name/revoke", tx)
}

// BroadcastSigned sends a signed transaction envelope to the node.
func (c *Client) BroadcastSigned(ctx context.Context, signed []byte) error {
	_, err := c.do(ctx, http.MethodPost, c.baseURL, "/tx", nil, signed)
	return err
}

// WaitForNextBlock blocks until the chain height advances past the height
// observed at entry, polling at the configured interval. The caller bounds
// the wait through ctx.
func (c *Client) WaitForNextBlock(ctx context.Context) (uint64, error) {
	start, err := c.ChainHeight(ctx)
	if err != nil {
		return 0, err
	}
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-ticker.C:
			height, err := c.ChainHeight(ctx)
			if err != nil {
				return 0, err
			}
			if height > start {
				return height, nil
			}
		}
	}
}

func (c *Client) postTx(ctx context.Context, base *url.URL, endpoint string, payload any) (*names.TxReply, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("gateway: marshal payload: %w", err)
	}
	raw, err := c.do(ctx, http.MethodPost, base, endpoint, nil, body)
	if err != nil {
		return nil, err
	}
	var reply struct {
		TxHash   string `json:"tx_hash"`
		Tx       string `json:"tx"`
		NameHash string `json:"name_hash"`
	}
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, fmt.Errorf("gateway: decode tx reply: %w", err)
	}
	return &names.TxReply{TxHash: reply.TxHash, Tx: reply.Tx, NameHash: reply.NameHash, Raw: raw}, nil
}

func (c *Client) get(ctx context.Context, base *url.URL, endpoint string, query url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, base, endpoint, query, nil)
}

func (c *Client) do(ctx context.Context, method string, base *url.URL, endpoint string, query url.Values, body []byte) (json.RawMessage, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	rel := &url.URL{Path: endpoint}
	target := base.ResolveReference(rel)
	if query != nil {
		target.RawQuery = query.Encode()
	}
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("gateway: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway: %s %s: %w", method, target.Path, err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gateway: read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, &StatusError{Code: resp.StatusCode, Body: respBody}
	}
	return respBody, nil
}

// decodePointers classifies the pointer mapping once at the boundary. Nodes
// historically return it either as a JSON object or as a JSON-encoded
// string; both forms are accepted.
func decodePointers(raw json.RawMessage) (map[codec.PointerKind]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return map[codec.PointerKind]string{}, nil
	}
	payload := []byte(raw)
	if payload[0] == '"' {
		var nested string
		if err := json.Unmarshal(payload, &nested); err != nil {
			return nil, fmt.Errorf("gateway: decode pointers: %w", err)
		}
		payload = []byte(nested)
	}
	var keyed map[string]string
	if err := json.Unmarshal(payload, &keyed); err != nil {
		return nil, fmt.Errorf("gateway: decode pointers: %w", err)
	}
	pointers := make(map[codec.PointerKind]string, len(keyed))
	for key, target := range keyed {
		if kind := codec.PointerKindFromKey(key); kind != codec.PointerUnknown {
			pointers[kind] = target
		}
	}
	return pointers, nil
}
