package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"sealbid/internal/domain"
	"sealbid/internal/server"
)

// HTTP is a typed client for the sealbidd API. Failures carry the server's
// error text; callers that need the taxonomy inspect the status-mapped
// sentinels via errors.Is on the returned error.
type HTTP struct {
	Base string
	HTTP *http.Client
}

// New returns a client for the daemon at base using http.DefaultClient.
func New(base string) *HTTP { return &HTTP{Base: base, HTTP: http.DefaultClient} }

// Create opens a session and returns its id.
func (c *HTTP) Create(ctx context.Context, in server.CreateRequest) (domain.SessionID, error) {
	var out server.CreateResponse
	if err := c.post(ctx, "/sessions", in, &out); err != nil {
		return domain.SessionID{}, err
	}
	return out.ID, nil
}

// Join binds the requester as seller of session id.
func (c *HTTP) Join(ctx context.Context, id domain.SessionID, in server.JoinRequest) error {
	return c.post(ctx, "/sessions/"+id.String()+"/join", in, nil)
}

// RevealBuyer proves the buyer price of session id.
func (c *HTTP) RevealBuyer(ctx context.Context, id domain.SessionID, in server.RevealRequest) (server.RevealResponse, error) {
	var out server.RevealResponse
	err := c.post(ctx, "/sessions/"+id.String()+"/reveal/buyer", in, &out)
	return out, err
}

// RevealSeller proves the seller price of session id.
func (c *HTTP) RevealSeller(ctx context.Context, id domain.SessionID, in server.RevealRequest) (server.RevealResponse, error) {
	var out server.RevealResponse
	err := c.post(ctx, "/sessions/"+id.String()+"/reveal/seller", in, &out)
	return out, err
}

// Get fetches the full session projection.
func (c *HTTP) Get(ctx context.Context, id domain.SessionID) (server.SessionResponse, error) {
	var out server.SessionResponse
	err := c.getJSON(ctx, "/sessions/"+id.String(), &out)
	return out, err
}

// EncryptedPrices fetches both ciphertext handles.
func (c *HTTP) EncryptedPrices(ctx context.Context, id domain.SessionID) (server.PricesResponse, error) {
	var out server.PricesResponse
	err := c.getJSON(ctx, "/sessions/"+id.String()+"/prices", &out)
	return out, err
}

// List fetches every session id in creation order.
func (c *HTTP) List(ctx context.Context) ([]domain.SessionID, error) {
	var out server.ListResponse
	if err := c.getJSON(ctx, "/sessions", &out); err != nil {
		return nil, err
	}
	return out.IDs, nil
}

// Events fetches all events with sequence number greater than since.
func (c *HTTP) Events(ctx context.Context, since uint64) ([]domain.Event, error) {
	u := "/events"
	if since > 0 {
		u += "?since=" + url.QueryEscape(strconv.FormatUint(since, 10))
	}
	var out []domain.Event
	return out, c.getJSON(ctx, u, &out)
}

// IsAvailable probes the liveness endpoint.
func (c *HTTP) IsAvailable(ctx context.Context) bool {
	var out map[string]bool
	if err := c.getJSON(ctx, "/healthz", &out); err != nil {
		return false
	}
	return out["ok"]
}

func (c *HTTP) post(ctx context.Context, path string, in, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return statusError(path, resp)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *HTTP) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return statusError(path, resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// statusError surfaces the protocol sentinel matching the status code,
// wrapped with the server's error text when present.
func statusError(path string, resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	var sentinel error
	switch resp.StatusCode {
	case http.StatusNotFound:
		sentinel = domain.ErrNotFound
	case http.StatusConflict:
		// The server folds the three conflict conditions into 409; the
		// body text disambiguates for humans.
		switch body.Error {
		case domain.ErrAlreadyExists.Error():
			sentinel = domain.ErrAlreadyExists
		case domain.ErrAlreadyJoined.Error():
			sentinel = domain.ErrAlreadyJoined
		default:
			sentinel = domain.ErrAlreadyRevealed
		}
	case http.StatusForbidden:
		sentinel = domain.ErrUnauthorized
	case http.StatusUnprocessableEntity:
		if body.Error == domain.ErrInvalidEncryption.Error() {
			sentinel = domain.ErrInvalidEncryption
		} else {
			sentinel = domain.ErrInvalidProof
		}
	}
	if sentinel != nil {
		return fmt.Errorf("sealbidd %s: %w", path, sentinel)
	}
	if body.Error != "" {
		return fmt.Errorf("sealbidd %s: %s: %s", path, resp.Status, body.Error)
	}
	return fmt.Errorf("sealbidd %s: %s", path, resp.Status)
}
