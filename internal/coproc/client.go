package coproc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"sealbid/internal/domain"
)

// Client talks to a remote coprocessor exposing the /coproc endpoints. It
// satisfies the same two contracts as Service, so a daemon can swap the
// embedded service for a shared remote one without touching the core.
type Client struct {
	Base string
	HTTP *http.Client
}

// NewClient returns a Client for the coprocessor at base using http.DefaultClient.
func NewClient(base string) *Client {
	return &Client{Base: base, HTTP: http.DefaultClient}
}

type encryptRequest struct {
	Price domain.Price `json:"price"`
}

type encryptResponse struct {
	Ciphertext []byte `json:"ciphertext"`
	Proof      []byte `json:"proof"`
}

type ingestRequest struct {
	Ciphertext []byte `json:"ciphertext"`
	Proof      []byte `json:"proof"`
}

type ingestResponse struct {
	Handle domain.CiphertextHandle `json:"handle"`
}

type proveRequest struct {
	Handle domain.CiphertextHandle `json:"handle"`
}

type proveResponse struct {
	Clear []byte `json:"clear"`
	Proof []byte `json:"proof"`
}

type verifyRequest struct {
	Handle domain.CiphertextHandle `json:"handle"`
	Clear  []byte                  `json:"clear"`
	Proof  []byte                  `json:"proof"`
}

type verifyResponse struct {
	Price domain.Price `json:"price"`
}

// Encrypt requests a sealed price from the remote vault.
func (c *Client) Encrypt(ctx context.Context, price domain.Price) (ciphertext, inclusionProof []byte, err error) {
	var out encryptResponse
	if err := c.post(ctx, "/coproc/encrypt", encryptRequest{Price: price}, &out, nil); err != nil {
		return nil, nil, err
	}
	return out.Ciphertext, out.Proof, nil
}

// Ingest forwards the ciphertext validity check to the remote verifier.
func (c *Client) Ingest(ctx context.Context, ciphertext, inclusionProof []byte) (domain.CiphertextHandle, error) {
	var out ingestResponse
	in := ingestRequest{Ciphertext: ciphertext, Proof: inclusionProof}
	if err := c.post(ctx, "/coproc/ingest", in, &out, domain.ErrInvalidEncryption); err != nil {
		return domain.CiphertextHandle{}, err
	}
	return out.Handle, nil
}

// Prove requests the clear value and decryption proof for handle.
func (c *Client) Prove(ctx context.Context, handle domain.CiphertextHandle) (clear, decryptionProof []byte, err error) {
	var out proveResponse
	if err := c.post(ctx, "/coproc/prove", proveRequest{Handle: handle}, &out, domain.ErrInvalidProof); err != nil {
		return nil, nil, err
	}
	return out.Clear, out.Proof, nil
}

// VerifyReveal forwards the decryption-proof check to the remote verifier.
func (c *Client) VerifyReveal(
	ctx context.Context,
	handle domain.CiphertextHandle,
	claimedClear []byte,
	decryptionProof []byte,
) (domain.Price, error) {
	var out verifyResponse
	in := verifyRequest{Handle: handle, Clear: claimedClear, Proof: decryptionProof}
	if err := c.post(ctx, "/coproc/verify", in, &out, domain.ErrInvalidProof); err != nil {
		return 0, err
	}
	return out.Price, nil
}

// post sends in as JSON and decodes the response into out. A 422 maps to
// rejected, the operation's validation sentinel.
func (c *Client) post(ctx context.Context, path string, in, out any, rejected error) error {
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

	if resp.StatusCode == http.StatusUnprocessableEntity && rejected != nil {
		return rejected
	}
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("coproc post %s: %s", path, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// Compile-time assertions for both capability contracts.
var (
	_ domain.Verifier   = (*Client)(nil)
	_ domain.PriceVault = (*Client)(nil)
)
