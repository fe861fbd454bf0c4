package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/peaksport/vitrina/internal/logging"
)

// mutationResponse is the envelope every write endpoint returns.
type mutationResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Delete removes an entity via a {id}-templated DELETE endpoint.
func (c *Client) Delete(ctx context.Context, urlTemplate, id string) error {
	if urlTemplate == "" {
		return &Error{Kind: KindNotConfigured, Err: errors.New("delete endpoint not bound")}
	}
	return c.mutate(ctx, http.MethodDelete, ExpandTemplate(urlTemplate, id), nil)
}

// UpdateQuantity sets the quantity of a cart line. A quantity of zero
// is handled upstream as a removal; the backend rejects it.
func (c *Client) UpdateQuantity(ctx context.Context, urlTemplate, id string, quantity int) error {
	if urlTemplate == "" {
		return &Error{Kind: KindNotConfigured, Err: errors.New("cart update endpoint not bound")}
	}
	body, _ := json.Marshal(map[string]int{"quantity": quantity})
	return c.mutate(ctx, http.MethodPut, ExpandTemplate(urlTemplate, id), body)
}

// SubmitReview posts a review for a product to a {id}-templated
// endpoint.
func (c *Client) SubmitReview(ctx context.Context, urlTemplate, productID string, rating int, comment string) error {
	if urlTemplate == "" {
		return &Error{Kind: KindNotConfigured, Err: errors.New("review endpoint not bound")}
	}
	body, _ := json.Marshal(map[string]any{
		"rating":  rating,
		"comment": comment,
	})
	return c.mutate(ctx, http.MethodPost, ExpandTemplate(urlTemplate, productID), body)
}

func (c *Client) mutate(ctx context.Context, method, rawURL string, body []byte) error {
	data, err := c.do(ctx, method, rawURL, body)
	if err != nil {
		logging.Warn("mutation failed", "method", method, "url", rawURL, "err", err)
		return err
	}

	var resp mutationResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return &Error{Kind: KindDecode, Err: fmt.Errorf("parse mutation response: %w", err)}
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = resp.Message
		}
		logging.Warn("mutation rejected", "method", method, "url", rawURL, "message", msg)
		return &Error{Kind: KindApplication, Message: msg}
	}

	logging.Info("mutation applied", "method", method, "url", rawURL)
	return nil
}
