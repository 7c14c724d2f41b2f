// Package console is the client core of the delivery console UI. It talks to
// the delivery API, keeps a local cache of parcels, and drives status
// transitions. The server stays authoritative throughout: the cache only ever
// holds what the server actually returned.
package console

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Parcel is the console's view of a parcel, as served by the API.
type Parcel struct {
	ID              string     `json:"id"`
	Reference       string     `json:"reference"`
	Description     string     `json:"description"`
	WeightKg        float64    `json:"weight_kg"`
	Priority        string     `json:"priority"`
	Status          string     `json:"status"`
	SenderClientID  string     `json:"sender_client_id"`
	RecipientID     string     `json:"recipient_id"`
	CourierID       string     `json:"courier_id,omitempty"`
	ZoneID          string     `json:"zone_id,omitempty"`
	DestinationCity string     `json:"destination_city"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	Comment         string     `json:"comment,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	ModifiedAt      time.Time  `json:"modified_at"`
	// AllowedNextStatuses is the server's advisory transition set for the
	// authenticated actor. The UI offers exactly these; the server re-checks
	// on submission regardless.
	AllowedNextStatuses []string `json:"allowed_next_statuses,omitempty"`
}

// StatusChange is one entry of a parcel's transition log, newest first.
type StatusChange struct {
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	Comment   string    `json:"comment,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
	ChangedBy string    `json:"changed_by,omitempty"`
}

// Pagination mirrors the API's list envelope metadata.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listEnvelope struct {
	Data       []Parcel   `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// ListOptions narrows and pages a parcel listing.
type ListOptions struct {
	Status   string
	Priority string
	Search   string
	Page     int
	Limit    int
}

// Client calls the delivery API with a bearer token. All methods return
// *Error so callers can branch on the failure kind.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient builds a Client for the API at baseURL. httpClient may be nil, in
// which case a client with a 10s timeout is used.
func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, token: token, http: httpClient}
}

// GetParcel fetches one parcel by id.
func (c *Client) GetParcel(ctx context.Context, id string) (*Parcel, error) {
	var p Parcel
	if err := c.do(ctx, http.MethodGet, "/v1/parcels/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListParcels fetches a page of parcels visible to the authenticated actor.
func (c *Client) ListParcels(ctx context.Context, opts ListOptions) ([]Parcel, Pagination, error) {
	q := url.Values{}
	if opts.Status != "" {
		q.Set("status", opts.Status)
	}
	if opts.Priority != "" {
		q.Set("priority", opts.Priority)
	}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}

	path := "/v1/parcels"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var envelope listEnvelope
	if err := c.do(ctx, http.MethodGet, path, nil, &envelope); err != nil {
		return nil, Pagination{}, err
	}
	return envelope.Data, envelope.Pagination, nil
}

// UpdateParcelStatus submits a status transition and returns the committed
// parcel exactly as the server persisted it.
func (c *Client) UpdateParcelStatus(ctx context.Context, id, status, comment string) (*Parcel, error) {
	payload := map[string]string{"status": status}
	if comment != "" {
		payload["comment"] = comment
	}

	var p Parcel
	if err := c.do(ctx, http.MethodPatch, "/v1/parcels/"+url.PathEscape(id)+"/status", payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetParcelHistory fetches the transition log of a parcel, newest first.
func (c *Client) GetParcelHistory(ctx context.Context, id string) ([]StatusChange, error) {
	var changes []StatusChange
	if err := c.do(ctx, http.MethodGet, "/v1/parcels/"+url.PathEscape(id)+"/history", nil, &changes); err != nil {
		return nil, err
	}
	return changes, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return &Error{Kind: KindValidation, Message: err.Error()}
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return networkError(err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return networkError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkError(err)
	}

	if resp.StatusCode >= 400 {
		return classifyStatus(resp.StatusCode, raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return &Error{Kind: KindServer, Message: fmt.Sprintf("malformed response: %v", err)}
		}
	}
	return nil
}
