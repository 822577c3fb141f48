package goKiosk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListPublications returns the active catalog page described by params. A
// nil params lists with the backend's defaults. The type filter rides the
// query string, which is also what a validation rejection is matched
// against when composing its failure message.
func (c *Client) ListPublications(ctx context.Context, params *ListPublicationsParams) ([]Publication, error) {
	query := url.Values{}
	if params != nil {
		if params.Skip != nil {
			query.Set("skip", strconv.Itoa(*params.Skip))
		}
		if params.Limit != nil {
			query.Set("limit", strconv.Itoa(*params.Limit))
		}
		if params.Type != "" {
			query.Set("type", string(params.Type))
		}
	}

	var out []Publication
	err := c.do(ctx, apiCall{
		method: http.MethodGet,
		path:   "/api/publications/",
		query:  query,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListAllPublications returns every publication including inactive ones.
// Admin only.
func (c *Client) ListAllPublications(ctx context.Context) ([]Publication, error) {
	var out []Publication
	err := c.do(ctx, apiCall{
		method: http.MethodGet,
		path:   "/api/publications/all",
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetPublication fetches one publication by id.
func (c *Client) GetPublication(ctx context.Context, id int64) (*Publication, error) {
	var out Publication
	err := c.do(ctx, apiCall{
		method: http.MethodGet,
		path:   "/api/publications/" + strconv.FormatInt(id, 10),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePublication adds a catalog entry. Admin only.
func (c *Client) CreatePublication(ctx context.Context, pub PublicationCreate) (*Publication, error) {
	var out Publication
	err := c.do(ctx, apiCall{
		method: http.MethodPost,
		path:   "/api/publications/",
		body:   pub,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePublication patches a catalog entry; nil fields stay as they are.
// Admin only.
func (c *Client) UpdatePublication(ctx context.Context, id int64, upd PublicationUpdate) (*Publication, error) {
	var out Publication
	err := c.do(ctx, apiCall{
		method: http.MethodPatch,
		path:   "/api/publications/" + strconv.FormatInt(id, 10),
		body:   upd,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePublication removes a catalog entry. The backend answers 204, so a
// nil error is the whole result. Admin only.
func (c *Client) DeletePublication(ctx context.Context, id int64) error {
	return c.do(ctx, apiCall{
		method: http.MethodDelete,
		path:   "/api/publications/" + strconv.FormatInt(id, 10),
	}, nil)
}
