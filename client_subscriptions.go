package goKiosk

import (
	"context"
	"net/http"
	"strconv"
)

// CreateSubscription subscribes the authenticated user to a publication.
func (c *Client) CreateSubscription(ctx context.Context, sub SubscriptionCreate) (*Subscription, error) {
	var out Subscription
	err := c.do(ctx, apiCall{
		method: http.MethodPost,
		path:   "/api/subscriptions/",
		body:   sub,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// MySubscriptions lists the authenticated user's subscriptions, each with
// its publication embedded.
func (c *Client) MySubscriptions(ctx context.Context) ([]Subscription, error) {
	var out []Subscription
	err := c.do(ctx, apiCall{
		method: http.MethodGet,
		path:   "/api/subscriptions/my",
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CancelSubscription cancels one of the user's subscriptions. The backend
// answers 204, so a nil error is the whole result; fetch MySubscriptions to
// observe the updated status.
func (c *Client) CancelSubscription(ctx context.Context, id int64) error {
	return c.do(ctx, apiCall{
		method: http.MethodDelete,
		path:   "/api/subscriptions/" + strconv.FormatInt(id, 10),
	}, nil)
}
