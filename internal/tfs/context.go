package tfs

import "context"

type contextKey string

const clientContextKey contextKey = "tfs-client-context"

// With returns a new context carrying a connected client.
func With(ctx context.Context, c *Client) context.Context {
	return context.WithValue(ctx, clientContextKey, c)
}

// FromContext returns the connected client stored by With, or nil.
func FromContext(ctx context.Context) *Client {
	if c, ok := ctx.Value(clientContextKey).(*Client); ok {
		return c
	}
	return nil
}
