package backend

import "context"

type tokenKey struct{}

// WithToken returns a context carrying the bearer token the client will
// attach to requests made with it. An empty token leaves ctx unchanged.
func WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom returns the bearer token stored in ctx, or "".
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}
