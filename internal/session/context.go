package session

import "context"

type providerKey struct{}

// WithProvider returns ctx carrying provider.
func WithProvider(ctx context.Context, provider *Provider) context.Context {
	if provider == nil {
		return ctx
	}
	return context.WithValue(ctx, providerKey{}, provider)
}

// FromContext returns the provider carried by ctx.
func FromContext(ctx context.Context) (*Provider, bool) {
	if ctx == nil {
		return nil, false
	}
	provider, ok := ctx.Value(providerKey{}).(*Provider)
	return provider, ok && provider != nil
}
