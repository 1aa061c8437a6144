package pkglog

import "context"

type (
	correlationIDKey struct{}
	transactionIDKey struct{}
)

// GetCorrelationID returns the correlation ID stored in the context, or an
// empty string when the request never got one.
func GetCorrelationID(ctx context.Context) string {
	cid, _ := ctx.Value(correlationIDKey{}).(string)
	return cid
}

// SetCorrelationID stores a correlation ID into the context.
func SetCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, cid)
}

// GetTransactionID returns the ledger transaction the current operation works on.
func GetTransactionID(ctx context.Context) string {
	id, _ := ctx.Value(transactionIDKey{}).(string)
	return id
}

// SetTransactionID scopes ctx to a ledger transaction so every record logged
// with it carries the id. Empty ids leave ctx untouched.
func SetTransactionID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, transactionIDKey{}, id)
}
