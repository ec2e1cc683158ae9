package api

import (
	"context"
)

type keyType string

const (
	claimsKey keyType = "claims"
)

// ctxWithClaims adds validated admin claims to the context
func ctxWithClaims(ctx context.Context, claims *adminClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ctxGetClaims retrieves admin claims from the context
func ctxGetClaims(ctx context.Context) (*adminClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*adminClaims)
	return claims, ok
}
