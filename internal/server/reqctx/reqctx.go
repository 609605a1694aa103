// Package reqctx carries per-request authentication state through
// context.Context.
package reqctx

import "context"

// State is the authenticated part of a request.
type State struct {
	UserID    int64
	SessionID string
}

type key struct{}

// With returns ctx carrying st.
func With(ctx context.Context, st State) context.Context {
	return context.WithValue(ctx, key{}, st)
}

// From returns the state stored in ctx.
func From(ctx context.Context) (State, bool) {
	st, ok := ctx.Value(key{}).(State)
	return st, ok
}

// UserID returns the authenticated user id, or 0 and false.
func UserID(ctx context.Context) (int64, bool) {
	st, ok := From(ctx)
	if !ok || st.UserID == 0 {
		return 0, false
	}
	return st.UserID, true
}
