// Package ctxstore keeps typed request scoped values in a context.
package ctxstore

import "context"

type Key string

const (
	TraceIDKey Key = "traceId"
	LocaleKey  Key = "locale"
)

func (k Key) String() string {
	return string(k)
}

func With[T any](ctx context.Context, key Key, value T) context.Context {
	return context.WithValue(ctx, key, value)
}

func From[T any](ctx context.Context, key Key) (T, bool) {
	value, ok := ctx.Value(key).(T)
	return value, ok
}

// FromOr returns the value stored under key or def when it is absent or
// of another type.
func FromOr[T any](ctx context.Context, key Key, def T) T {
	if value, ok := From[T](ctx, key); ok {
		return value
	}
	return def
}

func MustFrom[T any](ctx context.Context, key Key) T {
	value, ok := From[T](ctx, key)
	if !ok {
		panic("ctxstore: " + key.String() + " not found")
	}
	return value
}
