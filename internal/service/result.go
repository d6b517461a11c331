// Package service orchestrates validation, normalization and store
// calls behind a uniform Result contract. Expected domain failures
// (duplicate username, not found, bad credentials) travel as Result
// errors, never as Go errors or panics, and unexpected persistence
// failures are replaced with fixed per-operation messages so driver
// error text never reaches a client.
package service

// Result is the tagged return value of every service operation: either
// a value or an error message, never both. Callers must check Ok
// before reading the value.
type Result[T any] struct {
	value T
	err   string
	ok    bool
}

// OK wraps a successful value.
func OK[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

// Fail wraps a domain error message.
func Fail[T any](msg string) Result[T] {
	return Result[T]{err: msg}
}

// Ok reports whether the result carries a value.
func (r Result[T]) Ok() bool { return r.ok }

// Value returns the carried value; meaningful only when Ok is true.
func (r Result[T]) Value() T { return r.value }

// Err returns the error message; empty when Ok is true.
func (r Result[T]) Err() string { return r.err }
