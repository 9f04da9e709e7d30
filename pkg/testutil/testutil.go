// Package testutil contains common test utilities.
package testutil

// Cleanuper wraps the Cleanup method. It is a subset of [testing.TB], thus
// satisfied by [*testing.T] and [*testing.B].
type Cleanuper interface {
	Cleanup(func())
}

// TempDirer wraps the TempDir method. It is a subset of [testing.TB].
type TempDirer interface {
	TempDir() string
}

// Env is a subset of [testing.TB] used by the helpers that change the
// process environment.
type Env interface {
	Cleanuper
	TempDirer
	Helper()
	Fatalf(format string, args ...any)
}
