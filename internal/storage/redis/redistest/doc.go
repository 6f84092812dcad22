// Package redistest starts a disposable Redis for integration tests (build tag "integration").
package redistest
