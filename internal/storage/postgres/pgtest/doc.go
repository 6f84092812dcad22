// Package pgtest starts a disposable PostgreSQL for integration tests (build tag "integration").
package pgtest
