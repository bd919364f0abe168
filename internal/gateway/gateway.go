// Package gateway is the relational store gateway (§4.B): it owns every
// write to the store and exposes typed read helpers for the prediction
// engine and query router. Every upsert is idempotent on the uniqueness
// keys named in the data model; columns whose null-ness must never regress
// an existing non-null value use a COALESCE merge instead of a bare
// EXCLUDED assignment.
package gateway

import (
	"github.com/albapepper/puckline-data/internal/db"
)

// Gateway wraps the connection pool and exposes write and read operations
// against every entity in the data model.
type Gateway struct {
	pool *db.Pool
}

// New constructs a Gateway over an already-initialized pool.
func New(pool *db.Pool) *Gateway {
	return &Gateway{pool: pool}
}
