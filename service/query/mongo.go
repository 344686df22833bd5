// Package query wraps the mongo driver for repositories
package query

import (
	"fmt"

	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/domain"
)

var (
	// ErrDuplicateKey is an error when violating unique index
	ErrDuplicateKey = fmt.Errorf("duplicate key")

	// ErrCollScan is error for unindexed query
	ErrCollScan = fmt.Errorf("COLLSCAN is not allowed")
)

// Mongo abstracts the mongo layer
type Mongo interface {
	// Insert inserts a new document to the table
	Insert(context ctx.Ctx, table domain.Table, insert interface{}) error

	// Search sorts by `sort` ("timestamp" ascending, "-timestamp" descending), an empty sort is skipped
	Search(context ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error

	// EnsureIndex creates an ascending or descending ("-field") compound index
	EnsureIndex(context ctx.Ctx, table domain.Table, fields ...string) error
}
