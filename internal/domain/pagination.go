package domain

import "context"

// PaginatedResult wraps a page of items with paging metadata.
type PaginatedResult[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// NewPaginatedResult builds a PaginatedResult from a page of items.
func NewPaginatedResult[T any](items []T, total int64, page, limit int) PaginatedResult[T] {
	return PaginatedResult[T]{Items: items, Total: total, Page: page, Limit: limit}
}

// TxManager runs a function inside a single serializable unit of work. Every
// booking operation spans its read, precondition checks, and write with one
// transaction; the data store's row locking is the sole serialization
// mechanism.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
