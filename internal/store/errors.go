package store

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrNestedTx       = errors.New("store is already in a transaction")
)
