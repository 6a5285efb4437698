package memstore

import "errors"

// ErrDuplicateKey mirrors a unique index violation.
var ErrDuplicateKey = errors.New("memstore: duplicate key")
