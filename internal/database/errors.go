package database

import "github.com/pkg/errors"

// ErrRecordNotFound is returned by stores when no row matches the lookup
var ErrRecordNotFound = errors.New("record not found")
