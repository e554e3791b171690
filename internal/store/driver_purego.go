//go:build !cgo

package store

import _ "modernc.org/sqlite" // pure go sqlite driver

// driverName is the database/sql driver registered by modernc.org/sqlite
const driverName = "sqlite"
