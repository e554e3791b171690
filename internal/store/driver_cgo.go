//go:build cgo

package store

import _ "github.com/mattn/go-sqlite3"

// driverName is the database/sql driver registered by go-sqlite3
const driverName = "sqlite3"
