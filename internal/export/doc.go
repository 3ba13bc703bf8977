// Package export stores analysis reports in SQLite. Local paths use
// mattn/go-sqlite3; libsql:// and http(s):// DSNs go to a remote libSQL
// (Turso) database. The schema is created on open.
package export
