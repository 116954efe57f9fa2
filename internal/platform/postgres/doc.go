// Package postgres provides PostgreSQL implementations of the store
// interfaces. All stores accept a store.DBTX so they can run against a
// *sql.DB or a *sql.Tx interchangeably.
package postgres
