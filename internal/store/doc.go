// Package store defines the persistence interfaces for users and cards,
// shared sentinel errors, the DBTX abstraction over connections and
// transactions, and a transaction helper. Concrete implementations live
// under internal/platform.
package store
