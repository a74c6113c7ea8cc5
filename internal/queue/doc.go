// Package queue persists alignment jobs in SQLite and exposes helpers for
// driving their lifecycle.
//
// The Store manages database connections, schema initialization, stats
// queries, and the status transitions the pipeline walks a job through.
// Jobs capture source media, intermediate artifact paths, and failure
// details so commands can resume or retry without additional state.
//
// The database is treated as transient storage for in-flight jobs rather
// than a long-term archive. Schema changes bump the version in schema.go;
// users clear the database to adopt the new schema.
package queue
