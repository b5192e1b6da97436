// Package store provides the backing trace store for session queries.
//
// Two backends implement the Storage interface: SQLite for deployments and an
// in-memory map for tests. The session query path deliberately accepts only
// an optimized query value, so every query that reaches a backend has a time
// bound, a bounded limit, and an explicit field selection.
//
// The schema sorts traces by (project_id, timestamp) and gives session_id
// only a secondary index, mirroring the index shape the advisory rules exist
// to protect.
package store
