// Package retention prunes traces past their retention window.
//
// A Pruner deletes traces older than the configured number of days; a
// Scheduler runs it on a cron schedule (daily at 3 AM by default).
// Retention exists alongside the advisory engine's time-bound rule: pruning
// keeps the store's scan ranges small, the rules keep queries inside them.
package retention
