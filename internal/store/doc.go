// Package store keeps an audit trail of agent lifecycle events using SQLite.
//
// # Scope
//
// The proxy's routing tables live purely in memory. This package only
// records what happened to each agent (connect, register, path changes,
// disconnect, eviction) so operators can inspect an agent's history through
// the proxy's HTTP API. Nothing here is read back to rebuild routing state.
//
// # Implementations
//
//   - SQLiteStore: modernc.org/sqlite backed store, WAL mode, schema created on open
//   - MockStore: in-memory store for unit tests
//
// Both satisfy EventStore.
//
// # Database Location
//
// The default path is ":memory:", which keeps history for the life of the
// process. Point database.path at a file to keep it across restarts:
//
//	database:
//	  path: /var/lib/scrape-relay/events.db
//
// # Errors
//
//   - ErrInvalidEvent: event is missing its agent id or has an unknown kind
package store
