// Package sqlite3 is a small connection and cursor binding built only on the
// wsq forwarding layer.
//
// A Conn is opened from a ConnInfo map, a Cursor executes SQL text and hands
// back rows one at a time. Values are returned exactly as the engine's text
// accessor produces them, with SQL NULL as nil. Conn and Cursor are not safe
// for concurrent use.
package sqlite3
