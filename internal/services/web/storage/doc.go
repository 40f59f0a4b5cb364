// Package storage declares persistence interfaces for web-owned session data.
//
// The backend remains the source of truth for accounts; the web store only
// keeps what a browser session needs between requests.
package storage
