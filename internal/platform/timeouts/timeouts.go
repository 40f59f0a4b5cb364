// Package timeouts defines shared timeout constants used by the web service.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// BackendRequest caps one outbound call to the REST backend when no
// explicit request timeout is configured.
const BackendRequest = 15 * time.Second

// SessionSweep is the interval between expired-session cleanups.
const SessionSweep = 10 * time.Minute
