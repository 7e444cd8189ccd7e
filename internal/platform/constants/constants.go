// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Transfer: Snapshot format version and import guard rails.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "promptdb"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Imports can carry a few megabytes of JSON, so this is looser than a pure API.
	DefaultReadTimeout = 15 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 60 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Transfer

const (
	// SnapshotVersion is written into every exported snapshot.
	SnapshotVersion = "1.0"

	// ExportFilePrefix is the attachment filename prefix for exports.
	ExportFilePrefix = "prompts-export-"

	// ImportLockKey guards the import reconciler against concurrent runs.
	ImportLockKey = "promptdb:lock:import"
)

// # HTTP Headers

const (
	HeaderXRequestID          = "X-Request-ID"
	HeaderXRealIP             = "X-Real-IP"
	HeaderXForwardedFor       = "X-Forwarded-For"
	HeaderOrigin              = "Origin"
	HeaderContentDisposition  = "Content-Disposition"
	HeaderContentType         = "Content-Type"
	ContentTypeJSON           = "application/json; charset=utf-8"
	ContentDispositionPattern = `attachment; filename="%s"`
)

// # JSON Field Identifiers

// Health probe response keys.
const (
	FieldStatus = "status"
	FieldChecks = "checks"
)
