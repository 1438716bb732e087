package store

import "context"

// Default storage slots. The primary key is authoritative; the backup key is a
// time-throttled safety copy written by the repository.
const (
	DefaultPrimaryKey = "coursedesk_data"
	DefaultBackupKey  = "coursedesk_backup"
)

// Backend abstracts the durable key-value medium. Implementations never let a
// medium-level failure escape: a failed read is a miss, a failed write is
// false, and Probe answers whether the medium is usable at all. Callers need
// booleans at this boundary, not errors.
type Backend interface {
	// Probe writes and immediately deletes a sentinel key, reporting whether
	// the medium accepted it.
	Probe(ctx context.Context) bool

	// Read returns the raw stored value for key, or ok=false on miss or error.
	Read(ctx context.Context, key string) (value string, ok bool)

	// Write stores value under key and reports success.
	Write(ctx context.Context, key, value string) bool
}
