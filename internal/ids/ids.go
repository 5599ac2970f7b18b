// Package ids generates the opaque, time-sortable identifiers used as the
// stable primary key of every entity in a workspace.
package ids

import "github.com/google/uuid"

// New returns a time-ordered, globally unique identifier (UUIDv7). Unlike a
// random UUIDv4, lexical and chronological order coincide, which lets the
// repository layer and reports sort entities by id without reading
// createdAt.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		// uuid.NewV7 only fails if the system clock/random source is
		// unavailable; fall back to a random id rather than panicking so a
		// degraded environment can still create entities.
		return uuid.NewString()
	}
	return id.String()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
