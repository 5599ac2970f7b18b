package codec

// migrations maps an old apiVersion to a function that rewrites a raw
// envelope's spec map into the shape the current version expects. There
// is exactly one schema version so far; this table exists so a future
// v1alpha2 can add an entry without touching DecodeX call sites.
var migrations = map[string]func(map[string]any){}

// migrate upgrades r in place to APIVersion, or returns
// UnsupportedVersionError if r.APIVersion is newer than anything known.
func migrate(r *raw) error {
	if r.APIVersion == APIVersion {
		return nil
	}
	fn, ok := migrations[r.APIVersion]
	if !ok {
		return &UnsupportedVersionError{Version: r.APIVersion}
	}
	fn(r.Spec)
	r.APIVersion = APIVersion
	return nil
}
