// Package codec encodes and decodes the versioned YAML manifests described
// in §4.A: a tagged envelope of apiVersion/kind/metadata/spec, lowerCamel
// field names, with optional fields omitted (never emitted as null) and
// deterministic field ordering so repository writes don't churn version
// control.
package codec

import (
	"reflect"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// APIVersion is the only version this codec emits. Older versions read
// from disk are migrated up to it (migrate.go); a newer, unrecognized
// version is a hard UnsupportedVersionError.
const APIVersion = "tasktaskrevolution.io/v1alpha1"

// Kind names the entity type a manifest describes.
type Kind string

const (
	KindCompany  Kind = "Company"
	KindProject  Kind = "Project"
	KindTask     Kind = "Task"
	KindResource Kind = "Resource"
	KindConfig   Kind = "Config"
)

// metadata is the envelope's identity section, common to every kind.
type metadata struct {
	ID        string    `yaml:"id"`
	Code      string    `yaml:"code,omitempty"`
	CreatedAt time.Time `yaml:"createdAt"`
	UpdatedAt time.Time `yaml:"updatedAt"`
	CreatedBy string    `yaml:"createdBy,omitempty"`
}

// envelope is the generic on-disk shape; Spec is kind-specific and decoded
// a second pass once Kind is known.
type envelope struct {
	APIVersion string   `yaml:"apiVersion"`
	Kind       string   `yaml:"kind"`
	Metadata   metadata `yaml:"metadata"`
	Spec       any      `yaml:"spec"`
}

// raw is used only for the first decode pass, where Spec is kept as a
// generic node so we can dispatch on Kind before parsing it strictly.
type raw struct {
	APIVersion string         `yaml:"apiVersion"`
	Kind       string         `yaml:"kind"`
	Metadata   metadata       `yaml:"metadata"`
	Spec       map[string]any `yaml:"spec"`
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func marshalEnvelope(env envelope) ([]byte, error) {
	return yaml.Marshal(env)
}

type missingKindError struct{}

func (missingKindError) Error() string { return "manifest missing required `kind` field" }

var errMissingKind = missingKindError{}

// decodeRaw parses data into the generic envelope shape, checks that Kind
// matches want, and migrates the spec section up to the current
// APIVersion if needed.
func decodeRaw(path string, data []byte, want Kind) (*raw, []SchemaWarning, error) {
	var r raw
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, nil, &InvalidSyntaxError{Path: path, Err: err}
	}
	if r.Kind == "" {
		return nil, nil, &InvalidSyntaxError{Path: path, Err: errMissingKind}
	}
	if Kind(r.Kind) != want {
		return nil, nil, &UnknownKindError{Kind: r.Kind}
	}
	if err := migrate(&r); err != nil {
		return nil, nil, err
	}
	return &r, nil, nil
}

// remarshal re-encodes a generic map[string]any into a concrete struct by
// round-tripping through YAML. This keeps per-kind decode functions free
// of manual field-by-field mapping while still yielding a strictly typed
// spec struct callers can validate against. Any key in src with no
// matching field in dst comes back as a SchemaWarning rather than being
// silently dropped (§4.A: unknown fields are "preserved round-trip when
// feasible, else reported as a structured warning" — dst's strict typing
// makes preservation infeasible here, so every unknown key is reported).
func remarshal(src any, dst any) ([]SchemaWarning, error) {
	b, err := yaml.Marshal(src)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, dst); err != nil {
		return nil, err
	}
	return unknownFieldWarnings(src, dst), nil
}

// unknownFieldWarnings compares src's top-level keys against dst's yaml
// field tags, reporting any key in src that dst has no field for.
func unknownFieldWarnings(src any, dst any) []SchemaWarning {
	m, ok := src.(map[string]any)
	if !ok {
		return nil
	}
	known := knownYAMLFields(dst)

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var warnings []SchemaWarning
	for _, k := range keys {
		if !known[k] {
			warnings = append(warnings, SchemaWarning{Field: k, Reason: "unknown field, not preserved on write"})
		}
	}
	return warnings
}

func knownYAMLFields(dst any) map[string]bool {
	t := reflect.TypeOf(dst)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	known := map[string]bool{}
	if t == nil || t.Kind() != reflect.Struct {
		return known
	}
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("yaml")
		name, _, _ := strings.Cut(tag, ",")
		if name == "" || name == "-" {
			continue
		}
		known[name] = true
	}
	return known
}
