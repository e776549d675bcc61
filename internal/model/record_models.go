package model

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
)

// TimeLayout is the serialised form of created_at and updated_at.
const TimeLayout = "2006-01-02T15:04:05.000000"

// Bookkeeping attribute names.
const (
	AttrClass     = "__class__"
	AttrID        = "id"
	AttrCreatedAt = "created_at"
	AttrUpdatedAt = "updated_at"
)

// Record is one persisted instance of an entity type. Identity and
// bookkeeping live in typed fields; everything else a user assigns lives in
// Attributes.
type Record struct {
	Class      string
	ID         string
	CreatedAt  strfmt.DateTime
	UpdatedAt  strfmt.DateTime
	Attributes map[string]any
}

// NewRecord returns a record of class with a fresh uuid and both timestamps
// set to now.
func NewRecord(class string) *Record {
	now := strfmt.DateTime(time.Now().UTC())
	return &Record{
		Class:      class,
		ID:         uuid.New().String(),
		CreatedAt:  now,
		UpdatedAt:  now,
		Attributes: make(map[string]any),
	}
}

// Key builds the store key "<Class>.<id>".
func Key(class, id string) string {
	return class + "." + id
}

// Key returns the record's store key.
func (r *Record) Key() string {
	return Key(r.Class, r.ID)
}

// Touch refreshes the last-modified marker.
func (r *Record) Touch() {
	r.UpdatedAt = strfmt.DateTime(time.Now().UTC())
}

// IsProtected reports whether an attribute name belongs to the record's
// identity or bookkeeping and so must never be assigned by a user.
func IsProtected(name string) bool {
	switch name {
	case AttrID, AttrCreatedAt, AttrUpdatedAt, AttrClass:
		return true
	}
	return strings.HasPrefix(name, "__")
}

// Set assigns an attribute. It returns false, leaving the record untouched,
// when name is empty or protected.
func (r *Record) Set(name string, value any) bool {
	if name == "" || IsProtected(name) {
		return false
	}
	if r.Attributes == nil {
		r.Attributes = make(map[string]any)
	}
	r.Attributes[name] = NormalizeValue(value)
	return true
}

// Get returns an attribute value.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.Attributes[name]
	return v, ok
}

// Clone returns a deep-enough copy for callers that must not share the
// attribute map with the store.
func (r *Record) Clone() *Record {
	c := *r
	c.Attributes = maps.Clone(r.Attributes)
	if c.Attributes == nil {
		c.Attributes = make(map[string]any)
	}
	return &c
}

// ToMap returns the flat serialised form used by every storage engine.
func (r *Record) ToMap() map[string]any {
	m := make(map[string]any, len(r.Attributes)+4)
	for k, v := range r.Attributes {
		m[k] = v
	}
	m[AttrClass] = r.Class
	m[AttrID] = r.ID
	m[AttrCreatedAt] = FormatTime(r.CreatedAt)
	m[AttrUpdatedAt] = FormatTime(r.UpdatedAt)
	return m
}

// FromMap rebuilds a record from its serialised form.
func FromMap(m map[string]any) (*Record, error) {
	class, _ := m[AttrClass].(string)
	if class == "" {
		return nil, fmt.Errorf("missing %s", AttrClass)
	}
	id, _ := m[AttrID].(string)
	if id == "" {
		return nil, fmt.Errorf("missing %s", AttrID)
	}

	created, err := parseTimeField(m, AttrCreatedAt)
	if err != nil {
		return nil, err
	}
	updated, err := parseTimeField(m, AttrUpdatedAt)
	if err != nil {
		return nil, err
	}

	r := &Record{
		Class:      class,
		ID:         id,
		CreatedAt:  created,
		UpdatedAt:  updated,
		Attributes: make(map[string]any, len(m)),
	}
	for k, v := range m {
		if IsProtected(k) {
			continue
		}
		r.Attributes[k] = NormalizeValue(v)
	}
	return r, nil
}

func parseTimeField(m map[string]any, name string) (strfmt.DateTime, error) {
	switch v := m[name].(type) {
	case nil:
		return strfmt.DateTime(time.Now().UTC()), nil
	case string:
		dt, err := strfmt.ParseDateTime(v)
		if err != nil {
			return strfmt.DateTime{}, fmt.Errorf("invalid %s %q: %w", name, v, err)
		}
		return dt, nil
	case time.Time:
		return strfmt.DateTime(v.UTC()), nil
	default:
		return strfmt.DateTime{}, fmt.Errorf("invalid %s type %T", name, v)
	}
}

// FormatTime renders a timestamp in TimeLayout.
func FormatTime(dt strfmt.DateTime) string {
	return time.Time(dt).UTC().Format(TimeLayout)
}

// NormalizeValue folds the numeric types produced by the JSON and YAML
// decoders onto int and float64 so records compare and render the same way
// regardless of where they were loaded from.
func NormalizeValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i)
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case int:
		return t
	case int8:
		return int(t)
	case int16:
		return int(t)
	case int32:
		return int(t)
	case int64:
		return int(t)
	case uint:
		return int(t)
	case uint8:
		return int(t)
	case uint16:
		return int(t)
	case uint32:
		return int(t)
	case uint64:
		return int(t)
	case float32:
		return float64(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = NormalizeValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = NormalizeValue(e)
		}
		return out
	default:
		return v
	}
}
