package properties

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Property is a named scalar value. The name keeps the case it was
// loaded with; lookups ignore case.
type Property struct {
	Name  string
	Value any
}

// Entry is a raw (name, value) pair as read from a data source.
type Entry = Property

// Store is an ordered collection of properties. The zero value is an
// empty store ready for use.
type Store struct {
	props []Property
}

// New returns a store loaded with entries.
func New(entries ...Entry) *Store {
	st := &Store{}
	st.Load(entries)

	return st
}

// Load replaces the store content with entries, keeping their order.
// When a name appears more than once the last value wins and keeps the
// position of the first occurrence.
func (st *Store) Load(entries []Entry) {
	props := make([]Property, 0, len(entries))
	seen := make(map[string]int, len(entries))

	for _, en := range entries {
		if idx, ok := seen[en.Name]; ok {
			props[idx].Value = en.Value
			continue
		}

		seen[en.Name] = len(props)
		props = append(props, Property{Name: en.Name, Value: en.Value})
	}

	st.props = props
}

// Clear removes every property.
func (st *Store) Clear() {
	st.props = nil
}

// Len returns the number of properties.
func (st *Store) Len() int {
	return len(st.props)
}

// At returns the property at index idx in load order.
func (st *Store) At(idx int) (Property, bool) {
	if idx < 0 || idx >= len(st.props) {
		return Property{}, false
	}

	return st.props[idx], true
}

// All returns a copy of the properties in store order.
func (st *Store) All() []Property {
	out := make([]Property, len(st.props))
	copy(out, st.props)

	return out
}

// Names returns the property names in store order.
func (st *Store) Names() []string {
	out := make([]string, len(st.props))
	for i, pr := range st.props {
		out[i] = pr.Name
	}

	return out
}

// Find returns the first property whose name matches name ignoring
// case. The returned pointer stays valid until the next Load, Set or
// Clear.
func (st *Store) Find(name string) (*Property, bool) {
	idx := st.index(name)
	if idx < 0 {
		return nil, false
	}

	return &st.props[idx], true
}

// Lookup returns the text of the property matching name ignoring case.
func (st *Store) Lookup(name string) (string, bool) {
	pr, ok := st.Find(name)
	if !ok {
		return "", false
	}

	return Text(pr.Value), true
}

// SetValue updates the value of the property matching name. It
// reports false and changes nothing when no property matches.
func (st *Store) SetValue(name string, value any) bool {
	pr, ok := st.Find(name)
	if !ok {
		return false
	}

	pr.Value = value

	return true
}

// Set updates the property matching name or appends a new one.
func (st *Store) Set(name string, value any) {
	if st.SetValue(name, value) {
		return
	}

	st.props = append(st.props, Property{Name: name, Value: value})
}

func (st *Store) index(name string) int {
	key := foldKey(name)

	for i := range st.props {
		if foldKey(st.props[i].Name) == key {
			return i
		}
	}

	return -1
}

// exact returns the index of the property named exactly name.
func (st *Store) exact(name string) int {
	for i := range st.props {
		if st.props[i].Name == name {
			return i
		}
	}

	return -1
}

// foldKey normalizes a name for comparison so that composed and
// decomposed forms of the same letters match regardless of case.
func foldKey(name string) string {
	return strings.ToLower(strings.ToUpper(norm.NFC.String(name)))
}
