package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// NamedEntries is an insertion-ordered mapping from instance name to entry.
// Its JSON form is a plain object whose keys keep the order they were added in.
type NamedEntries struct {
	names   []string
	entries map[string]*ContractEntry
}

// NewNamedEntries creates an empty mapping
func NewNamedEntries() *NamedEntries {
	return &NamedEntries{entries: make(map[string]*ContractEntry)}
}

// Set stores entry under name. An existing name keeps its position.
func (n *NamedEntries) Set(name string, entry *ContractEntry) {
	if n.entries == nil {
		n.entries = make(map[string]*ContractEntry)
	}
	if _, exists := n.entries[name]; !exists {
		n.names = append(n.names, name)
	}
	n.entries[name] = entry
}

// Get returns the entry stored under name
func (n *NamedEntries) Get(name string) (*ContractEntry, bool) {
	if n == nil {
		return nil, false
	}
	entry, ok := n.entries[name]
	return entry, ok
}

// Names returns instance names in insertion order
func (n *NamedEntries) Names() []string {
	if n == nil {
		return nil
	}
	return slices.Clone(n.names)
}

// Len returns the number of entries
func (n *NamedEntries) Len() int {
	if n == nil {
		return 0
	}
	return len(n.names)
}

// Clone returns a deep copy
func (n *NamedEntries) Clone() *NamedEntries {
	if n == nil {
		return nil
	}
	clone := NewNamedEntries()
	for _, name := range n.names {
		clone.Set(name, n.entries[name].Clone())
	}
	return clone
}

// MarshalJSON writes the entries as an object in insertion order
func (n NamedEntries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range n.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(n.entries[name])
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object, recording key order as it appears
func (n *NamedEntries) UnmarshalJSON(data []byte) error {
	n.names = nil
	n.entries = make(map[string]*ContractEntry)

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected string key, got %v", tok)
		}
		var entry *ContractEntry
		if err := dec.Decode(&entry); err != nil {
			return fmt.Errorf("entry %q: %w", name, err)
		}
		n.Set(name, entry)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
