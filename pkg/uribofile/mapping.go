// SPDX-License-Identifier: MPL-2.0

package uribofile

import (
	"fmt"
	"slices"

	"golang.org/x/exp/maps"
)

// Mapping is the content of one .uribo file: command name to record.
// Lookup is by exact key only; ordering carries no meaning.
type Mapping map[CommandName]Command

// Names returns the defined names in lexicographic order.
func (m Mapping) Names() []CommandName {
	names := maps.Keys(m)
	slices.Sort(names)
	return names
}

// Get returns the record defined under name.
func (m Mapping) Get(name CommandName) (Command, bool) {
	cmd, ok := m[name]
	return cmd, ok
}

// Put inserts or replaces the record for name.
func (m Mapping) Put(name CommandName, cmd Command) {
	m[name] = cmd
}

// Delete removes name, or returns a NameNotDefinedError if it is absent.
func (m Mapping) Delete(name CommandName) error {
	if _, ok := m[name]; !ok {
		return &NameNotDefinedError{Name: name}
	}
	delete(m, name)
	return nil
}

// Clone returns a copy whose records do not share Args slices with m.
func (m Mapping) Clone() Mapping {
	out := make(Mapping, len(m))
	for name, cmd := range m {
		cmd.Args = slices.Clone(cmd.Args)
		out[name] = cmd
	}
	return out
}

// Equal reports whether both mappings define the same names with equal records.
func (m Mapping) Equal(other Mapping) bool {
	return maps.EqualFunc(m, other, Command.Equal)
}

// Validate checks every name and record, returning the first failure.
func (m Mapping) Validate() error {
	for _, name := range m.Names() {
		if err := name.Validate(); err != nil {
			return err
		}
		if err := m[name].Validate(); err != nil {
			return fmt.Errorf("%q: %w", string(name), err)
		}
	}
	return nil
}
