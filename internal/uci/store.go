package uci

import "context"

// Section is a typed block of options inside a configuration domain.
// Named sections keep their declared name; anonymous sections are
// addressed by a store-generated reference.
type Section struct {
	Name      string
	Type      string
	Anonymous bool
	Options   map[string]Value
}

// Option returns the named option, or nil when unset.
func (s *Section) Option(name string) Value {
	if s == nil || s.Options == nil {
		return nil
	}
	return s.Options[name]
}

// Store is the declarative host configuration store. Mutations are staged
// until Save, and take effect on the running system only after Apply.
//
// Domains partition the configuration: "network" holds interface and
// device sections, "firewall" holds zone and rule sections, "dhcp" holds
// the dnsmasq section. Section references returned by Sections and Add
// stay valid until the next mutation of the same domain.
type Store interface {
	// Sections lists all sections of the given type within a domain, in
	// declaration order. An empty sectionType lists every section.
	Sections(ctx context.Context, domain, sectionType string) ([]Section, error)

	// Section fetches a single section by name or reference. A missing
	// section yields (nil, nil).
	Section(ctx context.Context, domain, name string) (*Section, error)

	// Get reads one option. A missing section or option yields nil.
	Get(ctx context.Context, domain, section, option string) (Value, error)

	// Set stages an option write. Multi-element values become lists,
	// single-element values scalars.
	Set(ctx context.Context, domain, section, option string, value Value) error

	// Add stages a new anonymous section and returns its reference.
	Add(ctx context.Context, domain, sectionType string) (string, error)

	// AddNamed stages a new named section.
	AddNamed(ctx context.Context, domain, name, sectionType string) error

	// Remove stages deletion of a whole section. Removing a missing
	// section is not an error.
	Remove(ctx context.Context, domain, section string) error

	// Unset stages removal of a single option. Unsetting a missing option
	// is not an error.
	Unset(ctx context.Context, domain, section, option string) error

	// Save commits all staged changes of a domain to persistent storage.
	Save(ctx context.Context, domain string) error

	// Apply activates the saved configuration on the running system with
	// an automatic rollback window of timeoutSeconds.
	Apply(ctx context.Context, timeoutSeconds int) error
}
