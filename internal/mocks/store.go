// Package mocks provides mock implementations for testing.
//
// This package should ONLY be imported in test files (_test.go).
// The Go toolchain will automatically exclude this package from production builds
// since it's not imported in any production code.
package mocks

import (
	"context"
	"fmt"

	"github.com/hostcfg/podnet/internal/uci"
)

// MockStore is an in-memory implementation of the uci.Store interface.
//
// It behaves like the real store: sections keep declaration order,
// anonymous sections get generated references, removing missing entries
// succeeds silently. Error fields allow tests to inject failures at each
// layer, and counters record Save/Apply traffic.
//
// Example usage:
//
//	store := mocks.NewMockStore()
//	store.Seed("network", uci.Section{Name: "lan", Type: "interface"})
//	store.ApplyErr = errors.New("ubus timeout")
type MockStore struct {
	// ReadErr is returned by Sections, Section and Get if not nil
	ReadErr error
	// WriteErr is returned by Set, Add, AddNamed, Remove and Unset if not nil
	WriteErr error
	// SaveErr is returned by Save if not nil
	SaveErr error
	// ApplyErr is returned by Apply if not nil
	ApplyErr error

	// SaveCalls counts Save calls per domain
	SaveCalls map[string]int
	// ApplyCalls counts Apply calls
	ApplyCalls int
	// ApplyTimeouts records the timeout passed to each Apply call
	ApplyTimeouts []int

	domains map[string][]*uci.Section
	nextRef int
}

func NewMockStore() *MockStore {
	return &MockStore{
		SaveCalls: make(map[string]int),
		domains:   make(map[string][]*uci.Section),
	}
}

// Seed loads sections into a domain without going through the staged
// mutation path. Options maps are initialized when nil.
func (m *MockStore) Seed(domain string, sections ...uci.Section) {
	for _, sec := range sections {
		s := sec
		if s.Options == nil {
			s.Options = make(map[string]uci.Value)
		}
		m.domains[domain] = append(m.domains[domain], &s)
	}
}

func (m *MockStore) Sections(_ context.Context, domain, sectionType string) ([]uci.Section, error) {
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}

	var out []uci.Section
	for _, sec := range m.domains[domain] {
		if sectionType == "" || sec.Type == sectionType {
			out = append(out, copySection(sec))
		}
	}
	return out, nil
}

func (m *MockStore) Section(_ context.Context, domain, name string) (*uci.Section, error) {
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}

	if sec := m.find(domain, name); sec != nil {
		c := copySection(sec)
		return &c, nil
	}
	return nil, nil
}

func (m *MockStore) Get(ctx context.Context, domain, section, option string) (uci.Value, error) {
	sec, err := m.Section(ctx, domain, section)
	if err != nil {
		return nil, err
	}
	return sec.Option(option), nil
}

func (m *MockStore) Set(_ context.Context, domain, section, option string, value uci.Value) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}

	sec := m.find(domain, section)
	if sec == nil {
		return fmt.Errorf("section %s.%s not found", domain, section)
	}
	sec.Options[option] = append(uci.Value{}, value...)
	return nil
}

func (m *MockStore) Add(_ context.Context, domain, sectionType string) (string, error) {
	if m.WriteErr != nil {
		return "", m.WriteErr
	}

	m.nextRef++
	ref := fmt.Sprintf("cfg%02d", m.nextRef)
	m.domains[domain] = append(m.domains[domain], &uci.Section{
		Name:      ref,
		Type:      sectionType,
		Anonymous: true,
		Options:   make(map[string]uci.Value),
	})
	return ref, nil
}

func (m *MockStore) AddNamed(_ context.Context, domain, name, sectionType string) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}

	if sec := m.find(domain, name); sec != nil {
		sec.Type = sectionType
		return nil
	}
	m.domains[domain] = append(m.domains[domain], &uci.Section{
		Name:    name,
		Type:    sectionType,
		Options: make(map[string]uci.Value),
	})
	return nil
}

func (m *MockStore) Remove(_ context.Context, domain, section string) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}

	sections := m.domains[domain]
	for i, sec := range sections {
		if sec.Name == section {
			m.domains[domain] = append(sections[:i], sections[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MockStore) Unset(_ context.Context, domain, section, option string) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}

	if sec := m.find(domain, section); sec != nil {
		delete(sec.Options, option)
	}
	return nil
}

func (m *MockStore) Save(_ context.Context, domain string) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.SaveCalls[domain]++
	return nil
}

func (m *MockStore) Apply(_ context.Context, timeoutSeconds int) error {
	if m.ApplyErr != nil {
		return m.ApplyErr
	}
	m.ApplyCalls++
	m.ApplyTimeouts = append(m.ApplyTimeouts, timeoutSeconds)
	return nil
}

func (m *MockStore) find(domain, name string) *uci.Section {
	for _, sec := range m.domains[domain] {
		if sec.Name == name {
			return sec
		}
	}
	return nil
}

func copySection(sec *uci.Section) uci.Section {
	c := uci.Section{
		Name:      sec.Name,
		Type:      sec.Type,
		Anonymous: sec.Anonymous,
		Options:   make(map[string]uci.Value, len(sec.Options)),
	}
	for k, v := range sec.Options {
		c.Options[k] = append(uci.Value{}, v...)
	}
	return c
}
