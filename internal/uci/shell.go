package uci

import (
	"context"
	"fmt"
	"strings"

	"github.com/hostcfg/podnet/internal/errors"
	"github.com/hostcfg/podnet/internal/log"
	"github.com/hostcfg/podnet/internal/sysexec"
)

// ShellStore drives the host configuration through the uci and ubus
// command line tools.
type ShellStore struct {
	exec sysexec.Runner
}

func NewShellStore(exec sysexec.Runner) *ShellStore {
	return &ShellStore{exec: exec}
}

func (s *ShellStore) Sections(ctx context.Context, domain, sectionType string) ([]Section, error) {
	sections, err := s.showDomain(ctx, domain)
	if err != nil {
		return nil, err
	}
	if sectionType == "" {
		return sections, nil
	}

	var filtered []Section
	for _, sec := range sections {
		if sec.Type == sectionType {
			filtered = append(filtered, sec)
		}
	}
	return filtered, nil
}

func (s *ShellStore) Section(ctx context.Context, domain, name string) (*Section, error) {
	sections, err := s.showDomain(ctx, domain)
	if err != nil {
		return nil, err
	}
	for i := range sections {
		if sections[i].Name == name {
			return &sections[i], nil
		}
	}
	return nil, nil
}

func (s *ShellStore) Get(ctx context.Context, domain, section, option string) (Value, error) {
	sec, err := s.Section(ctx, domain, section)
	if err != nil {
		return nil, err
	}
	return sec.Option(option), nil
}

func (s *ShellStore) Set(ctx context.Context, domain, section, option string, value Value) error {
	path := fmt.Sprintf("%s.%s.%s", domain, section, option)

	if len(value) == 1 {
		if _, err := s.exec.Run(ctx, "uci", "set", path+"="+value[0]); err != nil {
			return errors.NewStoreError(fmt.Sprintf("failed to set %s", path), err)
		}
		return nil
	}

	// Lists are rewritten whole: drop the old value, then append each element.
	if err := s.deleteQuiet(ctx, path); err != nil {
		return err
	}
	for _, elem := range value {
		if _, err := s.exec.Run(ctx, "uci", "add_list", path+"="+elem); err != nil {
			return errors.NewStoreError(fmt.Sprintf("failed to append to %s", path), err)
		}
	}
	return nil
}

func (s *ShellStore) Add(ctx context.Context, domain, sectionType string) (string, error) {
	output, err := s.exec.Run(ctx, "uci", "add", domain, sectionType)
	if err != nil {
		return "", errors.NewStoreError(fmt.Sprintf("failed to add %s section to %s", sectionType, domain), err)
	}
	ref := strings.TrimSpace(output)
	if ref == "" {
		return "", errors.NewStoreError(fmt.Sprintf("store returned no reference for new %s section", sectionType), nil)
	}
	return ref, nil
}

func (s *ShellStore) AddNamed(ctx context.Context, domain, name, sectionType string) error {
	path := fmt.Sprintf("%s.%s", domain, name)
	if _, err := s.exec.Run(ctx, "uci", "set", path+"="+sectionType); err != nil {
		return errors.NewStoreError(fmt.Sprintf("failed to create section %s", path), err)
	}
	return nil
}

func (s *ShellStore) Remove(ctx context.Context, domain, section string) error {
	return s.deleteQuiet(ctx, fmt.Sprintf("%s.%s", domain, section))
}

func (s *ShellStore) Unset(ctx context.Context, domain, section, option string) error {
	return s.deleteQuiet(ctx, fmt.Sprintf("%s.%s.%s", domain, section, option))
}

func (s *ShellStore) Save(ctx context.Context, domain string) error {
	if _, err := s.exec.Run(ctx, "uci", "commit", domain); err != nil {
		return errors.NewStoreError(fmt.Sprintf("failed to commit %s", domain), err)
	}
	return nil
}

func (s *ShellStore) Apply(ctx context.Context, timeoutSeconds int) error {
	params := fmt.Sprintf(`{"rollback": true, "timeout": %d}`, timeoutSeconds)
	if _, err := s.exec.Run(ctx, "ubus", "call", "uci", "apply", params); err != nil {
		return errors.NewStoreError("failed to apply configuration", err)
	}

	// The rollback timer keeps running until the change is confirmed.
	if _, err := s.exec.Run(ctx, "ubus", "call", "uci", "confirm"); err != nil {
		return errors.NewStoreError("failed to confirm applied configuration", err)
	}

	log.Debugf("Configuration applied and confirmed (rollback window was %ds)", timeoutSeconds)
	return nil
}

// deleteQuiet stages a delete, treating a missing target as success.
func (s *ShellStore) deleteQuiet(ctx context.Context, path string) error {
	output, err := s.exec.Run(ctx, "uci", "-q", "delete", path)
	if err != nil && !strings.Contains(output, "not found") {
		// uci -q exits non-zero without output for missing entries.
		if strings.TrimSpace(output) == "" {
			return nil
		}
		return errors.NewStoreError(fmt.Sprintf("failed to delete %s", path), err)
	}
	return nil
}

// showDomain parses `uci show <domain>` output into sections, preserving
// declaration order. Anonymous sections are addressed as @type[index].
func (s *ShellStore) showDomain(ctx context.Context, domain string) ([]Section, error) {
	output, err := s.exec.Run(ctx, "uci", "-q", "show", domain)
	if err != nil {
		if strings.TrimSpace(output) == "" {
			// Missing domain reads as empty.
			return nil, nil
		}
		return nil, errors.NewStoreError(fmt.Sprintf("failed to read %s configuration", domain), err)
	}

	return parseShow(domain, output)
}

func parseShow(domain, output string) ([]Section, error) {
	var sections []Section
	index := make(map[string]int)

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		eq := strings.Index(line, "=")
		if eq < 0 {
			return nil, errors.NewStoreError(fmt.Sprintf("malformed line in %s configuration: %s", domain, line), nil)
		}
		key, raw := line[:eq], line[eq+1:]

		parts := strings.SplitN(key, ".", 3)
		if len(parts) < 2 || parts[0] != domain {
			continue
		}
		sectionName := parts[1]

		if len(parts) == 2 {
			// Section declaration: <domain>.<section>=<type>
			index[sectionName] = len(sections)
			sections = append(sections, Section{
				Name:      sectionName,
				Type:      raw,
				Anonymous: strings.HasPrefix(sectionName, "@"),
				Options:   make(map[string]Value),
			})
			continue
		}

		i, ok := index[sectionName]
		if !ok {
			return nil, errors.NewStoreError(fmt.Sprintf("option before section declaration: %s", line), nil)
		}
		sections[i].Options[parts[2]] = parseShowValue(raw)
	}

	return sections, nil
}

// parseShowValue splits a quoted option value into its elements. Scalars
// are a single quoted string, lists are quoted strings separated by
// spaces. Embedded single quotes arrive backslash-escaped between
// quoted runs.
func parseShowValue(raw string) Value {
	var (
		value   Value
		current strings.Builder
		quoted  bool
		started bool
	)

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '\'':
			quoted = !quoted
			started = true
		case c == '\\' && !quoted && i+1 < len(raw) && raw[i+1] == '\'':
			current.WriteByte('\'')
			i++
		case c == ' ' && !quoted:
			if started {
				value = append(value, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteByte(c)
			started = true
		}
	}
	if started {
		value = append(value, current.String())
	}
	return value
}
