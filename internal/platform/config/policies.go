package config

import "strings"

// LoadPolicies seeds a Store from a flat text blob of key=value entries
// separated by semicolons or newlines, e.g.
//
//	galette_cli.authorize=uptodate;galette_cli.scopes=member:due_date
//
// Blank entries and entries without an equals sign are skipped. List values
// use commas or spaces as separators since semicolons delimit entries. This
// keeps per-client policy configurable through a single environment variable.
func LoadPolicies(s Store, raw string) {
	entries := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ';' || r == '\n'
	})
	for _, entry := range entries {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" {
			continue
		}
		s.Set(key, value)
	}
}
