package id

import (
	"strings"

	"github.com/google/uuid"
)

// Length is the number of characters in a generated identifier.
const Length = 13

// New returns a random identifier like "3f9a1c07be24d".
func New() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:Length]
}

// Set builds a membership set from a list of identifiers.
func Set(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, v := range ids {
		set[v] = struct{}{}
	}
	return set
}

// Unique returns ids without duplicates or blanks, keeping the first occurrence order.
func Unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	var out []string
	for _, v := range ids {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
