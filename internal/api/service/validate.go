package service

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aussiebroadwan/lexdesk/internal/api/store"
	"github.com/aussiebroadwan/lexdesk/pkg/idx"
)

const maxEmailLen = 254

// checkLen bounds v by rune count.
func checkLen(field, v string, min, max int) error {
	n := utf8.RuneCountInString(v)
	if n < min {
		if min == 1 {
			return invalid(field, "required")
		}
		return invalid(field, fmt.Sprintf("must be at least %d characters", min))
	}
	if n > max {
		return invalid(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return nil
}

// checkOptionalLen allows v to be empty, otherwise bounds it like checkLen.
func checkOptionalLen(field, v string, min, max int) error {
	if v == "" {
		return nil
	}
	return checkLen(field, v, min, max)
}

// checkEmail accepts a bare address (no display name) of at most 254 bytes.
func checkEmail(field, v string) error {
	if v == "" {
		return invalid(field, "required")
	}
	if len(v) > maxEmailLen {
		return invalid(field, fmt.Sprintf("must be at most %d characters", maxEmailLen))
	}
	addr, err := mail.ParseAddress(v)
	if err != nil || addr.Address != v || addr.Name != "" {
		return invalid(field, "invalid email")
	}
	return nil
}

// digitsOnly strips everything that is not an ASCII digit.
func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// orDefault returns def when v is blank.
func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// clean trims surrounding space and drops control characters other than
// newlines and tabs.
func clean(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || !unicode.IsControl(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(s))
}

// parseID rejects empty ids and reports malformed ones as missing. Valid
// ids come back in canonical form.
func parseID(raw string) (string, error) {
	if raw == "" {
		return "", invalid("id", "required")
	}
	id, err := idx.Parse(raw)
	if err != nil {
		return "", store.ErrNotFound
	}
	return id.String(), nil
}

// cleanList trims every entry, drops blanks and bounds the result.
func cleanList(field string, v []string, maxItems, maxLen int) ([]string, error) {
	out := make([]string, 0, len(v))
	for _, s := range v {
		if s = clean(s); s == "" {
			continue
		}
		if utf8.RuneCountInString(s) > maxLen {
			return nil, invalid(field, fmt.Sprintf("entries must be at most %d characters", maxLen))
		}
		out = append(out, s)
	}
	if len(out) > maxItems {
		return nil, invalid(field, fmt.Sprintf("must have at most %d entries", maxItems))
	}
	return out, nil
}
