package connection

import (
	"strings"
)

// httpSeparators are excluded from subprotocol tokens (RFC 2616 section 2.2)
const httpSeparators = "()<>@,;:\\\"/[]?={} \t"

// ValidateProtocol returns the distinct characters of name that are not
// allowed in a subprotocol token, in order of appearance. A valid name
// yields nil.
func ValidateProtocol(name string) []rune {
	var invalid []rune
	seen := make(map[rune]bool)
	for _, r := range name {
		if isProtocolChar(r) || seen[r] {
			continue
		}
		seen[r] = true
		invalid = append(invalid, r)
	}
	return invalid
}

func isProtocolChar(r rune) bool {
	return r >= 0x21 && r <= 0x7e && !strings.ContainsRune(httpSeparators, r)
}

// Rejected is a protocol candidate that failed validation
type Rejected struct {
	Candidate string
	Invalid   []rune
}

// SplitProtocols splits a comma separated candidate list into valid names and
// rejected candidates, both in input order
func SplitProtocols(list string) (valid []string, rejected []Rejected) {
	if list == "" {
		return nil, nil
	}
	for _, candidate := range strings.Split(list, ",") {
		invalid := ValidateProtocol(candidate)
		if candidate != "" && len(invalid) == 0 {
			valid = append(valid, candidate)
			continue
		}
		rejected = append(rejected, Rejected{Candidate: candidate, Invalid: invalid})
	}
	return valid, rejected
}
