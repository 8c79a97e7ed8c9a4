package recommend

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kyso8575/GameBuddy/internal/domain"
)

// replyPattern is the fixed five-field shape the extraction prompt requests.
// A reply that does not match is a structural failure, not something to be
// patched over.
var replyPattern = regexp.MustCompile(
	`-\s*장르:\s*(\[.*?\]|.*)\n` +
		`\s*-\s*플랫폼:\s*(\[.*?\]|.*)\n` +
		`\s*-\s*출시일:\s*(.*)\n` +
		`\s*-\s*상점:\s*(\[.*?\]|.*)\n` +
		`\s*-\s*ESRB 등급:\s*(\[.*?\]|.*)`)

// extraction holds the raw five fields pulled out of the model reply.
type extraction struct {
	Genres      string
	Platforms   string
	Released    string
	Stores      string
	ESRBRatings string
}

// parseReply matches the reply against the five-field pattern. Returns
// ErrMalformedReply when the shape is off; the caller decides how to surface
// that (it is never silently retried).
func parseReply(reply string) (*extraction, error) {
	m := replyPattern.FindStringSubmatch(reply)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrMalformedReply, reply)
	}
	return &extraction{
		Genres:      strings.TrimSpace(m[1]),
		Platforms:   strings.TrimSpace(m[2]),
		Released:    strings.TrimSpace(m[3]),
		Stores:      strings.TrimSpace(m[4]),
		ESRBRatings: strings.TrimSpace(m[5]),
	}, nil
}

// isSentinel reports whether a field value means "nothing extracted".
func isSentinel(value string) bool {
	v := strings.TrimSpace(strings.Trim(strings.TrimSpace(value), `'"`))
	if v == "" || v == Sentinel || v == "[]" {
		return true
	}
	return strings.EqualFold(v, "unknown") || strings.EqualFold(v, "none")
}

// coerceList turns a textual field into a list of values. Sentinel values
// collapse to an empty list (no constraint). Bracketed comma lists are split;
// a bare value becomes a single-item list; anything unparseable also yields
// an empty list rather than an error.
func coerceList(value string) []string {
	if isSentinel(value) {
		return nil
	}
	v := strings.TrimSpace(value)
	if strings.HasPrefix(v, "[") {
		if !strings.HasSuffix(v, "]") {
			return nil
		}
		v = strings.TrimSuffix(strings.TrimPrefix(v, "["), "]")
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `'"`)
		if p == "" || isSentinel(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// criteria converts the raw extraction into filter criteria. The released
// field is carried through extraction for prompt fidelity but the catalog
// holds no release-date filter, so it does not constrain the query.
func (e *extraction) criteria() domain.FilterCriteria {
	return domain.FilterCriteria{
		Genres:      coerceList(e.Genres),
		Platforms:   coerceList(e.Platforms),
		Stores:      coerceList(e.Stores),
		ESRBRatings: coerceList(e.ESRBRatings),
	}
}
