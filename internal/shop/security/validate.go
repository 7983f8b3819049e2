package security

import "regexp"

// Kind names a validation pattern.
type Kind string

const (
	TextSafe Kind = "TEXT_SAFE"
	Email    Kind = "EMAIL"
	Phone    Kind = "PHONE"
	Zip      Kind = "ZIP"
	Card     Kind = "CARD"
	CVC      Kind = "CVC"
	Expiry   Kind = "EXPIRY"
	// Search restricts the search box to plain words and light punctuation.
	Search Kind = "SEARCH"
)

var patterns = map[Kind]*regexp.Regexp{
	// Alphanumerics, whitespace and common punctuation; no angle brackets.
	TextSafe: regexp.MustCompile(`^[a-zA-Z0-9\s.,!?@#%&()_\-+'"/]*$`),
	Email:    regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`),
	Phone:    regexp.MustCompile(`^[+]?[(]?[0-9]{3}[)]?[-\s.]?[0-9]{3}[-\s.]?[0-9]{4,6}$`),
	Zip:      regexp.MustCompile(`^[a-zA-Z0-9\s-]{3,10}$`),
	// Length check only, 13-19 digits with optional spaces.
	Card:   regexp.MustCompile(`^[0-9\s]{13,19}$`),
	CVC:    regexp.MustCompile(`^[0-9]{3,4}$`),
	Expiry: regexp.MustCompile(`^(0[1-9]|1[0-2])/?([0-9]{2}|[0-9]{4})$`),
	Search: regexp.MustCompile(`^[a-zA-Z0-9\s\-_.,']*$`),
}

// Validate reports whether value matches the pattern for kind. Empty values
// and unknown kinds never validate.
func Validate(value string, kind Kind) bool {
	if value == "" {
		return false
	}
	re, ok := patterns[kind]
	if !ok {
		return false
	}
	return re.MatchString(value)
}
