package sanitization

import "regexp"

type (
	// Sanitizer rewrites a string with an ordered list of rules and truncates the result
	// to MaxLength (when positive).
	Sanitizer struct {
		rules     []Rule
		MaxLength int
	}

	Rule struct {
		Pattern     *regexp.Regexp
		Replacement string
	}
)

func (s *Sanitizer) Apply(input string) string {
	output := input
	for _, rule := range s.rules {
		output = rule.Pattern.ReplaceAllString(output, rule.Replacement)
	}
	if s.MaxLength > 0 && len(output) > s.MaxLength {
		output = output[:s.MaxLength]
	}
	return output
}

// IsValid reports whether input is already sanitized.
func (s *Sanitizer) IsValid(input string) bool {
	return s.Apply(input) == input
}

func NewSanitizer(rules []Rule, maxLength int) *Sanitizer {
	return &Sanitizer{rules: rules, MaxLength: maxLength}
}
