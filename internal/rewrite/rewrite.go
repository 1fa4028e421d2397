// Package rewrite provides the pluggable identifier rewriters applied to
// every name the model derives by convention (table, column, key, constraint
// and index names). A rewriter must always be fed an unrewritten default;
// callers are responsible for recomputing the default before rewriting.
package rewrite

import (
	"fmt"
	"strings"
	"unicode"
)

// Rewriter transforms a raw identifier into its conventional database form.
// Implementations must be pure: deterministic, stateless, no side effects.
type Rewriter interface {
	Rewrite(name string) string
}

// Func adapts a plain function to the Rewriter interface.
type Func func(string) string

// Rewrite implements Rewriter.
func (f Func) Rewrite(name string) string { return f(name) }

// Convention names accepted by ForConvention and the naming config.
const (
	ConventionNone       = "none"
	ConventionSnakeCase  = "snake_case"
	ConventionLowerCase  = "lower_case"
	ConventionUpperSnake = "upper_snake_case"
	ConventionCamelCase  = "camel_case"
)

// ForConvention returns the rewriter registered under the given convention
// name, or an error listing the valid choices.
func ForConvention(name string) (Rewriter, error) {
	switch name {
	case ConventionNone, "":
		return Func(func(s string) string { return s }), nil
	case ConventionSnakeCase:
		return Func(SnakeCase), nil
	case ConventionLowerCase:
		return Func(LowerCase), nil
	case ConventionUpperSnake:
		return Func(UpperSnakeCase), nil
	case ConventionCamelCase:
		return Func(CamelCase), nil
	default:
		return nil, fmt.Errorf("unknown naming convention %q (valid: %s, %s, %s, %s, %s)",
			name, ConventionNone, ConventionSnakeCase, ConventionLowerCase, ConventionUpperSnake, ConventionCamelCase)
	}
}

// SnakeCase converts a CamelCase identifier to snake_case.
// Consecutive uppercase letters (acronyms) are kept together:
// "ID" → "id", "UserID" → "user_id", "FK_Blog_Post" → "fk_blog_post".
func SnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				next := rune(0)
				if i+1 < len(runes) {
					next = runes[i+1]
				}
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && unicode.IsLower(next)) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// UpperSnakeCase converts a CamelCase identifier to UPPER_SNAKE_CASE.
func UpperSnakeCase(s string) string {
	return strings.ToUpper(SnakeCase(s))
}

// LowerCase lowercases the identifier without inserting separators.
func LowerCase(s string) string {
	return strings.ToLower(s)
}

// CamelCase converts an identifier to lowerCamelCase. Underscore-separated
// segments are joined ("user_name" → "userName") and a leading acronym is
// lowered as a unit ("HTTPServer" → "httpServer", "ID" → "id").
func CamelCase(s string) string {
	parts := strings.Split(s, "_")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		if len(out) == 0 {
			out = append(out, lowerLeadingAcronym(part))
			continue
		}
		out = append(out, strings.ToUpper(part[:1])+part[1:])
	}
	return strings.Join(out, "")
}

func lowerLeadingAcronym(s string) string {
	runes := []rune(s)
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	switch {
	case n == 0:
		return s
	case n == len(runes):
		return strings.ToLower(s)
	case n == 1:
		return string(unicode.ToLower(runes[0])) + string(runes[1:])
	default:
		// "HTTPServer": lower the acronym but leave the rune starting the
		// next word untouched.
		return strings.ToLower(string(runes[:n-1])) + string(runes[n-1:])
	}
}
