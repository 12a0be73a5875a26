package strcase

import (
	"strings"
	"unicode"
)

// ToPascalCase upper-cases the first letter of every word. Words are split on
// underscores, hyphens, dots and spaces; existing inner capitals are kept so
// "getUser" and "get_user" both become "GetUser".
func ToPascalCase(s string) string {
	if s == "" {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	upperNext := true
	for _, r := range s {
		if isSeparator(r) {
			upperNext = true
			continue
		}
		if upperNext {
			r = unicode.ToUpper(r)
			upperNext = false
		}
		b.WriteRune(r)
	}

	return b.String()
}

func ToSnakeCase(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	var result []rune

	for i, r := range runes {
		if isSeparator(r) {
			if len(result) > 0 && result[len(result)-1] != '_' {
				result = append(result, '_')
			}
			continue
		}

		if unicode.IsUpper(r) {
			if i > 0 && len(result) > 0 && result[len(result)-1] != '_' {
				prev := runes[i-1]
				nextLower := false
				if i < len(runes)-1 {
					nextLower = unicode.IsLower(runes[i+1])
				}

				if unicode.IsLower(prev) || unicode.IsDigit(prev) || nextLower {
					result = append(result, '_')
				}
			}
			r = unicode.ToLower(r)
		}

		result = append(result, r)
	}

	return strings.TrimSuffix(string(result), "_")
}

// ToUpperSnakeCase is ToSnakeCase in capitals, as used for enum values.
func ToUpperSnakeCase(s string) string {
	return strings.ToUpper(ToSnakeCase(s))
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
}
