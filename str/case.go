package str

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ToScreamingSnakeCase transforms a given string into screaming snake case format.
//
// Word boundaries are lower-to-upper transitions, the end of an acronym ("DBName" -> "DB_NAME"),
// digits, and the '_' or '-' separators.
func ToScreamingSnakeCase(in string) string {
	runes := []rune(strings.TrimSpace(in))
	if len(runes) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(runes) + len(runes)/3)

	pendingSeparator := false
	for i, r := range runes {
		if r == '_' || r == '-' {
			pendingSeparator = sb.Len() > 0
			continue
		}

		if i > 0 && !pendingSeparator {
			prev := runes[i-1]
			switch {
			case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
				pendingSeparator = true
			case unicode.IsUpper(r) && unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				pendingSeparator = true
			case unicode.IsDigit(r) && !unicode.IsDigit(prev):
				pendingSeparator = true
			}
		}

		if pendingSeparator {
			sb.WriteByte('_')
			pendingSeparator = false
		}
		sb.WriteRune(unicode.ToUpper(r))
	}

	return sb.String()
}

// UpperFirst returns the string with its first character upper-cased, the rest is left untouched.
func UpperFirst(in string) string {
	r, size := utf8.DecodeRuneInString(in)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return in
	}
	return string(unicode.ToUpper(r)) + in[size:]
}
