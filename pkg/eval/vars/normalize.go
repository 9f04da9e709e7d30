package vars

import "strings"

// Significant is the number of significant characters in a variable name.
const Significant = 2

// Normalize maps a source identifier to its storage key: it is uppercased,
// truncated to Significant characters, and keeps its "$" or "%" suffix. Names
// beginning with "FN" are function names and keep "FN" plus Significant
// characters.
//
// Distinct names may normalize to the same key; COUNT and COUNTER share the
// cell CO.
func Normalize(name string) string {
	name = strings.ToUpper(name)
	suffix := ""
	if n := len(name); n > 0 && (name[n-1] == '$' || name[n-1] == '%') {
		name, suffix = name[:n-1], name[n-1:]
	}
	keep := Significant
	if strings.HasPrefix(name, "FN") {
		keep += 2
	}
	if len(name) > keep {
		name = name[:keep]
	}
	return name + suffix
}

// IsString reports whether the key names a string variable.
func IsString(key string) bool { return strings.HasSuffix(key, "$") }

// IsInt reports whether the key names an integer variable.
func IsInt(key string) bool { return strings.HasSuffix(key, "%") }
