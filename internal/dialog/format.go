// internal/dialog/format.go
package dialog

import (
	"strings"
	"unicode"
)

// JoinNatural joins a list the way you would say it out loud: "A, B and C".
func JoinNatural(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}

// Capitalize upper-cases the first rune and lower-cases the rest, for
// display-formatting names stored lower-case.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
