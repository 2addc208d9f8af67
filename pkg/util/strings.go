package util

import "strings"

// OptionSeparator joins symbol and description in selectable options.
const OptionSeparator = " - "

// TruncateRunes returns at most n runes of s.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// NormalizeSymbol trims and upper-cases a ticker or query.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// FormatOption renders "SYMBOL - Description".
func FormatOption(symbol, description string) string {
	return symbol + OptionSeparator + description
}

// ParseOption extracts the symbol from an option string. A bare symbol is returned as is.
func ParseOption(option string) string {
	sym, _, _ := strings.Cut(option, OptionSeparator)
	return NormalizeSymbol(sym)
}
