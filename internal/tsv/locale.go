package tsv

import (
	"os"
	"strings"
)

// PreferredEncoding returns the character set of the current locale, taken
// from the first non-empty of LC_ALL, LC_CTYPE and LANG ("ru_RU.CP1251"
// yields "CP1251"). Locales without a charset, "C", "POSIX" and charsets
// LookupEncoding does not know fall back to UTF-8.
func PreferredEncoding() string {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		value := os.Getenv(key)
		if value == "" {
			continue
		}
		charset := charsetOf(value)
		if _, err := LookupEncoding(charset); err != nil {
			return "UTF-8"
		}
		return charset
	}
	return "UTF-8"
}

func charsetOf(locale string) string {
	// Strip any @modifier, e.g. "de_DE.ISO-8859-15@euro".
	if i := strings.IndexByte(locale, '@'); i >= 0 {
		locale = locale[:i]
	}
	i := strings.IndexByte(locale, '.')
	if i < 0 || i == len(locale)-1 {
		return "UTF-8"
	}
	return locale[i+1:]
}
