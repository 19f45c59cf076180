package url

import (
	"net/url"
	"strings"
)

// DefaultSearch is the search template used when none is configured.
const DefaultSearch = "https://duckduckgo.com/?q=%s"

// ParseBangShortcut splits "!key query" into its parts.
// The shortcut must be followed by a space and a non-empty query.
func ParseBangShortcut(input string) (shortcut, query string, found bool) {
	if !strings.HasPrefix(input, "!") {
		return "", "", false
	}
	spaceIdx := strings.Index(input, " ")
	if spaceIdx == -1 || spaceIdx == 1 {
		return "", "", false
	}
	shortcut = input[1:spaceIdx]
	query = strings.TrimSpace(input[spaceIdx+1:])
	if query == "" {
		return "", "", false
	}
	return shortcut, query, true
}

// Resolve turns address-bar input into a URI: a known bang shortcut expands
// its template, URL-like input is normalized, anything else becomes a search
// with defaultSearch. Queries are escaped before substitution.
func Resolve(input string, shortcuts map[string]string, defaultSearch string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	if key, query, found := ParseBangShortcut(input); found {
		if template, ok := shortcuts[key]; ok {
			return expand(template, query)
		}
	}

	if LooksLikeURL(input) {
		return Normalize(input)
	}

	if defaultSearch == "" {
		defaultSearch = DefaultSearch
	}
	return expand(defaultSearch, input)
}

func expand(template, query string) string {
	return strings.Replace(template, "%s", url.QueryEscape(query), 1)
}
