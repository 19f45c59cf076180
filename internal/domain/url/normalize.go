// Package url turns address-bar input into loadable URIs.
package url

import "strings"

var knownSchemes = []string{"http://", "https://", "file://", "about:", "data:"}

// HasScheme reports whether input starts with a scheme panes can load.
func HasScheme(input string) bool {
	for _, scheme := range knownSchemes {
		if strings.HasPrefix(input, scheme) {
			return true
		}
	}
	return false
}

// Normalize adds https:// prefix if missing for URL-like inputs.
// Returns the input unchanged if it already has a scheme or doesn't look like a URL.
func Normalize(input string) string {
	input = strings.TrimSpace(input)
	if input == "" || HasScheme(input) {
		return input
	}
	if looksLikeHost(input) {
		if isLocalHost(input) {
			return "http://" + input
		}
		return "https://" + input
	}
	return input
}

// LooksLikeURL checks if the input appears to be a URL (not a search query).
func LooksLikeURL(input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return false
	}
	return HasScheme(input) || looksLikeHost(input)
}

func looksLikeHost(input string) bool {
	if strings.ContainsAny(input, " \t") {
		return false
	}
	host := input
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	return strings.Contains(host, ".") || isLocalHost(input)
}

func isLocalHost(input string) bool {
	return input == "localhost" || strings.HasPrefix(input, "localhost:") || strings.HasPrefix(input, "localhost/")
}
