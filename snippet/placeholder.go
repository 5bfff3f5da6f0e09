package snippet

import "strings"

// Placeholders lists the literal API key placeholders recognized in
// documentation samples, in match priority order.
var Placeholders = []string{
	"YOUR_API_KEY",
	"<<apiKey>>",
	"YOUR_TOKEN",
	"<YOUR API KEY>",
	"<apiKey>",
}

// Substitute replaces the first occurrence of the first placeholder found in
// code with secret. Later placeholders are not checked once one matches.
// The boolean reports whether a replacement was made.
func Substitute(code, secret string) (string, bool) {
	for _, p := range Placeholders {
		if strings.Contains(code, p) {
			return strings.Replace(code, p, secret, 1), true
		}
	}
	return code, false
}
