package email

import "regexp"

var (
	emailRegex        = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	invalidCharsRegex = regexp.MustCompile(`[!#$%^&*(),?":{}|<>]`)
)

// Valid reports whether addr looks like a deliverable address. Punctuation
// that is legal in RFC 5322 local parts but never seen in practice is rejected.
func Valid(addr string) bool {
	if invalidCharsRegex.MatchString(addr) {
		return false
	}
	return emailRegex.MatchString(addr)
}
