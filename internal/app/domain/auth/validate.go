package auth

import "regexp"

// emailPattern is the shared login/sign-up format rule: a local part, an @,
// a domain with at least one dot and a trailing character.
var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// ValidEmail reports whether the username satisfies the email format rule.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
