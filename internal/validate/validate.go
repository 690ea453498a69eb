package validate

import "regexp"

var (
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitRe  = regexp.MustCompile(`[0-9]`)
	letterRe = regexp.MustCompile(`[A-Za-z]`)
)

// Email checks the local@domain.tld shape. Anything fancier is the mail
// provider's problem.
func Email(s string) bool {
	return emailRe.MatchString(s)
}

// Password requires at least 6 digit characters and at least 3 letters,
// in any order, with no length cap.
func Password(s string) bool {
	digits := len(digitRe.FindAllString(s, -1))
	letters := len(letterRe.FindAllString(s, -1))

	return digits >= 6 && letters >= 3
}
