package authentication

import "log"

// sendResetMail hands the recovery token to the mail delivery path.
// TODO: wire a transactional mail provider; until then recovery tokens
// only show up in the server log.
func sendResetMail(email, token string) {
	log.Printf("password reset requested for %s, token: %s", email, token)
}
