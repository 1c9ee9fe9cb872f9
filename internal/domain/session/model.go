package session

import "time"

// Session maps an opaque token to a logged-in admin. The server holds these
// in process; a restart discards them all and forces re-login.
type Session struct {
	Token    string    `json:"token"`
	Username string    `json:"username"`
	Expiry   time.Time `json:"expiry"`
}

// Expired reports whether the session has passed its expiry.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.Expiry)
}
