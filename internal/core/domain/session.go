package domain

// Session is a point-in-time snapshot of the authenticated session.
//
// Loading is true only while the store initialises or a login attempt is in
// flight. Err carries the last login failure message, cleared at the start of
// each new attempt. Subscription is populated only after a successful fetch
// for a patient identity.
type Session struct {
	User         *User
	Loading      bool
	Err          string
	Subscription *Subscription
}

// Authenticated reports whether an identity is established.
func (s Session) Authenticated() bool {
	return s.User != nil
}

// PersistedSession is the durable session record: a bearer token plus the
// serialized identity, written together on login and removed together on
// logout.
type PersistedSession struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
