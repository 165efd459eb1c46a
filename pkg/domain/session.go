package domain

import "strings"

// bearerPrefix is the Authorization scheme the backend issues tokens under.
const bearerPrefix = "Bearer "

// Session is the client-held record of the logged in user and its bearer token.
// An empty Token means unauthenticated; no other states are modeled.
type Session struct {
	ID    int64  `json:"id"`
	Name  string `json:"nome"`
	Email string `json:"usuario"`
	Photo string `json:"foto,omitempty"`
	Token string `json:"token"`
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// AuthHeader returns the Authorization header value for the token.
// Tokens already carrying the Bearer scheme are used verbatim.
func (s Session) AuthHeader() string {
	if strings.HasPrefix(s.Token, bearerPrefix) {
		return s.Token
	}
	return bearerPrefix + s.Token
}

// User returns the identity fields of the session as a User record.
func (s Session) User() User {
	return User{ID: s.ID, Name: s.Name, Email: s.Email, Photo: s.Photo}
}
