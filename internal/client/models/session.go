package models

// Session pairs the last-known user record with the bearer credential
// obtained at login. The two are established and cleared together;
// a Session with only one of them is never observable.
type Session struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
