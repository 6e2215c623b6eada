// Package services contains the application services of the flixcli
// client: authentication, the favorites reconciler, the profile editor,
// and the read-only movie catalog. Services talk to the server through
// gateway.Gateway and to local state through SessionStore; they are the
// only components that decide what a gateway outcome means for the
// session.
package services
