// Package session owns the single authenticated session of a matchday
// client.
//
// A Controller performs login, register, refresh and logout against an
// auth Endpoint and persists the result through a CredentialStore. A
// Monitor watches the current token and asks the Controller to refresh it
// one lead interval (a minute by default) before it expires. Decode
// failures and failed refreshes end the session; logout never fails.
//
// Consumers read the session with Controller.Current or follow changes
// with Controller.Subscribe.
package session
