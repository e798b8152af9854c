package domain

import "time"

// IssuedToken is a signed session token and when it stops being accepted.
type IssuedToken struct {
	Token     string
	JTI       string
	ExpiresAt time.Time
}

// RevokedToken records a jti that must no longer be accepted, either
// because it was logged out or traded in on refresh. Rows can be dropped
// once ExpiresAt has passed, since the token would be refused anyway.
type RevokedToken struct {
	JTI       string
	UserID    string
	Reason    string
	ExpiresAt time.Time
	RevokedAt time.Time
}

const (
	RevokeReasonLogout  = "logout"
	RevokeReasonRefresh = "refresh"
)
