package models

// SessionUser is the authenticated identity carried by the signed session
// cookie. The client never sees these values in plaintext form it can forge.
type SessionUser struct {
	UserID   int64
	Username string
}

// Flash is a one-shot notification: set by one request, read and cleared by
// the next request that looks at it.
type Flash struct {
	Message  string
	Category string
}
