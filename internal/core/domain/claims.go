package domain

import "time"

// Identity is who a token speaks for.
type Identity struct {
	SubjectID string
	Username  string
	Role      Role
}

// Claims is a decoded, verified token.
type Claims struct {
	Identity
	IssuedAt  time.Time
	ExpiresAt time.Time
}
