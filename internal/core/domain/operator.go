package domain

import "time"

// Operator is a staff account able to log in. Accounts of every role are
// stored here, including seeded super admins and provisioned shop owners.
type Operator struct {
	ID           string    `json:"id"`
	OperatorName string    `json:"operator_name"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	JoinDate     time.Time `json:"join_date"`
}

// Identity returns the claim subject for o.
func (o *Operator) Identity() Identity {
	return Identity{SubjectID: o.ID, Username: o.Username, Role: o.Role}
}
