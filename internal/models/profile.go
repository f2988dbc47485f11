package models

import "time"

// Profile identifies a registered user (operator or supervisor).
type Profile struct {
	ID         string `gorm:"primaryKey;size:36"`
	FullName   string `gorm:"not null"`
	EmployeeID string `gorm:"size:32;uniqueIndex"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Application roles. Role checks happen outside this system; roles are only
// used to select which profiles count as operators in aggregate views.
const (
	RoleCraneOperator   = "crane_operator"
	RoleSupervisor      = "supervisor"
	RoleHigherAuthority = "higher_authority"
)

// UserRole links a profile to an application role.
type UserRole struct {
	ID     uint   `gorm:"primaryKey;autoIncrement"`
	UserID string `gorm:"size:36;index"`
	Role   string `gorm:"size:32;index"`
}
