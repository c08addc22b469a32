package domain

import "strings"

// Role represents the account type of a user
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTeacher Role = "TEACHER"
	RoleAdmin   Role = "ADMIN"
)

// User represents a registered account
type User struct {
	BaseModel
	FirstName    string `gorm:"type:varchar(30);not null" json:"firstName"`
	LastName     string `gorm:"type:varchar(30);not null" json:"lastName"`
	Email        string `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(128);not null" json:"-"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'STUDENT';index:idx_users_role" json:"role"`
	IsActive     bool   `gorm:"not null;default:true" json:"isActive"`

	CreatedEvents  []Event         `gorm:"foreignKey:UserID" json:"createdEvents,omitempty"`
	Participations []Participation `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"participations,omitempty"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

func (u *User) IsStudent() bool { return u.Role == RoleStudent }
func (u *User) IsTeacher() bool { return u.Role == RoleTeacher }
func (u *User) IsAdmin() bool   { return u.Role == RoleAdmin }

// FullName returns the display name used on certificates
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Initials returns the uppercased first letters of the user's names,
// used in certificate identifiers.
func (u *User) Initials() string {
	var b strings.Builder
	for _, name := range []string{u.FirstName, u.LastName} {
		for _, r := range name {
			b.WriteString(strings.ToUpper(string(r)))
			break
		}
	}
	return b.String()
}
