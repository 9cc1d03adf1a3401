package models

import "time"

type UserType string

const (
	UserTypeMember UserType = "MEMBER"
	UserTypeAdmin  UserType = "ADMIN"
)

// User is the directory record for a society member. Accounts are provisioned
// out-of-band; signing in never creates one.
type User struct {
	ID         string
	Email      string
	FirstName  string
	MiddleName string
	LastName   string
	IDNumber   int
	Course     string
	Contact    string
	Terms      int
	URL        string
	UserType   UserType
	Membership bool
	Reset      bool
	ScheduleID *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Status derives the roster status shown in the admin console: a pending
// renewal overrides the membership flag.
func (u User) Status() string {
	if u.Reset {
		return "Pending"
	}
	if u.Membership {
		return "Active"
	}
	return "Inactive"
}

// SessionUser is the per-request identity projected from the session token.
// It carries only what was copied onto the token at sign-in.
type SessionUser struct {
	ID         string
	Email      string
	UserType   UserType
	ScheduleID *string
}

func (s SessionUser) IsAdmin() bool {
	return s.UserType == UserTypeAdmin
}
