package entity

import (
	"time"
)

type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

func (r Role) level() int {
	switch r {
	case RoleSuperAdmin:
		return 3
	case RoleAdmin:
		return 2
	case RoleUser:
		return 1
	}
	return 0
}

// IsModerator reports whether the role may run moderation actions at all.
func (r Role) IsModerator() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Outranks reports whether r may act on content owned by other. An admin
// never outranks a super_admin, so super_admin-authored content is off
// limits to admins.
func (r Role) Outranks(other Role) bool {
	return r.level() >= other.level()
}

type AccountStatus string

const (
	AccountPending   AccountStatus = "pending"
	AccountApproved  AccountStatus = "approved"
	AccountRejected  AccountStatus = "rejected"
	AccountSuspended AccountStatus = "suspended"
)

// Account is a registered identity. Only approved accounts may hold a
// session; a pending account may carry a one-time code while it proves
// control of its email channel.
type Account struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone,omitempty"`
	Username     string     `json:"username,omitempty"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Status       AccountStatus `json:"status"`
	AvatarURL    string     `json:"avatar_url,omitempty"`
	VerifyCode   string     `json:"-"`
	VerifyCodeExpiry *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (a *Account) CanAuthenticate() bool {
	return a.Status == AccountApproved
}

// Approve moves the account to approved and clears any outstanding one-time
// code. It reports false when the account was already approved; callers
// treat that as a benign no-op, not an error.
func (a *Account) Approve() bool {
	if a.Status == AccountApproved {
		return false
	}
	a.Status = AccountApproved
	a.ClearVerifyCode()
	return true
}

func (a *Account) Reject() bool {
	if a.Status == AccountRejected {
		return false
	}
	a.Status = AccountRejected
	return true
}

func (a *Account) Suspend() bool {
	if a.Status == AccountSuspended {
		return false
	}
	a.Status = AccountSuspended
	return true
}

// SetVerifyCode arms a one-time code valid until expiry.
func (a *Account) SetVerifyCode(code string, expiry time.Time) {
	a.VerifyCode = code
	a.VerifyCodeExpiry = &expiry
}

func (a *Account) ClearVerifyCode() {
	a.VerifyCode = ""
	a.VerifyCodeExpiry = nil
}

// VerifyCodeMatches checks a submitted code against the stored one. An
// expired or absent code never matches.
func (a *Account) VerifyCodeMatches(code string, now time.Time) bool {
	if a.VerifyCode == "" || a.VerifyCodeExpiry == nil {
		return false
	}
	if now.After(*a.VerifyCodeExpiry) {
		return false
	}
	return a.VerifyCode == code
}

// CallContext is the resolved identity attached to an authorized request.
type CallContext struct {
	AccountID string
	Role      Role
	Status    AccountStatus
}
