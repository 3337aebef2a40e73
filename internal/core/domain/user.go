package domain

import (
	"strings"
	"time"
)

// defaultDisplayName is used when neither a full name nor a usable email
// local part is available.
const defaultDisplayName = "User"

// Identity is the authenticated session record. At most one Identity exists
// per session token; it is created on successful login or signup and
// destroyed on logout.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Name  string `json:"name"`
}

// StoredUser is a persisted signup record. The directory is append-only:
// records are added by signup and queried by login, never updated.
type StoredUser struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// SignupForm carries the fields of the signup form for the duration of a
// single submission.
type SignupForm struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Role            Role   `json:"role"`
}

// LoginForm carries the login form fields. The role is not typed by the
// user; it comes from the tab the form was submitted under.
type LoginForm struct {
	EmailOrPhone string `json:"email_or_phone"`
	Password     string `json:"password"`
}

// DisplayName derives the name an Identity shows for a given email and
// optional full name: the full name when present, otherwise the email's
// local part, otherwise a fixed default.
func DisplayName(email, fullName string) string {
	if name := strings.TrimSpace(fullName); name != "" {
		return name
	}
	if local, _, ok := strings.Cut(email, "@"); ok && local != "" {
		return local
	}
	return defaultDisplayName
}
