// Package validation implements the credential rules applied to signup and
// login forms before any network or storage work happens. Validation is pure
// and synchronous; rules run in a fixed order and the first violation wins.
package validation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/optigov/ndpr-portal/internal/core/domain"
)

// Mode selects which form a Context carries.
type Mode string

const (
	ModeSignup Mode = "signup"
	ModeLogin  Mode = "login"
)

// Context bundles a form submission with the role tab it was made under.
type Context struct {
	Mode   Mode
	Role   domain.Role
	Signup *domain.SignupForm
	Login  *domain.LoginForm
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// Nigerian mobile numbers: +234 or 0 prefix, then 7/8/9, then 0/1,
	// then eight more digits.
	phonePattern = regexp.MustCompile(`^(\+234|0)[789][01]\d{8}$`)
)

// personalDomains are the consumer providers a company account may not use
// and a citizen account is expected to use.
var personalDomains = map[string]struct{}{
	"gmail.com":   {},
	"yahoo.com":   {},
	"hotmail.com": {},
	"outlook.com": {},
}

// businessFragments classify a domain as business-like by substring match.
var businessFragments = []string{"com.ng", "ng", "com", "org", "net"}

// minPasswordLength is the minimum accepted password length at signup.
const minPasswordLength = 6

// Validate applies the rules for ctx.Mode in order and returns the first
// violated rule's message as a *domain.ValidationError, or nil when the form
// is acceptable.
func Validate(ctx Context) error {
	switch ctx.Mode {
	case ModeSignup:
		if ctx.Signup != nil {
			return validateSignup(ctx.Role, ctx.Signup)
		}
	case ModeLogin:
		if ctx.Login != nil {
			return validateLogin(ctx.Login)
		}
	}
	return nil
}

func validateSignup(role domain.Role, form *domain.SignupForm) error {
	if strings.TrimSpace(form.FullName) == "" {
		return &domain.ValidationError{Message: "Full name is required"}
	}
	if !emailPattern.MatchString(form.Email) {
		return &domain.ValidationError{Message: "Please enter a valid email address"}
	}
	if role == domain.RoleCompany && !IsBusinessEmail(form.Email) {
		return &domain.ValidationError{Message: "Company accounts must use business email domains (not gmail, yahoo, etc.)"}
	}
	if role == domain.RoleCitizen && IsBusinessEmail(form.Email) {
		return &domain.ValidationError{Message: "Citizen accounts should use personal email addresses like gmail.com"}
	}
	if !phonePattern.MatchString(NormalizePhone(form.Phone)) {
		return &domain.ValidationError{Message: "Please enter a valid Nigerian phone number"}
	}
	if len(form.Password) < minPasswordLength {
		return &domain.ValidationError{Message: "Password must be at least 6 characters long"}
	}
	if form.Password != form.ConfirmPassword {
		return &domain.ValidationError{Message: "Passwords do not match"}
	}
	return nil
}

func validateLogin(form *domain.LoginForm) error {
	if strings.TrimSpace(form.EmailOrPhone) == "" {
		return &domain.ValidationError{Message: "Email or phone number is required"}
	}
	if strings.TrimSpace(form.Password) == "" {
		return &domain.ValidationError{Message: "Password is required"}
	}
	return nil
}

// NormalizePhone strips every whitespace rune from a phone number, including
// tabs and non-breaking spaces that arrive with pasted numbers. The stripped
// form is what gets validated and stored.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, phone)
}

// IsBusinessEmail classifies an email address as business-like: the domain
// must not be a known personal provider and must contain one of the
// business fragments. Admin accounts skip this check entirely.
func IsBusinessEmail(email string) bool {
	_, rest, ok := strings.Cut(email, "@")
	if !ok || rest == "" {
		return false
	}
	dom := strings.ToLower(rest)
	if _, personal := personalDomains[dom]; personal {
		return false
	}
	for _, fragment := range businessFragments {
		if strings.Contains(dom, fragment) {
			return true
		}
	}
	return false
}
