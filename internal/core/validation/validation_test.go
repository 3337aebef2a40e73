package validation

import (
	"testing"

	"github.com/optigov/ndpr-portal/internal/core/domain"
)

func signupForm(overrides func(*domain.SignupForm)) *domain.SignupForm {
	form := &domain.SignupForm{
		FullName:        "Jane Doe",
		Email:           "jane@gmail.com",
		Phone:           "08011112222",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Role:            domain.RoleCitizen,
	}
	if overrides != nil {
		overrides(form)
	}
	return form
}

func validateSignupForm(role domain.Role, form *domain.SignupForm) error {
	return Validate(Context{Mode: ModeSignup, Role: role, Signup: form})
}

func TestValidate_Signup_FullNameRequired(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleCitizen, domain.RoleCompany, domain.RoleAdmin} {
		form := signupForm(func(f *domain.SignupForm) { f.FullName = "   " })
		err := validateSignupForm(role, form)
		if err == nil {
			t.Fatalf("role %s: expected error for empty full name", role)
		}
		if err.Error() != "Full name is required" {
			t.Fatalf("role %s: unexpected message: %q", role, err.Error())
		}
	}
}

func TestValidate_Signup_EmailShape(t *testing.T) {
	for _, email := range []string{"", "janegmail.com", "jane@", "jane@gmail", "ja ne@gmail.com"} {
		form := signupForm(func(f *domain.SignupForm) { f.Email = email })
		err := validateSignupForm(domain.RoleAdmin, form)
		if err == nil {
			t.Fatalf("expected rejection for email %q", email)
		}
		if err.Error() != "Please enter a valid email address" {
			t.Fatalf("email %q: unexpected message: %q", email, err.Error())
		}
	}
}

func TestValidate_Signup_CitizenDomains(t *testing.T) {
	for _, dom := range []string{"gmail.com", "yahoo.com", "hotmail.com", "outlook.com"} {
		form := signupForm(func(f *domain.SignupForm) { f.Email = "jane@" + dom })
		if err := validateSignupForm(domain.RoleCitizen, form); err != nil {
			t.Fatalf("citizen with %s should pass, got: %v", dom, err)
		}
	}

	form := signupForm(func(f *domain.SignupForm) { f.Email = "jane@company.com.ng" })
	err := validateSignupForm(domain.RoleCitizen, form)
	if err == nil {
		t.Fatalf("citizen with business domain should fail")
	}
	if err.Error() != "Citizen accounts should use personal email addresses like gmail.com" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestValidate_Signup_CompanyDomains(t *testing.T) {
	form := signupForm(func(f *domain.SignupForm) { f.Email = "ops@gmail.com" })
	err := validateSignupForm(domain.RoleCompany, form)
	if err == nil {
		t.Fatalf("company with gmail.com should fail")
	}
	if err.Error() != "Company accounts must use business email domains (not gmail, yahoo, etc.)" {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	form = signupForm(func(f *domain.SignupForm) { f.Email = "ops@business.com.ng" })
	if err := validateSignupForm(domain.RoleCompany, form); err != nil {
		t.Fatalf("company with business.com.ng should pass, got: %v", err)
	}
}

func TestValidate_Signup_AdminSkipsDomainRule(t *testing.T) {
	for _, email := range []string{"admin@gmail.com", "admin@nitda.gov.xyz", "admin@business.com.ng"} {
		form := signupForm(func(f *domain.SignupForm) { f.Email = email })
		if err := validateSignupForm(domain.RoleAdmin, form); err != nil {
			t.Fatalf("admin with %s should pass, got: %v", email, err)
		}
	}
}

func TestValidate_Signup_Phone(t *testing.T) {
	valid := []string{
		"+2348012345678", "08012345678", "0801 234 5678", "+234 90 1234 5678",
		// Pasted numbers carry tabs and non-breaking spaces, not just plain
		// spaces; every whitespace rune is stripped before matching.
		"0801\t234 5678", "+234\u00a0801\u00a0234\u00a05678", "0801 234 5678\n",
	}
	for _, phone := range valid {
		form := signupForm(func(f *domain.SignupForm) { f.Phone = phone })
		if err := validateSignupForm(domain.RoleCitizen, form); err != nil {
			t.Fatalf("phone %q should pass, got: %v", phone, err)
		}
	}

	invalid := []string{"12345", "0601234567", "+23480123456789", "0841234567a", ""}
	for _, phone := range invalid {
		form := signupForm(func(f *domain.SignupForm) { f.Phone = phone })
		err := validateSignupForm(domain.RoleCitizen, form)
		if err == nil {
			t.Fatalf("phone %q should fail", phone)
		}
		if err.Error() != "Please enter a valid Nigerian phone number" {
			t.Fatalf("phone %q: unexpected message: %q", phone, err.Error())
		}
	}
}

func TestValidate_Signup_PasswordRules(t *testing.T) {
	form := signupForm(func(f *domain.SignupForm) {
		f.Password = "short"
		f.ConfirmPassword = "short"
	})
	err := validateSignupForm(domain.RoleCitizen, form)
	if err == nil || err.Error() != "Password must be at least 6 characters long" {
		t.Fatalf("expected length rejection, got: %v", err)
	}

	form = signupForm(func(f *domain.SignupForm) {
		f.Password = "secret1"
		f.ConfirmPassword = "secret2"
	})
	err = validateSignupForm(domain.RoleCitizen, form)
	if err == nil || err.Error() != "Passwords do not match" {
		t.Fatalf("expected mismatch rejection, got: %v", err)
	}

	if err := validateSignupForm(domain.RoleCitizen, signupForm(nil)); err != nil {
		t.Fatalf("matching passwords of valid length should pass, got: %v", err)
	}
}

func TestValidate_Signup_FirstFailureWins(t *testing.T) {
	// Everything is wrong; the full-name rule fires first.
	form := &domain.SignupForm{Role: domain.RoleCompany}
	err := validateSignupForm(domain.RoleCompany, form)
	if err == nil || err.Error() != "Full name is required" {
		t.Fatalf("expected full-name message first, got: %v", err)
	}
}

func TestValidate_Login_Presence(t *testing.T) {
	err := Validate(Context{Mode: ModeLogin, Role: domain.RoleCitizen, Login: &domain.LoginForm{
		EmailOrPhone: "  ",
		Password:     "x",
	}})
	if err == nil || err.Error() != "Email or phone number is required" {
		t.Fatalf("expected email-or-phone rejection, got: %v", err)
	}

	err = Validate(Context{Mode: ModeLogin, Role: domain.RoleCitizen, Login: &domain.LoginForm{
		EmailOrPhone: "jane@gmail.com",
		Password:     " ",
	}})
	if err == nil || err.Error() != "Password is required" {
		t.Fatalf("expected password rejection, got: %v", err)
	}

	err = Validate(Context{Mode: ModeLogin, Role: domain.RoleCitizen, Login: &domain.LoginForm{
		EmailOrPhone: "not-an-email",
		Password:     "x",
	}})
	if err != nil {
		t.Fatalf("login applies presence checks only, got: %v", err)
	}
}

func TestIsBusinessEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"ops@business.com.ng", true},
		{"ops@firm.org", true},
		{"ops@gmail.com", false},
		{"ops@outlook.com", false},
		{"jane@weird.xyz", false},
		{"no-at-sign", false},
	}
	for _, tc := range cases {
		if got := IsBusinessEmail(tc.email); got != tc.want {
			t.Fatalf("IsBusinessEmail(%q) = %v, want %v", tc.email, got, tc.want)
		}
	}
}
