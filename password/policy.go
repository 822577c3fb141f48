package password

import (
	"errors"
	"unicode"
)

var (
	// ErrTooShort is returned when the candidate is under MinLength.
	ErrTooShort = errors.New("password too short")
	// ErrTooLong is returned when the candidate exceeds MaxLength.
	ErrTooLong = errors.New("password too long")
	// ErrMissingUpper is returned when no uppercase letter is present.
	ErrMissingUpper = errors.New("password must contain at least 1 uppercase letter")
	// ErrMissingLower is returned when no lowercase letter is present.
	ErrMissingLower = errors.New("password must contain at least 1 lowercase letter")
	// ErrMissingDigit is returned when no digit is present.
	ErrMissingDigit = errors.New("password must contain at least 1 number")
)

// Policy mirrors the backend's password rules. The zero value disables all
// checks; use [DefaultPolicy] for the published rules.
type Policy struct {
	MinLength    int
	MaxLength    int
	RequireUpper bool
	RequireLower bool
	RequireDigit bool
}

// DefaultPolicy returns the policy the storefront backend enforces.
func DefaultPolicy() Policy {
	return Policy{
		MinLength:    8,
		MaxLength:    100,
		RequireUpper: true,
		RequireLower: true,
		RequireDigit: true,
	}
}

// Validate checks the candidate and returns the first violated rule, in the
// same order the backend reports them.
func (p Policy) Validate(candidate string) error {
	runes := []rune(candidate)
	if p.MinLength > 0 && len(runes) < p.MinLength {
		return ErrTooShort
	}
	if p.MaxLength > 0 && len(runes) > p.MaxLength {
		return ErrTooLong
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range runes {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if p.RequireUpper && !hasUpper {
		return ErrMissingUpper
	}
	if p.RequireLower && !hasLower {
		return ErrMissingLower
	}
	if p.RequireDigit && !hasDigit {
		return ErrMissingDigit
	}
	return nil
}
