// Package validation contains input validators for user-supplied values.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	emailRegex    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	slugRegex     = regexp.MustCompile(`^[a-z0-9-]{3,50}$`)
)

var reservedSlugs = map[string]struct{}{
	"auth":    {},
	"create":  {},
	"follow":  {},
	"group":   {},
	"health":  {},
	"media":   {},
	"metrics": {},
	"posts":   {},
	"profile": {},
}

// ValidateUsername validates username format.
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username must be 3-30 characters and contain only letters, numbers, and underscores")
	}
	return nil
}

// ValidateEmail validates email address format.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidatePassword validates password strength.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("password must contain both letters and digits")
	}
	return nil
}

// ValidateGroupSlug validates group slug format and reserved names.
func ValidateGroupSlug(slug string) error {
	if !slugRegex.MatchString(slug) {
		return fmt.Errorf("slug must be 3-50 characters and contain only lowercase letters, numbers, and hyphens")
	}

	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		return fmt.Errorf("slug cannot start or end with a hyphen")
	}

	if _, exists := reservedSlugs[slug]; exists {
		return fmt.Errorf("slug is reserved")
	}

	return nil
}
