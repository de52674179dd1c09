package validator

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

func ValidateRegister(email, password, displayName string) ValidationErrors {
	errs := make(ValidationErrors)

	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	}

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		errs.Add("display_name", "Display name is required")
	} else if len(displayName) > 100 {
		errs.Add("display_name", "Display name is too long")
	}

	validatePassword(password, errs)

	return errs
}

func ValidateLogin(email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	}

	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func ValidateSwipe(toUserID int64, action string) ValidationErrors {
	errs := make(ValidationErrors)

	if toUserID <= 0 {
		errs.Add("toUserId", "toUserId is required")
	}

	if action != "like" && action != "dislike" && action != "superlike" {
		errs.Add("action", "Action must be like, dislike or superlike")
	}

	return errs
}

func ValidateProfileUpdate(displayName *string, age, minAgePref, maxAgePref, distanceKM *int, lat, lng *float64) ValidationErrors {
	errs := make(ValidationErrors)

	if displayName != nil && strings.TrimSpace(*displayName) == "" {
		errs.Add("display_name", "Display name cannot be empty")
	}
	if age != nil && (*age < 18 || *age > 120) {
		errs.Add("age", "Age must be between 18 and 120")
	}
	if minAgePref != nil && *minAgePref < 18 {
		errs.Add("min_age_pref", "Minimum age preference must be at least 18")
	}
	if maxAgePref != nil && *maxAgePref > 120 {
		errs.Add("max_age_pref", "Maximum age preference must be at most 120")
	}
	if minAgePref != nil && maxAgePref != nil && *minAgePref > *maxAgePref {
		errs.Add("max_age_pref", "Maximum age preference must not be below the minimum")
	}
	if distanceKM != nil && *distanceKM <= 0 {
		errs.Add("distance_km", "Distance must be positive")
	}
	if lat != nil && (*lat < -90 || *lat > 90) {
		errs.Add("location_lat", "Latitude must be between -90 and 90")
	}
	if lng != nil && (*lng < -180 || *lng > 180) {
		errs.Add("location_lng", "Longitude must be between -180 and 180")
	}

	return errs
}

func validatePassword(password string, errs ValidationErrors) {
	if len(password) < 8 {
		errs.Add("password", "Password must be at least 8 characters")
		return
	}

	var hasUpper, hasLower, hasDigit bool
	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasDigit = true
		}
	}

	missing := []string{}
	if !hasUpper {
		missing = append(missing, "one uppercase letter")
	}
	if !hasLower {
		missing = append(missing, "one lowercase letter")
	}
	if !hasDigit {
		missing = append(missing, "one number")
	}

	if len(missing) > 0 {
		errs.Add("password", fmt.Sprintf("Password must contain at least %s", strings.Join(missing, ", ")))
	}
}
