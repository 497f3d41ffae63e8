// Package validator configures the request validator with the domain
// rules the plain tag set cannot express.
package validator

import (
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"event-manager-api/internal/domain/entity"
)

func New() *validator.Validate {
	v := validator.New()

	mustRegister(v, "nospaces", noSpaces)
	mustRegister(v, "password", passwordComplexity)
	mustRegister(v, "assignablerole", assignableRole)
	mustRegister(v, "eventstatus", eventStatus)
	mustRegister(v, "futuredate", futureDate)

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func noSpaces(fl validator.FieldLevel) bool {
	return !strings.Contains(fl.Field().String(), " ")
}

// passwordComplexity requires at least 8 characters with an uppercase
// letter, a lowercase letter, a digit and a special character.
func passwordComplexity(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 {
		return false
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(`!@#$%^&*(),.?":{}|<>`, r):
			hasSpecial = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSpecial
}

// assignableRole accepts the closed role set minus the reserved
// masteradmin role, which no registration may claim.
func assignableRole(fl validator.FieldLevel) bool {
	role, ok := entity.ParseRole(fl.Field().String())
	return ok && role != entity.MasterAdmin
}

func eventStatus(fl validator.FieldLevel) bool {
	switch entity.EventStatus(fl.Field().String()) {
	case entity.StatusScheduled, entity.StatusOngoing, entity.StatusCompleted, entity.StatusCancelled:
		return true
	}
	return false
}

// futureDate rejects event dates that are not strictly in the future.
// Timezone qualification is inherent: JSON bodies only decode into
// time.Time from RFC 3339 values, which always carry an offset.
func futureDate(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return date.After(time.Now())
}
