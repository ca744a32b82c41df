package validator

import (
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// UUIDv7 regex: version 7 (the 15th character must be '7'), all lowercase hex digits.
var uuidv7Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// UUIDv7 validation
func IsValidUUID(uuid string) bool {
	return uuidv7Regex.MatchString(strings.ToLower(uuid))
}

// BirthDateLayout is the DD-MM-YYYY layout used on audit forms.
const BirthDateLayout = "02-01-2006"

var birthDateRegex = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)

// IsValidBirthDate parses a DD-MM-YYYY birth date. Years before 1900 are rejected.
func IsValidBirthDate(dateStr string) (time.Time, bool) {
	if !birthDateRegex.MatchString(dateStr) {
		return time.Time{}, false
	}
	date, err := time.Parse(BirthDateLayout, dateStr)
	if err != nil || date.Year() < 1900 {
		return time.Time{}, false
	}
	return date, true
}
