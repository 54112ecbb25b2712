package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Roll number pattern, e.g. CS-1021 or BBA-2023-17
	RollNumberPattern = `^[A-Za-z]{2,5}(-\d{2,6}){1,2}$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	RollNumber *regexp.Regexp
}{
	RollNumber: regexp.MustCompile(RollNumberPattern),
}

// IsValidRollNumber reports whether the roll number matches the expected format
func IsValidRollNumber(rollNumber string) bool {
	return CompiledPatterns.RollNumber.MatchString(rollNumber)
}

// IsValidPassword enforces the minimum password length
func IsValidPassword(password string) bool {
	return len(password) >= PasswordMinLength
}

// IsValidName enforces the name length bounds
func IsValidName(name string) bool {
	return len(name) >= NameMinLength && len(name) <= NameMaxLength
}
