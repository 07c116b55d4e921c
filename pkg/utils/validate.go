package utils

import (
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

var (
	// Bangladeshi mobile numbers: leading 01 followed by 9 digits.
	phonePattern = regexp.MustCompile(`^01\d{9}$`)
	// NSU student ids are 7-digit numbers.
	nsuIDPattern = regexp.MustCompile(`^\d{7}$`)
)

func IsValidPhoneNumber(phone string) bool {
	return phonePattern.MatchString(phone)
}

func IsValidNSUID(nsuID string) bool {
	return nsuIDPattern.MatchString(nsuID)
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
