package utils

import (
	"fmt"
	"regexp"
	"strings"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+(?:\.[a-zA-Z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+)*@(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?\.)+[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?$`)
	pincodeRegex = regexp.MustCompile(`^[1-9]\d{5}$`)
	ifscRegex    = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)

	phoneRegexes = []*regexp.Regexp{
		regexp.MustCompile(`^\+91[6-9]\d{9}$`), // +91 + mobile
		regexp.MustCompile(`^91[6-9]\d{9}$`),   // 91 without +
		regexp.MustCompile(`^0[6-9]\d{9}$`),    // trunk prefix
		regexp.MustCompile(`^[6-9]\d{9}$`),     // bare 10-digit mobile
	}
)

func ValidateEmail(email string) (bool, error) {
	if !emailRegex.MatchString(email) {
		return false, fmt.Errorf("error: email format incorrect")
	}
	return true, nil
}

// ValidatePhone accepts Indian mobile numbers. Spaces and dashes are ignored.
func ValidatePhone(phone string) (bool, error) {
	normalized := strings.NewReplacer(" ", "", "-", "").Replace(phone)
	for _, re := range phoneRegexes {
		if re.MatchString(normalized) {
			return true, nil
		}
	}
	return false, fmt.Errorf("error: phone number format incorrect")
}

func ValidatePincode(pincode string) (bool, error) {
	if !pincodeRegex.MatchString(pincode) {
		return false, fmt.Errorf("error: pincode must be 6 digits and not start with 0")
	}
	return true, nil
}

// ValidateIFSC checks the 11-character bank branch code: 4 letters, a zero,
// then 6 alphanumerics. Lower case input is accepted.
func ValidateIFSC(code string) (bool, error) {
	if !ifscRegex.MatchString(strings.ToUpper(code)) {
		return false, fmt.Errorf("error: IFSC code format incorrect")
	}
	return true, nil
}
