package validators

import "strings"

// IsPincodeValid accepts 4 to 10 digit postal codes.
func IsPincodeValid(pincode string) bool {
	p := strings.TrimSpace(pincode)
	if len(p) < 4 || len(p) > 10 {
		return false
	}
	for _, r := range p {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsUsernameValid keeps usernames short, lowercase-safe identifiers.
func IsUsernameValid(username string) bool {
	u := strings.TrimSpace(username)
	if len(u) < 3 || len(u) > 50 {
		return false
	}
	for _, r := range u {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '.' || r == '-':
		default:
			return false
		}
	}
	return true
}
