package domain

import (
	"fmt"
	"strings"
)

// Account is a managed automation account on the backend.
type Account struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Country  string `json:"country"`
	Proxy    string `json:"proxy,omitempty"`
}

// NewAccount carries the fields accepted by account creation and update.
type NewAccount struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Country  string `json:"country"`
	Proxy    string `json:"proxy,omitempty"`
}

// Countries the backend accepts for accounts and proxies.
var Countries = []string{"السعودية", "الإمارات", "الكويت", "مصر"}

func ValidCountry(country string) bool {
	for _, c := range Countries {
		if c == country {
			return true
		}
	}
	return false
}

func (a NewAccount) Validate() error {
	if len(a.Username) < 3 || len(a.Username) > 50 {
		return fmt.Errorf("%w: username must be 3-50 characters", ErrValidation)
	}
	if len(a.Password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	if !ValidCountry(a.Country) {
		return fmt.Errorf("%w: country must be one of: %s", ErrValidation, strings.Join(Countries, ", "))
	}
	return nil
}
