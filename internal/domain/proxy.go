package domain

import (
	"fmt"
	"regexp"
	"strings"
)

type Proxy struct {
	ID       int64  `json:"id"`
	Address  string `json:"address"`
	Country  string `json:"country"`
	IsActive bool   `json:"is_active"`
}

type NewProxy struct {
	Address string `json:"address"`
	Country string `json:"country"`
}

var proxyAddressPattern = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}:\d{1,5}$`)

func (p NewProxy) Validate() error {
	if !proxyAddressPattern.MatchString(p.Address) {
		return fmt.Errorf("%w: proxy address must be in IP:PORT form", ErrValidation)
	}
	if !ValidCountry(p.Country) {
		return fmt.Errorf("%w: country must be one of: %s", ErrValidation, strings.Join(Countries, ", "))
	}
	return nil
}
