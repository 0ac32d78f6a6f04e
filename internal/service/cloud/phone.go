package cloud

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// ErrInvalidPhone 无法识别的电话号码。
var ErrInvalidPhone = errors.New("Please enter a valid international phone number (include country code, e.g. +1, +44, +962)")

// NormalizePhone 将电话号码统一为 E.164 格式。不带国家码的号码按 defaultRegion 解析。
func NormalizePhone(raw string, defaultRegion string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidPhone
	}
	num, err := phonenumbers.Parse(raw, strings.ToUpper(defaultRegion))
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return "", ErrInvalidPhone
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
