// Package validate checks and normalises raw ledger input before it reaches storage.
// Every failure is a *domain.FormatError.
package validate

import (
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/punchamoorthee/bankledger/internal/domain"
)

const (
	AccountNumberLength = 18
	AccountNumberPrefix = "ID--"

	// ISO8601 is the layout used when a timestamp has to be generated.
	ISO8601 = "2006-01-02T15:04:05.999999Z07:00"
)

var (
	nonNameChars    = regexp.MustCompile(`[^a-zA-Z\s\v\p{Zs}\x{85}\x{2028}\x{2029}]`)
	accountSegment  = regexp.MustCompile(`[a-zA-Z]{1,3}-\d+-`)
	accountReplacer = strings.NewReplacer("#", "-", "%", "-", "_", "-", "?", "-", "&", "-")

	AccountTypes    = []string{string(domain.AccountCredit), string(domain.AccountDebit)}
	AccountStatuses = []string{
		string(domain.StatusGold), string(domain.StatusSilver),
		string(domain.StatusPlatinum), string(domain.StatusNone),
	}
)

// FullName drops everything but letters and whitespace (Unicode spaces such as NBSP
// included) and splits the rest into a first name and a surname. The surname keeps
// every token after the first.
func FullName(raw string) (string, string, error) {
	parts := strings.Fields(nonNameChars.ReplaceAllString(raw, ""))
	if len(parts) < 2 {
		return "", "", &domain.FormatError{
			Field:  "full_name",
			Value:  raw,
			Reason: "must contain at least name and surname",
		}
	}
	return parts[0], strings.Join(parts[1:], " "), nil
}

// SanitizeAccountNumber replaces the separators users tend to type instead of '-'.
func SanitizeAccountNumber(raw string) string {
	return accountReplacer.Replace(raw)
}

// AccountNumber sanitises raw and checks length, prefix and the alpha/numeric segment.
func AccountNumber(raw string) (string, error) {
	n := SanitizeAccountNumber(raw)
	if utf8.RuneCountInString(n) != AccountNumberLength {
		return "", &domain.FormatError{Field: "account_number", Value: raw, Reason: "must be exactly 18 characters"}
	}
	if !strings.HasPrefix(n, AccountNumberPrefix) {
		return "", &domain.FormatError{Field: "account_number", Value: raw, Reason: "must start with ID--"}
	}
	if !accountSegment.MatchString(n) {
		return "", &domain.FormatError{Field: "account_number", Value: raw, Reason: "missing letters-digits- segment"}
	}
	return n, nil
}

func Enum(field, value string, allowed ...string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return &domain.FormatError{Field: field, Value: value, Reason: "value not allowed"}
}

func AccountType(value string) (domain.AccountType, error) {
	if err := Enum("type", value, AccountTypes...); err != nil {
		return "", err
	}
	return domain.AccountType(value), nil
}

func AccountStatus(value string) (domain.AccountStatus, error) {
	if err := Enum("status", value, AccountStatuses...); err != nil {
		return "", err
	}
	return domain.AccountStatus(value), nil
}

// Currency upper-cases a three letter code.
func Currency(raw string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(raw))
	if len(c) != 3 {
		return "", &domain.FormatError{Field: "currency", Value: raw, Reason: "must be a 3 letter code"}
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return "", &domain.FormatError{Field: "currency", Value: raw, Reason: "must be a 3 letter code"}
		}
	}
	return c, nil
}

// Datetime returns value untouched when present, otherwise now in ISO-8601.
func Datetime(value string, now time.Time) string {
	if value != "" {
		return value
	}
	return now.Format(ISO8601)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
	time.DateOnly,
}

// ParseTimestamp reads the ISO-8601 shapes callers send. Timestamps without an
// offset are taken as local time.
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &domain.FormatError{Field: "datetime", Value: value, Reason: "not an ISO-8601 timestamp"}
}
