// Package phone validates and normalizes phone-number candidates scraped from
// web pages. Validation is deliberately paranoid: digit runs inside asset
// paths and placeholder numbers pass naive regexes all the time, so anything
// that smells fabricated is rejected outright.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const (
	minDigits = 10
	maxDigits = 15
)

var sequentialFakes = map[string]struct{}{
	"1234567890": {},
	"0123456789": {},
	"9876543210": {},
	"0987654321": {},
}

// Digits strips everything but 0-9 from a raw candidate.
func Digits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate reports whether a raw candidate looks like a dialable number.
func Validate(raw string) bool {
	digits := Digits(raw)
	if len(digits) < minDigits || len(digits) > maxDigits {
		return false
	}
	if longestRun(digits) >= 7 {
		return false
	}
	if _, fake := sequentialFakes[digits]; fake {
		return false
	}
	if allSame(digits, '0') || allSame(digits, '1') || allSame(digits, '9') {
		return false
	}
	if strings.HasPrefix(digits, "000") {
		return false
	}
	national := digits
	if len(national) == 11 && national[0] == '1' {
		national = national[1:]
	}
	// 555-xxx-55xx is the fictional-number family used in copy and demos.
	if len(national) == 10 && national[:3] == "555" && national[6:8] == "55" {
		return false
	}
	if repeatedSuffix(digits, 7) {
		return false
	}
	return true
}

// Normalize converts a raw candidate to E.164. Returns false when the
// candidate fails validation.
func Normalize(raw string) (string, bool) {
	if !Validate(raw) {
		return "", false
	}
	digits := Digits(raw)
	if strings.HasPrefix(strings.TrimSpace(raw), "+") {
		return "+" + digits, true
	}
	switch {
	case len(digits) == 10:
		// Bare national number, assume US.
		return "+1" + digits, true
	case len(digits) == 11 && digits[0] == '1':
		return "+" + digits, true
	default:
		// 11-15 digits: assume a country code is already present.
		return "+" + digits, true
	}
}

// NormalizeWithRegion is Normalize with an ISO-3166 country hint. Bare
// national numbers are parsed against the hinted region via libphonenumber;
// anything else takes the default path.
func NormalizeWithRegion(raw, region string) (string, bool) {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" || region == "US" || strings.HasPrefix(strings.TrimSpace(raw), "+") {
		return Normalize(raw)
	}
	if !Validate(raw) {
		return "", false
	}
	number, err := phonenumbers.Parse(raw, region)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return Normalize(raw)
	}
	return phonenumbers.Format(number, phonenumbers.E164), true
}

// Best picks the strongest candidate out of several raw numbers: every
// candidate is normalized, failures dropped, and the longest digit string
// wins as a proxy for carrying a country code.
func Best(candidates []string) (string, bool) {
	best := ""
	bestLen := 0
	for _, raw := range candidates {
		normalized, ok := Normalize(raw)
		if !ok {
			continue
		}
		if n := len(Digits(normalized)); n > bestLen {
			best = normalized
			bestLen = n
		}
	}
	return best, best != ""
}

func longestRun(digits string) int {
	longest, run := 0, 0
	var prev byte
	for i := 0; i < len(digits); i++ {
		if i > 0 && digits[i] == prev {
			run++
		} else {
			run = 1
			prev = digits[i]
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

func allSame(digits string, c byte) bool {
	for i := 0; i < len(digits); i++ {
		if digits[i] != c {
			return false
		}
	}
	return len(digits) > 0
}

func repeatedSuffix(digits string, n int) bool {
	if len(digits) < n {
		return false
	}
	tail := digits[len(digits)-n:]
	return allSame(tail, tail[0])
}
