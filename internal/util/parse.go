package util

import (
	"fmt"
	"regexp"
	"strconv"
)

var nonNumericRegex = regexp.MustCompile(`[^\d]`)

// CleanNumericString strips everything except digits, turning price text
// like "12,345원" into "12345".
func CleanNumericString(s string) string {
	return nonNumericRegex.ReplaceAllString(s, "")
}

// ParsePrice converts listing price text into an integer amount of won.
// Text without any digits is a parse error.
func ParsePrice(s string) (int, error) {
	cleaned := CleanNumericString(s)
	if cleaned == "" {
		return 0, fmt.Errorf("no digits in price text %q", s)
	}
	price, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, fmt.Errorf("invalid price text %q: %w", s, err)
	}
	return price, nil
}
