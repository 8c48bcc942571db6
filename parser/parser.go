// Package parser holds the field-level extraction rules for catalog markup.
package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePrice converts displayed price text into its numeric amount. The
// leading currency symbol is stripped first; both the proper glyph and the
// mis-decoded two-byte sequence seen on the live site are accepted.
func ParsePrice(text string) (float64, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "Â£")
	s = strings.TrimPrefix(s, "£")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("price text %q is empty", text)
	}
	price, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", text, err)
	}
	if price < 0 {
		return 0, fmt.Errorf("price %q is negative", text)
	}
	return price, nil
}

// RatingFromClass extracts the star-count label from the rating element's
// class attribute. The label is the second space-separated token, so
// "star-rating Three" yields "Three".
func RatingFromClass(class string) (string, error) {
	parts := strings.Fields(class)
	if len(parts) < 2 {
		return "", fmt.Errorf("rating class %q has no label token", class)
	}
	return parts[1], nil
}

// NormalizeAvailability trims spacing from the availability text.
func NormalizeAvailability(text string) string {
	return strings.TrimSpace(text)
}
