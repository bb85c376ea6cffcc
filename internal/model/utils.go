package model

import "strings"

// TruncateString cuts a string down to the maximum allowed length.
func TruncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength]
}

// CleanCompany normalizes a profile's company field: whitespace trimmed,
// the leading "@" org prefix stripped, and the whole value uppercased so
// "@GitHub" and "github" collapse to the same value downstream.
func CleanCompany(company string) string {
	company = strings.TrimSpace(company)
	company = strings.TrimPrefix(company, "@")
	return strings.ToUpper(company)
}
