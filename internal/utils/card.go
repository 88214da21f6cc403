package utils

import "strings"

// MinCardNumberLength is the shortest card number accepted after cleaning.
const MinCardNumberLength = 15

// CleanCardNumber strips whitespace from a card number as submitted.
func CleanCardNumber(number string) string {
	return strings.Join(strings.Fields(number), "")
}

// MaskCardNumber renders a card number with only the last four digits
// visible.
func MaskCardNumber(number string) string {
	if len(number) < 4 {
		return number
	}
	return "**** **** **** " + number[len(number)-4:]
}
