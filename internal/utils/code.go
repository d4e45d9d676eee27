package utils

import "crypto/rand"

// bookingCodeAlphabet avoids 0/O and 1/I so codes survive being read over
// the phone at a box office counter.
const bookingCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const bookingCodeLength = 8

// NewBookingCode returns a human-facing confirmation code of the form
// "BK" followed by 8 random characters, e.g. "BKQ7N2XF4A" style codes.
func NewBookingCode() (string, error) {
	buf := make([]byte, bookingCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, 0, 2+bookingCodeLength)
	out = append(out, 'B', 'K')
	for _, b := range buf {
		out = append(out, bookingCodeAlphabet[int(b)%len(bookingCodeAlphabet)])
	}
	return string(out), nil
}
