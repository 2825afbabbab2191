package utils

import "crypto/rand"

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890"

// GenerateVerificationCode returns a uniformly random code of the given
// length over [A-Z0-9]. Length defaults to 6 when non-positive. Bytes at or
// above the largest multiple of the alphabet size are rejected so no
// character is favored.
func GenerateVerificationCode(length int) (string, error) {
	if length <= 0 {
		length = 6
	}
	const limit = 256 - 256%len(codeAlphabet)
	code := make([]byte, 0, length)
	buffer := make([]byte, length)
	for len(code) < length {
		if _, err := rand.Read(buffer); err != nil {
			return "", err
		}
		for _, b := range buffer {
			if int(b) >= limit {
				continue
			}
			code = append(code, codeAlphabet[int(b)%len(codeAlphabet)])
			if len(code) == length {
				break
			}
		}
	}
	return string(code), nil
}
