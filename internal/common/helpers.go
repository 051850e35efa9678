package common

import (
	"fmt"
	"math/big"
	"strings"
)

const (
	ScalarBytes   = 32               // secp256k1 private key length
	ScalarHexLen  = ScalarBytes * 2  // 64 hex characters
	secp256k1NHex = "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141"
)

const asciiSpace = " \t\r\n"

// secp256k1N is the order of the secp256k1 group
var secp256k1N, _ = new(big.Int).SetString(secp256k1NHex, 16)

// Secp256k1Order returns a copy of the secp256k1 group order
func Secp256k1Order() *big.Int {
	return new(big.Int).Set(secp256k1N)
}

// IsValidScalar reports whether 0 < k < N
func IsValidScalar(k *big.Int) bool {
	return k != nil && k.Sign() > 0 && k.Cmp(secp256k1N) < 0
}

// ParseDecimalScalar parses a base-10 integer string without float precision loss.
// Surrounding whitespace is ignored; signs, fractions and exponents are rejected.
func ParseDecimalScalar(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty string")
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return nil, fmt.Errorf("invalid decimal integer %q", s)
		}
	}
	k, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid decimal integer %q", s)
	}
	return k, nil
}

// ScalarToHex formats k as a 0x-prefixed, zero padded 32 byte hex string.
// Example: ScalarToHex(big.NewInt(255)) = "0x00...00ff"
func ScalarToHex(k *big.Int) string {
	return fmt.Sprintf("0x%0*x", ScalarHexLen, k)
}

// IsDecimal reports whether s is a well-formed decimal number:
// optional sign, digits, optional fractional part ("0.5", "-1", ".25").
// Only ASCII whitespace around the number is ignored.
func IsDecimal(s string) bool {
	s = strings.Trim(s, asciiSpace)
	if s == "" {
		return false
	}
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return false
	}

	digits := 0
	for _, part := range parts {
		for _, c := range part {
			if c < '0' || c > '9' {
				return false
			}
			digits++
		}
	}
	// "." alone or "1." style trailing point
	if digits == 0 || (len(parts) == 2 && parts[1] == "") {
		return false
	}
	return true
}
