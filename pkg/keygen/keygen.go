package keygen

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	upperChars  = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	lowerChars  = "abcdefghijkmnopqrstuvwxyz"
	digitChars  = "23456789"
	symbolChars = "!@#$%*?"

	// MinPasswordLength is the shortest temporary password GeneratePassword produces
	MinPasswordLength = 8
)

// GeneratePassword returns a random temporary password of the given length
// containing at least one upper-case letter, lower-case letter, digit and symbol.
// Look-alike characters (0/O, 1/l/I) are excluded.
func GeneratePassword(length int) (string, error) {
	if length < MinPasswordLength {
		length = MinPasswordLength
	}

	sets := []string{upperChars, lowerChars, digitChars, symbolChars}
	all := strings.Join(sets, "")

	result := make([]byte, 0, length)
	for _, set := range sets {
		ch, err := randomChar(set)
		if err != nil {
			return "", err
		}
		result = append(result, ch)
	}
	for len(result) < length {
		ch, err := randomChar(all)
		if err != nil {
			return "", err
		}
		result = append(result, ch)
	}

	// Fisher-Yates so the guaranteed classes are not always first
	for i := len(result) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		result[i], result[j.Int64()] = result[j.Int64()], result[i]
	}

	return string(result), nil
}

// GenerateAccountNumber returns a broker-style account number, e.g. "TD-4F0A9C21"
func GenerateAccountNumber(prefix string) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	if prefix == "" {
		prefix = "TD"
	}
	return fmt.Sprintf("%s-%s", strings.ToUpper(prefix), id[:8])
}

// randomChar picks one byte of charset uniformly at random
func randomChar(charset string) (byte, error) {
	num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, err
	}
	return charset[num.Int64()], nil
}
