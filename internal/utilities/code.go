package utilities

import (
	"crypto/rand"
	"log"
	"math/big"
)

// GenerateVerificationCode produces n random decimal digits for email verification.
func GenerateVerificationCode(n int) string {
	code := make([]byte, n)
	for i := range code {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			log.Fatal("failed to read random source: ", err)
		}
		code[i] = byte('0' + d.Int64())
	}
	return string(code)
}
