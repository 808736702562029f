package abidec

import (
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// ChecksumAddress applies EIP-55 mixed-case folding to a hex address.
// Input casing is irrelevant; the transform is idempotent.
func ChecksumAddress(address string) string {
	hexPart := strings.TrimPrefix(strings.TrimPrefix(address, "0x"), "0X")
	lower := strings.ToLower(hexPart)
	hash := crypto.Keccak256([]byte(lower))

	out := make([]byte, len(lower))
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if c >= 'a' && c <= 'f' {
			nibble := hash[i/2] >> 4
			if i%2 == 1 {
				nibble = hash[i/2] & 0x0f
			}
			if nibble >= 8 {
				c = c - 'a' + 'A'
			}
		}
		out[i] = c
	}
	return "0x" + string(out)
}
