package abidec

import (
	"strings"
	"testing"
)

// Reference vectors from the EIP-55 text.
var checksumVectors = []string{
	"0x52908400098527886E0F7030069857D2E4169EE7",
	"0x8617E340B3D01FA5F11F306F4090FD50E238070D",
	"0xde709f2102306220921060314715629080e2fb77",
	"0x27b1fdb04752bbc536007a920d24acb045561c26",
	"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
	"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
	"0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
	"0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb",
}

func TestChecksumAddressVectors(t *testing.T) {
	for _, want := range checksumVectors {
		if got := ChecksumAddress(strings.ToLower(want)); got != want {
			t.Fatalf("ChecksumAddress(lower(%s)) = %s", want, got)
		}
		if got := ChecksumAddress(strings.ToUpper(want)); got != want {
			t.Fatalf("ChecksumAddress(upper(%s)) = %s", want, got)
		}
	}
}

func TestChecksumAddressIdempotent(t *testing.T) {
	for _, addr := range checksumVectors {
		once := ChecksumAddress(addr)
		if twice := ChecksumAddress(once); twice != once {
			t.Fatalf("not idempotent: %s -> %s", once, twice)
		}
	}
}
