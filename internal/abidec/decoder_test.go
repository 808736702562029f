package abidec

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// encodeCall packs values per the signature's types and prepends the
// recomputed selector, producing a well-formed payload.
func encodeCall(t *testing.T, signature string, values ...interface{}) []byte {
	t.Helper()
	_, paramTypes, err := ParseSignature(signature)
	if err != nil {
		t.Fatalf("parse %q: %v", signature, err)
	}
	args, err := buildArguments(paramTypes)
	if err != nil {
		t.Fatalf("build arguments for %q: %v", signature, err)
	}
	packed, err := args.Pack(values...)
	if err != nil {
		t.Fatalf("pack %q: %v", signature, err)
	}
	selector := crypto.Keccak256([]byte(CanonicalSignature(signature)))[:4]
	return append(selector, packed...)
}

func TestDecodeWithSignatureTransfer(t *testing.T) {
	to := common.HexToAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	payload := encodeCall(t, "transfer(address,uint256)", to, big.NewInt(1_000_000))

	res := DecodeWithSignature("transfer(address,uint256)", payload)
	if !res.Ok() {
		t.Fatalf("decode failed: %v", res.Err)
	}
	if len(res.Params) != 2 {
		t.Fatalf("params = %d, want 2", len(res.Params))
	}
	if res.Params[0].AbiType != "address" || res.Params[0].Value != "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed" {
		t.Fatalf("param 0 = %+v", res.Params[0])
	}
	if res.Params[1].AbiType != "uint256" || res.Params[1].Value != "1000000" {
		t.Fatalf("param 1 = %+v", res.Params[1])
	}
}

func TestDecodeWithSignatureSelectorMismatch(t *testing.T) {
	to := common.HexToAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	payload := encodeCall(t, "transfer(address,uint256)", to, big.NewInt(7))

	res := DecodeWithSignature("approve(address,uint256)", payload)
	if res.Ok() {
		t.Fatalf("expected failure")
	}
	if !errors.Is(res.Err, ErrSelectorMismatch) {
		t.Fatalf("err = %v, want ErrSelectorMismatch", res.Err)
	}
	if !strings.Contains(res.Err.Error(), "mismatch") {
		t.Fatalf("error message %q does not mention mismatch", res.Err)
	}
	if len(res.Params) != 0 {
		t.Fatalf("params must be empty on failure, got %d", len(res.Params))
	}
}

func TestDecodeWithSignatureArity(t *testing.T) {
	cases := []struct {
		signature string
		values    []interface{}
	}{
		{"totalSupply()", nil},
		{"burn(uint256)", []interface{}{big.NewInt(5)}},
		{"register(string,bytes)", []interface{}{"hello", []byte{0xde, 0xad}}},
		{"setApprovalForAll(address,bool)", []interface{}{common.HexToAddress("0x01"), true}},
	}
	for _, tc := range cases {
		payload := encodeCall(t, tc.signature, tc.values...)
		res := DecodeWithSignature(tc.signature, payload)
		if !res.Ok() {
			t.Fatalf("%s: %v", tc.signature, res.Err)
		}
		if len(res.Params) != len(tc.values) {
			t.Fatalf("%s: params = %d, want %d", tc.signature, len(res.Params), len(tc.values))
		}
	}
}

func TestDecodeWithSignatureDynamicValues(t *testing.T) {
	payload := encodeCall(t, "register(string,bytes)", "hello", []byte{0xde, 0xad})
	res := DecodeWithSignature("register(string,bytes)", payload)
	if !res.Ok() {
		t.Fatalf("decode failed: %v", res.Err)
	}
	if res.Params[0].Value != "hello" {
		t.Fatalf("string param = %q", res.Params[0].Value)
	}
	if res.Params[1].Value != "0xdead" {
		t.Fatalf("bytes param = %q", res.Params[1].Value)
	}
}

func TestDecodeWithSignatureTupleChildren(t *testing.T) {
	in := struct {
		Field0 *big.Int
		Field1 bool
	}{big.NewInt(42), true}
	owner := common.HexToAddress("0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb")
	payload := encodeCall(t, "submit((uint256,bool),address)", in, owner)

	res := DecodeWithSignature("submit((uint256,bool),address)", payload)
	if !res.Ok() {
		t.Fatalf("decode failed: %v", res.Err)
	}
	if len(res.Params) != 2 {
		t.Fatalf("params = %d", len(res.Params))
	}
	tup := res.Params[0]
	if tup.AbiType != "(uint256,bool)" {
		t.Fatalf("tuple type = %q", tup.AbiType)
	}
	if len(tup.Children) != 2 {
		t.Fatalf("tuple children = %d", len(tup.Children))
	}
	if tup.Children[0].Value != "42" || tup.Children[1].Value != "true" {
		t.Fatalf("tuple children = %+v", tup.Children)
	}
	if res.Params[1].Value != "0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb" {
		t.Fatalf("address param = %q", res.Params[1].Value)
	}
}

func TestDecodeWithSignatureArrayChildren(t *testing.T) {
	payload := encodeCall(t, "batch(uint256[])", []*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3)})
	res := DecodeWithSignature("batch(uint256[])", payload)
	if !res.Ok() {
		t.Fatalf("decode failed: %v", res.Err)
	}
	arr := res.Params[0]
	if arr.AbiType != "uint256[]" || len(arr.Children) != 3 {
		t.Fatalf("array param = %+v", arr)
	}
	if arr.Children[2].Value != "3" {
		t.Fatalf("element 2 = %+v", arr.Children[2])
	}
}

func TestDecodeWithSignatureStructuralFailure(t *testing.T) {
	to := common.HexToAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	payload := encodeCall(t, "transfer(address,uint256)", to, big.NewInt(7))

	truncated := payload[:len(payload)-16]
	res := DecodeWithSignature("transfer(address,uint256)", truncated)
	if res.Ok() {
		t.Fatalf("expected structural failure on truncated payload")
	}
	if len(res.Params) != 0 {
		t.Fatalf("params must be empty on failure")
	}
}

func TestDecodeWithSignatureShortPayload(t *testing.T) {
	if res := DecodeWithSignature("transfer(address,uint256)", []byte{0xa9}); res.Ok() {
		t.Fatalf("expected failure for sub-selector payload")
	}
}

func TestDecodeWithSignatureBadGrammar(t *testing.T) {
	res := DecodeWithSignature("f(address", []byte{1, 2, 3, 4})
	if res.Ok() {
		t.Fatalf("expected failure for malformed signature")
	}
}

func TestSelectorKnownValues(t *testing.T) {
	cases := map[string]string{
		"transfer(address,uint256)":             "0xa9059cbb",
		"transferFrom(address,address,uint256)": "0x23b872dd",
		"balanceOf(address)":                    "0x70a08231",
	}
	for sig, want := range cases {
		if got := Selector(sig); got != want {
			t.Fatalf("Selector(%q) = %s, want %s", sig, got, want)
		}
	}
}

func TestCanonicalSignature(t *testing.T) {
	got := CanonicalSignature("exec(tuple(address, uint256)[], bytes)")
	want := "exec((address,uint256)[],bytes)"
	if got != want {
		t.Fatalf("CanonicalSignature = %q, want %q", got, want)
	}
}
