package abidec

import (
	"reflect"
	"testing"
)

func TestSplitTupleTypes(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"flat", "address,uint256,bool", []string{"address", "uint256", "bool"}},
		{"single", "address", []string{"address"}},
		{"empty", "", []string{}},
		{"tuple kept whole", "address,tuple(uint256,bool),bytes", []string{"address", "tuple(uint256,bool)", "bytes"}},
		{"two-level nesting", "tuple(uint256,tuple(address,bool))", []string{"tuple(uint256,tuple(address,bool))"}},
		{"anonymous tuple", "(address,bytes)[],uint256", []string{"(address,bytes)[]", "uint256"}},
		{"bracket suffixes ignored", "uint256[3],bytes5[6],address[]", []string{"uint256[3]", "bytes5[6]", "address[]"}},
		{"spaces trimmed", "address, uint256 , bool", []string{"address", "uint256", "bool"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SplitTupleTypes(tc.input)
			if err != nil {
				t.Fatalf("SplitTupleTypes(%q): %v", tc.input, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("SplitTupleTypes(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestSplitTupleTypesUnbalanced(t *testing.T) {
	for _, input := range []string{"tuple(uint256,bool", "uint256)", "(()", "address,(uint256"} {
		if _, err := SplitTupleTypes(input); err == nil {
			t.Fatalf("SplitTupleTypes(%q): expected error", input)
		}
	}
}

func TestParseSignature(t *testing.T) {
	name, types, err := ParseSignature("transfer(address,uint256)")
	if err != nil {
		t.Fatalf("ParseSignature: %v", err)
	}
	if name != "transfer" {
		t.Fatalf("name = %q, want transfer", name)
	}
	if !reflect.DeepEqual(types, []string{"address", "uint256"}) {
		t.Fatalf("types = %v", types)
	}

	name, types, err = ParseSignature("totalSupply()")
	if err != nil {
		t.Fatalf("ParseSignature no-arg: %v", err)
	}
	if name != "totalSupply" || len(types) != 0 {
		t.Fatalf("no-arg parse: name=%q types=%v", name, types)
	}

	for _, bad := range []string{"", "noparens", "(address)", "f(address"} {
		if _, _, err := ParseSignature(bad); err == nil {
			t.Fatalf("ParseSignature(%q): expected error", bad)
		}
	}
}
