package abidec

import (
	"fmt"
	"strings"
)

// SplitTupleTypes splits a comma-separated ABI type list into its top-level
// type tokens. Commas inside nested parentheses do not split; bracket
// suffixes ([], [3]) never affect nesting depth.
func SplitTupleTypes(typeList string) ([]string, error) {
	s := strings.TrimSpace(typeList)
	if s == "" {
		return []string{}, nil
	}
	var out []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced parentheses in type list %q", typeList)
			}
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced parentheses in type list %q", typeList)
	}
	out = append(out, strings.TrimSpace(s[start:]))
	return out, nil
}

// ParseSignature decomposes a human-readable signature like
// "transfer(address,uint256)" into its name and top-level parameter types.
func ParseSignature(signature string) (string, []string, error) {
	sig := strings.TrimSpace(signature)
	open := strings.Index(sig, "(")
	if open <= 0 || !strings.HasSuffix(sig, ")") {
		return "", nil, fmt.Errorf("malformed signature %q", signature)
	}
	name := sig[:open]
	inner := sig[open+1 : len(sig)-1]
	if strings.TrimSpace(inner) == "" {
		return name, []string{}, nil
	}
	types, err := SplitTupleTypes(inner)
	if err != nil {
		return "", nil, err
	}
	return name, types, nil
}
