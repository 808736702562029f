package abidec

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// CanonicalSignature normalizes a signature for selector hashing: spaces
// are dropped and the verbose "tuple(...)" spelling collapses to "(...)".
func CanonicalSignature(signature string) string {
	s := strings.ReplaceAll(signature, " ", "")
	return strings.ReplaceAll(s, "tuple(", "(")
}

// Selector returns the lowercase 0x-prefixed 4-byte selector implied by a
// human-readable signature.
func Selector(signature string) string {
	hash := crypto.Keccak256([]byte(CanonicalSignature(signature)))
	return "0x" + hex.EncodeToString(hash[:4])
}

// DecodeWithSignature decodes an ABI-encoded payload against a single
// candidate signature. The signature's recomputed selector must match the
// payload's leading four bytes; any disagreement short-circuits before any
// body decoding. Structural problems (insufficient words, bad offsets,
// malformed type grammar) come back as a Failure value, never a panic.
func DecodeWithSignature(signature string, payload []byte) Result {
	_, paramTypes, err := ParseSignature(signature)
	if err != nil {
		return Failure(fmt.Errorf("parse signature: %w", err))
	}
	if len(payload) < 4 {
		return Failure(fmt.Errorf("payload too short for selector: %d bytes", len(payload)))
	}

	want := crypto.Keccak256([]byte(CanonicalSignature(signature)))[:4]
	if !bytes.Equal(payload[:4], want) {
		return Failure(fmt.Errorf("%w: signature %s implies 0x%x, payload starts with 0x%x",
			ErrSelectorMismatch, signature, want, payload[:4]))
	}

	args, err := buildArguments(paramTypes)
	if err != nil {
		return Failure(fmt.Errorf("parse types: %w", err))
	}
	values, err := args.Unpack(payload[4:])
	if err != nil {
		return Failure(fmt.Errorf("decode body: %w", err))
	}
	if len(values) != len(args) {
		return Failure(fmt.Errorf("decoded %d values for %d parameters", len(values), len(args)))
	}

	params := make([]DecodedParam, len(args))
	for i, arg := range args {
		params[i] = buildParam(arg.Type, values[i])
	}
	return Success(params)
}

// buildArguments converts top-level type tokens into go-ethereum ABI
// argument definitions.
func buildArguments(paramTypes []string) (abi.Arguments, error) {
	args := make(abi.Arguments, 0, len(paramTypes))
	for i, ts := range paramTypes {
		marshaling, err := typeMarshaling(ts, fmt.Sprintf("arg%d", i))
		if err != nil {
			return nil, err
		}
		abiType, err := abi.NewType(marshaling.Type, "", marshaling.Components)
		if err != nil {
			return nil, fmt.Errorf("type %q: %w", ts, err)
		}
		args = append(args, abi.Argument{Name: marshaling.Name, Type: abiType})
	}
	return args, nil
}

// typeMarshaling turns a type token (possibly a nested tuple) into the
// marshaling form abi.NewType expects.
func typeMarshaling(typeStr, name string) (abi.ArgumentMarshaling, error) {
	ts := strings.TrimSpace(typeStr)
	open := strings.Index(ts, "(")
	if open < 0 {
		return abi.ArgumentMarshaling{Name: name, Type: ts}, nil
	}
	if prefix := ts[:open]; prefix != "" && prefix != "tuple" {
		return abi.ArgumentMarshaling{}, fmt.Errorf("malformed type %q", typeStr)
	}

	depth := 0
	closeIdx := -1
	for i := open; i < len(ts); i++ {
		switch ts[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				closeIdx = i
			}
		}
		if closeIdx >= 0 {
			break
		}
	}
	if closeIdx < 0 {
		return abi.ArgumentMarshaling{}, fmt.Errorf("unbalanced parentheses in type %q", typeStr)
	}
	arraySuffix := ts[closeIdx+1:]

	subTypes, err := SplitTupleTypes(ts[open+1 : closeIdx])
	if err != nil {
		return abi.ArgumentMarshaling{}, err
	}
	components := make([]abi.ArgumentMarshaling, 0, len(subTypes))
	for i, st := range subTypes {
		if st == "" {
			continue
		}
		component, err := typeMarshaling(st, fmt.Sprintf("field%d", i))
		if err != nil {
			return abi.ArgumentMarshaling{}, err
		}
		components = append(components, component)
	}
	return abi.ArgumentMarshaling{
		Name:       name,
		Type:       "tuple" + arraySuffix,
		Components: components,
	}, nil
}

// buildParam converts one unpacked value into a DecodedParam, recursing
// into tuple and array members.
func buildParam(t abi.Type, value interface{}) DecodedParam {
	switch t.T {
	case abi.TupleTy:
		rv := reflect.ValueOf(value)
		children := make([]DecodedParam, 0, len(t.TupleElems))
		for i, elem := range t.TupleElems {
			if i >= rv.NumField() {
				break
			}
			children = append(children, buildParam(*elem, rv.Field(i).Interface()))
		}
		return DecodedParam{AbiType: t.String(), Children: children}
	case abi.SliceTy, abi.ArrayTy:
		rv := reflect.ValueOf(value)
		children := make([]DecodedParam, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			children = append(children, buildParam(*t.Elem, rv.Index(i).Interface()))
		}
		return DecodedParam{AbiType: t.String(), Children: children}
	default:
		return DecodedParam{AbiType: t.String(), Value: formatValue(value)}
	}
}

func formatValue(value interface{}) string {
	switch v := value.(type) {
	case common.Address:
		return ChecksumAddress(v.Hex())
	case *big.Int:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	case string:
		return v
	case []byte:
		return hexutil.Encode(v)
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Array && rv.Type().Elem().Kind() == reflect.Uint8 {
		buf := make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(buf), rv)
		return hexutil.Encode(buf)
	}
	return fmt.Sprintf("%v", value)
}
