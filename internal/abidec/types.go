package abidec

import "errors"

// ErrSelectorMismatch is returned when a signature's recomputed selector
// disagrees with the payload's leading four bytes.
var ErrSelectorMismatch = errors.New("selector mismatch")

// DecodedParam is one decoded ABI value. Children is populated only for
// tuple and array types and carries the nested values in declaration order.
type DecodedParam struct {
	Value    string         `json:"value,omitempty"`
	AbiType  string         `json:"abiType"`
	Children []DecodedParam `json:"children,omitempty"`
}

// Result is the outcome of decoding one payload against one signature:
// either a parameter list or a failure reason, never both.
type Result struct {
	Params []DecodedParam
	Err    error
}

func Success(params []DecodedParam) Result {
	return Result{Params: params}
}

func Failure(err error) Result {
	return Result{Err: err}
}

// Ok reports whether the decode attempt structurally succeeded.
func (r Result) Ok() bool { return r.Err == nil }
