package disasm

import "github.com/0xPexy/callscope-backend/internal/abidec"

// DecodedCall is one node of the disassembled call tree. Payload always
// echoes the exact input string the node was decoded from. Children carry
// nested calls discovered inside bytes-typed parameters. Error and a
// populated Params list are mutually exclusive.
type DecodedCall struct {
	Selector  string                `json:"selector,omitempty"`
	Function  string                `json:"function"`
	Signature string                `json:"signature,omitempty"`
	Payload   string                `json:"payload"`
	Params    []abidec.DecodedParam `json:"params,omitempty"`
	Children  []DecodedCall         `json:"children,omitempty"`
	Error     string                `json:"error,omitempty"`
}

// fallbackName labels payloads that could not be resolved to a signature.
// An unknown selector is a degraded-confidence result, not an error.
const fallbackName = "Call"
