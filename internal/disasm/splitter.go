// Package disasm turns raw call data into an ordered call tree: it resolves
// the selector against the local signature database, trials candidate
// signatures through the ABI decoder, and recursively disassembles call
// data embedded inside bytes parameters (multicall batches, wrapper
// payloads).
package disasm

import (
	"encoding/hex"
	"log"
	"strings"

	"github.com/0xPexy/callscope-backend/internal/abidec"
	"github.com/0xPexy/callscope-backend/internal/sigdb"
)

const DefaultMaxDepth = 8

type Config struct {
	// MaxDepth bounds nested-bytes recursion so adversarial payloads
	// cannot drive unbounded work.
	MaxDepth int
}

type Splitter struct {
	db     *sigdb.Database
	cfg    Config
	logger *log.Logger
}

func NewSplitter(db *sigdb.Database, cfg Config, logger *log.Logger) *Splitter {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return &Splitter{db: db, cfg: cfg, logger: logger}
}

// DecodePayload disassembles raw call data into a call tree. A nil input
// yields an empty list; decoding itself never fails, degraded payloads come
// back as placeholder "Call" nodes.
func (s *Splitter) DecodePayload(input *string) []DecodedCall {
	if input == nil {
		return []DecodedCall{}
	}
	return s.SplitPayloadIntoCalls(*input)
}

// SplitPayloadIntoCalls is DecodePayload for callers that already hold a
// concrete payload string.
func (s *Splitter) SplitPayloadIntoCalls(payload string) []DecodedCall {
	return []DecodedCall{s.split(payload, 0)}
}

func (s *Splitter) split(payload string, depth int) DecodedCall {
	body := stripHexPrefix(payload)
	if body == "" {
		return DecodedCall{Function: fallbackName, Payload: payload}
	}

	raw, err := hex.DecodeString(body)
	if err != nil || len(raw) < 4 {
		return DecodedCall{Function: fallbackName, Payload: payload}
	}
	selector := "0x" + hex.EncodeToString(raw[:4])

	candidates := s.db.Candidates(selector)
	for _, signature := range candidates {
		res := abidec.DecodeWithSignature(signature, raw)
		if !res.Ok() {
			s.logf("candidate rejected: selector=%s sig=%s err=%v", selector, signature, res.Err)
			continue
		}
		name, _, _ := abidec.ParseSignature(signature)
		node := DecodedCall{
			Selector:  selector,
			Function:  name,
			Signature: signature,
			Payload:   payload,
			Params:    res.Params,
		}
		node.Children = s.nestedCalls(res.Params, depth)
		return node
	}

	if len(candidates) > 0 {
		s.logf("all %d candidates failed structurally: selector=%s", len(candidates), selector)
	}
	return DecodedCall{Selector: selector, Function: fallbackName, Payload: payload}
}

// nestedCalls scans decoded parameters for embedded call data. A trailing
// (or sole) bytes[] parameter is treated as a multicall batch and every
// element is disassembled independently in array order; any other bytes
// value is disassembled only when the decodable-bytes heuristic accepts it.
func (s *Splitter) nestedCalls(params []abidec.DecodedParam, depth int) []DecodedCall {
	if depth >= s.cfg.MaxDepth || len(params) == 0 {
		return nil
	}

	var children []DecodedCall
	last := len(params) - 1
	for i, p := range params {
		if i == last && p.AbiType == "bytes[]" {
			for _, elem := range p.Children {
				children = append(children, s.split(elem.Value, depth+1))
			}
			continue
		}
		children = append(children, s.scanParam(p, depth)...)
	}
	return children
}

func (s *Splitter) scanParam(p abidec.DecodedParam, depth int) []DecodedCall {
	if p.AbiType == "bytes" {
		if !IsDecodableBytes(p.Value) {
			return nil
		}
		return []DecodedCall{s.split(p.Value, depth+1)}
	}
	var out []DecodedCall
	for _, child := range p.Children {
		out = append(out, s.scanParam(child, depth)...)
	}
	return out
}

// IsDecodableBytes reports whether a decoded bytes value looks like call
// data worth disassembling: a string whose hex body is at least 4 bytes
// with a non-zero first byte. The non-zero rule is a deliberate heuristic
// that trades recall for a low false-positive rate on zero-padded numbers.
func IsDecodableBytes(value interface{}) bool {
	str, ok := value.(string)
	if !ok {
		return false
	}
	body := stripHexPrefix(str)
	if len(body) < 8 {
		return false
	}
	return body[:2] != "00"
}

// CollectAddresses walks a call tree and returns every address-typed
// decoded value in first-appearance order, deduplicated case-insensitively.
func CollectAddresses(calls []DecodedCall) []string {
	seen := make(map[string]struct{})
	var out []string
	var walkParams func(params []abidec.DecodedParam)
	walkParams = func(params []abidec.DecodedParam) {
		for _, p := range params {
			if p.AbiType == "address" {
				key := strings.ToLower(p.Value)
				if _, ok := seen[key]; !ok {
					seen[key] = struct{}{}
					out = append(out, p.Value)
				}
			}
			walkParams(p.Children)
		}
	}
	var walkCalls func(calls []DecodedCall)
	walkCalls = func(calls []DecodedCall) {
		for _, c := range calls {
			walkParams(c.Params)
			walkCalls(c.Children)
		}
	}
	walkCalls(calls)
	return out
}

func stripHexPrefix(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "0x")
	return strings.TrimPrefix(s, "0X")
}

func (s *Splitter) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
