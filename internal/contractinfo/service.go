// Package contractinfo enriches discovered addresses with on-chain token
// symbols through batched eth_call lookups. It sits outside the decode
// path: the disassembler never waits on it.
package contractinfo

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"golang.org/x/sync/errgroup"
)

// symbolCalldata is the selector of symbol(), the only call the service
// issues.
const symbolCalldata = "0x95d89b41"

// BatchCaller is the slice of the rpc client the service depends on.
type BatchCaller interface {
	BatchCallContext(ctx context.Context, b []rpc.BatchElem) error
}

type Config struct {
	BatchSize int
	Timeout   time.Duration
}

type Service struct {
	client BatchCaller
	cfg    Config
	logger *log.Logger

	mu    sync.Mutex
	cache map[string]string
}

func New(client BatchCaller, cfg Config, logger *log.Logger) *Service {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 20
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Service{
		client: client,
		cfg:    cfg,
		logger: logger,
		cache:  make(map[string]string),
	}
}

// Symbols resolves token symbols for a set of addresses on one chain.
// The result maps lowercase address to symbol; addresses without a symbol
// (EOAs, non-token contracts, individual call failures) are simply absent.
// A partial map is valid output.
func (s *Service) Symbols(ctx context.Context, chainID uint64, addresses []string) map[string]string {
	out := make(map[string]string)
	if s.client == nil || len(addresses) == 0 {
		return out
	}

	var misses []string
	s.mu.Lock()
	for _, addr := range addresses {
		key := cacheKey(chainID, addr)
		if symbol, ok := s.cache[key]; ok {
			if symbol != "" {
				out[strings.ToLower(addr)] = symbol
			}
			continue
		}
		misses = append(misses, addr)
	}
	s.mu.Unlock()
	if len(misses) == 0 {
		return out
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	var outMu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(misses); start += s.cfg.BatchSize {
		chunk := misses[start:min(start+s.cfg.BatchSize, len(misses))]
		g.Go(func() error {
			resolved, err := s.fetchChunk(ctx, chunk)
			if err != nil {
				// Transport-level failure: leave the chunk uncached so a
				// later request retries it.
				s.logf("symbol batch failed: %v", err)
				return nil
			}
			outMu.Lock()
			defer outMu.Unlock()
			s.mu.Lock()
			for _, addr := range chunk {
				symbol := resolved[strings.ToLower(addr)]
				s.cache[cacheKey(chainID, addr)] = symbol
				if symbol != "" {
					out[strings.ToLower(addr)] = symbol
				}
			}
			s.mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// fetchChunk issues one eth_call batch. Element failures are independent
// and come back as absent entries; only a failure of the batch call itself
// is returned as an error.
func (s *Service) fetchChunk(ctx context.Context, addresses []string) (map[string]string, error) {
	batch := make([]rpc.BatchElem, len(addresses))
	results := make([]hexutil.Bytes, len(addresses))
	for i, addr := range addresses {
		batch[i] = rpc.BatchElem{
			Method: "eth_call",
			Args: []interface{}{
				map[string]string{"to": addr, "data": symbolCalldata},
				"latest",
			},
			Result: &results[i],
		}
	}
	if err := s.client.BatchCallContext(ctx, batch); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(addresses))
	for i, elem := range batch {
		if elem.Error != nil {
			s.logf("symbol lookup failed: addr=%s err=%v", addresses[i], elem.Error)
			continue
		}
		if symbol, ok := decodeSymbolReturn(results[i]); ok {
			out[strings.ToLower(addresses[i])] = symbol
		}
	}
	return out, nil
}

// decodeSymbolReturn handles both return conventions in the wild: the
// standard ABI-encoded string and the legacy bytes32 form.
func decodeSymbolReturn(data []byte) (string, bool) {
	if len(data) == 0 {
		return "", false
	}
	if args, err := stringReturn(); err == nil {
		if values, err := args.Unpack(data); err == nil && len(values) == 1 {
			if symbol, ok := values[0].(string); ok {
				return sanitizeSymbol(symbol)
			}
		}
	}
	if len(data) == 32 {
		return sanitizeSymbol(string(trimRightZeros(data)))
	}
	return "", false
}

func stringReturn() (abi.Arguments, error) {
	t, err := abi.NewType("string", "", nil)
	if err != nil {
		return nil, fmt.Errorf("string type: %w", err)
	}
	return abi.Arguments{{Name: "symbol", Type: t}}, nil
}

func sanitizeSymbol(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 64 {
		return "", false
	}
	for _, r := range s {
		if r < 0x20 || r > 0x7e {
			return "", false
		}
	}
	return s, true
}

func trimRightZeros(b []byte) []byte {
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return b[:end]
}

func cacheKey(chainID uint64, address string) string {
	return fmt.Sprintf("%d:%s", chainID, strings.ToLower(address))
}

func (s *Service) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
