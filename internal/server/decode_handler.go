package server

import (
	"encoding/hex"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/0xPexy/callscope-backend/internal/abidec"
	"github.com/0xPexy/callscope-backend/internal/config"
	"github.com/0xPexy/callscope-backend/internal/contractinfo"
	"github.com/0xPexy/callscope-backend/internal/disasm"
	"github.com/0xPexy/callscope-backend/internal/registry"
	"github.com/0xPexy/callscope-backend/internal/store"
	"github.com/gin-gonic/gin"
)

type decodeHandler struct {
	cfg      config.Config
	splitter *disasm.Splitter
	registry *registry.Registry
	info     *contractinfo.Service
	repo     *store.Repository
	logger   *log.Logger
}

func newDecodeHandler(cfg config.Config, splitter *disasm.Splitter, reg *registry.Registry, info *contractinfo.Service, repo *store.Repository, logger *log.Logger) *decodeHandler {
	return &decodeHandler{cfg: cfg, splitter: splitter, registry: reg, info: info, repo: repo, logger: logger}
}

type DecodeRequest struct {
	Calldata *string `json:"calldata"`
	ChainID  uint64  `json:"chainId"`
}

type AddressInfo struct {
	Address string `json:"address"`
	Symbol  string `json:"symbol,omitempty"`
}

type DecodeResponse struct {
	Calls     []disasm.DecodedCall `json:"calls"`
	Addresses []AddressInfo        `json:"addresses"`
}

// Decode godoc
// @Summary Disassemble raw call data into a call tree
// @Description Resolves the selector locally, decodes parameters per the
// matched signature and recursively expands nested call data. Unknown or
// malformed payloads come back as placeholder nodes, never as HTTP errors.
// @Tags Decode
// @Accept json
// @Produce json
// @Success 200 {object} DecodeResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/decode [post]
func (h *decodeHandler) Decode(c *gin.Context) {
	var req DecodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeAPIError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	chainID := req.ChainID
	if chainID == 0 {
		chainID = h.cfg.Chain.ChainID
	}

	calls := h.splitter.DecodePayload(req.Calldata)
	addresses := disasm.CollectAddresses(calls)
	now := time.Now()
	for _, addr := range addresses {
		h.registry.Record(addr)
		if h.repo != nil {
			if err := h.repo.UpsertDiscoveredAddress(c.Request.Context(), chainID, addr, now); err != nil {
				h.logf("persist address %s: %v", addr, err)
			}
		}
	}

	var symbols map[string]string
	if h.info != nil && len(addresses) > 0 {
		symbols = h.info.Symbols(c.Request.Context(), chainID, addresses)
		for addr, symbol := range symbols {
			h.registry.SetSymbol(addr, symbol)
			if h.repo != nil {
				if err := h.repo.SetAddressSymbol(c.Request.Context(), chainID, addr, symbol); err != nil {
					h.logf("persist symbol %s: %v", addr, err)
				}
			}
		}
	}

	resp := DecodeResponse{Calls: calls, Addresses: make([]AddressInfo, 0, len(addresses))}
	for _, addr := range addresses {
		resp.Addresses = append(resp.Addresses, AddressInfo{
			Address: addr,
			Symbol:  symbols[strings.ToLower(addr)],
		})
	}
	c.JSON(http.StatusOK, resp)
}

type DecodeWithSignatureRequest struct {
	Calldata  string `json:"calldata" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// DecodeWithSignature godoc
// @Summary Decode call data against an explicit signature
// @Description Bypasses the signature database and trials exactly one
// signature. Decode failures are reported on the node's error field.
// @Tags Decode
// @Accept json
// @Produce json
// @Success 200 {object} disasm.DecodedCall
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/decode-with-signature [post]
func (h *decodeHandler) DecodeWithSignature(c *gin.Context) {
	var req DecodeWithSignatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeAPIError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	body := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(req.Calldata), "0x"), "0X")
	raw, err := hex.DecodeString(body)
	if err != nil {
		writeAPIError(c, http.StatusBadRequest, "calldata is not valid hex")
		return
	}

	node := disasm.DecodedCall{Payload: req.Calldata, Signature: req.Signature}
	if name, _, perr := abidec.ParseSignature(req.Signature); perr == nil {
		node.Function = name
	}
	if len(raw) >= 4 {
		node.Selector = "0x" + hex.EncodeToString(raw[:4])
	}

	res := abidec.DecodeWithSignature(req.Signature, raw)
	if res.Ok() {
		node.Params = res.Params
		for _, addr := range disasm.CollectAddresses([]disasm.DecodedCall{{Params: res.Params}}) {
			h.registry.Record(addr)
		}
	} else {
		node.Error = res.Err.Error()
	}
	c.JSON(http.StatusOK, node)
}

func (h *decodeHandler) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
