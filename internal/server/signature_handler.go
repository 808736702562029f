package server

import (
	"net/http"
	"strings"

	"github.com/0xPexy/callscope-backend/internal/abidec"
	"github.com/0xPexy/callscope-backend/internal/sigdb"
	"github.com/0xPexy/callscope-backend/internal/store"
	"github.com/gin-gonic/gin"
)

type signatureHandler struct {
	db   *sigdb.Database
	repo *store.Repository
}

func newSignatureHandler(db *sigdb.Database, repo *store.Repository) *signatureHandler {
	return &signatureHandler{db: db, repo: repo}
}

type SignatureListResponse struct {
	Selector   string   `json:"selector"`
	Candidates []string `json:"candidates"`
}

// Candidates godoc
// @Summary List candidate signatures for a 4-byte selector
// @Tags Signatures
// @Produce json
// @Param selector path string true "0x-prefixed 4-byte selector"
// @Success 200 {object} SignatureListResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/signatures/{selector} [get]
func (h *signatureHandler) Candidates(c *gin.Context) {
	selector := strings.ToLower(strings.TrimSpace(c.Param("selector")))
	if !strings.HasPrefix(selector, "0x") {
		selector = "0x" + selector
	}
	if len(selector) != 10 {
		writeAPIError(c, http.StatusBadRequest, "selector must be 4 bytes of hex")
		return
	}
	c.JSON(http.StatusOK, SignatureListResponse{
		Selector:   selector,
		Candidates: h.db.Candidates(selector),
	})
}

type AddSignatureRequest struct {
	Signature string `json:"signature" binding:"required"`
}

type AddSignatureResponse struct {
	Selector  string `json:"selector"`
	Signature string `json:"signature"`
}

// AddSignature godoc
// @Summary Register a custom function signature
// @Description Computes the selector from the signature text and appends it
// to the candidate list, persisting it for future startups.
// @Tags Signatures
// @Accept json
// @Produce json
// @Success 200 {object} AddSignatureResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/signatures [post]
func (h *signatureHandler) AddSignature(c *gin.Context) {
	var req AddSignatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeAPIError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	signature := strings.TrimSpace(req.Signature)
	if _, _, err := abidec.ParseSignature(signature); err != nil {
		writeAPIError(c, http.StatusBadRequest, "malformed signature")
		return
	}
	selector := abidec.Selector(signature)

	if h.repo != nil {
		entry := store.CustomSignature{Selector: selector, Signature: signature, Source: "api"}
		if err := h.repo.AddCustomSignature(c.Request.Context(), &entry); err != nil {
			writeAPIError(c, http.StatusInternalServerError, err.Error())
			return
		}
	}
	h.db.Add(selector, signature)

	c.JSON(http.StatusOK, AddSignatureResponse{Selector: selector, Signature: signature})
}
