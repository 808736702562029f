package server

import (
	"net/http"

	"github.com/0xPexy/callscope-backend/internal/registry"
	"github.com/gin-gonic/gin"
)

type addressHandler struct {
	registry *registry.Registry
}

func newAddressHandler(reg *registry.Registry) *addressHandler {
	return &addressHandler{registry: reg}
}

type AddressListResponse struct {
	Total     int              `json:"total"`
	Addresses []registry.Entry `json:"addresses"`
}

// ListAddresses godoc
// @Summary List addresses discovered by the disassembler
// @Tags Addresses
// @Produce json
// @Success 200 {object} AddressListResponse
// @Router /api/v1/addresses [get]
func (h *addressHandler) ListAddresses(c *gin.Context) {
	entries := h.registry.Snapshot()
	c.JSON(http.StatusOK, AddressListResponse{
		Total:     len(entries),
		Addresses: entries,
	})
}
