package server

import (
	"log"
	"time"

	"github.com/0xPexy/callscope-backend/internal/config"
	"github.com/0xPexy/callscope-backend/internal/contractinfo"
	"github.com/0xPexy/callscope-backend/internal/disasm"
	"github.com/0xPexy/callscope-backend/internal/registry"
	"github.com/0xPexy/callscope-backend/internal/sigdb"
	"github.com/0xPexy/callscope-backend/internal/store"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(cfg config.Config, splitter *disasm.Splitter, db *sigdb.Database, reg *registry.Registry, info *contractinfo.Service, repo *store.Repository, hub *EventHub, logger *log.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	decodeH := newDecodeHandler(cfg, splitter, reg, info, repo, logger)
	addrH := newAddressHandler(reg)
	sigH := newSignatureHandler(db, repo)

	api := r.Group("/api/v1")
	api.POST("/decode", decodeH.Decode)
	api.POST("/decode-with-signature", decodeH.DecodeWithSignature)
	api.GET("/addresses", addrH.ListAddresses)
	api.GET("/signatures/:selector", sigH.Candidates)
	api.POST("/signatures", sigH.AddSignature)
	if hub != nil {
		api.GET("/events", hub.ServeWS)
	}

	return r
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeAPIError(c *gin.Context, status int, msg string) {
	c.JSON(status, ErrorResponse{Error: msg})
}
