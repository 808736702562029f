package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	cfgpkg "github.com/0xPexy/callscope-backend/internal/config"
	"github.com/0xPexy/callscope-backend/internal/contractinfo"
	"github.com/0xPexy/callscope-backend/internal/disasm"
	"github.com/0xPexy/callscope-backend/internal/registry"
	"github.com/0xPexy/callscope-backend/internal/server"
	"github.com/0xPexy/callscope-backend/internal/sigdb"
	"github.com/0xPexy/callscope-backend/internal/store"
	"github.com/ethereum/go-ethereum/rpc"
)

func main() {
	cfg := cfgpkg.Load()

	db := store.OpenSQLite(cfg.Database.SQLiteDSN)
	store.AutoMigrate(db)
	repo := store.NewRepository(db)

	signatures, err := sigdb.NewWithFile(cfg.Decoder.SignatureFile)
	if err != nil {
		log.Fatalf("load signature database: %v", err)
	}
	custom, err := repo.ListCustomSignatures(context.Background())
	if err != nil {
		log.Fatalf("load custom signatures: %v", err)
	}
	for _, entry := range custom {
		signatures.Add(entry.Selector, entry.Signature)
	}
	log.Printf("signature database ready: %d selectors (%d custom rows)", signatures.Size(), len(custom))

	splitter := disasm.NewSplitter(signatures, disasm.Config{MaxDepth: cfg.Decoder.MaxDepth},
		log.New(log.Writer(), "disasm: ", log.LstdFlags))

	eventHub := server.NewEventHub(log.New(log.Writer(), "events: ", log.LstdFlags))
	reg := registry.New(eventHub, log.New(log.Writer(), "registry: ", log.LstdFlags))

	var info *contractinfo.Service
	if cfg.Chain.RPCURL != "" {
		rpcClient, err := rpc.Dial(cfg.Chain.RPCURL)
		if err != nil {
			log.Fatalf("failed to connect chain rpc: %v", err)
		}
		defer rpcClient.Close()
		info = contractinfo.New(rpcClient, contractinfo.Config{
			BatchSize: cfg.Decoder.SymbolBatchSize,
			Timeout:   cfg.Decoder.SymbolTimeout,
		}, log.New(log.Writer(), "symbols: ", log.LstdFlags))
	} else {
		log.Printf("CHAIN_RPC_URL not set; symbol enrichment disabled")
	}

	r := server.NewRouter(cfg, splitter, signatures, reg, info, repo, eventHub,
		log.New(log.Writer(), "api: ", log.LstdFlags))
	srv := server.NewHTTP(cfg.Server.HTTPAddr, r)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go eventHub.Run(ctx)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()
	log.Printf("listening on %s (chain=%d maxDepth=%d)", cfg.Server.HTTPAddr, cfg.Chain.ChainID, cfg.Decoder.MaxDepth)
	<-ctx.Done()
	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(shutdown)
}
