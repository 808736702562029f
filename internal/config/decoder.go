package config

import "time"

type DecoderConfig struct {
	MaxDepth        int
	SignatureFile   string
	SymbolBatchSize int
	SymbolTimeout   time.Duration
}

func loadDecoder() DecoderConfig {
	return DecoderConfig{
		MaxDepth:        intEnv("MAX_DECODE_DEPTH", 8),
		SignatureFile:   getenv("SIGNATURE_FILE", ""),
		SymbolBatchSize: intEnv("SYMBOL_BATCH_SIZE", 20),
		SymbolTimeout:   durationEnvSeconds("SYMBOL_TIMEOUT", 10*time.Second),
	}
}
