package config

type ChainConfig struct {
	RPCURL  string
	ChainID uint64
}

func loadChain() ChainConfig {
	return ChainConfig{
		RPCURL:  getenv("CHAIN_RPC_URL", ""),
		ChainID: u64env("CHAIN_ID", 1),
	}
}
