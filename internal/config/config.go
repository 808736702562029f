package config

type Config struct {
	Server   ServerConfig
	Chain    ChainConfig
	Database DatabaseConfig
	Decoder  DecoderConfig
}

func Load() Config {
	ensureEnvLoaded()
	return Config{
		Server:   loadServer(),
		Chain:    loadChain(),
		Database: loadDatabase(),
		Decoder:  loadDecoder(),
	}
}
