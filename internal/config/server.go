package config

type ServerConfig struct {
	// HTTPAddr is the listen address of the decode API, host optional.
	HTTPAddr string
}

func loadServer() ServerConfig {
	return ServerConfig{
		HTTPAddr: getenv("HTTP_ADDR", ":8082"),
	}
}
