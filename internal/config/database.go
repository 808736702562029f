package config

type DatabaseConfig struct {
	// SQLiteDSN is the path of the SQLite file holding custom signatures
	// and discovered addresses.
	SQLiteDSN string
}

func loadDatabase() DatabaseConfig {
	return DatabaseConfig{
		SQLiteDSN: getenv("SQLITE_DSN", "./data/callscope.db"),
	}
}
