package store

import "log"

func AutoMigrate(db *DB) {
	if err := db.AutoMigrate(
		&CustomSignature{},
		&DiscoveredAddress{},
	); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}
}
