package store

import "time"

// CustomSignature is a user-supplied selector -> signature entry layered on
// top of the embedded signature set at startup.
type CustomSignature struct {
	ID        uint      `gorm:"primaryKey"`
	Selector  string    `gorm:"size:10;index;not null"`
	Signature string    `gorm:"size:512;not null"`
	Source    string    `gorm:"size:64"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// DiscoveredAddress persists registry stats across restarts.
type DiscoveredAddress struct {
	ID        uint   `gorm:"primaryKey"`
	ChainID   uint64 `gorm:"uniqueIndex:idx_discovered_chain_addr"`
	Address   string `gorm:"size:42;uniqueIndex:idx_discovered_chain_addr"`
	Symbol    string `gorm:"size:64"`
	SeenCount uint64
	FirstSeen time.Time
	LastSeen  time.Time
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
