package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("store: not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *DB) *Repository { return &Repository{db: db.DB} }

// ListCustomSignatures returns all user-supplied signature entries in
// insertion order, for layering onto the embedded signature set.
func (r *Repository) ListCustomSignatures(ctx context.Context) ([]CustomSignature, error) {
	var out []CustomSignature
	err := r.db.WithContext(ctx).Order("id asc").Find(&out).Error
	return out, err
}

// AddCustomSignature stores a selector -> signature entry. Exact duplicates
// are ignored.
func (r *Repository) AddCustomSignature(ctx context.Context, sig *CustomSignature) error {
	sig.Selector = NormalizeAddressable(sig.Selector)
	var count int64
	err := r.db.WithContext(ctx).Model(&CustomSignature{}).
		Where("selector = ? AND signature = ?", sig.Selector, sig.Signature).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(sig).Error
}

// UpsertDiscoveredAddress records one discovery of an address, creating the
// row on first sight and bumping stats on every later one. Safe to call
// concurrently from overlapping decode requests.
func (r *Repository) UpsertDiscoveredAddress(ctx context.Context, chainID uint64, address string, seenAt time.Time) error {
	row := DiscoveredAddress{
		ChainID:   chainID,
		Address:   NormalizeAddressable(address),
		SeenCount: 1,
		FirstSeen: seenAt,
		LastSeen:  seenAt,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "chain_id"}, {Name: "address"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"seen_count": gorm.Expr("seen_count + 1"),
			"last_seen":  seenAt,
		}),
	}).Create(&row).Error
}

// SetAddressSymbol attaches an enrichment result to a stored address.
func (r *Repository) SetAddressSymbol(ctx context.Context, chainID uint64, address, symbol string) error {
	res := r.db.WithContext(ctx).Model(&DiscoveredAddress{}).
		Where("chain_id = ? AND address = ?", chainID, NormalizeAddressable(address)).
		Update("symbol", symbol)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListDiscoveredAddresses returns stored addresses for a chain, most
// recently seen first.
func (r *Repository) ListDiscoveredAddresses(ctx context.Context, chainID uint64, limit int) ([]DiscoveredAddress, error) {
	var out []DiscoveredAddress
	query := r.db.WithContext(ctx).Where("chain_id = ?", chainID).Order("last_seen desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&out).Error
	return out, err
}

// NormalizeAddressable lowercases a hex identifier and guarantees the 0x
// prefix, matching how selectors and addresses are keyed everywhere else.
func NormalizeAddressable(s string) string {
	v := strings.TrimSpace(strings.ToLower(s))
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "0x") {
		v = "0x" + v
	}
	return v
}
