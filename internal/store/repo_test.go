package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	db := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	AutoMigrate(db)
	return NewRepository(db)
}

func TestCustomSignatureRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	entry := CustomSignature{Selector: "0xA9059CBB", Signature: "transfer(address,uint256)", Source: "api"}
	if err := repo.AddCustomSignature(ctx, &entry); err != nil {
		t.Fatalf("add: %v", err)
	}
	// Exact duplicate, also exercising selector normalization.
	dup := CustomSignature{Selector: "a9059cbb", Signature: "transfer(address,uint256)", Source: "api"}
	if err := repo.AddCustomSignature(ctx, &dup); err != nil {
		t.Fatalf("add duplicate: %v", err)
	}
	other := CustomSignature{Selector: "0xa9059cbb", Signature: "many_msg_babbage(bytes1)", Source: "api"}
	if err := repo.AddCustomSignature(ctx, &other); err != nil {
		t.Fatalf("add collision: %v", err)
	}

	got, err := repo.ListCustomSignatures(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("entries = %d, want 2", len(got))
	}
	if got[0].Selector != "0xa9059cbb" || got[0].Signature != "transfer(address,uint256)" {
		t.Fatalf("first entry = %+v", got[0])
	}
	if got[1].Signature != "many_msg_babbage(bytes1)" {
		t.Fatalf("second entry = %+v", got[1])
	}
}

func TestUpsertDiscoveredAddress(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if err := repo.UpsertDiscoveredAddress(ctx, 1, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", first); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.UpsertDiscoveredAddress(ctx, 1, "0x5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED", first.Add(time.Hour)); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	rows, err := repo.ListDiscoveredAddresses(ctx, 1, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	row := rows[0]
	if row.Address != "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed" {
		t.Fatalf("address = %q, want normalized form", row.Address)
	}
	if row.SeenCount != 2 {
		t.Fatalf("seen count = %d, want 2", row.SeenCount)
	}
	if !row.LastSeen.After(row.FirstSeen) {
		t.Fatalf("last seen %v not after first seen %v", row.LastSeen, row.FirstSeen)
	}
}

func TestDiscoveredAddressesScopedByChain(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Now()

	if err := repo.UpsertDiscoveredAddress(ctx, 1, "0x01", now); err != nil {
		t.Fatalf("upsert chain 1: %v", err)
	}
	if err := repo.UpsertDiscoveredAddress(ctx, 10, "0x01", now); err != nil {
		t.Fatalf("upsert chain 10: %v", err)
	}

	for _, chainID := range []uint64{1, 10} {
		rows, err := repo.ListDiscoveredAddresses(ctx, chainID, 0)
		if err != nil {
			t.Fatalf("list chain %d: %v", chainID, err)
		}
		if len(rows) != 1 || rows[0].SeenCount != 1 {
			t.Fatalf("chain %d rows = %+v", chainID, rows)
		}
	}
}

func TestSetAddressSymbol(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.UpsertDiscoveredAddress(ctx, 1, "0xAB", time.Now()); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.SetAddressSymbol(ctx, 1, "0xab", "USDC"); err != nil {
		t.Fatalf("set symbol: %v", err)
	}
	rows, err := repo.ListDiscoveredAddresses(ctx, 1, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if rows[0].Symbol != "USDC" {
		t.Fatalf("symbol = %q", rows[0].Symbol)
	}

	if err := repo.SetAddressSymbol(ctx, 1, "0xmissing", "WETH"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestNormalizeAddressable(t *testing.T) {
	cases := map[string]string{
		"0xABCDEF": "0xabcdef",
		"abcdef":   "0xabcdef",
		" 0xAb ":   "0xab",
		"":         "",
	}
	for input, want := range cases {
		if got := NormalizeAddressable(input); got != want {
			t.Fatalf("NormalizeAddressable(%q) = %q, want %q", input, got, want)
		}
	}
}
