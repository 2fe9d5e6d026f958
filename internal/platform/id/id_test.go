package id

import (
	"encoding/base32"
	"strings"
	"testing"
)

func TestNewIDIsLowerBase32UUIDv4(t *testing.T) {
	t.Parallel()

	value, err := NewID()
	if err != nil {
		t.Fatalf("NewID() error = %v", err)
	}
	if len(value) != 26 {
		t.Fatalf("len(NewID()) = %d, want 26", len(value))
	}
	for _, r := range value {
		if (r < 'a' || r > 'z') && (r < '2' || r > '7') {
			t.Fatalf("unexpected character %q in id %q", r, value)
		}
	}

	decoded, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(strings.ToUpper(value))
	if err != nil {
		t.Fatalf("decode id: %v", err)
	}
	if len(decoded) != 16 {
		t.Fatalf("decoded length = %d, want 16", len(decoded))
	}
	if version := decoded[6] >> 4; version != 4 {
		t.Fatalf("version = %d, want 4", version)
	}
	if variant := decoded[8] & 0xC0; variant != 0x80 {
		t.Fatalf("variant = 0x%X, want 0x80", variant)
	}
}

func TestNewIDIsUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{}, 64)
	for range 64 {
		value, err := NewID()
		if err != nil {
			t.Fatalf("NewID() error = %v", err)
		}
		if _, dup := seen[value]; dup {
			t.Fatalf("duplicate id %q", value)
		}
		seen[value] = struct{}{}
	}
}
