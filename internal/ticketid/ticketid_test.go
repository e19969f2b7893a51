package ticketid

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Parallel()

	id, err := New()
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if !strings.HasPrefix(id, Prefix) {
		t.Fatalf("expected %q prefix, got %q", Prefix, id)
	}
	token := strings.TrimPrefix(id, Prefix)
	if len(token) != 24 {
		t.Fatalf("expected 24 char token, got %d (%q)", len(token), token)
	}
	for _, r := range token {
		if !strings.ContainsRune("ABCDEFGHIJKLMNOPQRSTUVWXYZ234567", r) {
			t.Fatalf("unexpected character %q in token %q", r, token)
		}
	}
}

func TestNewUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		id, err := New()
		if err != nil {
			t.Fatalf("mint: %v", err)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate identifier minted: %s", id)
		}
		seen[id] = struct{}{}
	}
}
