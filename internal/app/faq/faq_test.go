package faq_test

import (
	"context"
	"errors"
	"testing"

	"supportchat/internal/app/faq"
)

func TestLocaleTextResolve(t *testing.T) {
	text := faq.LocaleText{"en": "hello", "es": "hola"}

	if got := text.Resolve("es", "en"); got != "hola" {
		t.Errorf("Resolve(es) = %q, want %q", got, "hola")
	}
	if got := text.Resolve("fr", "en"); got != "hello" {
		t.Errorf("Resolve(fr) with en default = %q, want %q", got, "hello")
	}
	if got := (faq.LocaleText{}).Resolve("en", "en"); got != "" {
		t.Errorf("Resolve on empty map = %q, want empty", got)
	}
	if got := (faq.LocaleText{"en": ""}).Resolve("en", "es"); got != "" {
		t.Errorf("Resolve over blank entries = %q, want empty", got)
	}
}

type stubStore struct {
	entries []faq.Entry
	err     error
	calls   int
}

func (s *stubStore) ListActive(ctx context.Context) ([]faq.Entry, error) {
	s.calls++
	return s.entries, s.err
}

func TestCatalogLoadSnapshot(t *testing.T) {
	store := &stubStore{entries: []faq.Entry{
		{ID: "1", Priority: 5, Active: true},
		{ID: "2", Priority: 1, Active: true},
	}}
	catalog := faq.NewCatalog(store)

	if got := catalog.Entries(); len(got) != 0 {
		t.Fatalf("unloaded catalog has %d entries, want 0", len(got))
	}

	if err := catalog.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	entries := catalog.Entries()
	if len(entries) != 2 {
		t.Fatalf("catalog has %d entries, want 2", len(entries))
	}
	if entries[0].ID != "1" {
		t.Fatalf("store order not preserved: first entry is %q", entries[0].ID)
	}
}

func TestCatalogLoadKeepsSnapshotOnError(t *testing.T) {
	store := &stubStore{entries: []faq.Entry{{ID: "1", Priority: 1, Active: true}}}
	catalog := faq.NewCatalog(store)

	if err := catalog.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	store.err = errors.New("store down")
	if err := catalog.Load(context.Background()); err == nil {
		t.Fatalf("expected Load to surface the store error")
	}

	if len(catalog.Entries()) != 1 {
		t.Fatalf("failed reload must keep the previous snapshot")
	}
}
