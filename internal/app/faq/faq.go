/*
Package faq provides the read-only catalog of canned question/answer entries
the support bot matches against.

Entries are owned by the marketing site's content dashboard; this subsystem
only ever reads them. Responses are locale-keyed maps with an explicit
fallback chain (requested locale, then default locale, then empty).
*/
package faq

import "context"

// LocaleText maps a locale code (e.g. "en", "es") to a localized string.
type LocaleText map[string]string

// Resolve returns the text for the requested locale, falling back to the
// default locale, and finally to the empty string.
func (t LocaleText) Resolve(locale, defaultLocale string) string {
	if text, ok := t[locale]; ok && text != "" {
		return text
	}
	if text, ok := t[defaultLocale]; ok && text != "" {
		return text
	}
	return ""
}

// Entry is one canned question/answer record.
type Entry struct {
	// ID is the content system's identifier for the entry.
	ID string `json:"id"`

	// Keywords are the phrases that trigger this entry when found in visitor input.
	Keywords []string `json:"keywords"`

	// Response holds the localized reply text.
	Response LocaleText `json:"response"`

	// FollowUp holds an optional localized follow-up line, appended to the
	// response after a blank line.
	FollowUp LocaleText `json:"followUp,omitempty"`

	// Category labels the entry for transcript analytics (e.g. "billing").
	Category string `json:"category"`

	// Priority is the entry's baseline weight, always >= 1. Higher-priority
	// entries sort first in the catalog and score higher on equal keyword hits.
	Priority int `json:"priority"`

	// Active gates whether the entry participates in matching at all.
	Active bool `json:"isActive"`
}

// Store is the read contract to the externally owned FAQ content.
type Store interface {
	// ListActive returns all active entries ordered by priority descending.
	// That order is load-bearing: score ties during matching resolve to the
	// earliest entry in this order.
	ListActive(ctx context.Context) ([]Entry, error)
}
