package match_test

import (
	"testing"

	"supportchat/internal/app/faq"
	"supportchat/internal/app/match"
)

func refundEntry() faq.Entry {
	return faq.Entry{
		ID:       "refund",
		Keywords: []string{"refund", "money back"},
		Response: faq.LocaleText{"en": "Refunds take 5 business days."},
		Category: "billing",
		Priority: 2,
		Active:   true,
	}
}

func TestMatchAcceptsKeywordHit(t *testing.T) {
	entries := []faq.Entry{refundEntry()}

	// matchedCount=1 ("money back"), score 3+0+2 = 5 > priority 2.
	got := match.Match("how do I get my money back", entries, "en", "en")
	if got.Text != "Refunds take 5 business days." {
		t.Fatalf("Match returned %q, want the refund response", got.Text)
	}
	if got.Category != "billing" {
		t.Fatalf("Match category = %q, want %q", got.Category, "billing")
	}
}

func TestMatchIsDeterministic(t *testing.T) {
	entries := []faq.Entry{
		refundEntry(),
		{
			ID:       "shipping",
			Keywords: []string{"shipping", "delivery"},
			Response: faq.LocaleText{"en": "We ship worldwide."},
			Category: "shipping",
			Priority: 2,
			Active:   true,
		},
	}

	input := "what about shipping and a refund"
	first := match.Match(input, entries, "en", "en")
	second := match.Match(input, entries, "en", "en")

	if first != second {
		t.Fatalf("Match is not deterministic: %+v vs %+v", first, second)
	}
}

func TestMatchEscalationOverridesEverything(t *testing.T) {
	// The FAQ entry would score high on "talk", yet escalation must win.
	entries := []faq.Entry{
		{
			ID:       "contact",
			Keywords: []string{"talk", "call", "phone"},
			Response: faq.LocaleText{"en": "Call us at 555-0100."},
			Category: "contact",
			Priority: 9,
			Active:   true,
		},
	}

	got := match.Match("I want to talk to a human", entries, "en", "en")
	if got.Category != match.CategoryAgentRequest {
		t.Fatalf("escalation input matched category %q, want %q", got.Category, match.CategoryAgentRequest)
	}

	// Localized escalation terms trigger regardless of the requested locale.
	got = match.Match("quiero hablar con un agente", entries, "en", "en")
	if got.Category != match.CategoryAgentRequest {
		t.Fatalf("localized escalation matched category %q, want %q", got.Category, match.CategoryAgentRequest)
	}
}

func TestMatchPriorityAloneNeverWins(t *testing.T) {
	// No keyword of this entry appears in the input: score == priority, which
	// must not clear the acceptance bar however large the priority is.
	entries := []faq.Entry{
		{
			ID:       "pricing",
			Keywords: []string{"price", "cost"},
			Response: faq.LocaleText{"en": "See our pricing page."},
			Category: "pricing",
			Priority: 100,
			Active:   true,
		},
	}

	got := match.Match("asdkjf", entries, "en", "en")
	if got.Category != match.CategoryClarification {
		t.Fatalf("no-hit input matched category %q, want %q", got.Category, match.CategoryClarification)
	}
}

func TestMatchIgnoresInactiveEntries(t *testing.T) {
	inactive := refundEntry()
	inactive.Active = false

	got := match.Match("I want my money back", []faq.Entry{inactive}, "en", "en")
	if got.Category == "billing" {
		t.Fatalf("inactive entry must never be considered")
	}
}

func TestMatchTieBreakFavorsCatalogOrder(t *testing.T) {
	entries := []faq.Entry{
		{
			ID:       "first",
			Keywords: []string{"invoice"},
			Response: faq.LocaleText{"en": "First entry."},
			Category: "first",
			Priority: 2,
			Active:   true,
		},
		{
			ID:       "second",
			Keywords: []string{"invoice"},
			Response: faq.LocaleText{"en": "Second entry."},
			Category: "second",
			Priority: 2,
			Active:   true,
		},
	}

	// Both entries score 3+2 = 5; the earlier catalog entry must win.
	got := match.Match("where is my invoice", entries, "en", "en")
	if got.Category != "first" {
		t.Fatalf("tie broke to %q, want %q", got.Category, "first")
	}
}

func TestMatchMultiMatchBonusOutscoresSingleHit(t *testing.T) {
	entries := []faq.Entry{
		{
			ID:       "single",
			Keywords: []string{"account"},
			Response: faq.LocaleText{"en": "Single."},
			Category: "single",
			Priority: 3,
			Active:   true,
		},
		{
			ID:       "double",
			Keywords: []string{"password", "reset"},
			Response: faq.LocaleText{"en": "Double."},
			Category: "double",
			Priority: 1,
			Active:   true,
		},
	}

	// single: 3+3 = 6. double: 2*3 + 2*2 + 1 = 11.
	got := match.Match("reset the password on my account", entries, "en", "en")
	if got.Category != "double" {
		t.Fatalf("multi-match entry lost: got %q", got.Category)
	}
}

func TestMatchAppendsFollowUp(t *testing.T) {
	entry := refundEntry()
	entry.FollowUp = faq.LocaleText{"en": "Anything else?"}

	got := match.Match("refund please", []faq.Entry{entry}, "en", "en")
	want := "Refunds take 5 business days.\n\nAnything else?"
	if got.Text != want {
		t.Fatalf("Match text = %q, want %q", got.Text, want)
	}
}

func TestMatchLocaleFallback(t *testing.T) {
	entry := faq.Entry{
		ID:       "hours",
		Keywords: []string{"hours"},
		Response: faq.LocaleText{"en": "Open 9-5.", "es": "Abierto de 9 a 5."},
		Category: "general",
		Priority: 1,
		Active:   true,
	}

	got := match.Match("what are your hours", []faq.Entry{entry}, "es", "en")
	if got.Text != "Abierto de 9 a 5." {
		t.Fatalf("locale es returned %q", got.Text)
	}

	// Missing locale falls back to the default.
	got = match.Match("what are your hours", []faq.Entry{entry}, "fr", "en")
	if got.Text != "Open 9-5." {
		t.Fatalf("locale fallback returned %q", got.Text)
	}
}

func TestMatchAcknowledgmentFallbacks(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"yes please", match.CategoryAckYes},
		{"thank you", match.CategoryAckYes},
		{"gracias", match.CategoryAckYes},
		{"no", match.CategoryAckNo},
		{"nope", match.CategoryAckNo},
		{"nothing else", match.CategoryAckNo},
		{"asdkjf", match.CategoryClarification},
		{"", match.CategoryClarification},
	}

	for _, c := range cases {
		got := match.Match(c.input, nil, "en", "en")
		if got.Category != c.want {
			t.Errorf("Match(%q) category = %q, want %q", c.input, got.Category, c.want)
		}
		if got.Text == "" {
			t.Errorf("Match(%q) returned empty reply text", c.input)
		}
	}
}

func TestMatchNormalizesInput(t *testing.T) {
	entries := []faq.Entry{refundEntry()}

	got := match.Match("   REFUND?!  ", entries, "en", "en")
	if got.Category != "billing" {
		t.Fatalf("normalization failed: category = %q", got.Category)
	}
}
