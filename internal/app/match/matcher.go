/*
Package match selects a canned bot reply for free-text visitor input.

The matcher is a deterministic keyword-scoring heuristic, not NLU: every
decision it makes can be replayed from the input text and the catalog
snapshot alone. Match is a pure function with no side effects.
*/
package match

import (
	"strings"

	"supportchat/internal/app/faq"
)

const (
	// keywordHitScore is awarded for each entry keyword found as a substring
	// of the normalized input.
	keywordHitScore = 3

	// multiMatchBonus is the per-hit bonus added when more than one of an
	// entry's keywords matched.
	multiMatchBonus = 2
)

// acceptanceThreshold is the score an entry must strictly exceed to be
// accepted. It equals the entry's own priority: priority is also added to the
// score as a baseline, so an entry with zero keyword hits scores exactly its
// priority and is rejected. Both reads of Priority go through this function.
func acceptanceThreshold(e *faq.Entry) int {
	return e.Priority
}

// Result is the matcher's decision for one visitor message.
type Result struct {
	// Text is the localized reply to append as the bot message.
	Text string `json:"text"`

	// Category labels the source of the reply: an FAQ entry's category or one
	// of the fixed Category* constants.
	Category string `json:"category"`
}

// Match selects the bot reply for inputText against the given catalog entries.
//
// Decision order: the escalation override, then FAQ keyword scoring with the
// acceptance threshold, then the yes/no acknowledgment fallbacks, then the
// clarification default. Entries must be supplied in the catalog's
// priority-descending load order; on an exact score tie the earlier entry wins.
func Match(inputText string, entries []faq.Entry, locale, defaultLocale string) Result {
	norm := strings.ToLower(strings.TrimSpace(inputText))

	// A request for a human bypasses all scoring, no matter what else the
	// input would have matched.
	for _, kw := range escalationKeywords {
		if strings.Contains(norm, kw) {
			return Result{
				Text:     agentRequestResponse.Resolve(locale, defaultLocale),
				Category: CategoryAgentRequest,
			}
		}
	}

	var best *faq.Entry
	bestScore := 0

	for i := range entries {
		e := &entries[i]
		if !e.Active {
			continue
		}

		matchedCount := 0
		for _, kw := range e.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" && strings.Contains(norm, kw) {
				matchedCount++
			}
		}

		score := matchedCount * keywordHitScore
		if matchedCount > 1 {
			score += multiMatchBonus * matchedCount
		}
		score += e.Priority

		// Strictly-greater keeps the first entry seen on ties, which in
		// catalog load order favors higher priority, then earlier entries.
		if score > bestScore {
			best = e
			bestScore = score
		}
	}

	if best != nil && bestScore > acceptanceThreshold(best) {
		text := best.Response.Resolve(locale, defaultLocale)
		if followUp := best.FollowUp.Resolve(locale, defaultLocale); followUp != "" {
			text += "\n\n" + followUp
		}
		return Result{Text: text, Category: best.Category}
	}

	for _, kw := range affirmativeKeywords {
		if norm == kw || strings.Contains(norm, kw) {
			return Result{
				Text:     ackYesResponse.Resolve(locale, defaultLocale),
				Category: CategoryAckYes,
			}
		}
	}

	for _, kw := range negativeKeywords {
		if norm == kw || strings.Contains(norm, kw) {
			return Result{
				Text:     ackNoResponse.Resolve(locale, defaultLocale),
				Category: CategoryAckNo,
			}
		}
	}
	for _, kw := range exactNegatives {
		if norm == kw {
			return Result{
				Text:     ackNoResponse.Resolve(locale, defaultLocale),
				Category: CategoryAckNo,
			}
		}
	}

	return Result{
		Text:     clarificationResponse.Resolve(locale, defaultLocale),
		Category: CategoryClarification,
	}
}
