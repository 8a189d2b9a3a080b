/*
Package match selects a canned bot reply for free-text visitor input.

This file holds the fixed keyword sets and fixed responses the matcher uses
outside of the FAQ catalog: the escalation override, the yes/no
acknowledgments, and the clarification default. The lists cover both site
locales (English and Spanish).
*/
package match

import "supportchat/internal/app/faq"

// Categories reported in Result for non-FAQ outcomes.
const (
	// CategoryAgentRequest marks a request to reach a human responder.
	CategoryAgentRequest = "agent_request"

	// CategoryAckYes marks an affirmative acknowledgment fallback.
	CategoryAckYes = "acknowledgment_yes"

	// CategoryAckNo marks a negative acknowledgment fallback.
	CategoryAckNo = "acknowledgment_no"

	// CategoryClarification marks the default clarification-needed reply.
	CategoryClarification = "clarification"
)

// escalationKeywords triggers the unconditional human-agent override. The
// check is language-agnostic: all locales' terms are scanned regardless of
// the requested locale.
var escalationKeywords = []string{
	"agent",
	"human",
	"representative",
	"operator",
	"real person",
	"agente",
	"humano",
	"representante",
	"operador",
	"persona real",
}

// affirmativeKeywords backs the acknowledgment-yes fallback.
var affirmativeKeywords = []string{
	"yes",
	"yeah",
	"yep",
	"sure",
	"okay",
	"ok",
	"perfect",
	"thanks",
	"thank you",
	"gracias",
	"vale",
	"claro",
	"perfecto",
}

// negativeKeywords backs the acknowledgment-no fallback. Phrases that also
// contain an affirmative term ("no thanks") belong in the affirmative set's
// shadow and are intentionally absent: the affirmative check runs first.
var negativeKeywords = []string{
	"nope",
	"nothing else",
	"nada mas",
	"nada más",
}

// exactNegatives are terse negatives matched only as the whole input; as
// substrings they would fire inside ordinary words ("know", "notar").
var exactNegatives = []string{
	"no",
	"nah",
}

var agentRequestResponse = faq.LocaleText{
	"en": "Of course, one of our team members will take over this conversation shortly. Please leave your question here and we will reply by email as well.",
	"es": "Por supuesto, un miembro de nuestro equipo continuará esta conversación en breve. Deje su pregunta aquí y también le responderemos por correo.",
}

var ackYesResponse = faq.LocaleText{
	"en": "Great! Is there anything else I can help you with?",
	"es": "¡Genial! ¿Hay algo más en lo que pueda ayudarle?",
}

var ackNoResponse = faq.LocaleText{
	"en": "Alright. Feel free to write again whenever you have a question.",
	"es": "De acuerdo. Escríbanos de nuevo cuando tenga otra pregunta.",
}

var clarificationResponse = faq.LocaleText{
	"en": "I'm sorry, I didn't quite catch that. Could you rephrase your question? You can also ask for an agent at any time.",
	"es": "Lo siento, no le he entendido bien. ¿Podría reformular su pregunta? También puede pedir hablar con un agente en cualquier momento.",
}
