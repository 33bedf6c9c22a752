// Package moderation is the accept/reject checkpoint every
// submission passes before any feed mutation.
package moderation

import (
	"context"
	"html"
	"log"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/twitters/twitters/model"
)

const (
	// ReasonPolicy explains a banned-term rejection.
	ReasonPolicy = "Our Global Safety Policy bans any mention of 'Grok' to prevent AI model training on your private content."

	// ReasonPolicyShort is used when the classifier was unreachable.
	ReasonPolicyShort = "Grok-mention detected. Post blocked."
)

// bannedTerm matches any whole-word mention, in any case.
var bannedTerm = regexp.MustCompile(`(?i)\bgrok\b`)

var markupPolicy = bluemonday.UGCPolicy()

// Classifier produces advisory verdicts from the external AI API.
type Classifier interface {
	Moderate(ctx context.Context, text string) (model.Verdict, error)
}

// Gate combines the external classifier with the local banned-term
// rule. The local rule is authoritative; the classifier only adds
// harassment and toxicity detection on top.
type Gate struct {
	classifier Classifier
}

func NewGate(classifier Classifier) *Gate {
	return &Gate{classifier: classifier}
}

// banned reports whether text falls under the anti-scraping policy.
func banned(text string) bool {
	return bannedTerm.MatchString(text) || strings.Contains(strings.ToLower(text), "@grok")
}

// Moderate returns the verdict for text. The banned-term override
// runs regardless of the classifier's outcome, and a classifier
// failure degrades to a verdict: the gate never fails past its own
// boundary.
func (g *Gate) Moderate(ctx context.Context, text string) model.Verdict {
	clean := html.UnescapeString(markupPolicy.Sanitize(text))

	verdict, err := g.classifier.Moderate(ctx, clean)
	if err != nil {
		log.Printf("Moderation error: %v", err)

		if banned(text) {
			return model.Verdict{IsSafe: false, Reason: ReasonPolicyShort}
		}

		return model.Verdict{IsSafe: true, SanitizedText: text}
	}

	if banned(text) {
		return model.Verdict{IsSafe: false, Reason: ReasonPolicy}
	}

	return verdict
}
