package intent

import (
	"strings"

	"github.com/zhouzirui/z-wellness/backend/internal/model/knowledge"
)

// Label names the category of response selected for an input.
type Label string

const (
	Safety    Label = "safety"
	Dos       Label = "dos"
	Donts     Label = "donts"
	DietTips  Label = "diet_tips"
	Plan      Label = "plan"
	Hydration Label = "hydration"
	Sleep     Label = "sleep"
	Exercise  Label = "exercise"
	Fallback  Label = "fallback"
)

const (
	hydrationReply = "Stay hydrated! Drink water regularly throughout the day. Start your morning with a glass of water to kickstart your hydration."
	sleepReply     = "Aim for 7–9 hours of quality sleep each night. Avoid screens before bed and maintain a consistent sleep schedule."
	exerciseReply  = "Try to move your body daily! Target 7–10k steps if appropriate for you. Regular physical activity supports overall wellness."
)

// Decision is the classification result and the rendered reply.
type Decision struct {
	Intent   Label
	Response string
	// Plan is set when Intent is Plan.
	Plan string
}

// Rule pairs a predicate over lower-cased text with the responder used when it matches.
type Rule struct {
	Intent  Label
	Match   func(normalized string) bool
	Respond func(normalized string) Decision
}

// Classifier picks the first matching rule, after the safety filter, in table order.
type Classifier struct {
	kb    *knowledge.Base
	rules []Rule
}

// New returns a classifier over kb using the default wellness rule table.
func New(kb *knowledge.Base) *Classifier {
	c := &Classifier{kb: kb}
	c.rules = c.defaultRules()
	return c
}

// Classify maps free text to a reply. It never fails; unmatched text gets the fallback.
func (c *Classifier) Classify(text string) Decision {
	normalized := strings.ToLower(text)

	if IsUnsafe(normalized) {
		return Decision{Intent: Safety, Response: SafetyMessage}
	}

	for _, rule := range c.rules {
		if rule.Match(normalized) {
			return rule.Respond(normalized)
		}
	}

	return Decision{Intent: Fallback, Response: c.kb.Fallback()}
}

func (c *Classifier) defaultRules() []Rule {
	return []Rule{
		keywordRule(Dos, []string{"do", "dos", "do's", "practices", "daily health"}, c.listReply(Dos, "Daily Health Do's", knowledge.Dos)),
		keywordRule(Donts, []string{"dont", "don't", "donts", "don'ts", "avoid"}, c.listReply(Donts, "Daily Health Don'ts", knowledge.Donts)),
		keywordRule(DietTips, []string{"diet tip", "nutrition", "eating", "balanced"}, c.listReply(DietTips, "Diet Tips", knowledge.DietTips)),
		{
			Intent: Plan,
			Match: func(normalized string) bool {
				_, ok := c.findPlan(normalized)
				return ok
			},
			Respond: func(normalized string) Decision {
				plan, _ := c.findPlan(normalized)
				return Decision{Intent: Plan, Response: renderPlan(plan), Plan: plan.Name}
			},
		},
		keywordRule(Hydration, []string{"water", "hydrat"}, fixedReply(Hydration, hydrationReply)),
		keywordRule(Sleep, []string{"sleep"}, fixedReply(Sleep, sleepReply)),
		keywordRule(Exercise, []string{"exercise", "steps", "walk", "activity", "move"}, fixedReply(Exercise, exerciseReply)),
	}
}

// findPlan returns the first plan, in table order, whose name occurs in the text with or without its spaces.
func (c *Classifier) findPlan(normalized string) (knowledge.Plan, bool) {
	for _, plan := range c.kb.Plans() {
		if strings.Contains(normalized, plan.Name) || strings.Contains(normalized, plan.CompactName()) {
			return plan, true
		}
	}
	return knowledge.Plan{}, false
}

func (c *Classifier) listReply(label Label, heading string, category knowledge.Category) func(string) Decision {
	return func(string) Decision {
		return Decision{Intent: label, Response: renderList(heading, c.kb.Entries(category))}
	}
}

func keywordRule(label Label, keywords []string, respond func(string) Decision) Rule {
	return Rule{
		Intent: label,
		Match: func(normalized string) bool {
			return containsAny(normalized, keywords)
		},
		Respond: respond,
	}
}

func fixedReply(label Label, text string) func(string) Decision {
	return func(string) Decision {
		return Decision{Intent: label, Response: text}
	}
}

func containsAny(normalized string, keywords []string) bool {
	for _, word := range keywords {
		if strings.Contains(normalized, word) {
			return true
		}
	}
	return false
}
