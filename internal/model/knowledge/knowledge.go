package knowledge

import "strings"

// Category names a bulleted list in the knowledge base.
type Category string

const (
	Dos      Category = "dos"
	Donts    Category = "donts"
	DietTips Category = "diet_tips"
)

// Slot is one named meal of a plan.
type Slot string

const (
	Breakfast Slot = "breakfast"
	Lunch     Slot = "lunch"
	Snack     Slot = "snack"
	Dinner    Slot = "dinner"
)

// Slots lists the meal slots in rendering order.
var Slots = []Slot{Breakfast, Lunch, Snack, Dinner}

// Plan is a named sample day of meals.
type Plan struct {
	Name  string          `json:"name"`
	Meals map[Slot]string `json:"meals"`
}

// Meal returns the text for a slot, empty when the plan does not define it.
func (p Plan) Meal(slot Slot) string {
	return p.Meals[slot]
}

// CompactName is the plan name with internal spaces removed ("muscle gain" -> "musclegain").
func (p Plan) CompactName() string {
	return strings.ReplaceAll(p.Name, " ", "")
}

// Base is the read-only content table backing every response.
type Base struct {
	lists    map[Category][]string
	plans    []Plan
	fallback string
}

// New builds a Base, copying the supplied content so later changes by the caller are not observed.
func New(lists map[Category][]string, plans []Plan, fallback string) *Base {
	copiedLists := make(map[Category][]string, len(lists))
	for category, items := range lists {
		copiedLists[category] = append([]string(nil), items...)
	}

	copiedPlans := make([]Plan, 0, len(plans))
	for _, plan := range plans {
		meals := make(map[Slot]string, len(plan.Meals))
		for slot, text := range plan.Meals {
			meals[slot] = text
		}
		copiedPlans = append(copiedPlans, Plan{Name: strings.ToLower(strings.TrimSpace(plan.Name)), Meals: meals})
	}

	return &Base{lists: copiedLists, plans: copiedPlans, fallback: fallback}
}

// Entries returns the ordered items of a category.
func (b *Base) Entries(category Category) []string {
	return append([]string(nil), b.lists[category]...)
}

// Plans returns the configured plans in table order.
func (b *Base) Plans() []Plan {
	plans := make([]Plan, 0, len(b.plans))
	for _, plan := range b.plans {
		meals := make(map[Slot]string, len(plan.Meals))
		for slot, text := range plan.Meals {
			meals[slot] = text
		}
		plans = append(plans, Plan{Name: plan.Name, Meals: meals})
	}
	return plans
}

// Fallback returns the default response text.
func (b *Base) Fallback() string {
	return b.fallback
}
