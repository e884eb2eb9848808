package intent

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/zhouzirui/z-wellness/backend/internal/model/knowledge"
)

var slotPrefixes = map[knowledge.Slot]string{
	knowledge.Breakfast: "🌅 Breakfast: ",
	knowledge.Lunch:     "🌞 Lunch: ",
	knowledge.Snack:     "🍎 Snack: ",
	knowledge.Dinner:    "🌙 Dinner: ",
}

func renderList(heading string, items []string) string {
	var builder strings.Builder
	builder.WriteString("**")
	builder.WriteString(heading)
	builder.WriteString(":**")
	for _, item := range items {
		builder.WriteString("\n• ")
		builder.WriteString(item)
	}
	return builder.String()
}

func renderPlan(plan knowledge.Plan) string {
	// Caser keeps state between calls, so one is built per render.
	title := cases.Title(language.English).String(plan.Name)

	var builder strings.Builder
	builder.WriteString("**")
	builder.WriteString(title)
	builder.WriteString(" Plan (Sample Day):**")
	for _, slot := range knowledge.Slots {
		builder.WriteString("\n")
		builder.WriteString(slotPrefixes[slot])
		builder.WriteString(plan.Meal(slot))
	}
	return builder.String()
}
