package knowledge

// Seed returns the built-in wellness knowledge base.
func Seed() *Base {
	return New(
		map[Category][]string{
			Dos: {
				"Aim for 7–9 hours of sleep.",
				"Drink water regularly; start your day with a glass.",
				"Include vegetables/fruit with each meal.",
				"Move your body: target 7–10k steps if appropriate for you.",
			},
			Donts: {
				"Avoid skipping meals frequently.",
				"Limit sugary drinks and ultra-processed snacks.",
				"Don't rely on supplements without professional advice.",
				"Avoid excessive screen time before bed.",
			},
			DietTips: {
				"Build a balanced plate: 1/2 veggies, 1/4 protein, 1/4 whole grains.",
				"Prioritize lean proteins (fish, beans, tofu, chicken).",
				"Choose high-fiber carbs (oats, brown rice, quinoa).",
				"Healthy fats in moderation (nuts, olive oil, avocado).",
			},
		},
		[]Plan{
			{
				Name: "weight loss",
				Meals: map[Slot]string{
					Breakfast: "Greek yogurt + berries + oats",
					Lunch:     "Grilled chicken salad, olive oil & lemon",
					Snack:     "Apple + peanut butter",
					Dinner:    "Baked salmon, quinoa, steamed broccoli",
				},
			},
			{
				Name: "maintenance",
				Meals: map[Slot]string{
					Breakfast: "Oatmeal + banana + chia",
					Lunch:     "Turkey sandwich on whole grain + side salad",
					Snack:     "Carrots + hummus",
					Dinner:    "Stir-fried tofu, mixed veggies, brown rice",
				},
			},
			{
				Name: "muscle gain",
				Meals: map[Slot]string{
					Breakfast: "Eggs + whole-grain toast + fruit",
					Lunch:     "Chicken, sweet potato, greens",
					Snack:     "Cottage cheese + pineapple",
					Dinner:    "Beef/tempeh, quinoa, roasted veggies",
				},
			},
		},
		"I can help with diet plans and daily do's & don'ts. Try: 'show muscle gain plan' or 'daily health do's'.",
	)
}
