package prompts

/* =================================================================================
							NUTRITION PROMPT TEMPLATES
	Each template is sent verbatim with {input} replaced by the user's query.
=================================================================================*/

const nutrientBreakdownTemplate = `You are an expert nutritionist. Provide a detailed nutrient breakdown for the following food item. Include information about calories, macronutrients (proteins, fats, carbohydrates), and micronutrients (vitamins and minerals) in a concise and easy to understand manner. Here is the food item:
{input}`

const recipeSuggestionsTemplate = `You are an expert chef and nutritionist. Suggest a list of recipes that can be made with the given ingredients. Each recipe should include preparation steps, cooking time, and a nutrient breakdown for each serving in a concise and easy to understand manner in a Markdown. Make sure the recipes are healthy and balanced. Here are the ingredients:
{input}`

const mealPlanTemplate = `You are an expert nutritionist. Create a meal plan based on the user's dietary preferences. Each meal should include recipes and a detailed nutrient breakdown for each meal in a concise and easy to understand manner in a Markdown. The plan should be balanced and cover all the necessary nutrients. Here are the user's preferences:
{input}`

const healthyEatingTipsTemplate = `You are an expert nutritionist. Provide tips and advice on healthy eating habits. Include information on portion control, balanced diet, hydration, and how to incorporate a variety of nutrients into the diet in a concise and easy to understand manner in a Markdown. Make sure the tips are practical and easy to follow. Here are the user's preferences or concerns:
{input}`

const exerciseNutritionTemplate = `You are an expert in both nutrition and fitness. Provide a detailed guide on how to align nutrition with an exercise regimen. Include pre-workout and post-workout meal suggestions, nutrient timing, and hydration tips in a concise and easy to understand manner in a Markdown. Here is the user's exercise routine:
{input}`

const dietaryRestrictionsTemplate = `You are an expert nutritionist. Provide a list of foods that are safe to eat and foods to avoid for someone with the following dietary restrictions in a concise and easy to understand manner in a Markdown. Also, suggest a few recipes that adhere to these restrictions. Here are the dietary restrictions:
{input}`

const weightManagementTemplate = `You are an expert nutritionist. Provide a comprehensive guide for weight management. Include tips for both weight loss and weight gain, considering healthy eating habits, portion control, and exercise recommendations in a concise and easy to understand manner in a Markdown. Here is the user's goal:
{input}`

const foodAllergiesTemplate = `You are an expert nutritionist. Provide guidance on managing food allergies. Include a list of common food allergens, how to identify allergic reactions, and safe alternatives for common allergens in a concise and easy to understand manner in a Markdown. Here is the user's allergy information:
{input}`

const digestiveHealthTemplate = `You are an expert nutritionist. Provide tips and advice on maintaining good digestive health. Include information on foods that promote gut health, habits to improve digestion, and how to manage common digestive issues in a concise and easy to understand manner in a Markdown. Here are the user's concerns:
{input}`

const plantBasedDietTemplate = `You are an expert nutritionist. Provide guidance on following a plant-based diet. Include tips on ensuring adequate protein, vitamins, and minerals intake, as well as some balanced meal suggestions in a concise and easy to understand manner in a Markdown. Here are the user's preferences:
{input}`

// Default returns the built-in templates in the order they are offered to the router.
func Default() []PromptSpec {
	return []PromptSpec{
		{
			Name:        "Nutrient Breakdown",
			Description: "Provides a detailed nutrient breakdown for a specified food item.",
			Template:    nutrientBreakdownTemplate,
		},
		{
			Name:        "Recipe Suggestions",
			Description: "Suggests recipes based on given ingredients and provides nutrient breakdown for each.",
			Template:    recipeSuggestionsTemplate,
		},
		{
			Name:        "Meal Plan",
			Description: "Creates a meal plan with recipes and nutrient breakdown based on user preferences.",
			Template:    mealPlanTemplate,
		},
		{
			Name:        "Healthy Eating Tips",
			Description: "Provides practical tips and advice on healthy eating habits.",
			Template:    healthyEatingTipsTemplate,
		},
		{
			Name:        "Exercise and Nutrition",
			Description: "Aligns nutrition with an exercise regimen, providing meal suggestions and nutrient timing.",
			Template:    exerciseNutritionTemplate,
		},
		{
			Name:        "Dietary Restrictions",
			Description: "Provides guidance and recipes for specific dietary restrictions.",
			Template:    dietaryRestrictionsTemplate,
		},
		{
			Name:        "Weight Management",
			Description: "Offers a comprehensive guide for weight management, including weight loss and gain tips.",
			Template:    weightManagementTemplate,
		},
		{
			Name:        "Food Allergies Management",
			Description: "Provides guidance on managing food allergies and safe alternatives.",
			Template:    foodAllergiesTemplate,
		},
		{
			Name:        "Digestive Health",
			Description: "Offers tips and advice on maintaining good digestive health.",
			Template:    digestiveHealthTemplate,
		},
		{
			Name:        "Plant-based Diet",
			Description: "Offers guidance and meal suggestions for following a plant-based diet.",
			Template:    plantBasedDietTemplate,
		},
	}
}
