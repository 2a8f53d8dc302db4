package judge

import "fmt"

// FallbackRubric builds the generic validation rubric used when an activity
// does not define one
func FallbackRubric(description string) string {
	return fmt.Sprintf("Does this photo show completion of: %s", description)
}

// assessmentPrompt builds the vision prompt for photo validation. The judging
// heuristics are a fixed contract, not configurable per call.
func assessmentPrompt(activityDescription, rubric string) string {
	return fmt.Sprintf(`You are validating a photo for a kids treasure hunt activity.
Activity: %s
Validation criteria: %s

Does this photo show the child actually completing the activity? Consider:
- Does the image match what was asked?
- Does it look like a real photo (not a screenshot or stock image)?
- Is it appropriate for a kids app?

Respond with JSON only: {"valid": true/false, "reasoning": "brief explanation"}`, activityDescription, rubric)
}

// generationPrompt builds the text prompt for generating activity drafts
func generationPrompt(req GenerateRequest) string {
	return fmt.Sprintf(`Generate %d treasure hunt activities for kids.
Category: %s
Age group: %d-%d years
Location/area: %s

For each activity provide:
- title: Short catchy title
- description: What the child should find/do (1-2 sentences)
- rubric: What to look for in the photo to validate completion (e.g. "Must show a fountain or water feature")
- location: Specific place if applicable

Return JSON array only, no markdown.`, req.Count, req.Category, req.AgeMin, req.AgeMax, req.Location)
}
