package ai

import (
	"strconv"
	"strings"
	"time"

	"github.com/triptailor/triptailor/internal/core/domain"
)

const systemPrompt = `You are an expert travel agent. A user is asking for a personalized travel itinerary.

Create a detailed, day-by-day travel plan based on the user's input.
- The itinerary should be practical and well-paced.
- Include a suggested packing list tailored to the destination and planned activities.
- Provide a few helpful local tips (e.g., transportation, etiquette, must-try local experiences).

Respond with a single JSON object of the shape:
{"itinerary":[{"day":1,"title":"...","activities":["..."],"mealSuggestions":"..."}],"packingList":["..."],"localTips":["..."]}
Do not include any text outside the JSON object.`

const coachPrompt = `You are a warm, upbeat coach inside a goal-tracking app.
Write a short motivational message (two or three sentences) for the user based on their progress.
Address the user by name, acknowledge what they have achieved so far, and encourage them to keep going.
Respond with the message text only. No quotes, no markdown, nothing else.`

// BuildMotivationPrompt renders the user's progress snapshot as the user
// message for the coach.
func BuildMotivationPrompt(input domain.MotivationInput) string {
	var b strings.Builder

	b.WriteString("name: ")
	b.WriteString(input.UserName)
	b.WriteString("\n")

	b.WriteString("goals_total: ")
	b.WriteString(strconv.Itoa(input.GoalsTotal))
	b.WriteString("\n")

	b.WriteString("goals_achieved: ")
	b.WriteString(strconv.Itoa(input.GoalsAchieved))
	b.WriteString("\n")

	b.WriteString("current_streak_days: ")
	b.WriteString(strconv.Itoa(input.CurrentStreak))
	b.WriteString("\n")

	return b.String()
}

// BuildUserPrompt renders the trip request as the user message for the model.
func BuildUserPrompt(input domain.ItineraryInput) string {
	var b strings.Builder

	b.WriteString("destination: ")
	b.WriteString(input.Destination)
	b.WriteString("\n")

	b.WriteString("start_date: ")
	b.WriteString(input.StartDate.Format(time.DateOnly))
	b.WriteString("\n")

	b.WriteString("end_date: ")
	b.WriteString(input.EndDate.Format(time.DateOnly))
	b.WriteString("\n")

	if len(input.Preferences) > 0 {
		b.WriteString("preferences: ")
		b.WriteString(strings.Join(input.Preferences, ", "))
		b.WriteString("\n")
	}

	return b.String()
}
