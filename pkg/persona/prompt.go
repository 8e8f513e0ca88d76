package persona

import (
	"fmt"
	"strings"

	"makementors-be/internal/entity"
)

// CustomSystemPrompt derives the system prompt for a user-authored
// mentor from its name and description.
func CustomSystemPrompt(name, description string) string {
	return fmt.Sprintf("You are %s. %s", name, description)
}

// BuildSystemPrompt appends the user's profile to the persona's base
// prompt as plain text. Empty profile fields are skipped; an empty
// profile leaves the base prompt untouched.
func BuildSystemPrompt(p Persona, prefs *entity.ChatPreferences) string {
	if prefs == nil {
		return p.SystemPrompt
	}

	var lines []string
	if prefs.Name != "" {
		lines = append(lines, "The user's name is "+prefs.Name+".")
	}
	if prefs.Goal != "" {
		lines = append(lines, "Their goal is: "+prefs.Goal+".")
	}
	if prefs.ExperienceLevel != "" {
		lines = append(lines, "Their experience level is: "+prefs.ExperienceLevel+".")
	}

	if len(lines) == 0 {
		return p.SystemPrompt
	}

	var sb strings.Builder
	sb.WriteString(p.SystemPrompt)
	sb.WriteString("\n\nAbout the user:\n")
	sb.WriteString(strings.Join(lines, "\n"))
	return sb.String()
}
