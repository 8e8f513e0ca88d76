package persona

import (
	"strings"
	"testing"

	"makementors-be/internal/entity"
)

func TestBuildSystemPrompt(t *testing.T) {
	base := Persona{SystemPrompt: "You are Alex. A patient coding mentor."}

	tests := []struct {
		name         string
		prefs        *entity.ChatPreferences
		wantContains []string
		wantExact    string
	}{
		{
			name:      "nil preferences leaves prompt untouched",
			prefs:     nil,
			wantExact: "You are Alex. A patient coding mentor.",
		},
		{
			name:      "empty preferences leaves prompt untouched",
			prefs:     &entity.ChatPreferences{},
			wantExact: "You are Alex. A patient coding mentor.",
		},
		{
			name: "full profile appended",
			prefs: &entity.ChatPreferences{
				Name:            "Sam",
				Goal:            "learn Go",
				ExperienceLevel: "beginner",
			},
			wantContains: []string{
				"You are Alex. A patient coding mentor.",
				"The user's name is Sam.",
				"Their goal is: learn Go.",
				"Their experience level is: beginner.",
			},
		},
		{
			name: "partial profile skips empty fields",
			prefs: &entity.ChatPreferences{
				Goal: "pass the interview",
			},
			wantContains: []string{"Their goal is: pass the interview."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildSystemPrompt(base, tt.prefs)

			if tt.wantExact != "" && got != tt.wantExact {
				t.Errorf("prompt = %q, want %q", got, tt.wantExact)
			}

			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("prompt missing %q:\n%s", want, got)
				}
			}
		})
	}

	t.Run("partial profile has no name line", func(t *testing.T) {
		got := BuildSystemPrompt(base, &entity.ChatPreferences{Goal: "x"})
		if strings.Contains(got, "The user's name") {
			t.Errorf("unexpected name line in prompt:\n%s", got)
		}
	})
}
