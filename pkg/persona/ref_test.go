package persona

import (
	"testing"

	"github.com/google/uuid"
)

func TestParseMentorRef(t *testing.T) {
	customId := uuid.New()

	tests := []struct {
		name     string
		raw      string
		wantKind Kind
		wantId   string
	}{
		{
			name:     "uuid resolves to custom",
			raw:      customId.String(),
			wantKind: KindCustom,
			wantId:   customId.String(),
		},
		{
			name:     "snake_case resolves to template",
			raw:      "crypto_day_trader_wyckoff_ta",
			wantKind: KindTemplate,
			wantId:   "crypto_day_trader_wyckoff_ta",
		},
		{
			name:     "short slug resolves to template",
			raw:      "career_coach",
			wantKind: KindTemplate,
			wantId:   "career_coach",
		},
		{
			name:     "uuid-ish but invalid stays template",
			raw:      "abc12345-1234-1234-1234-12345678",
			wantKind: KindTemplate,
			wantId:   "abc12345-1234-1234-1234-12345678",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := ParseMentorRef(tt.raw)

			if ref.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", ref.Kind, tt.wantKind)
			}

			if ref.Id() != tt.wantId {
				t.Errorf("Id() = %q, want %q", ref.Id(), tt.wantId)
			}
		})
	}
}

func TestMentorRefCustomKeepsUUID(t *testing.T) {
	id := uuid.New()
	ref := ParseMentorRef(id.String())

	if ref.CustomId != id {
		t.Errorf("CustomId = %v, want %v", ref.CustomId, id)
	}
	if ref.TemplateId != "" {
		t.Errorf("TemplateId = %q, want empty", ref.TemplateId)
	}
}
