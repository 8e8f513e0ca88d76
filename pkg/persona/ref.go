package persona

import (
	"makementors-be/internal/constant"

	"github.com/google/uuid"
)

// Kind discriminates the two mentor catalogs. Its values are the
// mentor_type discriminator stored on chat sessions.
type Kind string

const (
	KindTemplate Kind = constant.MentorTypeTemplate
	KindCustom   Kind = constant.MentorTypeCustom
)

// MentorRef is a resolved-once tag for an incoming mentor id. Custom
// mentors carry UUID ids; template ids are stable snake_case strings.
// The id shape is classified exactly once here; downstream code reads
// the Kind and never re-sniffs the string.
type MentorRef struct {
	Kind       Kind
	TemplateId string
	CustomId   uuid.UUID
}

// ParseMentorRef classifies a raw mentor id from the wire.
func ParseMentorRef(raw string) MentorRef {
	if id, err := uuid.Parse(raw); err == nil {
		return MentorRef{Kind: KindCustom, CustomId: id}
	}
	return MentorRef{Kind: KindTemplate, TemplateId: raw}
}

// Id returns the canonical string form stored on chat sessions.
func (r MentorRef) Id() string {
	if r.Kind == KindCustom {
		return r.CustomId.String()
	}
	return r.TemplateId
}
