package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	// MentorTypeTemplate marks sessions backed by a catalog template,
	// MentorTypeCustom marks sessions backed by a user-created mentor.
	MentorTypeTemplate = "template"
	MentorTypeCustom   = "custom"

	// DefaultSessionTitle is used until the auto-titling consumer renames the session.
	DefaultSessionTitle = "New conversation"

	// FallbackErrorMessage is streamed to the client whenever the upstream
	// provider fails. The chat UI never sees a hard failure.
	FallbackErrorMessage = "I'm sorry, I encountered an error while processing your request. Please try again later."

	// GenericSystemPrompt is used when the mentor id resolves to neither catalog.
	GenericSystemPrompt = "You are a helpful, encouraging mentor. Answer the user's questions thoughtfully and keep them motivated."

	// StreamDoneSentinel terminates the SSE token stream.
	StreamDoneSentinel = "[DONE]"

	// SessionTitlePrompt asks the LLM for a short session title from the first exchange.
	SessionTitlePrompt = `Summarize the following conversation opening as a short title (max 6 words). Reply with the title only, no quotes.

User: %s
Mentor: %s`
)
