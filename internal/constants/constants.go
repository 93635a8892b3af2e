package constants

const (
	// ContextKeyUserID is used both as the session key and the gin context key.
	ContextKeyUserID = "user_id"
	// ContextKeyActor holds the resolved auth.Actor in the gin context.
	ContextKeyActor = "actor"

	SessionCookieName = "task_session"

	MinPasswordLength = 8

	MinPageSize     = 1
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// SummaryInstruction prefixes every enrichment prompt.
const SummaryInstruction = "Summarize the following task in 2-3 concise, professional sentences. Do not use bullet points."
