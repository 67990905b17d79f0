package model

import "time"

// Shared defaults used by the CLI and its components.
const (
	DefaultLanguage     = LangEnglish
	DefaultQueryTimeout = 30 * time.Second
	DefaultImageTimeout = 60 * time.Second
	DefaultGeminiModel  = "imagen-4.0-generate-001"
	DefaultImageRetries = 3
	DefaultAPIAddr      = "127.0.0.1:3080"
	DefaultSymptomLimit = 30
)

// Well-known persistence gateway keys.
const (
	KeyAssistantAvatar = "aiAssistantAvatar"
	KeySessionUser     = "currentUserId"
	KeyLanguage        = "language"
)
