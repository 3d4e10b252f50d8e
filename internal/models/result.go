package models

type ProfileTextRequest struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

type ProfileResponse struct {
	SessionID string        `json:"session_id"`
	Profile   ProfileRecord `json:"profile"`
	Model     string        `json:"model,omitempty"`
	Tokens    int           `json:"tokens"`
}

type GenerateRequest struct {
	SessionID string `json:"session_id"`
	GenerationForm
}

type GenerateResponse struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
}

type SessionResponse struct {
	ID           string             `json:"id"`
	Status       string             `json:"status"`
	Profile      *ProfileRecord     `json:"profile,omitempty"`
	Documents    []DocumentResponse `json:"documents"`
	TotalTokens  int                `json:"total_tokens"`
	ErrorMessage *string            `json:"error_message,omitempty"`
}

type DocumentResponse struct {
	Type     string  `json:"type"`
	Label    string  `json:"label"`
	Model    string  `json:"model"`
	Tokens   int     `json:"tokens"`
	Content  string  `json:"content"`
	Warning  *string `json:"warning,omitempty"`
	FileName string  `json:"file_name"`
}

type GenerationLogsResponse struct {
	SessionID string          `json:"session_id"`
	Logs      []GenerationLog `json:"logs"`
}

type ModelResponse struct {
	Name           string  `json:"name"`
	Backend        string  `json:"backend"`
	Provider       string  `json:"provider"`
	TimeoutSeconds float64 `json:"timeout_seconds"`
}

// FreeModel is one entry of the upstream catalog that costs nothing to call.
type FreeModel struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ContextLength int    `json:"context_length"`
}
