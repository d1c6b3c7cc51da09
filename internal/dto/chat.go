package dto

type ChatRequest struct {
	Query     string `json:"query" example:"नमस्ते"`
	WebSearch bool   `json:"web_search"`
	UserID    *int64 `json:"user_id,omitempty"`
}

type ChatResponse struct {
	Success   bool   `json:"success"`
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

type HistoryItem struct {
	Query     string `json:"query"`
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

type HistoryResponse struct {
	Success bool          `json:"success"`
	History []HistoryItem `json:"history"`
}
