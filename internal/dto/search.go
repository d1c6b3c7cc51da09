package dto

type SearchRequest struct {
	Query string `json:"query" example:"golang"`
}

type SearchResponse struct {
	Success   bool   `json:"success"`
	Query     string `json:"query"`
	Result    string `json:"result"`
	Timestamp string `json:"timestamp"`
}
