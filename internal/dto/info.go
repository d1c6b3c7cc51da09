package dto

type InfoResponse struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Status      string   `json:"status"`
	Timestamp   string   `json:"timestamp"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
