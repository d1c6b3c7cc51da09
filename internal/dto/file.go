package dto

type FileAnalysis struct {
	FileName    string `json:"filename"`
	Extension   string `json:"extension"`
	Size        string `json:"size"`
	ContentType string `json:"content_type"`
	Preview     string `json:"preview,omitempty"`
	Error       string `json:"error,omitempty"`
}

type UploadResponse struct {
	Success  bool         `json:"success"`
	FileName string       `json:"filename"`
	Analysis FileAnalysis `json:"analysis"`
	Message  string       `json:"message"`
}

type FileResponse struct {
	ID        int64  `json:"id"`
	FileName  string `json:"filename"`
	FileType  string `json:"filetype"`
	Size      int64  `json:"size"`
	CreatedAt string `json:"created_at"`
}

type FileListResponse struct {
	Success bool           `json:"success"`
	Files   []FileResponse `json:"files"`
}
