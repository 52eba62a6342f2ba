package models

// API request/response structures

// APIResponse is the envelope for every JSON response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// AnalyticsOverview is the dashboard together with the first page of prompts
type AnalyticsOverview struct {
	Dashboard *Dashboard   `json:"dashboard"`
	Prompts   *PromptsPage `json:"prompts"`
}

// IndexNowRequest lists site URLs to submit to search engines
type IndexNowRequest struct {
	URLs []string `json:"urls" binding:"required"`
}

// IndexNowResult reports a submission
type IndexNowResult struct {
	Submitted int    `json:"submitted"`
	Status    int    `json:"status"`
	Endpoint  string `json:"endpoint"`
}
