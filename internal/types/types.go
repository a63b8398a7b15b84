package types

import "time"

// AnalyzeRequest is the body of POST /api/analyze
type AnalyzeRequest struct {
	ResumeText string `json:"resumeText" example:"Software Engineer, 2021 - present. Built Go services."`
	JobText    string `json:"jobText" example:"Requirements: 3+ years of Go, SQL. Preferred: AWS."`
}

// ErrorResponse is the body of every API error
type ErrorResponse struct {
	Code       string            `json:"code" example:"VALIDATION_ERROR"`
	Category   string            `json:"category" example:"validation"`
	HTTPStatus int               `json:"http_status" example:"400"`
	Msg        string            `json:"msg" example:"resumeText is required"`
	Details    map[string]string `json:"details,omitempty"`
	RequestID  string            `json:"request_id,omitempty"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status    string    `json:"status" example:"healthy"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version" example:"1.0.0"`
	Mode      string    `json:"mode" example:"keyword"`
	Database  string    `json:"database" example:"ok"`
	Redis     string    `json:"redis" example:"disabled"`
}
