package security

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/ZanzyTHEbar/resume-match-analyzer/internal/errors"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/types"
	"github.com/gin-gonic/gin"
)

const analyzeRequestKey = "analyze_request"

// SecurityConfig holds security configuration
type SecurityConfig struct {
	MaxInputChars  int           `json:"max_input_chars"`
	RequestTimeout time.Duration `json:"request_timeout"`
	AllowedOrigins []string      `json:"allowed_origins"`
}

// DefaultSecurityConfig returns secure defaults
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		MaxInputChars:  20000,
		RequestTimeout: 30 * time.Second,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// Worst-case wire size of one rune: a 4-byte rune is 12 bytes both
// percent-encoded in a form and as a \u surrogate pair in JSON.
const maxEncodedRuneBytes = 12

// Room for the report token, the remaining form fields and JSON syntax.
const bodyOverheadBytes = 128 * 1024

// MaxBodyBytes bounds a request body holding two fields of MaxInputChars
// runes each in their most expensive encoding.
func (c SecurityConfig) MaxBodyBytes() int64 {
	return int64(c.MaxInputChars)*2*maxEncodedRuneBytes + bodyOverheadBytes
}

// SecurityMiddleware validates and bounds incoming analysis requests
type SecurityMiddleware struct {
	config SecurityConfig
}

// NewSecurityMiddleware creates a new security middleware instance
func NewSecurityMiddleware(config SecurityConfig) *SecurityMiddleware {
	if config.MaxInputChars <= 0 {
		config.MaxInputChars = DefaultSecurityConfig().MaxInputChars
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = DefaultSecurityConfig().RequestTimeout
	}
	return &SecurityMiddleware{config: config}
}

// Config returns the effective configuration
func (sm *SecurityMiddleware) Config() SecurityConfig {
	return sm.config
}

// ValidateText checks one pasted text field. Free text is allowed as-is
// since every output path escapes it; only malformed or oversized input is rejected.
func (sm *SecurityMiddleware) ValidateText(field, text string) *apperrors.AppError {
	if !utf8.ValidString(text) {
		return apperrors.NewValidationError(field+" contains invalid UTF-8 encoding", field)
	}
	if strings.ContainsRune(text, 0) {
		return apperrors.NewValidationError(field+" contains invalid characters", field)
	}
	if utf8.RuneCountInString(text) > sm.config.MaxInputChars {
		return apperrors.NewPayloadTooLargeError(field, sm.config.MaxInputChars)
	}
	return nil
}

// ValidatePair validates both inputs, requiring non-blank text when required is set.
func (sm *SecurityMiddleware) ValidatePair(resumeText, jobText string, required bool) *apperrors.AppError {
	if err := sm.ValidateText("resumeText", resumeText); err != nil {
		return err
	}
	if err := sm.ValidateText("jobText", jobText); err != nil {
		return err
	}
	if !required {
		return nil
	}

	missing := map[string]string{}
	if strings.TrimSpace(resumeText) == "" {
		missing["resumeText"] = "resumeText is required"
	}
	if strings.TrimSpace(jobText) == "" {
		missing["jobText"] = "jobText is required"
	}
	switch len(missing) {
	case 0:
		return nil
	case 1:
		for _, msg := range missing {
			return apperrors.NewValidationError(msg)
		}
	}
	return apperrors.NewValidationErrorWithMap(missing)
}

// LimitBody caps the request body so oversized submissions fail while reading.
func (sm *SecurityMiddleware) LimitBody(c *gin.Context) {
	if c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, sm.config.MaxBodyBytes())
	}
	c.Next()
}

// ValidateContentType validates request content type
func (sm *SecurityMiddleware) ValidateContentType(c *gin.Context) {
	contentType := c.GetHeader("Content-Type")

	allowedTypes := []string{
		"application/json",
		"application/x-www-form-urlencoded",
		"multipart/form-data",
	}

	if contentType != "" {
		found := false
		for _, allowed := range allowedTypes {
			if strings.Contains(strings.ToLower(contentType), allowed) {
				found = true
				break
			}
		}

		if !found {
			appErr := apperrors.NewUnsupportedMediaTypeError(contentType)
			apperrors.LogError(c, appErr)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr)
			return
		}
	}

	c.Next()
}

// RequestTimeout enforces request timeout
func (sm *SecurityMiddleware) RequestTimeout(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), sm.config.RequestTimeout)
	defer cancel()

	c.Request = c.Request.WithContext(ctx)
	c.Header("X-Timeout", strconv.Itoa(int(sm.config.RequestTimeout.Seconds())))

	c.Next()
}

// ValidateAnalyzeRequest binds and validates the analyze endpoint body,
// storing the request in the context for the handler.
func (sm *SecurityMiddleware) ValidateAnalyzeRequest(c *gin.Context) {
	var req types.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.ToAppError(err)
		if appErr.Category != apperrors.CategoryPayloadTooLarge {
			appErr = apperrors.NewValidationError("invalid JSON format", err.Error())
		}
		apperrors.LogError(c, appErr)
		c.AbortWithStatusJSON(appErr.HTTPStatus, appErr)
		return
	}

	if appErr := sm.ValidatePair(req.ResumeText, req.JobText, true); appErr != nil {
		apperrors.LogError(c, appErr)
		c.AbortWithStatusJSON(appErr.HTTPStatus, appErr)
		return
	}

	c.Set(analyzeRequestKey, req)
	c.Next()
}

// AnalyzeRequestFrom returns the request stored by ValidateAnalyzeRequest
func AnalyzeRequestFrom(c *gin.Context) (types.AnalyzeRequest, bool) {
	v, ok := c.Get(analyzeRequestKey)
	if !ok {
		return types.AnalyzeRequest{}, false
	}
	req, ok := v.(types.AnalyzeRequest)
	return req, ok
}
