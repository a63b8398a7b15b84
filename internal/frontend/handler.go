package frontend

import (
	"log/slog"
	"net/http"

	apperrors "github.com/ZanzyTHEbar/resume-match-analyzer/internal/errors"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/matching"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/render"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/security"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/state"
	"github.com/gin-gonic/gin"
)

// Form actions posted by the page buttons.
const (
	ActionAnalyze     = "analyze"
	ActionToggleTheme = "toggle-theme"
)

const restoreFailedMsg = "Previous results could not be restored. Run the analysis again."

// PageHandler serves the analyzer page. The page holds no server-side
// session: inputs, theme and the current report round-trip through the form.
type PageHandler struct {
	service  *matching.Service
	security *security.SecurityMiddleware
}

// NewPageHandler creates the page handler
func NewPageHandler(service *matching.Service, sm *security.SecurityMiddleware) *PageHandler {
	return &PageHandler{service: service, security: sm}
}

// Register mounts the page routes on r
func (h *PageHandler) Register(r gin.IRoutes) {
	r.GET("/", h.Show)
	r.POST("/", h.Submit)
}

// Show renders the initial page: empty inputs, no results, theme from ?theme=.
func (h *PageHandler) Show(c *gin.Context) {
	st := state.New().WithTheme(state.Theme(c.Query("theme")))
	h.render(c, http.StatusOK, st, "")
}

// Submit applies one form action to the posted state and re-renders.
func (h *PageHandler) Submit(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		appErr := apperrors.ToAppError(err)
		if appErr.Category != apperrors.CategoryPayloadTooLarge {
			appErr = apperrors.NewValidationError("invalid form submission", err.Error())
		}
		apperrors.LogError(c, appErr)
		h.render(c, appErr.HTTPStatus, state.New().WithTheme(state.Theme(c.Query("theme"))), appErr.ErrBuilder.Msg)
		return
	}

	st := state.New().
		WithTheme(state.Theme(c.PostForm("theme"))).
		SetResumeText(c.PostForm("resumeText")).
		SetJobText(c.PostForm("jobText"))

	if appErr := h.security.ValidatePair(st.ResumeText, st.JobText, false); appErr != nil {
		apperrors.LogError(c, appErr)
		// Echoing oversized or malformed text back would repeat the problem.
		h.render(c, appErr.HTTPStatus, state.New().WithTheme(st.Theme), appErr.ErrBuilder.Msg)
		return
	}

	var notice string
	prev, err := state.DecodeReport(c.PostForm("report"))
	if err != nil {
		slog.Warn("Discarding report token", "error", err, "ip", c.ClientIP())
		notice = restoreFailedMsg
	}
	st.Report = prev

	switch c.PostForm("action") {
	case ActionToggleTheme:
		st = st.ToggleTheme()
	case ActionAnalyze:
		st = st.RunAnalysis(h.service.Producer(c.Request.Context()))
		if st.Report != prev {
			notice = ""
		}
	default:
		appErr := apperrors.NewValidationError("unknown action", c.PostForm("action"))
		apperrors.LogError(c, appErr)
		h.render(c, appErr.HTTPStatus, st, "Unknown action.")
		return
	}

	h.render(c, http.StatusOK, st, notice)
}

func (h *PageHandler) render(c *gin.Context, status int, st state.State, errMsg string) {
	nonce := security.GetNonce(c)
	if nonce == "" {
		slog.Warn("CSP nonce not found in context, generating new one")
		var err error
		nonce, err = security.GenerateNonce()
		if err != nil {
			appErr := apperrors.NewInternalError("Failed to generate nonce", err)
			apperrors.LogError(c, appErr)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr)
			return
		}
	}

	if err := RenderPage(c, status, render.Page{State: st, Nonce: nonce, Error: errMsg}); err != nil {
		appErr := apperrors.NewInternalError("Failed to render page", err)
		apperrors.LogError(c, appErr)
		c.AbortWithStatusJSON(appErr.HTTPStatus, appErr)
	}
}
