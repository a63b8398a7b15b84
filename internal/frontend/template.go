package frontend

import (
	"bytes"
	"fmt"

	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/render"
	"github.com/gin-gonic/gin"
)

// RenderPage renders p and writes it with no-store caching, since the page
// carries the user's pasted text.
func RenderPage(c *gin.Context, status int, p render.Page) error {
	var buf bytes.Buffer
	if err := render.HTML(&buf, p); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")

	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
	return nil
}
