package middleware

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hotel-nepal/utils"
	"hotel-nepal/validation"
)

// RejectUnsafeInput runs the denylist over every string a write request
// carries: query values, JSON values at any depth and form fields. Bodies
// that are not forms are treated as JSON whatever their Content-Type. Upload
// parts and base64 data URLs are not scanned. The JSON body is restored for
// the handler.
func RejectUnsafeInput(maxBody int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}

		var values []string
		for _, vs := range c.Request.URL.Query() {
			values = append(values, vs...)
		}

		switch c.ContentType() {
		case gin.MIMEMultipartPOSTForm:
			if err := c.Request.ParseMultipartForm(maxBody); err != nil {
				utils.AbortJSONError(c, http.StatusBadRequest, "Invalid form data")
				return
			}
			for _, vs := range c.Request.MultipartForm.Value {
				values = append(values, vs...)
			}
		case gin.MIMEPOSTForm:
			if err := c.Request.ParseForm(); err == nil {
				for _, vs := range c.Request.PostForm {
					values = append(values, vs...)
				}
			}
		default:
			// JSON binding ignores Content-Type, so any other body is scanned as JSON.
			if c.Request.Body == nil || c.Request.Body == http.NoBody {
				break
			}
			body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBody))
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					utils.AbortJSONError(c, http.StatusRequestEntityTooLarge, "Request body too large")
					return
				}
				utils.AbortJSONError(c, http.StatusBadRequest, "Invalid request body")
				return
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(body))

			var doc any
			if json.Unmarshal(body, &doc) == nil {
				values = collectStrings(doc, values)
			}
		}

		if verr := validation.CheckUnsafe(values...); verr != nil {
			utils.AbortJSONError(c, verr.Status, verr.Message)
			return
		}
		c.Next()
	}
}

func collectStrings(v any, out []string) []string {
	switch t := v.(type) {
	case string:
		if isEncodedImage(t) {
			return out
		}
		return append(out, t)
	case []any:
		for _, e := range t {
			out = collectStrings(e, out)
		}
	case map[string]any:
		for k, e := range t {
			out = append(out, k)
			out = collectStrings(e, out)
		}
	}
	return out
}

// isEncodedImage matches data URLs and long raw base64 payloads.
func isEncodedImage(s string) bool {
	if strings.HasPrefix(s, "data:") && strings.Contains(s[:min(len(s), 100)], ";base64,") {
		return true
	}
	if len(s) < 256 {
		return false
	}
	_, err := base64.StdEncoding.DecodeString(s)
	return err == nil
}
