package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syedahamedali2521/sentiment-analysis-app/internal/adapter/csvinput"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newUploadRequest builds a multipart request with content under field
func newUploadRequest(t *testing.T, target, field, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if field != "" {
		part, err := writer.CreateFormFile(field, "reviews.csv")
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestIsBlank(t *testing.T) {
	tests := []struct {
		text     string
		expected bool
	}{
		{text: "", expected: true},
		{text: "   ", expected: true},
		{text: "\n\t", expected: true},
		{text: "ok", expected: false},
		{text: "  ok  ", expected: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, IsBlank(tt.text), "text %q", tt.text)
	}
}

func TestExtractCSVTexts(t *testing.T) {
	t.Run("reads uploaded texts", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = newUploadRequest(t, "/", UploadField, "text\ngood\nbad\n")

		texts, err := ExtractCSVTexts(c, UploadField)

		require.NoError(t, err)
		assert.Equal(t, []string{"good", "bad"}, texts)
	})

	t.Run("missing file field", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = newUploadRequest(t, "/", "", "")

		_, err := ExtractCSVTexts(c, UploadField)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing upload field")
	})

	t.Run("missing text column", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = newUploadRequest(t, "/", UploadField, "review\nnice\n")

		_, err := ExtractCSVTexts(c, UploadField)

		assert.ErrorIs(t, err, csvinput.ErrMissingTextColumn)
	})
}
