package handler

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/syedahamedali2521/sentiment-analysis-app/internal/adapter/csvinput"
)

// UploadField is the multipart field carrying the CSV file
const UploadField = "file"

// IsBlank reports whether text has no non-whitespace characters
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// ExtractCSVTexts reads the text column of the CSV uploaded in field.
// The CSV reader's errors are returned as is so their messages reach the client.
func ExtractCSVTexts(c *gin.Context, field string) ([]string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("missing upload field %q: %w", field, err)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	return csvinput.ReadTexts(f)
}
