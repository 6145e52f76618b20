package http

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Aiko543/quotedeck/internal/audit"
	"github.com/Aiko543/quotedeck/internal/importers"
)

// Maximum file size for quote imports (5 MB)
const maxImportFileSize = 5 * 1024 * 1024

type JSONImportController struct {
	importer *importers.JSONImporter
	auditor  *audit.Auditor
}

// NewJSONImportController creates the import controller. The auditor is
// optional; when set, every accepted payload is archived before import.
func NewJSONImportController(importer *importers.JSONImporter, auditor *audit.Auditor) *JSONImportController {
	return &JSONImportController{
		importer: importer,
		auditor:  auditor,
	}
}

type ImportResponse struct {
	Imported int    `json:"imported"`
	Message  string `json:"message"`
}

// Import accepts quotes as JSON, either as a multipart upload under the
// "file" field or as a raw request body. Imported quotes are appended to
// the store; existing quotes are never touched.
func (controller *JSONImportController) Import(c *gin.Context) {
	data, err := controller.readPayload(c)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if controller.auditor != nil {
		if _, err := controller.auditor.SaveRaw(data); err != nil {
			// Auditing is best effort; the import itself still proceeds
			log.Printf("Failed to save import audit file: %v", err)
		}
	}

	imported, err := controller.importer.Import(data)
	if err != nil {
		if errors.Is(err, importers.ErrNotArray) {
			c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.IndentedJSON(http.StatusOK, ImportResponse{
		Imported: imported,
		Message:  "Quotes imported successfully!",
	})
}

func (controller *JSONImportController) readPayload(c *gin.Context) ([]byte, error) {
	contentType := c.GetHeader("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return nil, errors.New("file field is required")
		}
		if fileHeader.Size > maxImportFileSize {
			return nil, errors.New("file exceeds maximum size of 5 MB")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return nil, err
		}
		defer file.Close()

		return io.ReadAll(io.LimitReader(file, maxImportFileSize))
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportFileSize))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("request body is empty")
	}
	return data, nil
}
