package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aiko543/quotedeck/internal/exporters"
)

type ExportController struct {
	exporter *exporters.JSONExporter
}

func NewExportController(exporter *exporters.JSONExporter) *ExportController {
	return &ExportController{
		exporter: exporter,
	}
}

// Export streams the full quote collection as a downloadable JSON file.
func (controller *ExportController) Export(c *gin.Context) {
	data, err := controller.exporter.Export()
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", exporters.ExportFileName))
	c.Data(http.StatusOK, "application/json", data)
}
