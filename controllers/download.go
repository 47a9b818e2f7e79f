package controllers

import (
	"net/http"

	"optimasfibre-web/services"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var exportExtensions = map[string]string{
	"pdf":   ".pdf",
	"excel": ".xlsx",
}

// streamDownload copies a backend export to the client without buffering it.
func streamDownload(c *gin.Context, dl *services.Download, fallbackName string) {
	defer dl.Body.Close()

	name := dl.Filename
	if name == "" {
		name = fallbackName
	}
	c.DataFromReader(http.StatusOK, dl.Size, dl.ContentType, dl.Body, map[string]string{
		"Content-Disposition": `attachment; filename="` + name + `"`,
	})
}
