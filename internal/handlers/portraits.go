package handlers

import (
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"ptsportal/api/internal/ids"
)

var portraitContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// UploadPortrait stores an officer portrait and returns the URL the admin
// console then patches onto the officer entry.
func (h HandlerSet) UploadPortrait(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file required"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	ext, ok := portraitContentTypes[contentType]
	if !ok {
		ext = path.Ext(fileHeader.Filename)
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" && ext != ".gif" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image type"})
			return
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer file.Close()

	key := ids.New() + ext
	url, err := h.portraits.UploadPortrait(c.Request.Context(), key, contentType, file, fileHeader.Size)
	if err != nil {
		h.log.Error().Err(err).Str("key", key).Msg("portrait upload failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
