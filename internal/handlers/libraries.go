package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ptsportal/api/internal/models"
	"ptsportal/api/internal/repository"
)

type libraryResponse struct {
	ID      string   `json:"_id"`
	Content []string `json:"content"`
}

func (h HandlerSet) ListLibraries(c *gin.Context) {
	entries, err := h.libraries.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list libraries failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := make([]libraryResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, libraryResponse{ID: entry.ID, Content: entry.Content})
	}
	c.JSON(http.StatusOK, resp)
}

func (h HandlerSet) GetLibrary(c *gin.Context) {
	entry, err := h.libraries.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrLibraryNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Msg("get library failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, libraryResponse{ID: entry.ID, Content: entry.Content})
}

type createLibraryRequest struct {
	ID      string   `json:"_id" binding:"required"`
	Content []string `json:"content"`
}

func (h HandlerSet) CreateLibrary(c *gin.Context) {
	var req createLibraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := models.LibraryEntry{
		ID:      req.ID,
		Content: req.Content,
	}
	if entry.Content == nil {
		entry.Content = []string{}
	}

	if err := h.libraries.Create(c.Request.Context(), entry); err != nil {
		h.log.Error().Err(err).Str("library_id", req.ID).Msg("create library failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, libraryResponse{ID: entry.ID, Content: entry.Content})
}

func (h HandlerSet) DeleteLibrary(c *gin.Context) {
	if err := h.libraries.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrLibraryNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Msg("delete library failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusNoContent)
}
