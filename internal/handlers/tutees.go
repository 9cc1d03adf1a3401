package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ptsportal/api/internal/models"
	"ptsportal/api/internal/repository"
)

func (h HandlerSet) ListTutees(c *gin.Context) {
	tutees, err := h.tutees.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list tutees failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	type tuteeResponse struct {
		ID        string   `json:"_id"`
		FirstName string   `json:"firstName"`
		LastName  string   `json:"lastName"`
		IDNumber  int      `json:"idNumber"`
		Email     string   `json:"email"`
		Campus    string   `json:"campus"`
		College   string   `json:"college"`
		Course    string   `json:"course"`
		Contact   string   `json:"contact"`
		URL       string   `json:"url"`
		Friends   []string `json:"friends"`
		Schedule  string   `json:"schedule"`
	}

	resp := make([]tuteeResponse, 0, len(tutees))
	for _, tutee := range tutees {
		resp = append(resp, tuteeResponse{
			ID:        tutee.ID,
			FirstName: tutee.FirstName,
			LastName:  tutee.LastName,
			IDNumber:  tutee.IDNumber,
			Email:     tutee.Email,
			Campus:    tutee.Campus,
			College:   tutee.College,
			Course:    tutee.Course,
			Contact:   tutee.Contact,
			URL:       tutee.URL,
			Friends:   tutee.Friends,
			Schedule:  tutee.ScheduleID,
		})
	}
	c.JSON(http.StatusOK, resp)
}

type createTuteeRequest struct {
	FirstName string   `json:"firstName" binding:"required"`
	LastName  string   `json:"lastName" binding:"required"`
	IDNumber  int      `json:"idNumber"`
	Email     string   `json:"email" binding:"required,email"`
	Campus    string   `json:"campus"`
	College   string   `json:"college"`
	Course    string   `json:"course"`
	Contact   string   `json:"contact"`
	URL       string   `json:"url"`
	Friends   []string `json:"friends"`
	Slots     []string `json:"slots"`
}

// CreateTutee is the public signup form. The availability schedule is created
// before the tutee row so the stored reference always resolves.
func (h HandlerSet) CreateTutee(c *gin.Context) {
	var req createTuteeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tutee := models.Tutee{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IDNumber:  req.IDNumber,
		Email:     req.Email,
		Campus:    req.Campus,
		College:   req.College,
		Course:    req.Course,
		Contact:   req.Contact,
		URL:       req.URL,
		Friends:   req.Friends,
	}

	created, err := h.tuteeSvc.Register(c.Request.Context(), tutee, req.Slots)
	if err != nil {
		h.log.Error().Err(err).Msg("tutee signup failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"_id":      created.ID,
		"schedule": created.ScheduleID,
	})
}

// Tutee dispatches on method for a single tutee record.
func (h HandlerSet) Tutee(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodDelete:
		h.deleteTutee(c)
	default:
		c.Header("Allow", "DELETE")
		c.Status(http.StatusMethodNotAllowed)
	}
}

func (h HandlerSet) deleteTutee(c *gin.Context) {
	id := c.Param("id")

	if err := h.tuteeSvc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrTuteeNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Str("tutee_id", id).Msg("delete tutee failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusNoContent)
}
