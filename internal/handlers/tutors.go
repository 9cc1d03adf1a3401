package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ptsportal/api/internal/ids"
	"ptsportal/api/internal/models"
	"ptsportal/api/internal/repository"
)

type tutorResponse struct {
	userResponse
	Status string `json:"status"`
}

func (h HandlerSet) ListTutors(c *gin.Context) {
	tutors, err := h.users.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list tutors failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := make([]tutorResponse, 0, len(tutors))
	for _, tutor := range tutors {
		resp = append(resp, tutorResponse{
			userResponse: toUserResponse(tutor),
			Status:       tutor.Status(),
		})
	}
	c.JSON(http.StatusOK, resp)
}

type createTutorRequest struct {
	Email      string `json:"email" binding:"required,email"`
	FirstName  string `json:"firstName" binding:"required"`
	MiddleName string `json:"middleName"`
	LastName   string `json:"lastName" binding:"required"`
	IDNumber   int    `json:"idNumber"`
	Course     string `json:"course"`
	Contact    string `json:"contact"`
	Terms      int    `json:"terms"`
	URL        string `json:"url"`
	UserType   string `json:"userType"`
}

// CreateTutor provisions a directory record. This is the only way accounts
// come to exist; signing in never creates one.
func (h HandlerSet) CreateTutor(c *gin.Context) {
	var req createTutorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))

	if _, err := h.users.FindByEmail(c.Request.Context(), email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already provisioned"})
		return
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		h.log.Error().Err(err).Msg("provision lookup failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	userType := models.UserTypeMember
	if req.UserType == string(models.UserTypeAdmin) {
		userType = models.UserTypeAdmin
	}

	user := models.User{
		ID:         ids.New(),
		Email:      email,
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		LastName:   req.LastName,
		IDNumber:   req.IDNumber,
		Course:     req.Course,
		Contact:    req.Contact,
		Terms:      req.Terms,
		URL:        req.URL,
		UserType:   userType,
		Membership: true,
	}

	if err := h.users.Create(c.Request.Context(), user); err != nil {
		h.log.Error().Err(err).Msg("provision user failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"_id": user.ID})
}

// Tutor dispatches on method for a single tutor record.
func (h HandlerSet) Tutor(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodDelete:
		h.deleteTutor(c)
	default:
		c.Header("Allow", "DELETE")
		c.Status(http.StatusMethodNotAllowed)
	}
}

// deleteTutor removes the record and its owned schedule. The schedule goes
// first; it is only addressable through the tutor's stored reference.
func (h HandlerSet) deleteTutor(c *gin.Context) {
	id := c.Param("id")

	tutor, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Str("user_id", id).Msg("tutor lookup failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	if tutor.ScheduleID != nil {
		if err := h.schedules.Delete(c.Request.Context(), *tutor.ScheduleID); err != nil {
			h.log.Error().Err(err).Str("schedule_id", *tutor.ScheduleID).Msg("delete tutor schedule failed")
			c.Status(http.StatusInternalServerError)
			return
		}
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		h.log.Error().Err(err).Str("user_id", id).Msg("delete tutor failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusNoContent)
}
