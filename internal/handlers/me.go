package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ptsportal/api/internal/middleware"
	"ptsportal/api/internal/models"
	"ptsportal/api/internal/repository"
)

type userResponse struct {
	ID         string  `json:"_id"`
	Email      string  `json:"email"`
	FirstName  string  `json:"firstName"`
	MiddleName string  `json:"middleName"`
	LastName   string  `json:"lastName"`
	IDNumber   int     `json:"idNumber"`
	Course     string  `json:"course"`
	Contact    string  `json:"contact"`
	Terms      int     `json:"terms"`
	URL        string  `json:"url"`
	UserType   string  `json:"userType"`
	Membership bool    `json:"membership"`
	Reset      bool    `json:"reset"`
	Schedule   *string `json:"schedule"`
}

func toUserResponse(user models.User) userResponse {
	return userResponse{
		ID:         user.ID,
		Email:      user.Email,
		FirstName:  user.FirstName,
		MiddleName: user.MiddleName,
		LastName:   user.LastName,
		IDNumber:   user.IDNumber,
		Course:     user.Course,
		Contact:    user.Contact,
		Terms:      user.Terms,
		URL:        user.URL,
		UserType:   string(user.UserType),
		Membership: user.Membership,
		Reset:      user.Reset,
		Schedule:   user.ScheduleID,
	}
}

func (h HandlerSet) Me(c *gin.Context) {
	session, ok := middleware.CurrentUser(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), session.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Str("user_id", session.ID).Msg("load profile failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// MySchedule returns the schedule the session token's claim points at. The
// claim is copied at sign-in; a schedule assigned afterwards needs re-auth to
// show up, same as a role change.
func (h HandlerSet) MySchedule(c *gin.Context) {
	session, ok := middleware.CurrentUser(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}

	if session.ScheduleID == nil || *session.ScheduleID == "" {
		c.Status(http.StatusNotFound)
		return
	}

	schedule, err := h.schedules.GetByID(c.Request.Context(), *session.ScheduleID)
	if err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Str("schedule_id", *session.ScheduleID).Msg("load schedule failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"_id":   schedule.ID,
		"slots": schedule.Slots,
	})
}

type updateMeRequest struct {
	FirstName  *string `json:"firstName"`
	MiddleName *string `json:"middleName"`
	LastName   *string `json:"lastName"`
	IDNumber   *int    `json:"idNumber"`
	Course     *string `json:"course"`
	Contact    *string `json:"contact"`
	Terms      *int    `json:"terms"`
	URL        *string `json:"url"`
	Membership *bool   `json:"membership"`
	Reset      *bool   `json:"reset"`
}

// UpdateMe patches the caller's own profile. The membership renewal prompt
// sends membership plus reset=false; declining ends the membership and the
// client signs the user out afterwards.
func (h HandlerSet) UpdateMe(c *gin.Context) {
	session, ok := middleware.CurrentUser(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}

	var req updateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), session.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Str("user_id", session.ID).Msg("load profile failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	applyProfilePatch(&user, req)

	if err := h.users.UpdateProfile(c.Request.Context(), user); err != nil {
		h.log.Error().Err(err).Str("user_id", session.ID).Msg("update profile failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func applyProfilePatch(user *models.User, req updateMeRequest) {
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.MiddleName != nil {
		user.MiddleName = *req.MiddleName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.IDNumber != nil {
		user.IDNumber = *req.IDNumber
	}
	if req.Course != nil {
		user.Course = *req.Course
	}
	if req.Contact != nil {
		user.Contact = *req.Contact
	}
	if req.Terms != nil {
		user.Terms = *req.Terms
	}
	if req.URL != nil {
		user.URL = *req.URL
	}
	if req.Membership != nil {
		user.Membership = *req.Membership
	}
	if req.Reset != nil {
		user.Reset = *req.Reset
	}
}
