package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ptsportal/api/internal/ids"
	"ptsportal/api/internal/middleware"
	"ptsportal/api/internal/models"
	"ptsportal/api/internal/repository"
	"ptsportal/api/internal/service"
)

type officerResponse struct {
	UserID   string `json:"user"`
	Position string `json:"position"`
	Image    string `json:"image"`
}

type committeeResponse struct {
	ID       string            `json:"_id"`
	Name     string            `json:"name"`
	Officers []officerResponse `json:"officers"`
}

func toCommitteeResponse(committee models.Committee) committeeResponse {
	officers := make([]officerResponse, 0, len(committee.Officers))
	for _, officer := range committee.Officers {
		officers = append(officers, officerResponse{
			UserID:   officer.UserID,
			Position: officer.Position,
			Image:    officer.Image,
		})
	}
	return committeeResponse{
		ID:       committee.ID,
		Name:     committee.Name,
		Officers: officers,
	}
}

func (h HandlerSet) ListCommittees(c *gin.Context) {
	committees, err := h.committees.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list committees failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := make([]committeeResponse, 0, len(committees))
	for _, committee := range committees {
		resp = append(resp, toCommitteeResponse(committee))
	}
	c.JSON(http.StatusOK, resp)
}

type createCommitteeRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateCommittee inserts the committee and mirrors its name into the
// Committees library entry. The mirror write is best-effort, same as the
// cleanup on delete.
func (h HandlerSet) CreateCommittee(c *gin.Context) {
	var req createCommitteeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	committee := models.Committee{
		ID:   ids.New(),
		Name: req.Name,
	}

	if err := h.committees.Create(c.Request.Context(), committee); err != nil {
		h.log.Error().Err(err).Msg("create committee failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	if err := h.libraries.AddContent(c.Request.Context(), models.LibraryCommittees, req.Name); err != nil {
		h.log.Warn().Err(err).Str("committee", req.Name).Msg("library index not updated")
	}

	c.JSON(http.StatusCreated, gin.H{"_id": committee.ID})
}

// Committee dispatches on method for a single committee. Deletion removes the
// document first, then best-effort pulls the name from the library index; the
// two writes are not atomic and a failed pull leaves the index stale by
// design of the denormalization.
func (h HandlerSet) Committee(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodDelete:
		h.deleteCommittee(c)
	default:
		c.Header("Allow", "DELETE")
		c.Status(http.StatusMethodNotAllowed)
	}
}

func (h HandlerSet) deleteCommittee(c *gin.Context) {
	committeeID := c.Param("committeeId")

	name, err := h.committees.Delete(c.Request.Context(), committeeID)
	if err != nil {
		if errors.Is(err, repository.ErrCommitteeNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Str("committee_id", committeeID).Msg("delete committee failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	if err := h.libraries.RemoveContent(c.Request.Context(), models.LibraryCommittees, name); err != nil {
		h.log.Warn().Err(err).Str("committee", name).Msg("library index left stale")
	}

	c.Status(http.StatusNoContent)
}

type addOfficerRequest struct {
	UserID   string `json:"user" binding:"required"`
	Position string `json:"position" binding:"required"`
	Image    string `json:"image"`
}

// AddOfficer appends an officer entry. The user reference must resolve at
// write time; stale references are only tolerated on read.
func (h HandlerSet) AddOfficer(c *gin.Context) {
	var req addOfficerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.users.GetByID(c.Request.Context(), req.UserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown user"})
			return
		}
		h.log.Error().Err(err).Str("user_id", req.UserID).Msg("officer user lookup failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	officer := models.Officer{
		UserID:   req.UserID,
		Position: req.Position,
		Image:    req.Image,
	}

	if err := h.committees.AddOfficer(c.Request.Context(), c.Param("committeeId"), officer); err != nil {
		h.log.Error().Err(err).Msg("add officer failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusCreated)
}

// Officer dispatches on method for a single officer entry within a committee.
func (h HandlerSet) Officer(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodPatch:
		h.patchOfficer(c)
	case http.MethodDelete:
		h.removeOfficer(c)
	default:
		c.Header("Allow", "PATCH, DELETE")
		c.Status(http.StatusMethodNotAllowed)
	}
}

type patchOfficerRequest struct {
	Image    string `json:"image"`
	UserType string `json:"userType"`
}

// patchOfficer updates the officer's portrait, and — only when the caller is
// the designated service account — also updates the referenced user's
// directory role. The two writes are independent; a failed role update does
// not roll back the image.
func (h HandlerSet) patchOfficer(c *gin.Context) {
	session, ok := middleware.CurrentUser(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}

	var req patchOfficerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	committeeID := c.Param("committeeId")
	userID := c.Param("id")

	if err := h.committees.UpdateOfficerImage(c.Request.Context(), committeeID, userID, req.Image); err != nil {
		if errors.Is(err, repository.ErrOfficerNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Str("committee_id", committeeID).Str("user_id", userID).Msg("officer image update failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	if req.UserType != "" {
		err := h.members.GrantRole(c.Request.Context(), session, userID, models.UserType(req.UserType))
		switch {
		case err == nil:
		case errors.Is(err, service.ErrRoleGrantDenied):
			// Only the service account may grant roles; other admins just
			// update the image.
		default:
			h.log.Error().Err(err).Str("user_id", userID).Msg("role grant failed")
			c.Status(http.StatusInternalServerError)
			return
		}
	}

	c.Status(http.StatusNoContent)
}

func (h HandlerSet) removeOfficer(c *gin.Context) {
	committeeID := c.Param("committeeId")
	userID := c.Param("id")

	if err := h.committees.RemoveOfficer(c.Request.Context(), committeeID, userID); err != nil {
		if errors.Is(err, repository.ErrOfficerNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Str("committee_id", committeeID).Str("user_id", userID).Msg("remove officer failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusNoContent)
}
