// internal/interfaces/http/handlers/staff.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/domain/staff"
)

// StaffHandler handles the admin staff management screen
type StaffHandler struct {
	staffService *staff.Service
}

// NewStaffHandler creates a new staff management handler
func NewStaffHandler(svc *staff.Service) *StaffHandler {
	return &StaffHandler{staffService: svc}
}

// List handles GET /staff, re-reading from the server
func (h *StaffHandler) List(c *gin.Context) {
	list, err := h.staffService.Refresh(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": list,
	})
}

// Create handles POST /staff
func (h *StaffHandler) Create(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "username, password and role are required",
		})
		return
	}

	if err := h.staffService.Create(c.Request.Context(), req.Username, req.Password, req.Role); err != nil {
		fail(c, err)
		return
	}

	list, err := h.staffService.Refresh(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Staff member created",
		"data":    list,
	})
}

// ToggleActive handles POST /staff/:id/toggle. The cached list is patched
// optimistically; the response carries the re-synced server list.
func (h *StaffHandler) ToggleActive(c *gin.Context) {
	staffID, err := parseID(c, "id")
	if err != nil {
		return
	}

	if err := h.staffService.ToggleActive(c.Request.Context(), staffID); err != nil {
		fail(c, err)
		return
	}

	list, err := h.staffService.Refresh(c.Request.Context())
	if err != nil {
		// The toggle itself succeeded; fall back to the cached list
		list = h.staffService.List()
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Staff member updated",
		"data":    list,
	})
}

// Delete handles DELETE /staff/:id
func (h *StaffHandler) Delete(c *gin.Context) {
	staffID, err := parseID(c, "id")
	if err != nil {
		return
	}

	if err := h.staffService.Delete(c.Request.Context(), staffID); err != nil {
		fail(c, err)
		return
	}

	list, err := h.staffService.Refresh(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Staff member deleted",
		"data":    list,
	})
}
