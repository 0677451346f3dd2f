package controllers

import (
	"net/http"

	"eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/delivery/http/middleware"
	"eventbooking/internal/domain"
)

// PingResponse is the data payload for GET /api/admin/ping.
type PingResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

// Ping godoc
// @Summary Admin check
// @Description Succeeds only for callers holding the admin role.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains message and username"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /api/admin/ping [get]
func Ping(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.Authorize(w, r, domain.RoleAdmin)
	if !ok {
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PingResponse{Message: "pong", Username: caller.Username})
}
