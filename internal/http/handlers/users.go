// User HTTP handlers.
//
//   - GET   /users/{email}/role       (fetch a user record by email)
//   - POST  /users                    (register)
//   - PATCH /users                    (profile update)
//   - GET   /users                    (admin list, paginated)
//   - PATCH /users/{id}/changeStatus  (admin)
//   - PATCH /users/{id}/changeRole    (admin)
//   - POST  /donorsData               (public donor search)
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/bloodx-backend/internal/domain"
	"github.com/tbourn/bloodx-backend/internal/repo"
	"github.com/tbourn/bloodx-backend/internal/services"
	"github.com/tbourn/bloodx-backend/internal/utils"
)

// CreateUserRequest is the registration payload. Role and status are not
// accepted; the server assigns them.
type CreateUserRequest struct {
	Email      string `json:"email" binding:"required,email" example:"donor@bloodx.org"`
	Name       string `json:"name" example:"Rahim Uddin"`
	Avatar     string `json:"avatar" example:"https://i.ibb.co/avatar.png"`
	District   string `json:"district" example:"Dhaka"`
	Upazila    string `json:"upazila" example:"Savar"`
	BloodGroup string `json:"bloodGroup" example:"O+"`
}

// UpdateProfileRequest carries the user id and the fields to change. Blank
// fields keep their stored value.
type UpdateProfileRequest struct {
	ID         string `json:"_id" binding:"required" example:"3f2c1a9e-5b7d-4c8e-9f10-1234567890ab"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Avatar     string `json:"avatar"`
	District   string `json:"district"`
	Upazila    string `json:"upazila"`
	BloodGroup string `json:"bloodGroup"`
}

// ChangeStatusRequest sets an account status.
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required" example:"Blocked"`
}

// ChangeRoleRequest sets an account role.
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required" example:"Volunteer"`
}

// DonorSearchRequest filters the donor search. Blank fields are ignored.
type DonorSearchRequest struct {
	District   string `json:"district" example:"dhaka"`
	Upazila    string `json:"upazila" example:"savar"`
	BloodGroup string `json:"bloodGroup" example:"A+"`
}

// ListUsersResponse is a page of users with the filtered total.
type ListUsersResponse struct {
	Result     []domain.User `json:"result"`
	TotalUsers int64         `json:"totalUsers"`
}

// GetUser godoc
// @ID          getUserByEmail
// @Summary     Fetch a user by email
// @Description Returns the stored user record, including its role.
// @Tags        Users
// @Produce     json
// @Security    BearerAuth
// @Param       email  path  string  true  "User email"  example(donor@bloodx.org)
// @Success     200  {object}  domain.User
// @Failure     401  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /users/{email}/role [get]
func (h *Handlers) GetUser(c *gin.Context) {
	u, err := h.users.GetByEmail(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, u)
}

// CreateUser godoc
// @ID          createUser
// @Summary     Register a user
// @Description Stores a new user as an active donor.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CreateUserRequest  true  "User profile"
// @Success     201  {object}  domain.InsertResult
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     409  {object}  handlers.ErrorResponse  "Email already registered"
// @Router      /users [post]
func (h *Handlers) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "a valid email is required")
		return
	}
	res, err := h.users.Register(c.Request.Context(), domain.User{
		Email:      req.Email,
		Name:       strings.TrimSpace(req.Name),
		Avatar:     strings.TrimSpace(req.Avatar),
		District:   strings.TrimSpace(req.District),
		Upazila:    strings.TrimSpace(req.Upazila),
		BloodGroup: strings.TrimSpace(req.BloodGroup),
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, res)
}

// UpdateProfile godoc
// @ID          updateProfile
// @Summary     Update a user profile
// @Tags        Users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body  handlers.UpdateProfileRequest  true  "Profile fields"
// @Success     200  {object}  domain.UpdateResult
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     403  {object}  handlers.ErrorResponse  "Not the owner, or an email change by a non-admin"
// @Failure     404  {object}  handlers.ErrorResponse
// @Failure     409  {object}  handlers.ErrorResponse  "Email already registered"
// @Router      /users [patch]
func (h *Handlers) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "_id is required")
		return
	}
	res, err := h.users.UpdateProfile(c.Request.Context(), principal(c), req.ID, repo.ProfileUpdate{
		Name:       strings.TrimSpace(req.Name),
		Email:      req.Email,
		Avatar:     strings.TrimSpace(req.Avatar),
		District:   strings.TrimSpace(req.District),
		Upazila:    strings.TrimSpace(req.Upazila),
		BloodGroup: strings.TrimSpace(req.BloodGroup),
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, res)
}

// ListUsers godoc
// @ID          listUsers
// @Summary     List users (admin)
// @Tags        Users
// @Produce     json
// @Security    BearerAuth
// @Param       status  query  string  false  "Active or Blocked"
// @Param       skip    query  int     false  "Records to skip"  minimum(0)
// @Param       limit   query  int     false  "Page size, 0 for all"  minimum(0)
// @Success     200  {object}  handlers.ListUsersResponse
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     403  {object}  handlers.ErrorResponse
// @Router      /users [get]
func (h *Handlers) ListUsers(c *gin.Context) {
	skip, limit := utils.Window(c.Query("skip"), c.Query("limit"))
	items, total, err := h.users.ListPage(c.Request.Context(), strings.TrimSpace(c.Query("status")), skip, limit)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ListUsersResponse{Result: items, TotalUsers: total})
}

// ChangeUserStatus godoc
// @ID          changeUserStatus
// @Summary     Block or unblock a user (admin)
// @Tags        Users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path  string  true  "User ID (UUID)"  format(uuid)
// @Param       body  body  handlers.ChangeStatusRequest  true  "New status"
// @Success     200  {object}  domain.UpdateResult
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     403  {object}  handlers.ErrorResponse
// @Router      /users/{id}/changeStatus [patch]
func (h *Handlers) ChangeUserStatus(c *gin.Context) {
	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "status is required")
		return
	}
	res, err := h.users.ChangeStatus(c.Request.Context(), c.Param("id"), strings.TrimSpace(req.Status))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, res)
}

// ChangeUserRole godoc
// @ID          changeUserRole
// @Summary     Change a user's role (admin)
// @Tags        Users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path  string  true  "User ID (UUID)"  format(uuid)
// @Param       body  body  handlers.ChangeRoleRequest  true  "New role"
// @Success     200  {object}  domain.UpdateResult
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     403  {object}  handlers.ErrorResponse
// @Router      /users/{id}/changeRole [patch]
func (h *Handlers) ChangeUserRole(c *gin.Context) {
	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "role is required")
		return
	}
	res, err := h.users.ChangeRole(c.Request.Context(), c.Param("id"), strings.TrimSpace(req.Role))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, res)
}

// SearchDonors godoc
// @ID          searchDonors
// @Summary     Search active donors
// @Description District and upazila match case-insensitively on substrings; blood group matches exactly.
// @Tags        Donors
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.DonorSearchRequest  true  "Search filters"
// @Success     200  {array}   domain.User
// @Failure     400  {object}  handlers.ErrorResponse
// @Router      /donorsData [post]
func (h *Handlers) SearchDonors(c *gin.Context) {
	var req DonorSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	items, err := h.users.SearchDonors(c.Request.Context(), services.DonorQuery{
		District:   strings.TrimSpace(req.District),
		Upazila:    strings.TrimSpace(req.Upazila),
		BloodGroup: strings.TrimSpace(req.BloodGroup),
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, items)
}
