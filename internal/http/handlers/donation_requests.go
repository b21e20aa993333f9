// Donation-request HTTP handlers.
//
//   - GET    /donationRequests                     (list, filtered, paginated)
//   - GET    /donationRequests/{id}/request        (fetch one)
//   - GET    /donationRequests/{email}             (all for a requester)
//   - POST   /donationRequests                     (create, Idempotency-Key aware)
//   - PATCH  /donationRequests/{id}/request        (edit details)
//   - PATCH  /donationRequests/{id}/status         (set status)
//   - PATCH  /donationReqest/{id}/acceptRequest    (assign donor)
//   - DELETE /donationRequests/{id}/request        (delete)
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/bloodx-backend/internal/domain"
	"github.com/tbourn/bloodx-backend/internal/http/middleware"
	"github.com/tbourn/bloodx-backend/internal/services"
	"github.com/tbourn/bloodx-backend/internal/utils"
)

// HeaderReplayed marks a response served from a stored idempotent result.
const HeaderReplayed = "Idempotent-Replayed"

// CreateDonationRequestRequest is the payload for a new donation request.
// A blank requesterEmail defaults to the caller; a blank donationStatus to
// pending.
type CreateDonationRequestRequest struct {
	RequesterName     string `json:"requesterName" example:"Karim"`
	RequesterEmail    string `json:"requesterEmail" example:"karim@bloodx.org"`
	RecipientName     string `json:"recipientName" example:"Ayesha"`
	RecipientDistrict string `json:"recipientDistrict" example:"Dhaka"`
	RecipientUpazila  string `json:"recipientUpazila" example:"Savar"`
	HospitalName      string `json:"hospitalName" example:"Enam Medical College"`
	FullAddress       string `json:"fullAddress" example:"Savar, Dhaka"`
	BloodGroup        string `json:"bloodGroup" example:"B+"`
	DonationDate      string `json:"donationDate" example:"2024-07-01"`
	DonationTime      string `json:"donationTime" example:"10:30"`
	RequestMessage    string `json:"requestMessage" example:"Surgery scheduled"`
	DonationStatus    string `json:"donationStatus" example:"pending"`
}

// UpdateDonationStatusRequest sets only the status.
type UpdateDonationStatusRequest struct {
	DonationStatus string `json:"donationStatus" binding:"required" example:"done"`
}

// AcceptDonationRequestRequest assigns a donor. A blank donorEmail defaults to
// the caller; a blank donationStatus to inprogress.
type AcceptDonationRequestRequest struct {
	DonorName      string `json:"donorName" example:"Rahim"`
	DonorEmail     string `json:"donorEmail" example:"rahim@bloodx.org"`
	DonationStatus string `json:"donationStatus" example:"inprogress"`
}

// ListDonationRequestsResponse is a page of requests with the filtered total.
type ListDonationRequestsResponse struct {
	Result        []domain.DonationRequest `json:"result"`
	TotalRequests int64                    `json:"totalRequests"`
}

// ListDonationRequests godoc
// @ID          listDonationRequests
// @Summary     List donation requests
// @Description Newest first. totalRequests counts every request matching the filters.
// @Tags        DonationRequests
// @Produce     json
// @Param       email   query  string  false  "Requester email"
// @Param       status  query  string  false  "pending, inprogress, done or canceled"
// @Param       skip    query  int     false  "Records to skip"  minimum(0)
// @Param       limit   query  int     false  "Page size, 0 for all"  minimum(0)
// @Success     200  {object}  handlers.ListDonationRequestsResponse
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /donationRequests [get]
func (h *Handlers) ListDonationRequests(c *gin.Context) {
	skip, limit := utils.Window(c.Query("skip"), c.Query("limit"))
	items, total, err := h.requests.ListPage(c.Request.Context(), services.RequestQuery{
		RequesterEmail: strings.TrimSpace(c.Query("email")),
		Status:         strings.TrimSpace(c.Query("status")),
		Skip:           skip,
		Limit:          limit,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ListDonationRequestsResponse{Result: items, TotalRequests: total})
}

// GetDonationRequest godoc
// @ID          getDonationRequest
// @Summary     Fetch a donation request
// @Tags        DonationRequests
// @Produce     json
// @Security    BearerAuth
// @Param       id  path  string  true  "Request ID (UUID)"  format(uuid)
// @Success     200  {object}  domain.DonationRequest
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /donationRequests/{id}/request [get]
func (h *Handlers) GetDonationRequest(c *gin.Context) {
	r, err := h.requests.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, r)
}

// ListRequesterDonationRequests godoc
// @ID          listRequesterDonationRequests
// @Summary     List a requester's donation requests
// @Tags        DonationRequests
// @Produce     json
// @Security    BearerAuth
// @Param       email  path  string  true  "Requester email"
// @Success     200  {array}   domain.DonationRequest
// @Failure     400  {object}  handlers.ErrorResponse
// @Router      /donationRequests/{email} [get]
func (h *Handlers) ListRequesterDonationRequests(c *gin.Context) {
	items, err := h.requests.ListByRequester(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, items)
}

// CreateDonationRequest godoc
// @ID          createDonationRequest
// @Summary     Create a donation request
// @Description With an Idempotency-Key, repeating the call returns the original acknowledgment with 200 and Idempotent-Replayed: true.
// @Tags        DonationRequests
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       Idempotency-Key  header  string  false  "Client retry key"
// @Param       body  body  handlers.CreateDonationRequestRequest  true  "Request details"
// @Success     201  {object}  domain.InsertResult
// @Success     200  {object}  domain.InsertResult  "Replayed"
// @Failure     400  {object}  handlers.ErrorResponse
// @Router      /donationRequests [post]
func (h *Handlers) CreateDonationRequest(c *gin.Context) {
	var req CreateDonationRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	caller := principal(c)
	r := domain.DonationRequest{
		RequesterName:     strings.TrimSpace(req.RequesterName),
		RequesterEmail:    firstSet(req.RequesterEmail, caller),
		RecipientName:     req.RecipientName,
		RecipientDistrict: req.RecipientDistrict,
		RecipientUpazila:  req.RecipientUpazila,
		HospitalName:      req.HospitalName,
		FullAddress:       req.FullAddress,
		BloodGroup:        req.BloodGroup,
		DonationDate:      req.DonationDate,
		DonationTime:      req.DonationTime,
		RequestMessage:    req.RequestMessage,
		DonationStatus:    strings.TrimSpace(req.DonationStatus),
	}

	ctx := c.Request.Context()
	key, hasKey := middleware.GetIdempotencyKey(c)
	if !hasKey || caller == "" {
		res, err := h.requests.Create(ctx, r)
		if err != nil {
			failErr(c, err)
			return
		}
		ok(c, http.StatusCreated, res)
		return
	}

	res, replayed, err := h.requests.CreateIdempotent(ctx, caller, middleware.IdempotencyScope(c), key, r)
	if err != nil {
		failErr(c, err)
		return
	}
	if replayed {
		c.Header(HeaderReplayed, "true")
		ok(c, http.StatusOK, res)
		return
	}
	ok(c, http.StatusCreated, res)
}

// UpdateDonationRequest godoc
// @ID          updateDonationRequest
// @Summary     Edit a donation request
// @Description Overwrites blood group, date, time, address, hospital, recipient details and message.
// @Tags        DonationRequests
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path  string  true  "Request ID (UUID)"  format(uuid)
// @Param       body  body  domain.RequestDetails  true  "Editable fields"
// @Success     200  {object}  domain.UpdateResult
// @Failure     400  {object}  handlers.ErrorResponse
// @Router      /donationRequests/{id}/request [patch]
func (h *Handlers) UpdateDonationRequest(c *gin.Context) {
	var d domain.RequestDetails
	if err := c.ShouldBindJSON(&d); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	res, err := h.requests.UpdateDetails(c.Request.Context(), c.Param("id"), d)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, res)
}

// UpdateDonationStatus godoc
// @ID          updateDonationStatus
// @Summary     Set a donation request's status
// @Tags        DonationRequests
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path  string  true  "Request ID (UUID)"  format(uuid)
// @Param       body  body  handlers.UpdateDonationStatusRequest  true  "New status"
// @Success     200  {object}  domain.UpdateResult
// @Failure     400  {object}  handlers.ErrorResponse
// @Router      /donationRequests/{id}/status [patch]
func (h *Handlers) UpdateDonationStatus(c *gin.Context) {
	var req UpdateDonationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "donationStatus is required")
		return
	}
	res, err := h.requests.UpdateStatus(c.Request.Context(), c.Param("id"), strings.TrimSpace(req.DonationStatus))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, res)
}

// AcceptDonationRequest godoc
// @ID          acceptDonationRequest
// @Summary     Accept a donation request
// @Description Assigns the donor and sets the status. Also served at /donationRequests/{id}/acceptRequest.
// @Tags        DonationRequests
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path  string  true  "Request ID (UUID)"  format(uuid)
// @Param       body  body  handlers.AcceptDonationRequestRequest  true  "Donor"
// @Success     200  {object}  domain.UpdateResult
// @Failure     400  {object}  handlers.ErrorResponse
// @Router      /donationReqest/{id}/acceptRequest [patch]
func (h *Handlers) AcceptDonationRequest(c *gin.Context) {
	var req AcceptDonationRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	res, err := h.requests.Accept(c.Request.Context(), c.Param("id"),
		req.DonorName, firstSet(req.DonorEmail, principal(c)), strings.TrimSpace(req.DonationStatus))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, res)
}

// DeleteDonationRequest godoc
// @ID          deleteDonationRequest
// @Summary     Delete a donation request
// @Tags        DonationRequests
// @Produce     json
// @Security    BearerAuth
// @Param       id  path  string  true  "Request ID (UUID)"  format(uuid)
// @Success     200  {object}  domain.DeleteResult
// @Failure     400  {object}  handlers.ErrorResponse
// @Router      /donationRequests/{id}/request [delete]
func (h *Handlers) DeleteDonationRequest(c *gin.Context) {
	res, err := h.requests.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, res)
}
