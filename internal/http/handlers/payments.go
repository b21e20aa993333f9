// Fund-payment HTTP handlers.
//
//   - POST  /create-checkout-session      (start a hosted checkout)
//   - PATCH /payment-success?sessionId=…  (confirm and record the donation)
//   - GET   /donateFunds                  (public fund list, paginated)
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/bloodx-backend/internal/domain"
	"github.com/tbourn/bloodx-backend/internal/utils"
)

// CheckoutRequest starts a checkout for amount major currency units. The
// donor email is the caller's.
type CheckoutRequest struct {
	Amount float64 `json:"amount" binding:"required" example:"25.50"`
	Name   string  `json:"name" example:"Rahim Uddin"`
}

// CheckoutResponse carries the hosted checkout page.
type CheckoutResponse struct {
	URL       string `json:"url" example:"https://checkout.stripe.com/c/pay/cs_test_a1"`
	SessionID string `json:"sessionId" example:"cs_test_a1"`
}

// ConfirmPaymentResponse is the recorded donation. InsertResult is present
// only when this call created the record.
type ConfirmPaymentResponse struct {
	Result       *domain.FundDonation `json:"result"`
	InsertResult *domain.InsertResult `json:"insertResult,omitempty"`
	Replayed     bool                 `json:"replayed"`
}

// ListFundsResponse is a page of public fund summaries.
type ListFundsResponse struct {
	Result     []domain.FundSummary `json:"result"`
	TotalFunds int64                `json:"totalFunds"`
}

// CreateCheckoutSession godoc
// @ID          createCheckoutSession
// @Summary     Start a fund donation checkout
// @Tags        Funds
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body  handlers.CheckoutRequest  true  "Amount and donor name"
// @Success     200  {object}  handlers.CheckoutResponse
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     502  {object}  handlers.ErrorResponse  "Gateway failure"
// @Failure     503  {object}  handlers.ErrorResponse  "Payments not configured"
// @Router      /create-checkout-session [post]
func (h *Handlers) CreateCheckoutSession(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "amount is required")
		return
	}
	sess, err := h.payments.CreateSession(c.Request.Context(), req.Amount, principal(c), req.Name)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, CheckoutResponse{URL: sess.URL, SessionID: sess.ID})
}

// ConfirmPayment godoc
// @ID          confirmPayment
// @Summary     Confirm a checkout and record the donation
// @Description Idempotent per payment: repeating it returns the stored record with replayed=true.
// @Tags        Funds
// @Produce     json
// @Security    BearerAuth
// @Param       sessionId  query  string  true  "Checkout session id"
// @Success     201  {object}  handlers.ConfirmPaymentResponse  "Recorded"
// @Success     200  {object}  handlers.ConfirmPaymentResponse  "Already recorded"
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     402  {object}  handlers.ErrorResponse  "Not paid"
// @Failure     502  {object}  handlers.ErrorResponse  "Gateway failure"
// @Failure     503  {object}  handlers.ErrorResponse  "Payments not configured"
// @Router      /payment-success [patch]
func (h *Handlers) ConfirmPayment(c *gin.Context) {
	res, err := h.payments.Confirm(c.Request.Context(), strings.TrimSpace(c.Query("sessionId")))
	if err != nil {
		failErr(c, err)
		return
	}
	status := http.StatusCreated
	if res.Replayed {
		status = http.StatusOK
	}
	ok(c, status, ConfirmPaymentResponse{Result: res.Donation, InsertResult: res.Insert, Replayed: res.Replayed})
}

// ListFunds godoc
// @ID          listFunds
// @Summary     List fund donations
// @Description Public view: donor name, amount and date only, newest first.
// @Tags        Funds
// @Produce     json
// @Param       skip   query  int  false  "Records to skip"  minimum(0)
// @Param       limit  query  int  false  "Page size, 0 for all"  minimum(0)
// @Success     200  {object}  handlers.ListFundsResponse
// @Router      /donateFunds [get]
func (h *Handlers) ListFunds(c *gin.Context) {
	skip, limit := utils.Window(c.Query("skip"), c.Query("limit"))
	items, total, err := h.payments.ListFunds(c.Request.Context(), skip, limit)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ListFundsResponse{Result: items, TotalFunds: total})
}
