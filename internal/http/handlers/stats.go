package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStats godoc
// @ID          getStats
// @Summary     Dashboard totals
// @Description Sum of fund donations, number of donors and number of donation requests.
// @Tags        Stats
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  services.Stats
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /stats [get]
func (h *Handlers) GetStats(c *gin.Context) {
	st, err := h.stats.Get(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, st)
}
