package handler

import (
	"context"
	"net/http"

	"shop-location-api/internal/models"

	"github.com/gin-gonic/gin"
)

// PostalService looks up address candidates for postal code text.
type PostalService interface {
	Lookup(ctx context.Context, raw string) (models.PostalLookupResult, error)
}

// PostalHandler serves stateless postal code lookups.
type PostalHandler struct {
	service PostalService
}

func NewPostalHandler(svc PostalService) *PostalHandler {
	return &PostalHandler{service: svc}
}

type postalCodeURI struct {
	Code string `uri:"code" binding:"required,postal7"`
}

// Lookup handles GET /postal-codes/:code. An unknown code is a 200 with
// not_found set, not an error.
//
//	@Summary	Look up a postal code
//	@Tags		postal
//	@Produce	json
//	@Param		code	path		string	true	"postal code, 7 digits"
//	@Success	200		{object}	models.PostalLookupResult
//	@Failure	400		{object}	map[string]string
//	@Router		/postal-codes/{code} [get]
func (h *PostalHandler) Lookup(c *gin.Context) {
	var uri postalCodeURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondError(c, invalidPostalCode(err))
		return
	}

	result, err := h.service.Lookup(c.Request.Context(), uri.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
