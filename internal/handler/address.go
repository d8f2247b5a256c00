package handler

import (
	"context"
	"net/http"

	"shop-location-api/internal/models"

	"github.com/gin-gonic/gin"
)

// AddressService runs the coordinate resolution chain.
type AddressService interface {
	ResolveFromPostal(ctx context.Context, base models.AddressCandidate, detail, building string) (*models.ResolvedAddress, error)
	ResolveManual(ctx context.Context, address, building string) (*models.ResolvedAddress, error)
}

type AddressHandler struct {
	service AddressService
}

func NewAddressHandler(svc AddressService) *AddressHandler {
	return &AddressHandler{service: svc}
}

// ResolveAddressRequest resolves either a postal candidate plus detail, or a
// free-typed address when Base is absent.
type ResolveAddressRequest struct {
	Base     *models.AddressCandidate `json:"base"`
	Detail   string                   `json:"detail" binding:"max=200"`
	Address  string                   `json:"address" binding:"required_without=Base,max=200"`
	Building string                   `json:"building" binding:"max=100"`
}

// Resolve handles POST /addresses/resolve
//
//	@Summary	Resolve an address to coordinates
//	@Tags		address
//	@Accept		json
//	@Produce	json
//	@Param		request	body		ResolveAddressRequest	true	"address"
//	@Success	200		{object}	models.ResolvedAddress
//	@Failure	400		{object}	map[string]string
//	@Failure	422		{object}	map[string]string
//	@Failure	502		{object}	map[string]string
//	@Router		/addresses/resolve [post]
func (h *AddressHandler) Resolve(c *gin.Context) {
	var req ResolveAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var (
		resolved *models.ResolvedAddress
		err      error
	)
	if req.Base != nil {
		resolved, err = h.service.ResolveFromPostal(c.Request.Context(), *req.Base, req.Detail, req.Building)
	} else {
		resolved, err = h.service.ResolveManual(c.Request.Context(), req.Address, req.Building)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resolved)
}
