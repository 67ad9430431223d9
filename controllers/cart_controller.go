package controllers

import (
	"errors"
	"net/http"

	"localeats/pkg/resp"
	"localeats/services"
	"localeats/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

// cartError maps cart/discount sentinels onto the wire contract.
func cartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrItemNotFound):
		resp.Fail(c, http.StatusNotFound, "ItemNotFound", err.Error())
	case errors.Is(err, services.ErrCartItemNotFound):
		resp.Fail(c, http.StatusNotFound, "CartItemNotFound", err.Error())
	case errors.Is(err, services.ErrItemUnavailable):
		resp.BadRequest(c, "ItemUnavailable", err.Error())
	case errors.Is(err, services.ErrInvalidSelection):
		resp.BadRequest(c, "InvalidSelection", err.Error())
	case errors.Is(err, services.ErrCartEmpty):
		resp.BadRequest(c, "CartEmpty", err.Error())
	case errors.Is(err, services.ErrInvalidTip):
		resp.BadRequest(c, "InvalidTip", err.Error())
	case errors.Is(err, services.ErrInvalidCoupon):
		resp.BadRequest(c, "InvalidCoupon", err.Error())
	case errors.Is(err, services.ErrDiscountInactive):
		resp.BadRequest(c, "DiscountInactive", err.Error())
	case errors.Is(err, services.ErrDiscountMinimumNotMet):
		resp.BadRequest(c, "MinimumNotMet", err.Error())
	case errors.Is(err, services.ErrRedemptionLimitReached):
		resp.BadRequest(c, "RedemptionLimitReached", err.Error())
	default:
		resp.ServerError(c, err)
	}
}

// GET /cart
func (h *CartController) Get(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	cart, totals, err := h.Svc.Get(uid)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"cart": cart, "totals": totals})
}

// POST /cart/items
func (h *CartController) AddItem(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req services.AddItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Validation", err.Error())
		return
	}
	cart, totals, err := h.Svc.AddItem(uid, &req)
	if err != nil {
		cartError(c, err)
		return
	}
	resp.Created(c, gin.H{"cart": cart, "totals": totals})
}

// PATCH /cart/items/:id
func (h *CartController) UpdateItem(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req services.UpdateItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Validation", err.Error())
		return
	}
	cart, totals, err := h.Svc.UpdateItem(uid, c.Param("id"), &req)
	if err != nil {
		cartError(c, err)
		return
	}
	resp.OK(c, gin.H{"cart": cart, "totals": totals})
}

// DELETE /cart/items/:id
func (h *CartController) RemoveItem(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	cart, totals, err := h.Svc.RemoveItem(uid, c.Param("id"))
	if err != nil {
		cartError(c, err)
		return
	}
	resp.OK(c, gin.H{"cart": cart, "totals": totals})
}

// PATCH /cart
func (h *CartController) SetTip(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req struct {
		Tip decimal.Decimal `json:"tip"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Validation", err.Error())
		return
	}
	cart, totals, err := h.Svc.SetTip(uid, req.Tip)
	if err != nil {
		cartError(c, err)
		return
	}
	resp.OK(c, gin.H{"cart": cart, "totals": totals})
}

// POST /cart/discount
func (h *CartController) ApplyDiscount(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Validation", err.Error())
		return
	}
	cart, totals, err := h.Svc.ApplyDiscount(uid, req.Code)
	if err != nil {
		cartError(c, err)
		return
	}
	resp.OK(c, gin.H{"cart": cart, "totals": totals})
}

// DELETE /cart/discount
func (h *CartController) RemoveDiscount(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	cart, totals, err := h.Svc.RemoveDiscount(uid)
	if err != nil {
		cartError(c, err)
		return
	}
	resp.OK(c, gin.H{"cart": cart, "totals": totals})
}

// DELETE /cart
func (h *CartController) Clear(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	h.Svc.Clear(uid)
	resp.OK(c, gin.H{"cleared": true})
}
