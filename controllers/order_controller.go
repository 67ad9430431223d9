package controllers

import (
	"errors"
	"strconv"

	"localeats/pkg/resp"
	"localeats/services"
	"localeats/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderController struct{ Svc *services.OrderService }

func NewOrderController(s *services.OrderService) *OrderController {
	return &OrderController{Svc: s}
}

// orderError maps checkout and lifecycle sentinels onto the wire contract.
func orderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, "not found")
	case errors.Is(err, services.ErrCartEmpty):
		resp.BadRequest(c, "CartEmpty", err.Error())
	case errors.Is(err, services.ErrRestaurantMismatch):
		resp.BadRequest(c, "RestaurantMismatch", err.Error())
	case errors.Is(err, services.ErrDeliveryNotAccepted):
		resp.BadRequest(c, "DeliveryNotAccepted", err.Error())
	case errors.Is(err, services.ErrPickupNotAccepted):
		resp.BadRequest(c, "PickupNotAccepted", err.Error())
	case errors.Is(err, services.ErrMissingAddress):
		resp.BadRequest(c, "MissingAddress", err.Error())
	case errors.Is(err, services.ErrMinimumOrderNotMet):
		resp.BadRequest(c, "MinimumOrderNotMet", err.Error())
	case errors.Is(err, services.ErrPaymentFailed):
		resp.PaymentRequired(c, "PaymentFailed", err.Error())
	case errors.Is(err, services.ErrDiscountInactive):
		resp.BadRequest(c, "DiscountInactive", err.Error())
	case errors.Is(err, services.ErrDiscountMinimumNotMet):
		resp.BadRequest(c, "MinimumNotMet", err.Error())
	case errors.Is(err, services.ErrRedemptionLimitReached):
		resp.BadRequest(c, "RedemptionLimitReached", err.Error())
	case errors.Is(err, services.ErrInvalidCoupon):
		resp.BadRequest(c, "InvalidCoupon", err.Error())
	case errors.Is(err, services.ErrOrderDelivered):
		resp.BadRequest(c, "OrderDelivered", err.Error())
	case errors.Is(err, services.ErrCannotCancel):
		resp.BadRequest(c, "CannotCancel", err.Error())
	case errors.Is(err, services.ErrTooLateToCancel):
		resp.BadRequest(c, "TooLateToCancel", err.Error())
	case errors.Is(err, services.ErrInvalidTip):
		resp.BadRequest(c, "InvalidTip", err.Error())
	default:
		resp.ServerError(c, err)
	}
}

func orderIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		resp.BadRequest(c, "Validation", "invalid order id")
		return 0, false
	}
	return uint(id), true
}

// POST /orders
func (oc *OrderController) Checkout(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req services.CheckoutIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Validation", err.Error())
		return
	}
	out, err := oc.Svc.Checkout(c.Request.Context(), uid, &req)
	if err != nil {
		orderError(c, err)
		return
	}
	resp.Created(c, out)
}

// GET /orders
func (oc *OrderController) List(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	limit := 0
	if v := c.Query("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}
	rows, err := oc.Svc.ListOrders(uid, limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, rows)
}

// GET /orders/:id
func (oc *OrderController) Get(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	order, err := oc.Svc.GetOrder(uid, id)
	if err != nil {
		orderError(c, err)
		return
	}
	resp.OK(c, order)
}

// PATCH /orders/:id
func (oc *OrderController) Update(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req services.UpdateOrderIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Validation", err.Error())
		return
	}
	order, err := oc.Svc.UpdateOrder(uid, id, &req)
	if err != nil {
		orderError(c, err)
		return
	}
	resp.OK(c, order)
}

// DELETE /orders/:id
func (oc *OrderController) Cancel(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			resp.BadRequest(c, "Validation", err.Error())
			return
		}
	}
	order, err := oc.Svc.CancelOrder(uid, id, req.Reason)
	if err != nil {
		orderError(c, err)
		return
	}
	resp.OK(c, order)
}
