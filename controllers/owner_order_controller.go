package controllers

import (
	"errors"
	"strconv"

	"localeats/entity"
	"localeats/pkg/resp"
	"localeats/services"
	"localeats/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// OwnerOrderController serves the restaurant dashboard: incoming orders and
// the kitchen-side status transitions.
type OwnerOrderController struct{ Svc *services.OrderService }

func NewOwnerOrderController(s *services.OrderService) *OwnerOrderController {
	return &OwnerOrderController{Svc: s}
}

// GET /partner/orders
func (ctl *OwnerOrderController) List(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var status *entity.OrderStatus
	if v := c.Query("status"); v != "" {
		st := entity.OrderStatus(v)
		if !entity.ValidOrderStatus(st) {
			resp.BadRequest(c, "Validation", "unknown status filter")
			return
		}
		status = &st
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	rows, err := ctl.Svc.ListRestaurantOrders(uid, status, limit)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.Forbidden(c, "no restaurant for this account")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, rows)
}

// GET /partner/orders/:id
func (ctl *OwnerOrderController) Get(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := ctl.Svc.GetRestaurantOrder(uid, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "order not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, order)
}

// PATCH /partner/orders/:id/status
func (ctl *OwnerOrderController) UpdateStatus(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Validation", err.Error())
		return
	}
	to := entity.OrderStatus(req.Status)
	if !entity.ValidOrderStatus(to) {
		resp.BadRequest(c, "Validation", "unknown status")
		return
	}

	order, err := ctl.Svc.AdvanceStatus(uid, id, to)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			resp.NotFound(c, "order not found")
		case errors.Is(err, services.ErrInvalidTransition):
			resp.BadRequest(c, "InvalidTransition", err.Error())
		case errors.Is(err, services.ErrStatusConflict):
			resp.Conflict(c, "StatusConflict", err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, order)
}
