package controllers

import (
	"errors"
	"strconv"

	"localeats/pkg/resp"
	"localeats/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CatalogController exposes the read-only browse surface carts add from.
type CatalogController struct{ Repo *repository.CatalogRepository }

func NewCatalogController(r *repository.CatalogRepository) *CatalogController {
	return &CatalogController{Repo: r}
}

// GET /restaurants
func (ctl *CatalogController) ListRestaurants(c *gin.Context) {
	rests, err := ctl.Repo.ListRestaurants()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, rests)
}

// GET /restaurants/:id
func (ctl *CatalogController) GetRestaurant(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		resp.BadRequest(c, "Validation", "invalid restaurant id")
		return
	}
	rest, err := ctl.Repo.FindRestaurant(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "restaurant not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, rest)
}

// GET /restaurants/:id/menu
func (ctl *CatalogController) ListMenu(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		resp.BadRequest(c, "Validation", "invalid restaurant id")
		return
	}
	if _, err := ctl.Repo.FindRestaurant(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "restaurant not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	items, err := ctl.Repo.ListMenuForRestaurant(uint(id))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, items)
}
