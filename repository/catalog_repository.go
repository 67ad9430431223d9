package repository

import (
	"localeats/entity"

	"gorm.io/gorm"
)

// CatalogRepository covers the read side of restaurants and menus that the
// cart and checkout flows price against.
type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

// FindRestaurant loads one restaurant by ID.
func (r *CatalogRepository) FindRestaurant(id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

// FindRestaurantForOwner loads a restaurant only if the user owns it.
func (r *CatalogRepository) FindRestaurantForOwner(ownerID uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.Where("owner_id = ?", ownerID).First(&rest).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

// ListRestaurants returns every open restaurant for browsing.
func (r *CatalogRepository) ListRestaurants() ([]entity.Restaurant, error) {
	var rests []entity.Restaurant
	err := r.DB.Where("is_open = ?", true).Order("name").Find(&rests).Error
	return rests, err
}

// FindMenuItem loads one menu item with its size and option children.
func (r *CatalogRepository) FindMenuItem(id uint) (*entity.MenuItem, error) {
	var item entity.MenuItem
	err := r.DB.
		Preload("Sizes").
		Preload("AddOns").
		Preload("Modifications").
		First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListMenuForRestaurant returns the available items of one restaurant.
func (r *CatalogRepository) ListMenuForRestaurant(restaurantID uint) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	err := r.DB.
		Preload("Sizes").
		Preload("AddOns").
		Preload("Modifications").
		Where("restaurant_id = ? AND is_available = ?", restaurantID, true).
		Order("menu_name").
		Find(&items).Error
	return items, err
}

// FindSize loads a size row only if it belongs to the menu item.
func (r *CatalogRepository) FindSize(menuItemID, sizeID uint) (*entity.MenuItemSize, error) {
	var size entity.MenuItemSize
	err := r.DB.Where("id = ? AND menu_item_id = ?", sizeID, menuItemID).First(&size).Error
	if err != nil {
		return nil, err
	}
	return &size, nil
}

// FindAddOns loads add-on rows, verifying every requested ID belongs to the item.
func (r *CatalogRepository) FindAddOns(menuItemID uint, ids []uint) ([]entity.MenuItemAddOn, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []entity.MenuItemAddOn
	err := r.DB.Where("id IN ? AND menu_item_id = ?", ids, menuItemID).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) != len(ids) {
		return nil, gorm.ErrRecordNotFound
	}
	return rows, nil
}

// FindModifications loads modification rows, verifying ownership like FindAddOns.
func (r *CatalogRepository) FindModifications(menuItemID uint, ids []uint) ([]entity.MenuItemModification, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []entity.MenuItemModification
	err := r.DB.Where("id IN ? AND menu_item_id = ?", ids, menuItemID).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) != len(ids) {
		return nil, gorm.ErrRecordNotFound
	}
	return rows, nil
}
