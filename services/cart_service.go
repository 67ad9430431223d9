package services

import (
	"errors"

	"localeats/entity"
	"localeats/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrCartEmpty        = errors.New("cart is empty")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrItemNotFound     = errors.New("menu item not found")
	ErrItemUnavailable  = errors.New("menu item is not available")
	ErrInvalidSelection = errors.New("selected option does not belong to this menu item")
	ErrInvalidTip       = errors.New("tip must not be negative")
)

// CartService mutates the per-user in-memory cart and prices it on every read.
type CartService struct {
	Store     repository.CartStore
	Catalog   *repository.CatalogRepository
	Discounts *DiscountService
}

func NewCartService(store repository.CartStore, catalog *repository.CatalogRepository, discounts *DiscountService) *CartService {
	return &CartService{Store: store, Catalog: catalog, Discounts: discounts}
}

type AddItemIn struct {
	MenuItemID          uint   `json:"menuItemId" binding:"required"`
	Quantity            int    `json:"quantity" binding:"omitempty,min=1"`
	SizeID              *uint  `json:"sizeId"`
	AddOnIDs            []uint `json:"addOnIds"`
	ModificationIDs     []uint `json:"modificationIds"`
	SpecialInstructions string `json:"specialInstructions"`
}

type UpdateItemIn struct {
	Quantity            *int    `json:"quantity" binding:"omitempty,min=1"`
	SpecialInstructions *string `json:"specialInstructions"`
}

// load returns the user's cart or a fresh empty one.
func (s *CartService) load(userID uint) *entity.Cart {
	if c, ok := s.Store.Get(userID); ok {
		return c
	}
	return &entity.Cart{UserID: userID, Tip: decimal.Zero}
}

// quote prices the cart with the bound restaurant's delivery fee. An unbound
// or vanished restaurant prices with a zero fee.
func (s *CartService) quote(c *entity.Cart) (Quote, error) {
	fee := decimal.Zero
	if c.RestaurantID != 0 {
		rest, err := s.Catalog.FindRestaurant(c.RestaurantID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return Quote{}, err
			}
		} else {
			fee = rest.DeliveryFee
		}
	}
	return PriceCart(c, fee), nil
}

// Get returns the current cart and its live totals.
func (s *CartService) Get(userID uint) (*entity.Cart, Quote, error) {
	c := s.load(userID)
	q, err := s.quote(c)
	if err != nil {
		return nil, Quote{}, err
	}
	return c, q, nil
}

// AddItem snapshots a priced line into the cart. Adding an item from a
// different restaurant than the one the cart is bound to replaces the whole
// cart: previous lines, applied discount, and tip are all dropped.
func (s *CartService) AddItem(userID uint, in *AddItemIn) (*entity.Cart, Quote, error) {
	item, err := s.Catalog.FindMenuItem(in.MenuItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Quote{}, ErrItemNotFound
		}
		return nil, Quote{}, err
	}
	if !item.IsAvailable {
		return nil, Quote{}, ErrItemUnavailable
	}

	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}

	var size *entity.SizeSelection
	sizeDelta := decimal.Zero
	if in.SizeID != nil {
		row, err := s.Catalog.FindSize(item.ID, *in.SizeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, Quote{}, ErrInvalidSelection
			}
			return nil, Quote{}, err
		}
		size = &entity.SizeSelection{ID: row.ID, Name: row.Name, PriceDelta: row.PriceDelta}
		sizeDelta = row.PriceDelta
	}

	addOnRows, err := s.Catalog.FindAddOns(item.ID, dedupeIDs(in.AddOnIDs))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Quote{}, ErrInvalidSelection
		}
		return nil, Quote{}, err
	}
	addOns := make([]entity.OptionSnapshot, 0, len(addOnRows))
	for _, a := range addOnRows {
		addOns = append(addOns, entity.OptionSnapshot{ID: a.ID, Name: a.Name, Price: a.Price})
	}

	modRows, err := s.Catalog.FindModifications(item.ID, dedupeIDs(in.ModificationIDs))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Quote{}, ErrInvalidSelection
		}
		return nil, Quote{}, err
	}
	mods := make([]entity.OptionSnapshot, 0, len(modRows))
	for _, m := range modRows {
		mods = append(mods, entity.OptionSnapshot{ID: m.ID, Name: m.Name, Price: m.Price})
	}

	c := s.load(userID)
	if c.RestaurantID != 0 && c.RestaurantID != item.RestaurantID {
		c = &entity.Cart{UserID: userID, Tip: decimal.Zero}
	}
	c.RestaurantID = item.RestaurantID

	line := entity.CartLineItem{
		ID:                  uuid.NewString(),
		MenuItemID:          item.ID,
		ItemName:            item.MenuName,
		BasePrice:           item.BasePrice,
		Size:                size,
		AddOns:              addOns,
		Modifications:       mods,
		SpecialInstructions: in.SpecialInstructions,
		Quantity:            qty,
		ItemTotal:           LineItemTotal(item.BasePrice, sizeDelta, addOns, mods, qty),
	}
	c.Items = append(c.Items, line)
	s.Store.Set(userID, c)

	q, err := s.quote(c)
	if err != nil {
		return nil, Quote{}, err
	}
	return c, q, nil
}

// UpdateItem changes quantity or note on one line, repricing it from the
// prices snapshotted when the line was added.
func (s *CartService) UpdateItem(userID uint, lineID string, in *UpdateItemIn) (*entity.Cart, Quote, error) {
	c := s.load(userID)
	line := c.FindItem(lineID)
	if line == nil {
		return nil, Quote{}, ErrCartItemNotFound
	}

	if in.Quantity != nil {
		line.Quantity = *in.Quantity
	}
	if in.SpecialInstructions != nil {
		line.SpecialInstructions = *in.SpecialInstructions
	}

	sizeDelta := decimal.Zero
	if line.Size != nil {
		sizeDelta = line.Size.PriceDelta
	}
	line.ItemTotal = LineItemTotal(line.BasePrice, sizeDelta, line.AddOns, line.Modifications, line.Quantity)
	s.Store.Set(userID, c)

	q, err := s.quote(c)
	if err != nil {
		return nil, Quote{}, err
	}
	return c, q, nil
}

// RemoveItem drops one line. Removing a line that is already gone is a no-op.
// Removing the last line unbinds the cart: an empty cart has no restaurant,
// no discount, and no tip.
func (s *CartService) RemoveItem(userID uint, lineID string) (*entity.Cart, Quote, error) {
	c := s.load(userID)
	for i, it := range c.Items {
		if it.ID == lineID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			break
		}
	}
	if c.IsEmpty() {
		c = &entity.Cart{UserID: userID, Tip: decimal.Zero}
	}
	s.Store.Set(userID, c)

	q, err := s.quote(c)
	if err != nil {
		return nil, Quote{}, err
	}
	return c, q, nil
}

// ApplyDiscount validates a coupon or QR payload against the cart and pins
// the discount snapshot to it.
func (s *CartService) ApplyDiscount(userID uint, code string) (*entity.Cart, Quote, error) {
	c := s.load(userID)
	if c.IsEmpty() {
		return nil, Quote{}, ErrCartEmpty
	}

	snap, err := s.Discounts.Validate(userID, code, CartSubtotal(c.Items))
	if err != nil {
		return nil, Quote{}, err
	}
	c.AppliedDiscount = snap
	s.Store.Set(userID, c)

	q, err := s.quote(c)
	if err != nil {
		return nil, Quote{}, err
	}
	return c, q, nil
}

// RemoveDiscount detaches any applied discount.
func (s *CartService) RemoveDiscount(userID uint) (*entity.Cart, Quote, error) {
	c := s.load(userID)
	c.AppliedDiscount = nil
	s.Store.Set(userID, c)

	q, err := s.quote(c)
	if err != nil {
		return nil, Quote{}, err
	}
	return c, q, nil
}

// SetTip stores the pre-checkout tip amount.
func (s *CartService) SetTip(userID uint, tip decimal.Decimal) (*entity.Cart, Quote, error) {
	if tip.IsNegative() {
		return nil, Quote{}, ErrInvalidTip
	}
	c := s.load(userID)
	c.Tip = tip.Round(2)
	s.Store.Set(userID, c)

	q, err := s.quote(c)
	if err != nil {
		return nil, Quote{}, err
	}
	return c, q, nil
}

// Clear throws the whole cart away.
func (s *CartService) Clear(userID uint) {
	s.Store.Delete(userID)
}

func dedupeIDs(ids []uint) []uint {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
