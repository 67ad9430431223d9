package services

import (
	"errors"
	"time"

	"localeats/entity"
	"localeats/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidCoupon          = errors.New("coupon code not found")
	ErrDiscountInactive       = errors.New("discount is not active")
	ErrDiscountMinimumNotMet  = errors.New("cart subtotal is below the discount minimum")
	ErrRedemptionLimitReached = errors.New("discount redemption limit reached")
)

// DiscountService owns discount validation and the redemption ledger.
type DiscountService struct {
	DB   *gorm.DB
	Repo *repository.DiscountRepository
}

func NewDiscountService(db *gorm.DB, repo *repository.DiscountRepository) *DiscountService {
	return &DiscountService{DB: db, Repo: repo}
}

// checkPolicy runs the ordered eligibility checks against one discount row.
// The row may be freshly locked inside a transaction or read outside one; the
// caller supplies the handle used for the per-user count.
func (s *DiscountService) checkPolicy(db *gorm.DB, d *entity.Discount, userID uint, subtotal decimal.Decimal, now time.Time) error {
	if !d.IsActive || !d.WithinWindow(now) {
		return ErrDiscountInactive
	}
	if d.MinimumOrderAmount.Valid && subtotal.LessThan(d.MinimumOrderAmount.Decimal) {
		return ErrDiscountMinimumNotMet
	}
	if d.MaxRedemptionsPerUser != nil {
		used, err := s.Repo.CountUserRedemptions(db, d.ID, userID)
		if err != nil {
			return err
		}
		if used >= int64(*d.MaxRedemptionsPerUser) {
			return ErrRedemptionLimitReached
		}
	}
	if d.TotalRedemptionLimit != nil && d.CurrentRedemptionCount >= *d.TotalRedemptionLimit {
		return ErrRedemptionLimitReached
	}
	return nil
}

// Validate resolves a coupon code or QR payload and checks eligibility against
// the current cart subtotal. On success it returns the snapshot the cart keeps.
func (s *DiscountService) Validate(userID uint, code string, subtotal decimal.Decimal) (*entity.DiscountSnapshot, error) {
	d, err := s.Repo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCoupon
		}
		return nil, err
	}
	if err := s.checkPolicy(s.DB, d, userID, subtotal, time.Now()); err != nil {
		return nil, err
	}
	return &entity.DiscountSnapshot{
		DiscountID:         d.ID,
		Code:               d.Code,
		Type:               d.DiscountType,
		Value:              d.Value,
		MinimumOrderAmount: d.MinimumOrderAmount,
	}, nil
}

// Redeem re-checks caps under a row lock and appends the ledger entry, all
// inside the checkout transaction. The lock serializes concurrent checkouts
// on the same discount so the cap check and the counter increment act as one
// unit.
func (s *DiscountService) Redeem(tx *gorm.DB, discountID, userID, orderID uint, subtotal, amount decimal.Decimal, now time.Time) error {
	d, err := s.Repo.LockForRedeem(tx, discountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCoupon
		}
		return err
	}
	if err := s.checkPolicy(tx, d, userID, subtotal, now); err != nil {
		return err
	}

	red := &entity.DiscountRedemption{
		DiscountID:    d.ID,
		UserID:        userID,
		OrderID:       orderID,
		AmountApplied: amount,
		RedeemedAt:    now,
	}
	if err := s.Repo.CreateRedemption(tx, red); err != nil {
		return err
	}
	return s.Repo.IncrementRedemptionCount(tx, d.ID)
}
