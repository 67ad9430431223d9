package services

import (
	"testing"
	"time"

	"localeats/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestValidate_UnknownCode(t *testing.T) {
	f := newFixture(t)

	_, err := f.Discounts.Validate(f.Customer.ID, "NOPE", d("50.00"))
	require.ErrorIs(t, err, ErrInvalidCoupon)
}

func TestValidate_ReturnsSnapshot(t *testing.T) {
	f := newFixture(t)
	disc := f.seedDiscount(t, nil)

	snap, err := f.Discounts.Validate(f.Customer.ID, "WELCOME20", d("50.00"))
	require.NoError(t, err)
	require.Equal(t, disc.ID, snap.DiscountID)
	require.Equal(t, entity.DiscountPercentage, snap.Type)
	require.Equal(t, "20", snap.Value.String())
}

// Inactive wins over every later check: a paused discount that also misses its
// minimum must still answer "inactive".
func TestValidate_InactiveChecksFirst(t *testing.T) {
	f := newFixture(t)
	f.seedDiscount(t, func(disc *entity.Discount) {
		disc.IsActive = false
		disc.MinimumOrderAmount = decimal.NullDecimal{Decimal: d("100.00"), Valid: true}
	})

	_, err := f.Discounts.Validate(f.Customer.ID, "WELCOME20", d("5.00"))
	require.ErrorIs(t, err, ErrDiscountInactive)
}

func TestValidate_OutsideWindowIsInactive(t *testing.T) {
	f := newFixture(t)
	f.seedDiscount(t, func(disc *entity.Discount) {
		disc.Code = "SOON"
		disc.StartDate = time.Now().Add(24 * time.Hour)
		disc.EndDate = time.Now().Add(48 * time.Hour)
	})
	f.seedDiscount(t, func(disc *entity.Discount) {
		disc.Code = "GONE"
		disc.StartDate = time.Now().Add(-48 * time.Hour)
		disc.EndDate = time.Now().Add(-24 * time.Hour)
	})

	_, err := f.Discounts.Validate(f.Customer.ID, "SOON", d("50.00"))
	require.ErrorIs(t, err, ErrDiscountInactive)
	_, err = f.Discounts.Validate(f.Customer.ID, "GONE", d("50.00"))
	require.ErrorIs(t, err, ErrDiscountInactive)
}

// Minimum wins over the caps: a too-small cart on a fully-redeemed discount
// must still answer "minimum not met".
func TestValidate_MinimumChecksBeforeCaps(t *testing.T) {
	f := newFixture(t)
	limit := 0
	f.seedDiscount(t, func(disc *entity.Discount) {
		disc.MinimumOrderAmount = decimal.NullDecimal{Decimal: d("25.00"), Valid: true}
		disc.TotalRedemptionLimit = &limit
	})

	_, err := f.Discounts.Validate(f.Customer.ID, "WELCOME20", d("10.00"))
	require.ErrorIs(t, err, ErrDiscountMinimumNotMet)

	_, err = f.Discounts.Validate(f.Customer.ID, "WELCOME20", d("30.00"))
	require.ErrorIs(t, err, ErrRedemptionLimitReached)
}

func TestValidate_GlobalCap(t *testing.T) {
	f := newFixture(t)
	f.seedDiscount(t, func(disc *entity.Discount) {
		disc.TotalRedemptionLimit = intp(500)
		disc.CurrentRedemptionCount = 500
	})

	_, err := f.Discounts.Validate(f.Customer.ID, "WELCOME20", d("50.00"))
	require.ErrorIs(t, err, ErrRedemptionLimitReached)
}

func TestValidate_PerUserCapIsPerUser(t *testing.T) {
	f := newFixture(t)
	disc := f.seedDiscount(t, func(disc *entity.Discount) {
		disc.MaxRedemptionsPerUser = intp(1)
	})
	mustCreate(t, f.DB, &entity.DiscountRedemption{
		DiscountID: disc.ID, UserID: f.Customer.ID, OrderID: 1,
		AmountApplied: d("2.60"), RedeemedAt: time.Now(),
	})

	_, err := f.Discounts.Validate(f.Customer.ID, "WELCOME20", d("50.00"))
	require.ErrorIs(t, err, ErrRedemptionLimitReached)

	// A different user is unaffected by the first user's ledger.
	_, err = f.Discounts.Validate(f.Owner.ID, "WELCOME20", d("50.00"))
	require.NoError(t, err)
}

func TestRedeem_AppendsLedgerAndBumpsCounter(t *testing.T) {
	f := newFixture(t)
	disc := f.seedDiscount(t, nil)

	now := time.Now()
	err := f.DB.Transaction(func(tx *gorm.DB) error {
		return f.Discounts.Redeem(tx, disc.ID, f.Customer.ID, 42, d("12.99"), d("2.60"), now)
	})
	require.NoError(t, err)

	var ledger []entity.DiscountRedemption
	require.NoError(t, f.DB.Find(&ledger).Error)
	require.Len(t, ledger, 1)
	require.Equal(t, uint(42), ledger[0].OrderID)
	require.Equal(t, "2.60", ledger[0].AmountApplied.StringFixed(2))

	var fresh entity.Discount
	require.NoError(t, f.DB.First(&fresh, disc.ID).Error)
	require.Equal(t, 1, fresh.CurrentRedemptionCount)
}

func TestRedeem_RefusesAtGlobalCap(t *testing.T) {
	f := newFixture(t)
	disc := f.seedDiscount(t, func(disc *entity.Discount) {
		disc.TotalRedemptionLimit = intp(1)
		disc.CurrentRedemptionCount = 1
	})

	err := f.DB.Transaction(func(tx *gorm.DB) error {
		return f.Discounts.Redeem(tx, disc.ID, f.Customer.ID, 42, d("12.99"), d("2.60"), time.Now())
	})
	require.ErrorIs(t, err, ErrRedemptionLimitReached)
	require.EqualValues(t, 0, rowCount(t, f.DB, &entity.DiscountRedemption{}))
}

func TestRedeem_UnknownDiscount(t *testing.T) {
	f := newFixture(t)

	err := f.DB.Transaction(func(tx *gorm.DB) error {
		return f.Discounts.Redeem(tx, 999, f.Customer.ID, 42, d("12.99"), d("2.60"), time.Now())
	})
	require.ErrorIs(t, err, ErrInvalidCoupon)
}
