package repository

import (
	"localeats/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DiscountRepository struct {
	DB *gorm.DB
}

func NewDiscountRepository(db *gorm.DB) *DiscountRepository {
	return &DiscountRepository{DB: db}
}

// FindByCode resolves a typed coupon code or a scanned QR payload.
func (r *DiscountRepository) FindByCode(code string) (*entity.Discount, error) {
	var d entity.Discount
	err := r.DB.Where("code = ? OR qr_payload = ?", code, code).First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// LockForRedeem reloads the discount under FOR UPDATE so concurrent checkouts
// of the same code serialize on the row.
func (r *DiscountRepository) LockForRedeem(tx *gorm.DB, id uint) (*entity.Discount, error) {
	var d entity.Discount
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&d, id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CountUserRedemptions counts the immutable redemption rows of one user for
// one discount. Pass a transaction handle to count inside the checkout tx.
func (r *DiscountRepository) CountUserRedemptions(db *gorm.DB, discountID, userID uint) (int64, error) {
	var n int64
	err := db.Model(&entity.DiscountRedemption{}).
		Where("discount_id = ? AND user_id = ?", discountID, userID).
		Count(&n).Error
	return n, err
}

// CreateRedemption appends one ledger row inside the caller's transaction.
func (r *DiscountRepository) CreateRedemption(tx *gorm.DB, red *entity.DiscountRedemption) error {
	return tx.Create(red).Error
}

// IncrementRedemptionCount bumps the global counter inside the caller's transaction.
func (r *DiscountRepository) IncrementRedemptionCount(tx *gorm.DB, discountID uint) error {
	return tx.Model(&entity.Discount{}).
		Where("id = ?", discountID).
		UpdateColumn("current_redemption_count", gorm.Expr("current_redemption_count + ?", 1)).Error
}

// ListRedemptionsForOrder returns the ledger rows attached to one order.
func (r *DiscountRepository) ListRedemptionsForOrder(orderID uint) ([]entity.DiscountRedemption, error) {
	var rows []entity.DiscountRedemption
	err := r.DB.Where("order_id = ?", orderID).Find(&rows).Error
	return rows, err
}
