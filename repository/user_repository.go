package repository

import (
	"errors"

	"localeats/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// FindByEmail looks a user up for login.
func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var user entity.User
	if err := r.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads one user.
func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var user entity.User
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindStats loads the aggregate row of one user, nil when none exists yet.
func (r *UserRepository) FindStats(userID uint) (*entity.UserStats, error) {
	var stats entity.UserStats
	err := r.DB.Where("user_id = ?", userID).First(&stats).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stats, nil
}

// RecordOrderStats folds one placed order into the user's aggregates inside
// the checkout transaction: order count, lifetime spend, cuisines tried.
func (r *UserRepository) RecordOrderStats(tx *gorm.DB, userID uint, spent decimal.Decimal, cuisine string) error {
	var stats entity.UserStats
	err := tx.Where("user_id = ?", userID).First(&stats).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		stats = entity.UserStats{UserID: userID}
	}

	stats.OrdersPlaced++
	stats.TotalSpent = stats.TotalSpent.Add(spent)
	if cuisine != "" && !stats.HasTriedCuisine(cuisine) {
		stats.CuisinesTried = append(stats.CuisinesTried, cuisine)
	}
	return tx.Save(&stats).Error
}
