package repositoryImp

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Teo107/farmer-assistant/entities"
	"github.com/Teo107/farmer-assistant/pkg/parcel/repository"
)

type farmRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FarmRepository { return &farmRepo{db} }

func (r *farmRepo) FarmerByID(id string) (*entities.Farmer, error) {
	var f entities.Farmer
	return first(r.db.Where("id = ?", id), &f)
}

func (r *farmRepo) FarmerByUsername(username string) (*entities.Farmer, error) {
	var f entities.Farmer
	return first(r.db.Where("username_key = ?", entities.UsernameKeyOf(username)), &f)
}

func (r *farmRepo) ParcelByID(id string) (*entities.Parcel, error) {
	var p entities.Parcel
	return first(r.db.Where("id = ?", id), &p)
}

func (r *farmRepo) ParcelsByFarmer(farmerID string) ([]entities.Parcel, error) {
	var ps []entities.Parcel
	if err := r.db.Where("farmer_id = ?", farmerID).Order("id ASC").Find(&ps).Error; err != nil {
		return nil, fmt.Errorf("parcels of %s: %w", farmerID, err)
	}
	return ps, nil
}

func (r *farmRepo) IndicesByParcel(parcelID string) ([]entities.IndexRecord, error) {
	var out []entities.IndexRecord
	if err := r.db.Where("parcel_id = ?", parcelID).Order("record_id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("indices of %s: %w", parcelID, err)
	}
	return out, nil
}

// BindPhone is a compare-and-swap on the phone column.
func (r *farmRepo) BindPhone(farmerID, phone string) error {
	res := r.db.Model(&entities.Farmer{}).
		Where("id = ? AND (phone = '' OR phone IS NULL)", farmerID).
		Update("phone", phone)
	if res.Error != nil {
		return fmt.Errorf("bind phone for %s: %w", farmerID, res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrPhoneAlreadyBound
	}
	return nil
}

// first loads at most one row; a miss is (nil, nil). Find is used instead
// of First so misses are not reported by gorm as record-not-found errors.
func first[T any](q *gorm.DB, out *T) (*T, error) {
	res := q.Limit(1).Find(out)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return out, nil
}
