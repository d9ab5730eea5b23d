package repository

import (
	"errors"

	"github.com/Teo107/farmer-assistant/entities"
)

// ErrPhoneAlreadyBound is returned by BindPhone when the farmer already has a phone.
var ErrPhoneAlreadyBound = errors.New("farmer already has a phone bound")

// FarmRepository is the read-mostly data collaborator. Lookups return
// (nil, nil) when the row does not exist.
type FarmRepository interface {
	FarmerByID(id string) (*entities.Farmer, error)
	FarmerByUsername(username string) (*entities.Farmer, error)
	ParcelByID(id string) (*entities.Parcel, error)
	ParcelsByFarmer(farmerID string) ([]entities.Parcel, error)
	IndicesByParcel(parcelID string) ([]entities.IndexRecord, error)

	// BindPhone sets the farmer's phone only if none is set yet.
	BindPhone(farmerID, phone string) error
}
