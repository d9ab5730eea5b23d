package service

import (
	"errors"
	"regexp"

	"github.com/Teo107/farmer-assistant/entities"
)

var (
	ErrParcelNotFound   = errors.New("parcel not found")
	ErrNotAuthorized    = errors.New("parcel belongs to another farmer")
	ErrNoMonitoringData = errors.New("no monitoring data for parcel")
)

// ParcelDetails is a parcel plus its newest index record (nil when none).
type ParcelDetails struct {
	entities.Parcel
	Latest *entities.IndexRecord `json:"latest_indices"`
}

type ParcelService interface {
	ParcelsForFarmer(farmerID string) ([]entities.Parcel, error)
	ParcelByID(parcelID string) (*entities.Parcel, error)
	LatestIndices(parcelID string) (*entities.IndexRecord, error)
	ParcelDetailsForFarmer(farmerID, parcelID string) (*ParcelDetails, error)
	FarmerByUsername(username string) (*entities.Farmer, error)
}

var parcelRef = regexp.MustCompile(`(?i)p\s*(\d+)`)

// ExtractParcelReference finds the first "P<digits>" (any case, optional
// whitespace) and returns it as "P<digits>".
func ExtractParcelReference(text string) (string, bool) {
	m := parcelRef.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return "P" + m[1], true
}
