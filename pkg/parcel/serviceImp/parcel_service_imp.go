package serviceImp

import (
	"github.com/Teo107/farmer-assistant/entities"
	repo "github.com/Teo107/farmer-assistant/pkg/parcel/repository"
	"github.com/Teo107/farmer-assistant/pkg/parcel/service"
)

type parcelSvc struct{ r repo.FarmRepository }

func NewParcelService(r repo.FarmRepository) service.ParcelService { return &parcelSvc{r} }

func (s *parcelSvc) ParcelsForFarmer(farmerID string) ([]entities.Parcel, error) {
	ps, err := s.r.ParcelsByFarmer(farmerID)
	if err != nil {
		return nil, err
	}
	if ps == nil {
		ps = []entities.Parcel{}
	}
	return ps, nil
}

func (s *parcelSvc) ParcelByID(parcelID string) (*entities.Parcel, error) {
	p, err := s.r.ParcelByID(parcelID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, service.ErrParcelNotFound
	}
	return p, nil
}

// LatestIndices picks the record with the greatest ISO date; ties keep the
// first one stored.
func (s *parcelSvc) LatestIndices(parcelID string) (*entities.IndexRecord, error) {
	recs, err := s.r.IndicesByParcel(parcelID)
	if err != nil {
		return nil, err
	}
	var latest *entities.IndexRecord
	for i := range recs {
		if latest == nil || recs[i].Date > latest.Date {
			latest = &recs[i]
		}
	}
	return latest, nil
}

func (s *parcelSvc) ParcelDetailsForFarmer(farmerID, parcelID string) (*service.ParcelDetails, error) {
	p, err := s.ParcelByID(parcelID)
	if err != nil {
		return nil, err
	}
	if p.FarmerID != farmerID {
		return nil, service.ErrNotAuthorized
	}
	latest, err := s.LatestIndices(parcelID)
	if err != nil {
		return nil, err
	}
	return &service.ParcelDetails{Parcel: *p, Latest: latest}, nil
}

func (s *parcelSvc) FarmerByUsername(username string) (*entities.Farmer, error) {
	return s.r.FarmerByUsername(username)
}
