package repositoryImp

import (
	"sort"
	"sync"

	"github.com/Teo107/farmer-assistant/entities"
	"github.com/Teo107/farmer-assistant/pkg/parcel/repository"
)

// memRepo is a map-backed FarmRepository for fixtures and tests.
type memRepo struct {
	mu      sync.RWMutex
	farmers map[string]*entities.Farmer
	parcels map[string]entities.Parcel
	indices map[string][]entities.IndexRecord
}

func NewMemory(farmers []entities.Farmer, parcels []entities.Parcel, indices map[string][]entities.IndexRecord) repository.FarmRepository {
	r := &memRepo{
		farmers: make(map[string]*entities.Farmer, len(farmers)),
		parcels: make(map[string]entities.Parcel, len(parcels)),
		indices: make(map[string][]entities.IndexRecord, len(indices)),
	}
	for i := range farmers {
		f := farmers[i]
		r.farmers[f.ID] = &f
	}
	for _, p := range parcels {
		r.parcels[p.ID] = p
	}
	for pid, recs := range indices {
		r.indices[pid] = append([]entities.IndexRecord(nil), recs...)
	}
	return r
}

func (r *memRepo) FarmerByID(id string) (*entities.Farmer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if f, ok := r.farmers[id]; ok {
		cp := *f
		return &cp, nil
	}
	return nil, nil
}

func (r *memRepo) FarmerByUsername(username string) (*entities.Farmer, error) {
	u := entities.UsernameKeyOf(username)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, f := range r.farmers {
		if entities.UsernameKeyOf(f.Username) == u {
			cp := *f
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memRepo) ParcelByID(id string) (*entities.Parcel, error) {
	if p, ok := r.parcels[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *memRepo) ParcelsByFarmer(farmerID string) ([]entities.Parcel, error) {
	var out []entities.Parcel
	for _, p := range r.parcels {
		if p.FarmerID == farmerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) IndicesByParcel(parcelID string) ([]entities.IndexRecord, error) {
	return append([]entities.IndexRecord(nil), r.indices[parcelID]...), nil
}

func (r *memRepo) BindPhone(farmerID, phone string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.farmers[farmerID]
	if !ok || f.Phone != "" {
		return repository.ErrPhoneAlreadyBound
	}
	f.Phone = phone
	return nil
}
