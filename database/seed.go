package database

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/Teo107/farmer-assistant/entities"
)

// Dataset is everything the data collaborator supplies at startup.
type Dataset struct {
	Farmers []entities.Farmer
	Parcels []entities.Parcel
	Indices map[string][]entities.IndexRecord // parcel id -> records
}

const (
	farmersFile = "farmers.json"
	parcelsFile = "parcels.json"
	indicesFile = "parcel_indices.json"
)

// LoadJSON reads farmers.json, parcels.json and parcel_indices.json from dir.
func LoadJSON(dir string) (*Dataset, error) {
	ds := &Dataset{}
	var g errgroup.Group
	g.Go(func() error { return readJSON(filepath.Join(dir, farmersFile), &ds.Farmers) })
	g.Go(func() error { return readJSON(filepath.Join(dir, parcelsFile), &ds.Parcels) })
	g.Go(func() error { return readJSON(filepath.Join(dir, indicesFile), &ds.Indices) })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// the file is keyed by parcel id; records may omit it
	for pid, recs := range ds.Indices {
		for i := range recs {
			recs[i].ParcelID = pid
		}
	}
	return ds, nil
}

func readJSON(path string, into any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(b, into); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Merge layers other on top of d: a farmer or parcel in other replaces the
// one in d with the same ID, new ones are appended. Index records are
// appended per parcel.
func (d *Dataset) Merge(other *Dataset) {
	if other == nil {
		return
	}
	d.Farmers = upsert(d.Farmers, other.Farmers, func(f entities.Farmer) string { return f.ID })
	d.Parcels = upsert(d.Parcels, other.Parcels, func(p entities.Parcel) string { return p.ID })
	if d.Indices == nil {
		d.Indices = map[string][]entities.IndexRecord{}
	}
	for pid, recs := range other.Indices {
		d.Indices[pid] = append(d.Indices[pid], recs...)
	}
}

func upsert[T any](base, top []T, id func(T) string) []T {
	at := make(map[string]int, len(base))
	for i, v := range base {
		at[id(v)] = i
	}
	for _, v := range top {
		if i, ok := at[id(v)]; ok {
			base[i] = v
			continue
		}
		at[id(v)] = len(base)
		base = append(base, v)
	}
	return base
}

// Seed writes the dataset into an empty database. It is a no-op (false) when
// farmers are already present.
func Seed(db *gorm.DB, ds *Dataset) (bool, error) {
	var n int64
	if err := db.Model(&entities.Farmer{}).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count farmers: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	// stable insert order for the index table
	pids := make([]string, 0, len(ds.Indices))
	for pid := range ds.Indices {
		pids = append(pids, pid)
	}
	sort.Strings(pids)

	err := db.Transaction(func(tx *gorm.DB) error {
		if len(ds.Farmers) > 0 {
			if err := tx.Create(&ds.Farmers).Error; err != nil {
				return fmt.Errorf("insert farmers: %w", err)
			}
		}
		if len(ds.Parcels) > 0 {
			if err := tx.Create(&ds.Parcels).Error; err != nil {
				return fmt.Errorf("insert parcels: %w", err)
			}
		}
		for _, pid := range pids {
			recs := ds.Indices[pid]
			if len(recs) == 0 {
				continue
			}
			if err := tx.Create(&recs).Error; err != nil {
				return fmt.Errorf("insert indices for %s: %w", pid, err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
