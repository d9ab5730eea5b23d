package database

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Teo107/farmer-assistant/entities"
)

// Workbook sheet names. Headers are matched loosely (case, spaces, -, _).
const (
	SheetFarmers = "farmers"
	SheetParcels = "parcels"
	SheetIndices = "indices"
)

// ImportWorkbook reads farmers, parcels and index records from an XLSX file.
// Missing sheets are skipped; a sheet without its id column is an error.
func ImportWorkbook(path string) (*Dataset, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer x.Close()

	ds := &Dataset{Indices: map[string][]entities.IndexRecord{}}

	if rows, ok := sheetRows(x, SheetFarmers); ok {
		t, err := newTable(rows, "id")
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", SheetFarmers, err)
		}
		for _, r := range t.rows {
			ds.Farmers = append(ds.Farmers, entities.Farmer{
				ID:       t.str(r, "id"),
				Username: t.str(r, "username"),
				Phone:    t.str(r, "phone"),
				Name:     t.str(r, "name"),
			})
		}
	}

	if rows, ok := sheetRows(x, SheetParcels); ok {
		t, err := newTable(rows, "id")
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", SheetParcels, err)
		}
		for _, r := range t.rows {
			area := 0.0
			if v := t.num(r, "area_ha", "area"); v != nil {
				area = *v
			}
			ds.Parcels = append(ds.Parcels, entities.Parcel{
				ID:       t.str(r, "id"),
				FarmerID: t.str(r, "farmer_id"),
				Name:     t.str(r, "name"),
				Crop:     t.str(r, "crop"),
				AreaHa:   area,
			})
		}
	}

	if rows, ok := sheetRows(x, SheetIndices); ok {
		t, err := newTable(rows, "parcel_id")
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", SheetIndices, err)
		}
		for _, r := range t.rows {
			rec := entities.IndexRecord{
				ParcelID:   t.str(r, "parcel_id"),
				Date:       t.str(r, "date"),
				NDVI:       t.num(r, "ndvi"),
				NDMI:       t.num(r, "ndmi"),
				NDWI:       t.num(r, "ndwi"),
				SOC:        t.num(r, "soc"),
				Nitrogen:   t.num(r, "nitrogen", "n"),
				Phosphorus: t.num(r, "phosphorus", "p"),
				Potassium:  t.num(r, "potassium", "k"),
				PH:         t.num(r, "ph"),
			}
			ds.Indices[rec.ParcelID] = append(ds.Indices[rec.ParcelID], rec)
		}
	}
	return ds, nil
}

func sheetRows(x *excelize.File, name string) ([][]string, bool) {
	for _, s := range x.GetSheetList() {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			rows, err := x.GetRows(s)
			if err != nil || len(rows) == 0 {
				return nil, false
			}
			return rows, true
		}
	}
	return nil, false
}

type table struct {
	cols map[string]int
	rows [][]string
}

func normHeader(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF") // BOM
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

func newTable(rows [][]string, key string) (*table, error) {
	t := &table{cols: map[string]int{}}
	for i, h := range rows[0] {
		t.cols[normHeader(h)] = i
	}
	keyIdx, ok := t.cols[normHeader(key)]
	if !ok {
		return nil, fmt.Errorf("missing %q column", key)
	}
	for _, r := range rows[1:] {
		if keyIdx >= len(r) || strings.TrimSpace(r[keyIdx]) == "" {
			continue
		}
		t.rows = append(t.rows, r)
	}
	return t, nil
}

func (t *table) cell(r []string, names ...string) string {
	for _, n := range names {
		if i, ok := t.cols[normHeader(n)]; ok && i < len(r) {
			return strings.TrimSpace(r[i])
		}
	}
	return ""
}

func (t *table) str(r []string, names ...string) string { return t.cell(r, names...) }

// num returns nil for empty or non-numeric cells.
func (t *table) num(r []string, names ...string) *float64 {
	v := t.cell(r, names...)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
	if err != nil {
		return nil
	}
	return &f
}
