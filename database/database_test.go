package database

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Teo107/farmer-assistant/entities"
)

func memDSN(t *testing.T) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
}

func TestLoadJSON_SampleData(t *testing.T) {
	ds, err := LoadJSON(filepath.Join("..", "data"))
	require.NoError(t, err)

	assert.Len(t, ds.Farmers, 3)
	assert.Len(t, ds.Parcels, 4)
	require.Len(t, ds.Indices["P1"], 2)
	assert.Equal(t, "P1", ds.Indices["P1"][0].ParcelID)
	assert.Empty(t, ds.Indices["P4"])
	assert.Equal(t, "", ds.Farmers[0].Phone)
}

func TestLoadJSON_MissingDir(t *testing.T) {
	_, err := LoadJSON(t.TempDir())
	assert.Error(t, err)
}

func TestSeed_OnlyOnce(t *testing.T) {
	db, err := OpenSQLite(memDSN(t))
	require.NoError(t, err)

	ds, err := LoadJSON(filepath.Join("..", "data"))
	require.NoError(t, err)

	seeded, err := Seed(db, ds)
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = Seed(db, ds)
	require.NoError(t, err)
	assert.False(t, seeded)

	var n int64
	require.NoError(t, db.Model(&entities.IndexRecord{}).Count(&n).Error)
	assert.EqualValues(t, 4, n)
}

func TestImportWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "farm.xlsx")

	f := excelize.NewFile()
	_, err := f.NewSheet("Farmers")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Farmers", "A1", &[]any{"ID", "Username", "Phone", "Name"}))
	require.NoError(t, f.SetSheetRow("Farmers", "A2", &[]any{"F9", "dana", "", "Dana Pop"}))

	_, err = f.NewSheet("parcels")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("parcels", "A1", &[]any{"id", "farmer-id", "name", "crop", "Area HA"}))
	require.NoError(t, f.SetSheetRow("parcels", "A2", &[]any{"P9", "F9", "Lake", "rye", 3.5}))

	_, err = f.NewSheet("indices")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("indices", "A1", &[]any{"parcel_id", "date", "ndvi", "ph"}))
	require.NoError(t, f.SetSheetRow("indices", "A2", &[]any{"P9", "2024-03-02", 0.44, ""}))
	require.NoError(t, f.SaveAs(path))

	ds, err := ImportWorkbook(path)
	require.NoError(t, err)

	require.Len(t, ds.Farmers, 1)
	assert.Equal(t, "dana", ds.Farmers[0].Username)
	require.Len(t, ds.Parcels, 1)
	assert.Equal(t, "F9", ds.Parcels[0].FarmerID)
	assert.InDelta(t, 3.5, ds.Parcels[0].AreaHa, 1e-9)
	require.Len(t, ds.Indices["P9"], 1)
	rec := ds.Indices["P9"][0]
	require.NotNil(t, rec.NDVI)
	assert.InDelta(t, 0.44, *rec.NDVI, 1e-9)
	assert.Nil(t, rec.PH)
	assert.Nil(t, rec.SOC)
}

func TestDatasetMerge(t *testing.T) {
	a := &Dataset{Farmers: []entities.Farmer{{ID: "F1"}}}
	b := &Dataset{
		Farmers: []entities.Farmer{{ID: "F2"}},
		Indices: map[string][]entities.IndexRecord{"P1": {{ParcelID: "P1", Date: "2024-01-01"}}},
	}
	a.Merge(b)
	a.Merge(nil)

	assert.Len(t, a.Farmers, 2)
	assert.Len(t, a.Indices["P1"], 1)
}

func TestDatasetMerge_WorkbookRowsReplaceByID(t *testing.T) {
	a := &Dataset{
		Farmers: []entities.Farmer{{ID: "F1", Name: "Ion"}, {ID: "F2", Name: "Maria"}},
		Parcels: []entities.Parcel{{ID: "P1", FarmerID: "F1", Crop: "wheat"}},
	}
	a.Merge(&Dataset{
		Farmers: []entities.Farmer{{ID: "F2", Name: "Maria Ionescu"}, {ID: "F3", Name: "Andrei"}},
		Parcels: []entities.Parcel{{ID: "P1", FarmerID: "F1", Crop: "maize"}},
	})

	require.Len(t, a.Farmers, 3)
	assert.Equal(t, "Ion", a.Farmers[0].Name)
	assert.Equal(t, "Maria Ionescu", a.Farmers[1].Name)
	assert.Equal(t, "F3", a.Farmers[2].ID)
	require.Len(t, a.Parcels, 1)
	assert.Equal(t, "maize", a.Parcels[0].Crop)

	db, err := OpenSQLite(memDSN(t))
	require.NoError(t, err)
	seeded, err := Seed(db, a)
	require.NoError(t, err)
	assert.True(t, seeded)
}

func TestSeed_UsernamesUniqueIgnoringCase(t *testing.T) {
	db, err := OpenSQLite(memDSN(t))
	require.NoError(t, err)

	_, err = Seed(db, &Dataset{Farmers: []entities.Farmer{
		{ID: "F1", Username: "Ion"},
		{ID: "F2", Username: " ion "},
	}})
	assert.Error(t, err)

	var n int64
	require.NoError(t, db.Model(&entities.Farmer{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestSeed_FillsUsernameKey(t *testing.T) {
	db, err := OpenSQLite(memDSN(t))
	require.NoError(t, err)

	_, err = Seed(db, &Dataset{Farmers: []entities.Farmer{{ID: "F1", Username: "Ștefan.Pop"}}})
	require.NoError(t, err)

	var f entities.Farmer
	require.NoError(t, db.First(&f, "id = ?", "F1").Error)
	assert.Equal(t, "ștefan.pop", f.UsernameKey)
}
