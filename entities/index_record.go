package entities

// IndexRecord is one remote-sensing / soil sample for a parcel.
// Any reading may be missing.
type IndexRecord struct {
	RecordID   uint     `gorm:"primaryKey" json:"-"`
	ParcelID   string   `gorm:"index" json:"parcel_id"`
	Date       string   `gorm:"index" json:"date"` // YYYY-MM-DD
	NDVI       *float64 `json:"ndvi"`
	NDMI       *float64 `json:"ndmi"`
	NDWI       *float64 `json:"ndwi"`
	SOC        *float64 `json:"soc"`
	Nitrogen   *float64 `json:"nitrogen"`
	Phosphorus *float64 `json:"phosphorus"`
	Potassium  *float64 `json:"potassium"`
	PH         *float64 `json:"ph"`
}
