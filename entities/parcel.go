package entities

type Parcel struct {
	ID       string  `gorm:"primaryKey" json:"id"`
	FarmerID string  `gorm:"index" json:"farmer_id"`
	Name     string  `json:"name"`
	Crop     string  `json:"crop"`
	AreaHa   float64 `json:"area_ha"`
}
