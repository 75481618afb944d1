package valueobject

import "fmt"

// Crop is the crop grown in a season.
type Crop struct {
	value string
}

var (
	CropMaize     = Crop{value: "Maize"}
	CropSorghum   = Crop{value: "Sorghum"}
	CropMillet    = Crop{value: "Millet"}
	CropBeans     = Crop{value: "Beans"}
	CropCassava   = Crop{value: "Cassava"}
	CropGroundnut = Crop{value: "Groundnut"}
)

// Crops returns the selectable crops in form order.
func Crops() []Crop {
	return []Crop{CropMaize, CropSorghum, CropMillet, CropBeans, CropCassava, CropGroundnut}
}

// EncodedCrops returns the crops that own an indicator column, in column
// order. Beans is the baseline category and has no column.
func EncodedCrops() []Crop {
	return []Crop{CropCassava, CropGroundnut, CropMaize, CropMillet, CropSorghum}
}

// CropFromString parses a crop name.
func CropFromString(s string) (Crop, error) {
	for _, c := range Crops() {
		if c.value == s {
			return c, nil
		}
	}
	return Crop{}, fmt.Errorf("invalid crop: %q", s)
}

// String returns the string representation.
func (c Crop) String() string {
	return c.value
}

// IsBaseline reports whether the crop encodes as an all-zero indicator block.
func (c Crop) IsBaseline() bool {
	return c.value == CropBeans.value
}

// IsZero returns true if the Crop has not been set.
func (c Crop) IsZero() bool {
	return c.value == ""
}

// Equal checks equality with another Crop.
func (c Crop) Equal(other Crop) bool {
	return c.value == other.value
}
