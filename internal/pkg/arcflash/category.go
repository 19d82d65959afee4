package arcflash

// Category is the discrete PPE class derived from incident energy.
type Category int

const (
	CategoryNone Category = iota
	Category1
	Category2
	Category3
	Category4
	CategoryDangerous
)

// categoryBand pairs a category with its inclusive upper energy bound.
type categoryBand struct {
	limit    float64
	category Category
}

// Bands evaluated in ascending order, upper bound inclusive.
var categoryBands = []categoryBand{
	{1.2, CategoryNone},
	{4, Category1},
	{8, Category2},
	{25, Category3},
	{40, Category4},
}

// Classify maps incident energy (cal/cm2) onto the PPE ladder.
func Classify(energyCalCm2 float64) Category {
	for _, band := range categoryBands {
		if energyCalCm2 <= band.limit {
			return band.category
		}
	}
	return CategoryDangerous
}

func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "Below arc-flash threshold (No PPE)"
	case Category1:
		return "PPE Category 1"
	case Category2:
		return "PPE Category 2"
	case Category3:
		return "PPE Category 3"
	case Category4:
		return "PPE Category 4"
	}
	return "Above PPE Category 4 (Dangerous)"
}

// Limit returns the category's inclusive upper energy bound in cal/cm2.
// The second return is false above Category 4, where no PPE is adequate.
func (c Category) Limit() (float64, bool) {
	for _, band := range categoryBands {
		if band.category == c {
			return band.limit, true
		}
	}
	return 0, false
}
