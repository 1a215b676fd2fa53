package race

// Region is one configured state driving an independent fetch cycle.
type Region struct {
	Code string // state abbreviation sent to the listing API
	Name string // display name used in image queries
}

// DefaultRegions are the states the pipeline covers.
var DefaultRegions = []Region{
	{Code: "WA", Name: "Washington"},
	{Code: "OR", Name: "Oregon"},
	{Code: "CA", Name: "California"},
}

// RegionByCode looks up a configured region by its state abbreviation.
func RegionByCode(code string) (Region, bool) {
	for _, r := range DefaultRegions {
		if r.Code == code {
			return r, true
		}
	}
	return Region{}, false
}
