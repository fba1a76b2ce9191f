package pricing

// Occupancy splits the raw guest counts into the two numbers the calculator
// needs. The free-stay age and the tax-exemption age are independent policy
// knobs: a child can occupy a paid bed and still be tax-exempt, or the other
// way round.
type Occupancy struct {
	PayingGuests  int
	TaxableGuests int
}

// ClassifyOccupancy applies the schedule's age thresholds to adults plus a
// list of child ages.
func ClassifyOccupancy(s RateSchedule, adults int, childAges []int) (Occupancy, error) {
	occ := Occupancy{PayingGuests: adults, TaxableGuests: adults}
	for _, age := range childAges {
		if age > s.ChildFreeAge {
			occ.PayingGuests++
		}
		if age >= s.ChildTaxExemptAge {
			occ.TaxableGuests++
		}
	}
	if occ.PayingGuests <= 0 {
		return Occupancy{}, reject(ReasonNonPositiveOccupancy, "at least one paying guest is required")
	}
	return occ, nil
}
