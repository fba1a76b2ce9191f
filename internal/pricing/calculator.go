package pricing

import "time"

// StayRequest is the raw guest input for a quote or a submission attempt, as
// it arrives from the booking form.
type StayRequest struct {
	CheckIn   time.Time
	CheckOut  time.Time
	Adults    int
	ChildAges []int
	Parking   ParkingOption
}

// CostBreakdown is derived from a StayRequest and a RateSchedule and is never
// stored independently of the inputs that produced it.
//
// Invariants: TotalAmount == BasePrice + CleaningFee + ParkingCost +
// TouristTax, and DepositAmount == TotalAmount * DepositPercent / 100.
type CostBreakdown struct {
	Nights        int   `json:"nights"`
	BasePrice     Cents `json:"base_price"`
	CleaningFee   Cents `json:"cleaning_fee"`
	ParkingCost   Cents `json:"parking_cost"`
	TouristTax    Cents `json:"tourist_tax"`
	TotalAmount   Cents `json:"total_amount"`
	DepositAmount Cents `json:"deposit_amount"`
	PayingGuests  int   `json:"paying_guests"`
	TaxableGuests int   `json:"taxable_guests"`
}

// nightlyRate walks the tier bands: the first Tiers[0].Capacity paying guests
// pay that tier's rate, the next band the next rate, and a zero-capacity tier
// absorbs the rest.
func nightlyRate(s RateSchedule, payingGuests int) Cents {
	var rate Cents
	remaining := payingGuests
	for _, tier := range s.Tiers {
		if remaining <= 0 {
			break
		}
		n := remaining
		if tier.Capacity > 0 && n > tier.Capacity {
			n = tier.Capacity
		}
		rate += Cents(n) * tier.NightlyRate
		remaining -= n
	}
	return rate
}

// Calculate maps a validated stay, an occupancy and a parking choice to the
// full cost breakdown. Pure and deterministic: identical inputs produce an
// identical breakdown wherever it runs, which is what lets the same function
// back both the on-page quote and the authoritative server-side total.
func Calculate(s RateSchedule, stay Stay, occ Occupancy, parking ParkingOption) CostBreakdown {
	var basePrice Cents
	if stay.Nights == 1 && s.OneNightFlatRate > 0 {
		basePrice = Cents(occ.PayingGuests) * s.OneNightFlatRate
	} else {
		basePrice = nightlyRate(s, occ.PayingGuests) * Cents(stay.Nights)
	}

	var parkingCost Cents
	if parking == ParkingPrivate {
		rate := s.ParkingLowSeason
		if s.HighSeasonMonths[stay.CheckIn.Month()] {
			rate = s.ParkingHighSeason
		}
		parkingCost = rate * Cents(stay.Nights)
	}

	touristTax := Cents(occ.TaxableGuests) * s.TouristTaxPerPersonNight * Cents(stay.Nights)

	total := basePrice + s.CleaningFee + parkingCost + touristTax

	return CostBreakdown{
		Nights:        stay.Nights,
		BasePrice:     basePrice,
		CleaningFee:   s.CleaningFee,
		ParkingCost:   parkingCost,
		TouristTax:    touristTax,
		TotalAmount:   total,
		DepositAmount: total * Cents(s.DepositPercent) / 100,
		PayingGuests:  occ.PayingGuests,
		TaxableGuests: occ.TaxableGuests,
	}
}

// Quote runs the full validate-classify-calculate pipeline for a raw request.
// This is the speculative evaluation the site uses for instant feedback; the
// booking service runs the exact same code before persisting.
func Quote(s RateSchedule, now time.Time, req StayRequest) (CostBreakdown, error) {
	stay, err := ValidateStay(s, now, req.CheckIn, req.CheckOut)
	if err != nil {
		return CostBreakdown{}, err
	}
	occ, err := ClassifyOccupancy(s, req.Adults, req.ChildAges)
	if err != nil {
		return CostBreakdown{}, err
	}
	return Calculate(s, stay, occ, req.Parking), nil
}
