package services

// BidOffer is one subcontractor's total for a scope of work.
type BidOffer struct {
	Firm  string  `json:"firm"`
	Total float64 `json:"total"`
}

// BidComparison summarizes competing offers for one scope. Lowest and
// Highest are nil when no offer carries a positive total; FirmCount still
// counts every firm that was asked.
type BidComparison struct {
	Lowest    *BidOffer `json:"lowest"`
	Highest   *BidOffer `json:"highest"`
	Average   float64   `json:"average"`
	FirmCount int       `json:"firm_count"`
}

// CompareBids lines competing offers up the way a site office does on one
// sheet: zero and negative totals are excluded from the statistics but
// still count toward the number of firms.
func CompareBids(offers []BidOffer) BidComparison {
	comp := BidComparison{FirmCount: len(offers)}

	valid := make([]BidOffer, 0, len(offers))
	for _, o := range offers {
		if o.Total > 0 {
			valid = append(valid, o)
		}
	}
	if len(valid) == 0 {
		return comp
	}

	lowest, highest := valid[0], valid[0]
	var sum float64
	for _, o := range valid {
		if o.Total < lowest.Total {
			lowest = o
		}
		if o.Total > highest.Total {
			highest = o
		}
		sum += o.Total
	}

	comp.Lowest = &lowest
	comp.Highest = &highest
	comp.Average = Round2(sum / float64(len(valid)))
	return comp
}
