package schedule

import (
	"math"

	"github.com/brightertomorrows/website-backend/internal/domain/catalog"
)

// Package prices by audience category, delivery method, and session count.
// Entries are whole-package prices at 1, 2, 3, and 4 sessions, not per-session
// rates. Counts past 4 extrapolate linearly from the average marginal increase
// between 1 and 4 sessions.
var priceTable = map[catalog.PriceCategory]map[Delivery][4]float64{
	catalog.PriceElementary: {
		DeliveryVirtual:  {775, 1360, 1890, 2390},
		DeliveryInPerson: {985, 1750, 2450, 3100},
	},
	catalog.PriceSecondary: {
		DeliveryVirtual:  {850, 1500, 2080, 2625},
		DeliveryInPerson: {1085, 1930, 2700, 3415},
	},
}

const (
	taxRate            = 0.13
	maxDiscountPercent = 25
)

// Line is one priced (or custom-flagged) version within a schedule item.
type Line struct {
	ProgramID   string                `json:"program_id"`
	ProgramName string                `json:"program_name"`
	Version     string                `json:"version"`
	Category    catalog.PriceCategory `json:"category"`
	Delivery    Delivery              `json:"delivery"`
	Sessions    int                   `json:"sessions"`
	Price       float64               `json:"price"`
}

// Quote is the cost breakdown for a schedule.
type Quote struct {
	Lines               []Line   `json:"lines"`
	Subtotal            float64  `json:"subtotal"`
	MultiVersionPercent int      `json:"multi_version_percent"`
	MultiProgramPercent int      `json:"multi_program_percent"`
	DiscountPercent     int      `json:"discount_percent"`
	DiscountedSubtotal  float64  `json:"discounted_subtotal"`
	Tax                 float64  `json:"tax"`
	Total               float64  `json:"total"`
	CustomQuotes        []string `json:"custom_quotes,omitempty"`
}

// Estimate prices every version of every item independently, then applies the
// additive capped discount and tax.
func (s *Service) Estimate(sch *Schedule) Quote {
	var q Quote
	customSeen := make(map[string]bool)

	for _, item := range sch.Items {
		prog, ok := s.catalog.Get(item.ProgramID)
		if !ok {
			s.logger.Warn("estimate skipping unknown program", "program_id", item.ProgramID)
			continue
		}
		for _, tag := range item.Versions {
			cat := catalog.CategoryFor(prog.VersionAudience(tag))
			line := Line{
				ProgramID:   prog.ID,
				ProgramName: prog.Name,
				Version:     tag,
				Category:    cat,
				Delivery:    item.Delivery,
				Sessions:    item.Sessions,
			}
			if cat == catalog.PriceCustom {
				if !customSeen[prog.Name] {
					customSeen[prog.Name] = true
					q.CustomQuotes = append(q.CustomQuotes, prog.Name)
				}
			} else {
				line.Price = packagePrice(cat, item.Delivery, item.Sessions)
				q.Subtotal = roundCents(q.Subtotal + line.Price)
			}
			q.Lines = append(q.Lines, line)
		}
	}

	q.MultiVersionPercent = multiVersionPercent(sch)
	q.MultiProgramPercent = multiProgramPercent(len(sch.Items))
	q.DiscountPercent = q.MultiVersionPercent + q.MultiProgramPercent
	if q.DiscountPercent > maxDiscountPercent {
		q.DiscountPercent = maxDiscountPercent
	}

	q.DiscountedSubtotal = roundCents(q.Subtotal * (1 - float64(q.DiscountPercent)/100))
	q.Tax = roundCents(q.DiscountedSubtotal * taxRate)
	q.Total = roundCents(q.DiscountedSubtotal + q.Tax)
	return q
}

// packagePrice looks up the whole-package price for a session count,
// extrapolating past the 4-session tier.
func packagePrice(cat catalog.PriceCategory, d Delivery, sessions int) float64 {
	tiers, ok := priceTable[cat][d]
	if !ok {
		return 0
	}
	if sessions < 1 {
		sessions = 1
	}
	if sessions <= len(tiers) {
		return tiers[sessions-1]
	}
	perSession := (tiers[3] - tiers[0]) / 3
	return roundCents(tiers[3] + perSession*float64(sessions-4))
}

// multiVersionPercent sums the per-item version discount across the schedule.
func multiVersionPercent(sch *Schedule) int {
	total := 0
	for _, item := range sch.Items {
		switch n := len(item.Versions); {
		case n >= 4:
			total += 20
		case n == 3:
			total += 15
		case n == 2:
			total += 10
		}
	}
	return total
}

func multiProgramPercent(programs int) int {
	switch {
	case programs >= 3:
		return 15
	case programs == 2:
		return 10
	default:
		return 0
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
