package planner

import (
	"fmt"
	"strings"

	"github.com/nomadscompass/backend/internal/domain"
)

// maxListedOptions caps how many flight/hotel options the report shows per
// leg. The full lists remain available in the structured result.
const maxListedOptions = 3

// substituteMarker flags generated fallback entries in the rendered report.
// It must stay visibly distinguishable from live data.
const substituteMarker = "[substitute data]"

// renderReport produces the human-readable plan text. Output is
// deterministic given the FullPlan: same plan, same report.
func renderReport(plan domain.FullPlan) string {
	var b strings.Builder

	rule := strings.Repeat("=", 56)
	fmt.Fprintf(&b, "%s\n TRAVEL PLAN: %s\n Generated: %s\n%s\n",
		rule, plan.ItineraryName, plan.GeneratedAt.Format("2006-01-02 15:04 MST"), rule)

	if len(plan.LegPlans) == 0 {
		b.WriteString("\nThis itinerary has no legs yet. Add legs and generate the plan again.\n")
		return b.String()
	}

	if len(plan.Degraded) > 0 {
		fmt.Fprintf(&b, "\nNOTICE: live data is temporarily unavailable for: %s.\n", strings.Join(plan.Degraded, ", "))
		fmt.Fprintf(&b, "Affected entries are marked with %s.\n", substituteMarker)
	}

	for i, lp := range plan.LegPlans {
		writeLeg(&b, i+1, lp)
	}

	b.WriteString("\nSponsorship offers:\n")
	if len(plan.Offers) == 0 {
		b.WriteString("  (none available)\n")
	}
	for _, offer := range plan.Offers {
		fmt.Fprintf(&b, "  - %s: %s\n", offer.Brand, offer.Description)
	}

	b.WriteString("\nTravel tips:\n")
	b.WriteString("  - Check that your passport is valid for 6+ months beyond your travel dates.\n")
	b.WriteString("  - Reconfirm visa requirements with the embassy before departure.\n")
	b.WriteString("  - Prices shown are indicative; verify with the provider before booking.\n")

	return b.String()
}

// writeLeg renders one leg block: route, visa, flights, hotels.
func writeLeg(b *strings.Builder, n int, lp domain.LegPlan) {
	leg, plan := lp.Leg, lp.Plan

	route := fmt.Sprintf("%s -> %s", plan.OriginCode, plan.DestinationCode)
	if plan.DestinationName != "" {
		route += fmt.Sprintf(" (%s)", plan.DestinationName)
	}
	fmt.Fprintf(b, "\nLEG %d: %s\n", n, route)
	if leg.TravelDate != nil {
		fmt.Fprintf(b, "  Date: %s\n", leg.TravelDate.Format("2006-01-02"))
	}

	writeVisa(b, plan.Visa)
	writeFlights(b, plan.Flights)
	writeHotels(b, plan.Hotels)
}

func writeVisa(b *strings.Builder, visa *domain.Country) {
	if visa == nil {
		b.WriteString("  Visa information: unavailable\n")
		return
	}

	fmt.Fprintf(b, "  Visa (%s):\n", visa.Name)
	fmt.Fprintf(b, "    Policy: %s\n", visa.VisaPolicy)
	fmt.Fprintf(b, "    Processing time: %d day(s)\n", visa.ProcessingTimeDays)
	if len(visa.Requirements) > 0 {
		b.WriteString("    Documents:\n")
		for _, req := range visa.Requirements {
			marker := "optional"
			if req.IsMandatory {
				marker = "required"
			}
			fmt.Fprintf(b, "      [%s] %s\n", marker, req.DocumentName)
		}
	}
}

func writeFlights(b *strings.Builder, flights []domain.FlightOption) {
	b.WriteString("  Flights:\n")
	for i, f := range flights {
		if i == maxListedOptions {
			break
		}
		line := fmt.Sprintf("    - %s", f.Airline)
		if f.FlightNumber != "" {
			line += " " + f.FlightNumber
		}
		if f.DepartureTime != "" || f.ArrivalTime != "" {
			line += fmt.Sprintf("  %s -> %s", f.DepartureTime, f.ArrivalTime)
		}
		if f.Price > 0 {
			line += fmt.Sprintf("  %.0f %s", f.Price, f.Currency)
		}
		if f.Substituted {
			line += "  " + substituteMarker
		}
		b.WriteString(line + "\n")
	}
}

func writeHotels(b *strings.Builder, hotels []domain.HotelOption) {
	b.WriteString("  Hotels:\n")
	for i, h := range hotels {
		if i == maxListedOptions {
			break
		}
		line := fmt.Sprintf("    - %s", h.Name)
		if h.NightlyPrice > 0 {
			line += fmt.Sprintf("  %.0f %s/night", h.NightlyPrice, h.Currency)
		}
		if h.Rating > 0 {
			line += fmt.Sprintf("  (rating %.1f)", h.Rating)
		}
		if h.Substituted {
			line += "  " + substituteMarker
		}
		b.WriteString(line + "\n")
	}
}
