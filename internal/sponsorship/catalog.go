// Package sponsorship evaluates which brand offers apply to a user's
// itinerary. The catalog is static rule data, not persisted state.
package sponsorship

import (
	"github.com/nomadscompass/backend/internal/domain"
)

// defaultOffers is the built-in brand catalog.
// Destination-specific offers carry the airport code they are tied to.
var defaultOffers = []domain.SponsorshipOffer{
	{
		Brand:       "SkyBags",
		Description: "15% discount on all travel luggage.",
	},
	{
		Brand:       "Nomad Apparel",
		Description: "Get a free travel shirt with any purchase over ₹2000.",
	},
	{
		Brand:               "GoPro India",
		Description:         "Content Creator Program: Pitch a travel video concept for a chance to get a free camera.",
		DestinationSpecific: true,
		DestinationCode:     "BKK",
	},
}

// Catalog resolves sponsorship offers against its offer set.
type Catalog struct {
	offers []domain.SponsorshipOffer
}

// NewCatalog returns a Catalog with the built-in offer set.
func NewCatalog() *Catalog {
	return &Catalog{offers: defaultOffers}
}

// NewCatalogWithOffers returns a Catalog over a custom offer set, used by
// tests and by deployments that load offers from configuration.
func NewCatalogWithOffers(offers []domain.SponsorshipOffer) *Catalog {
	return &Catalog{offers: offers}
}

// Offers returns the offers the user qualifies for given the itinerary legs.
// Sponsorships target content creators, so a linked instagram handle is the
// gate: without one the result is always empty. With one, the user gets every
// general offer plus any destination-specific offer matching a leg's
// destination. The returned slice is never nil and contains no duplicates.
func (c *Catalog) Offers(user domain.User, legs []domain.Leg) []domain.SponsorshipOffer {
	result := []domain.SponsorshipOffer{}
	if user.InstagramHandle == "" {
		return result
	}

	for _, offer := range c.offers {
		if !offer.DestinationSpecific {
			result = append(result, offer)
			continue
		}
		for _, leg := range legs {
			if leg.DestinationCode == offer.DestinationCode {
				result = append(result, offer)
				break
			}
		}
	}

	return result
}
