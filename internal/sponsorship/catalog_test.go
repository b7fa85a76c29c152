package sponsorship_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomadscompass/backend/internal/domain"
	"github.com/nomadscompass/backend/internal/sponsorship"
)

func creator() domain.User {
	return domain.User{Email: "creator@example.com", InstagramHandle: "@wanderer"}
}

func legTo(dest string) domain.Leg {
	return domain.Leg{OriginCode: "DEL", DestinationCode: dest}
}

func TestOffers_NoHandleMeansNoOffers(t *testing.T) {
	c := sponsorship.NewCatalog()
	user := creator()
	user.InstagramHandle = ""

	got := c.Offers(user, []domain.Leg{legTo("BKK")})

	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestOffers_GeneralOffersForAnyItinerary(t *testing.T) {
	c := sponsorship.NewCatalog()

	got := c.Offers(creator(), []domain.Leg{legTo("SIN")})

	require.Len(t, got, 2, "general offers only; no leg targets BKK")
	for _, o := range got {
		assert.False(t, o.DestinationSpecific)
	}
}

func TestOffers_DestinationSpecificOfferMatchesLeg(t *testing.T) {
	c := sponsorship.NewCatalog()

	got := c.Offers(creator(), []domain.Leg{legTo("SIN"), legTo("BKK")})

	require.Len(t, got, 3)
	brands := []string{got[0].Brand, got[1].Brand, got[2].Brand}
	assert.Contains(t, brands, "GoPro India")
}

func TestOffers_NoDuplicateForRepeatedDestination(t *testing.T) {
	c := sponsorship.NewCatalog()

	// Two legs into BKK must not produce the BKK offer twice.
	got := c.Offers(creator(), []domain.Leg{legTo("BKK"), legTo("BKK")})

	count := 0
	for _, o := range got {
		if o.Brand == "GoPro India" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestOffers_EmptyItinerary(t *testing.T) {
	c := sponsorship.NewCatalog()

	got := c.Offers(creator(), nil)

	require.Len(t, got, 2, "general offers still apply with no legs")
}

func TestOffers_CustomCatalog(t *testing.T) {
	c := sponsorship.NewCatalogWithOffers([]domain.SponsorshipOffer{
		{Brand: "TestBrand", Description: "desc", DestinationSpecific: true, DestinationCode: "SIN"},
	})

	got := c.Offers(creator(), []domain.Leg{legTo("SIN")})

	require.Len(t, got, 1)
	assert.Equal(t, "TestBrand", got[0].Brand)
}
