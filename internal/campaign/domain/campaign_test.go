package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	userdomain "yakalahadi-backend/internal/user/domain"
	"yakalahadi-backend/pkg/geo"
)

func TestParseTitleWithImage(t *testing.T) {
	image, title := ParseTitle("https://x/logo.png|Big Sale", "")
	assert.Equal(t, "https://x/logo.png", image)
	assert.Equal(t, "Big Sale", title)
}

func TestParseTitleFallbackLogo(t *testing.T) {
	image, title := ParseTitle("Big Sale", "https://x/fallback.png")
	assert.Equal(t, "https://x/fallback.png", image)
	assert.Equal(t, "Big Sale", title)
}

func TestParseTitleNoImage(t *testing.T) {
	image, title := ParseTitle("Big Sale", "")
	assert.Empty(t, image)
	assert.Equal(t, "Big Sale", title)
}

func testUser(token string, loc *geo.Point, receiveAll bool, categories ...string) *userdomain.User {
	return &userdomain.User{
		ID:                 "u1",
		FCMToken:           token,
		Location:           loc,
		ReceiveAll:         receiveAll,
		SelectedCategories: categories,
	}
}

func TestEligibleExcludesMissingToken(t *testing.T) {
	e := Event{Category: "food", Origin: &geo.Point{Lat: 41, Lng: 29}, Radius: 1_000_000}
	u := testUser("", &geo.Point{Lat: 41, Lng: 29}, true)
	assert.False(t, Eligible(e, u))
}

func TestEligibleExcludesMissingLocation(t *testing.T) {
	e := Event{Category: "food", Origin: &geo.Point{Lat: 41, Lng: 29}, Radius: 1_000_000}
	u := testUser("tok", nil, true)
	assert.False(t, Eligible(e, u))
}

func TestEligibleBoundaryInclusive(t *testing.T) {
	origin := geo.Point{Lat: 41, Lng: 29}
	target := geo.Point{Lat: 41, Lng: 29.01}
	radius := geo.Distance(origin, target)

	e := Event{Category: "food", Origin: &origin, Radius: radius}
	u := testUser("tok", &target, true)
	assert.True(t, Eligible(e, u), "user exactly at distance == radius is eligible")

	e.Radius = radius - 1
	assert.False(t, Eligible(e, u))
}

func TestEligibleCategoryMatch(t *testing.T) {
	origin := geo.Point{Lat: 41, Lng: 29}
	e := Event{Category: "food", Origin: &origin, Radius: 5000}

	near := &geo.Point{Lat: 41.001, Lng: 29}
	assert.True(t, Eligible(e, testUser("tok", near, false, "food", "fashion")))
	assert.False(t, Eligible(e, testUser("tok", near, false, "fashion")))
	assert.True(t, Eligible(e, testUser("tok", near, true)), "receiveAll overrides categories")
}

func TestEligibleZeroRadiusCampaign(t *testing.T) {
	origin := geo.Point{Lat: 41, Lng: 29}
	c := &Campaign{Category: "food", Location: &origin}
	e := c.Event()

	// No radius on the campaign means no one is eligible, not even at the origin.
	assert.False(t, Eligible(e, testUser("tok", &geo.Point{Lat: 41.0001, Lng: 29}, true)))
	assert.True(t, Eligible(e, testUser("tok", &origin, true)), "distance 0 <= radius 0")
}

func TestDiscountEventFixedRadius(t *testing.T) {
	d := &Discount{Category: "food", Location: &geo.Point{Lat: 41, Lng: 29}}
	assert.Equal(t, DiscountRadius, d.Event().Radius)

	// ~0.2 degrees latitude is about 22 km: inside the fixed radius.
	inside := &geo.Point{Lat: 41.2, Lng: 29}
	assert.True(t, Eligible(d.Event(), testUser("tok", inside, true)))

	// ~0.3 degrees is about 33 km: outside.
	outside := &geo.Point{Lat: 41.3, Lng: 29}
	assert.False(t, Eligible(d.Event(), testUser("tok", outside, true)))
}

func TestEligibleUsersFilters(t *testing.T) {
	origin := geo.Point{Lat: 41, Lng: 29}
	near := &geo.Point{Lat: 41.001, Lng: 29}
	e := Event{Category: "food", Origin: &origin, Radius: 5000}

	users := []*userdomain.User{
		testUser("tok", near, true),
		testUser("", near, true),
		testUser("tok", nil, true),
		testUser("tok", near, false, "fashion"),
	}

	assert.Len(t, EligibleUsers(e, users), 1)
}
