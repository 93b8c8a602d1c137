package domain

import (
	"errors"
	"strings"
	"time"

	"yakalahadi-backend/pkg/geo"
)

var ErrNotFound = errors.New("campaign not found")

// DiscountRadius is the fixed eligibility radius for discount events,
// regardless of any radius field present on the discount document.
const DiscountRadius = 25000.0

// Campaign is a company campaign document. Created by the company app; the
// console only activates, deactivates and deletes them.
type Campaign struct {
	ID          string     `json:"id" firestore:"-"`
	CompanyID   string     `json:"companyId" firestore:"companyId"`
	Category    string     `json:"category" firestore:"category"`
	Title       string     `json:"title" firestore:"title"`
	Body        string     `json:"body" firestore:"body"`
	LogoURL     string     `json:"logoUrl,omitempty" firestore:"logoUrl,omitempty"`
	Location    *geo.Point `json:"location,omitempty" firestore:"location,omitempty"`
	Radius      float64    `json:"radius" firestore:"radius"`
	Active      bool       `json:"active" firestore:"active"`
	Notified    bool       `json:"notified" firestore:"notified"`
	SentCount   int        `json:"sentCount" firestore:"sentCount"`
	FailedCount int        `json:"failedCount" firestore:"failedCount"`
	CreatedAt   time.Time  `json:"createdAt" firestore:"createdAt"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty" firestore:"expiresAt,omitempty"`
}

// Discount is a company discount document. Its push radius is always
// DiscountRadius; a radius field stored on the document is ignored.
type Discount struct {
	ID          string     `json:"id" firestore:"-"`
	CompanyID   string     `json:"companyId" firestore:"companyId"`
	Category    string     `json:"category" firestore:"category"`
	Title       string     `json:"title" firestore:"title"`
	Body        string     `json:"body" firestore:"body"`
	LogoURL     string     `json:"logoUrl,omitempty" firestore:"logoUrl,omitempty"`
	Location    *geo.Point `json:"location,omitempty" firestore:"location,omitempty"`
	Active      bool       `json:"active" firestore:"active"`
	Notified    bool       `json:"notified" firestore:"notified"`
	SentCount   int        `json:"sentCount" firestore:"sentCount"`
	FailedCount int        `json:"failedCount" firestore:"failedCount"`
	CreatedAt   time.Time  `json:"createdAt" firestore:"createdAt"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty" firestore:"expiresAt,omitempty"`
}

// Event is the notification fan-out input shared by campaigns and discounts.
type Event struct {
	Category string
	Origin   *geo.Point
	Radius   float64
	Title    string
	Body     string
	LogoURL  string
}

// Event converts a campaign into a fan-out event. A campaign without a
// radius keeps radius 0, which makes no one eligible.
func (c *Campaign) Event() Event {
	return Event{
		Category: c.Category,
		Origin:   c.Location,
		Radius:   c.Radius,
		Title:    c.Title,
		Body:     c.Body,
		LogoURL:  c.LogoURL,
	}
}

// Event converts a discount into a fan-out event with the fixed radius.
func (d *Discount) Event() Event {
	return Event{
		Category: d.Category,
		Origin:   d.Location,
		Radius:   DiscountRadius,
		Title:    d.Title,
		Body:     d.Body,
		LogoURL:  d.LogoURL,
	}
}

// ParseTitle resolves the notification image and display title. The company
// app may pack an image URL ahead of a '|' delimiter in the title; without
// one the separate logo URL is used, else there is no image. This is the
// wire convention between the company app and the push payload.
func ParseTitle(raw, logoURL string) (imageURL, title string) {
	if i := strings.Index(raw, "|"); i >= 0 {
		return raw[:i], raw[i+1:]
	}
	return logoURL, raw
}
