// Package catalog defines the entity records the store API serves:
// products, cart lines and reviews. Records are immutable snapshots -
// they are replaced wholesale on each fetch, never patched in place.
package catalog

import (
	"errors"
	"strconv"
	"time"
	"unicode/utf8"
)

// DefaultCurrency is used when the backend omits the currency field.
const DefaultCurrency = "COP"

// Entity exposes the sortable dimensions shared by all record types.
// The projector and list controller are generic over this interface.
type Entity interface {
	// EntityID returns the record identifier as a string.
	EntityID() string
	// SortName is the display name used for locale-aware name sorting.
	SortName() string
	// AmountMinor is the monetary amount in integer minor units
	// (a review reports its rating here, its only numeric dimension).
	AmountMinor() int64
	// Created is the creation timestamp; zero means unknown.
	Created() time.Time
	// StockLevel is the stock quantity; zero when not applicable.
	StockLevel() int
	// IsActive reports whether the record is active/visible.
	IsActive() bool
}

// Image is one product image. At most one image per product carries
// the cover flag.
type Image struct {
	URL     string `json:"url"`
	IsCover bool   `json:"is_cover"`
}

// Product is a catalog product as served by the listing endpoint.
type Product struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	CategoryID      int64     `json:"category_id,omitempty"`
	PriceMinorUnits int64     `json:"price_minor_units"`
	Currency        string    `json:"currency"`
	Active          bool      `json:"active"`
	Stock           int       `json:"stock"`
	CreatedAt       time.Time `json:"created_at"`
	ImageReference  string    `json:"image_reference,omitempty"`
	Images          []Image   `json:"images,omitempty"`
}

func (p Product) EntityID() string   { return strconv.FormatInt(p.ID, 10) }
func (p Product) SortName() string   { return p.Name }
func (p Product) AmountMinor() int64 { return p.PriceMinorUnits }
func (p Product) Created() time.Time { return p.CreatedAt }
func (p Product) StockLevel() int    { return p.Stock }
func (p Product) IsActive() bool     { return p.Active }

// DisplayCurrency returns the product currency, falling back to the
// store default when the backend omitted it.
func (p Product) DisplayCurrency() string {
	if p.Currency == "" {
		return DefaultCurrency
	}
	return p.Currency
}

// CartLine is one line of the shopping cart.
type CartLine struct {
	ID             int64     `json:"id"`
	ProductID      int64     `json:"product_id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	UnitPriceMinor int64     `json:"price_minor_units"`
	Currency       string    `json:"currency"`
	Quantity       int       `json:"quantity"`
	Stock          int       `json:"stock"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	ImageReference string    `json:"image_reference,omitempty"`
}

func (l CartLine) EntityID() string   { return strconv.FormatInt(l.ID, 10) }
func (l CartLine) SortName() string   { return l.Name }
func (l CartLine) AmountMinor() int64 { return l.UnitPriceMinor }
func (l CartLine) Created() time.Time { return l.CreatedAt }
func (l CartLine) StockLevel() int    { return l.Stock }
func (l CartLine) IsActive() bool     { return l.Active }

// SubtotalMinor is quantity times unit price, in minor units.
func (l CartLine) SubtotalMinor() int64 {
	return int64(l.Quantity) * l.UnitPriceMinor
}

// CartTotals sums item count and subtotal across lines the way the
// cart view reports them.
func CartTotals(lines []CartLine) (items int, subtotalMinor int64) {
	for _, l := range lines {
		items += l.Quantity
		subtotalMinor += l.SubtotalMinor()
	}
	return items, subtotalMinor
}

// Review is a product review.
type Review struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func (r Review) EntityID() string   { return strconv.FormatInt(r.ID, 10) }
func (r Review) SortName() string   { return r.Author }
func (r Review) AmountMinor() int64 { return int64(r.Rating) }
func (r Review) Created() time.Time { return r.CreatedAt }
func (r Review) StockLevel() int    { return 0 }
func (r Review) IsActive() bool     { return r.Active }

// Review validation mirrors what the backend enforces, so obviously
// bad submissions fail before a network round trip.
const minReviewCommentLen = 10

var (
	ErrRatingRange  = errors.New("rating must be between 1 and 5")
	ErrCommentShort = errors.New("comment must be at least 10 characters")
)

// ValidateReview checks a review submission against the backend rules.
func ValidateReview(rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return ErrRatingRange
	}
	if utf8.RuneCountInString(comment) < minReviewCommentLen {
		return ErrCommentShort
	}
	return nil
}
