// Package services implements the quote engine for the print shop: unit
// conversion, the four pricing flows (area, film, catalog product, manual),
// quote accumulation, and the sale/import collaborators around PocketBase.
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pocketbase/pocketbase/tools/security"
)

// Validation rejections returned by the line item builders. These are
// user-correctable and never mutate the quote.
var (
	ErrRollNotSelected     = errors.New("no material roll selected")
	ErrTierNotSelected     = errors.New("no pricing tier selected")
	ErrProductNotSelected  = errors.New("no product selected")
	ErrNonPositiveQuantity = errors.New("quantity must be greater than zero")
	ErrNonPositivePrice    = errors.New("price must be greater than zero")
	ErrNonPositiveTotal    = errors.New("total price must be greater than zero")
	ErrBlankName           = errors.New("name must not be blank")
	ErrNegativeDimension   = errors.New("dimensions must not be negative")
	ErrNegativeRate        = errors.New("rate per meter must not be negative")
	ErrNegativeExtraFee    = errors.New("extra fee must not be negative")
)

// BelowFloorPriceError is returned when a negotiated product price is under
// the product's floor price. The floor is carried so callers can report it.
type BelowFloorPriceError struct {
	Floor float64
}

func (e *BelowFloorPriceError) Error() string {
	return fmt.Sprintf("negotiated price is below the floor price of %s", FormatIDR(e.Floor))
}

// MaterialRoll is a roll of printable material as stocked in the catalog.
type MaterialRoll struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	RollWidth    float64 `json:"roll_width"`    // meters
	StockLength  float64 `json:"stock_length"`  // meters
	ReorderLevel float64 `json:"reorder_level"` // meters
	LastPrice    float64 `json:"last_price"`    // per roll
}

// PricingTier is a named area-price multiplier, in rupiah per square centimeter.
type PricingTier struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Multiplier float64 `json:"multiplier"`
}

// ProductAttribute is one populated attribute slot of a catalog product.
type ProductAttribute struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Product is a ready-made catalog product sold at a negotiated price.
type Product struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Category   string             `json:"category"`
	Attributes []ProductAttribute `json:"attributes"`  // at most five
	Price      float64            `json:"price"`       // preferred unit price
	FloorPrice float64            `json:"floor_price"` // minimum allowed unit price
	Quantity   float64            `json:"quantity"`    // stock on hand
}

// AttributeField defines one selectable attribute of a product category.
type AttributeField struct {
	Label   string   `json:"label"`
	Options []string `json:"options"`
}

// CategoryConfig drives the cascading attribute selectors for a product category.
type CategoryConfig struct {
	Name   string           `json:"name"`
	Fields []AttributeField `json:"fields"` // at most five
}

// FilmPreset is a flat-priced film sheet. SheetLength is the canonical sheet
// length the preset snaps the length field to; it never affects the price.
type FilmPreset struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`        // per unit quantity
	SheetLength float64 `json:"sheet_length"` // meters
}

// FilmPresets are the two fixed film sheet offerings.
var FilmPresets = []FilmPreset{
	{Name: "Half Sheet", Price: 5000, SheetLength: 0.5},
	{Name: "Full Sheet", Price: 7500, SheetLength: 1.0},
}

// FindFilmPreset returns the preset with the given name, or nil.
func FindFilmPreset(name string) *FilmPreset {
	for i := range FilmPresets {
		if FilmPresets[i].Name == name {
			return &FilmPresets[i]
		}
	}
	return nil
}

// ItemKind tags a line item with the flow that produced it.
type ItemKind string

const (
	KindArea    ItemKind = "area"
	KindFilm    ItemKind = "film"
	KindProduct ItemKind = "product"
	KindManual  ItemKind = "manual"
)

// LineItem is one priced row of a quote. UnitPrice already includes any
// extra fee, amortized across the quantity, so
// UnitPrice * Quantity == base price + extra fee always holds.
type LineItem struct {
	ID        string   `json:"id"`
	Kind      ItemKind `json:"kind"`
	Name      string   `json:"name"`
	Quantity  int      `json:"qty"`
	UnitPrice float64  `json:"unit_price"`
}

// LineTotal returns Quantity x UnitPrice.
func (li LineItem) LineTotal() float64 {
	return float64(li.Quantity) * li.UnitPrice
}

func newItemID(kind ItemKind) string {
	return string(kind) + "_" + security.PseudorandomString(10)
}

// extraFeeSuffix renders the display-name annotation for a non-zero extra fee.
func extraFeeSuffix(fee float64, label, fallback string) string {
	if fee <= 0 {
		return ""
	}
	if strings.TrimSpace(label) == "" {
		label = fallback
	}
	return fmt.Sprintf(" + %s: %s", label, FormatIDR(fee))
}

// AreaItemInput carries the user-entered fields of the area pricing flow.
type AreaItemInput struct {
	Length        float64
	LengthUnit    LengthUnit
	Width         float64
	WidthUnit     LengthUnit
	Quantity      int
	ExtraFee      float64
	ExtraFeeLabel string
}

// BuildAreaItem prices a cut of material by area:
// lengthCm x widthCm x tier multiplier x quantity, plus the extra fee.
// Checks run in order and the first failure wins: roll selected, tier
// selected, positive quantity, non-negative dimensions and fee, positive
// total. Negative dimensions are rejected here so they never reach the
// multiplication, where two of them would cancel out.
func BuildAreaItem(in AreaItemInput, roll *MaterialRoll, tier *PricingTier) (LineItem, error) {
	if roll == nil {
		return LineItem{}, ErrRollNotSelected
	}
	if tier == nil {
		return LineItem{}, ErrTierNotSelected
	}
	if in.Quantity <= 0 {
		return LineItem{}, ErrNonPositiveQuantity
	}
	if in.Length < 0 || in.Width < 0 {
		return LineItem{}, ErrNegativeDimension
	}
	if in.ExtraFee < 0 {
		return LineItem{}, ErrNegativeExtraFee
	}

	lengthM := ToMeters(in.Length, in.LengthUnit)
	widthM := ToMeters(in.Width, in.WidthUnit)
	lengthCm := lengthM * 100
	widthCm := widthM * 100

	basePrice := lengthCm * widthCm * tier.Multiplier * float64(in.Quantity)
	totalPrice := basePrice + in.ExtraFee
	if totalPrice <= 0 {
		return LineItem{}, ErrNonPositiveTotal
	}

	name := fmt.Sprintf("%s %s", roll.Name, FormatDimensions(lengthM, widthM))
	name += extraFeeSuffix(in.ExtraFee, in.ExtraFeeLabel, "Extra")

	return LineItem{
		ID:        newItemID(KindArea),
		Kind:      KindArea,
		Name:      name,
		Quantity:  in.Quantity,
		UnitPrice: totalPrice / float64(in.Quantity),
	}, nil
}

// FilmItemInput carries the user-entered fields of the film pricing flow.
// Preset and custom length are mutually exclusive: when Preset is set the
// price is the preset's flat amount per unit quantity and Length is ignored.
type FilmItemInput struct {
	Preset        *FilmPreset
	Length        float64
	LengthUnit    LengthUnit
	RatePerMeter  float64
	Quantity      int
	ExtraFee      float64
	ExtraFeeLabel string
}

// BuildFilmItem prices film stock either at a preset's flat price or at a
// custom per-meter rate. No pricing tier applies; only the film roll must be
// selected. A custom length and its rate must both be non-negative before
// they are multiplied.
func BuildFilmItem(in FilmItemInput, roll *MaterialRoll) (LineItem, error) {
	if roll == nil {
		return LineItem{}, ErrRollNotSelected
	}
	if in.Quantity <= 0 {
		return LineItem{}, ErrNonPositiveQuantity
	}
	if in.Preset == nil {
		if in.Length < 0 {
			return LineItem{}, ErrNegativeDimension
		}
		if in.RatePerMeter < 0 {
			return LineItem{}, ErrNegativeRate
		}
	}
	if in.ExtraFee < 0 {
		return LineItem{}, ErrNegativeExtraFee
	}

	var basePrice float64
	var suffix string
	if in.Preset != nil {
		basePrice = in.Preset.Price * float64(in.Quantity)
		suffix = fmt.Sprintf(" (%s)", in.Preset.Name)
	} else {
		lengthM := ToMeters(in.Length, in.LengthUnit)
		basePrice = lengthM * in.RatePerMeter * float64(in.Quantity)
		suffix = fmt.Sprintf(" (Custom Length: %.2fm)", lengthM)
	}

	totalPrice := basePrice + in.ExtraFee
	if totalPrice <= 0 {
		return LineItem{}, ErrNonPositiveTotal
	}

	name := roll.Name + suffix
	name += extraFeeSuffix(in.ExtraFee, in.ExtraFeeLabel, "Extra")

	return LineItem{
		ID:        newItemID(KindFilm),
		Kind:      KindFilm,
		Name:      name,
		Quantity:  in.Quantity,
		UnitPrice: totalPrice / float64(in.Quantity),
	}, nil
}

// ProductItemInput carries the user-entered fields of the catalog product flow.
type ProductItemInput struct {
	NegotiatedPrice float64
	Quantity        int
	ExtraFee        float64
	ExtraFeeLabel   string
}

// BuildProductItem prices a catalog product at a negotiated unit price.
// The negotiated price must be at or above the product's floor price.
func BuildProductItem(in ProductItemInput, product *Product) (LineItem, error) {
	if product == nil {
		return LineItem{}, ErrProductNotSelected
	}
	if in.Quantity <= 0 {
		return LineItem{}, ErrNonPositiveQuantity
	}
	if in.NegotiatedPrice < product.FloorPrice {
		return LineItem{}, &BelowFloorPriceError{Floor: product.FloorPrice}
	}
	if in.ExtraFee < 0 {
		return LineItem{}, ErrNegativeExtraFee
	}

	totalPrice := in.NegotiatedPrice*float64(in.Quantity) + in.ExtraFee
	if totalPrice <= 0 {
		return LineItem{}, ErrNonPositiveTotal
	}

	name := product.Name
	if attrs := joinAttributeValues(product.Attributes); attrs != "" {
		name += " (" + attrs + ")"
	}
	name += extraFeeSuffix(in.ExtraFee, in.ExtraFeeLabel, "Extra Fee/Design")

	return LineItem{
		ID:        newItemID(KindProduct),
		Kind:      KindProduct,
		Name:      name,
		Quantity:  in.Quantity,
		UnitPrice: totalPrice / float64(in.Quantity),
	}, nil
}

// joinAttributeValues pipe-joins the populated attribute values, skipping
// empty slots.
func joinAttributeValues(attrs []ProductAttribute) string {
	var values []string
	for _, a := range attrs {
		if v := strings.TrimSpace(a.Value); v != "" {
			values = append(values, v)
		}
	}
	return strings.Join(values, " | ")
}

// ManualItemInput carries the fields of a free-text charge.
type ManualItemInput struct {
	Name      string
	UnitPrice float64
	Quantity  int
}

// BuildManualItem creates a line item from a free-text name and price,
// untied to any catalog entity. There is no extra fee concept here.
func BuildManualItem(in ManualItemInput) (LineItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return LineItem{}, ErrBlankName
	}
	if in.UnitPrice <= 0 {
		return LineItem{}, ErrNonPositivePrice
	}
	if in.Quantity <= 0 {
		return LineItem{}, ErrNonPositiveQuantity
	}

	return LineItem{
		ID:        newItemID(KindManual),
		Kind:      KindManual,
		Name:      name,
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
	}, nil
}
