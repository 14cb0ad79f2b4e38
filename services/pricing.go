// Package services provides quote pricing, quote document rendering and the
// quote history store.
package services

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"

	"serviceplus/catalog"
)

var (
	ErrMissingPricingData = errors.New("pricing data not available for this service")
	ErrInvalidDiscount    = errors.New("invalid discount")
)

const (
	DefaultLicenses = 10
	MaxUIDiscount   = 60
)

// QuoteDraft is the in-progress quote configuration.
type QuoteDraft struct {
	PlanName       catalog.PlanName
	Licenses       int
	SelectedAddons []string
	Discount       float64
	CustomerName   string
}

// NewDraft returns the draft a freshly opened quoter starts with: the rule's
// first plan, 10 licenses, no add-ons and no discount.
func NewDraft(rule *catalog.PricingRule) QuoteDraft {
	d := QuoteDraft{Licenses: DefaultLicenses}
	if rule != nil && len(rule.Plans) > 0 {
		d.PlanName = rule.Plans[0].Name
	}
	return d
}

// HasAddon reports whether the draft selects the add-on.
func (d QuoteDraft) HasAddon(id string) bool {
	for _, a := range d.SelectedAddons {
		if a == id {
			return true
		}
	}
	return false
}

type LineItem struct {
	Name      string
	UnitPrice float64
	Qty       int
	Total     float64
}

type ApprovalTier int

const (
	ApprovalNone ApprovalTier = iota
	ApprovalCommercialManagement
	ApprovalCEO
)

func (a ApprovalTier) String() string {
	switch a {
	case ApprovalCEO:
		return "CEO"
	case ApprovalCommercialManagement:
		return "Commercial Management"
	default:
		return "none"
	}
}

// Label is the Spanish text shown in the quoter.
func (a ApprovalTier) Label() string {
	switch a {
	case ApprovalCEO:
		return "Aprobación del CEO"
	case ApprovalCommercialManagement:
		return "Aprobación de Gerencia Comercial"
	default:
		return "No requiere aprobación"
	}
}

type MarginTier string

const (
	MarginHealthy MarginTier = "healthy"
	MarginCaution MarginTier = "caution"
	MarginRisk    MarginTier = "risk"
)

// Breakdown is the fully derived pricing of a draft.
type Breakdown struct {
	PlanName       catalog.PlanName
	Licenses       int
	Discount       float64
	SelectedAddons []string // in the rule's add-on order
	LineItems      []LineItem

	TotalCost          float64
	TotalPrice         float64
	FinalPrice         float64
	CustomerSaving     float64
	ContributionMargin float64

	Approval   ApprovalTier
	MarginTier MarginTier
}

// ComputeBreakdown prices a draft against a pricing rule. It has no side
// effects; callers recompute on every draft change.
func ComputeBreakdown(rule *catalog.PricingRule, draft QuoteDraft) (Breakdown, error) {
	if rule == nil || draft.PlanName == "" {
		return Breakdown{}, ErrMissingPricingData
	}
	plan, ok := rule.Plan(draft.PlanName)
	if !ok {
		return Breakdown{}, fmt.Errorf("%w: plan %q not offered", ErrMissingPricingData, draft.PlanName)
	}

	discount, err := NormalizeDiscount(draft.Discount)
	if err != nil {
		return Breakdown{}, err
	}
	licenses := ClampLicenses(draft.Licenses)
	qty := float64(licenses)

	b := Breakdown{
		PlanName: plan.Name,
		Licenses: licenses,
		Discount: discount,
		LineItems: []LineItem{{
			Name:      "Plan: " + string(plan.Name),
			UnitPrice: plan.Price,
			Qty:       licenses,
			Total:     plan.Price * qty,
		}},
		TotalCost:  plan.Cost * qty,
		TotalPrice: plan.Price * qty,
	}

	for _, addon := range rule.Addons {
		if !draft.HasAddon(addon.ID) {
			continue
		}
		b.SelectedAddons = append(b.SelectedAddons, addon.ID)
		b.LineItems = append(b.LineItems, LineItem{
			Name:      "Add-on: " + addon.Name,
			UnitPrice: addon.Price,
			Qty:       licenses,
			Total:     addon.Price * qty,
		})
		b.TotalCost += addon.Cost * qty
		b.TotalPrice += addon.Price * qty
	}

	b.FinalPrice = b.TotalPrice * (1 - discount/100)
	b.CustomerSaving = b.TotalPrice - b.FinalPrice
	if b.FinalPrice != 0 {
		b.ContributionMargin = (b.FinalPrice - b.TotalCost) / b.FinalPrice * 100
	}
	b.Approval = ApprovalFor(discount)
	b.MarginTier = MarginTierFor(b.ContributionMargin)
	return b, nil
}

// ApprovalFor maps a discount to the role that must authorize it. Each tier's
// lower bound is exclusive: 20 needs nothing, 50 needs management only.
func ApprovalFor(discount float64) ApprovalTier {
	if discount > 50 {
		return ApprovalCEO
	}
	if discount > 20 {
		return ApprovalCommercialManagement
	}
	return ApprovalNone
}

func MarginTierFor(margin float64) MarginTier {
	if margin > 20 {
		return MarginHealthy
	}
	if margin >= 10 {
		return MarginCaution
	}
	return MarginRisk
}

// NormalizeDiscount clamps negative discounts to 0 and rejects anything above
// 100 or not a number.
func NormalizeDiscount(d float64) (float64, error) {
	if math.IsNaN(d) || d > 100 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDiscount, d)
	}
	if d < 0 {
		return 0, nil
	}
	return d, nil
}

func ClampLicenses(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// ParseLicenses coerces form input to a license count. Anything that is not a
// positive integer becomes 1.
func ParseLicenses(s string) int {
	n, err := cast.ToIntE(strings.TrimSpace(s))
	if err != nil {
		return 1
	}
	return ClampLicenses(n)
}

// ParseDiscount coerces the discount slider value. Empty input means no discount.
func ParseDiscount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	d, err := cast.ToFloat64E(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDiscount, s)
	}
	return NormalizeDiscount(d)
}
