package services

import (
	"errors"
	"math"
	"testing"

	"serviceplus/catalog"
)

func TestComputeBreakdown_WorkedExamples(t *testing.T) {
	tests := []struct {
		name         string
		discount     float64
		wantFinal    float64
		wantSaving   float64
		wantMargin   float64
		wantApproval ApprovalTier
	}{
		{"no discount", 0, 120, 0, 41.6667, ApprovalNone},
		{"management discount", 25, 90, 30, 22.2222, ApprovalCommercialManagement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ComputeBreakdown(testRule(), QuoteDraft{
				PlanName:       catalog.PlanBasic,
				Licenses:       10,
				SelectedAddons: []string{"a1"},
				Discount:       tt.discount,
			})
			if err != nil {
				t.Fatalf("ComputeBreakdown() error = %v", err)
			}
			if !floatClose(b.TotalPrice, 120) {
				t.Errorf("TotalPrice = %v, want 120", b.TotalPrice)
			}
			if !floatClose(b.TotalCost, 70) {
				t.Errorf("TotalCost = %v, want 70", b.TotalCost)
			}
			if !floatClose(b.FinalPrice, tt.wantFinal) {
				t.Errorf("FinalPrice = %v, want %v", b.FinalPrice, tt.wantFinal)
			}
			if !floatClose(b.CustomerSaving, tt.wantSaving) {
				t.Errorf("CustomerSaving = %v, want %v", b.CustomerSaving, tt.wantSaving)
			}
			if !floatClose(b.ContributionMargin, tt.wantMargin) {
				t.Errorf("ContributionMargin = %v, want %v", b.ContributionMargin, tt.wantMargin)
			}
			if b.Approval != tt.wantApproval {
				t.Errorf("Approval = %v, want %v", b.Approval, tt.wantApproval)
			}
		})
	}
}

func TestComputeBreakdown_LineItemOrder(t *testing.T) {
	// Selection order must not matter; the rule's add-on order wins.
	b, err := ComputeBreakdown(testRule(), QuoteDraft{
		PlanName:       catalog.PlanBasic,
		Licenses:       3,
		SelectedAddons: []string{"a2", "unknown", "a1"},
	})
	if err != nil {
		t.Fatalf("ComputeBreakdown() error = %v", err)
	}

	want := []LineItem{
		{Name: "Plan: Básico", UnitPrice: 8, Qty: 3, Total: 24},
		{Name: "Add-on: Seguridad", UnitPrice: 4, Qty: 3, Total: 12},
		{Name: "Add-on: Backup", UnitPrice: 3, Qty: 3, Total: 9},
	}
	if len(b.LineItems) != len(want) {
		t.Fatalf("got %d line items, want %d", len(b.LineItems), len(want))
	}
	for i, li := range want {
		if b.LineItems[i] != li {
			t.Errorf("line %d = %+v, want %+v", i, b.LineItems[i], li)
		}
	}
	if len(b.SelectedAddons) != 2 || b.SelectedAddons[0] != "a1" || b.SelectedAddons[1] != "a2" {
		t.Errorf("SelectedAddons = %v", b.SelectedAddons)
	}

	var sum float64
	for _, li := range b.LineItems {
		sum += li.Total
	}
	if !floatClose(sum, b.TotalPrice) {
		t.Errorf("line totals %v != TotalPrice %v", sum, b.TotalPrice)
	}
}

func TestComputeBreakdown_ZeroPricedPlan(t *testing.T) {
	b, err := ComputeBreakdown(testRule(), QuoteDraft{PlanName: catalog.PlanPremium, Licenses: 5})
	if err != nil {
		t.Fatalf("ComputeBreakdown() error = %v", err)
	}
	if b.FinalPrice != 0 || b.ContributionMargin != 0 || math.IsNaN(b.ContributionMargin) {
		t.Errorf("expected zero margin for zero final price, got %+v", b)
	}
	if b.MarginTier != MarginRisk {
		t.Errorf("MarginTier = %v, want risk", b.MarginTier)
	}
}

func TestComputeBreakdown_FullDiscount(t *testing.T) {
	b, err := ComputeBreakdown(testRule(), QuoteDraft{PlanName: catalog.PlanBasic, Licenses: 1, Discount: 100})
	if err != nil {
		t.Fatalf("ComputeBreakdown() error = %v", err)
	}
	if b.FinalPrice != 0 || b.ContributionMargin != 0 {
		t.Errorf("expected zero final price and margin, got %+v", b)
	}
	if b.Approval != ApprovalCEO {
		t.Errorf("Approval = %v, want CEO", b.Approval)
	}
}

func TestComputeBreakdown_Errors(t *testing.T) {
	tests := []struct {
		name    string
		rule    *catalog.PricingRule
		draft   QuoteDraft
		wantErr error
	}{
		{"no rule", nil, QuoteDraft{PlanName: catalog.PlanBasic, Licenses: 1}, ErrMissingPricingData},
		{"no plan selected", testRule(), QuoteDraft{Licenses: 1}, ErrMissingPricingData},
		{"plan not in rule", testRule(), QuoteDraft{PlanName: catalog.PlanOperational, Licenses: 1}, ErrMissingPricingData},
		{"discount above 100", testRule(), QuoteDraft{PlanName: catalog.PlanBasic, Licenses: 1, Discount: 100.5}, ErrInvalidDiscount},
		{"discount NaN", testRule(), QuoteDraft{PlanName: catalog.PlanBasic, Licenses: 1, Discount: math.NaN()}, ErrInvalidDiscount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeBreakdown(tt.rule, tt.draft)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestComputeBreakdown_ClampsInputs(t *testing.T) {
	b, err := ComputeBreakdown(testRule(), QuoteDraft{PlanName: catalog.PlanBasic, Licenses: -4, Discount: -10})
	if err != nil {
		t.Fatalf("ComputeBreakdown() error = %v", err)
	}
	if b.Licenses != 1 {
		t.Errorf("Licenses = %d, want 1", b.Licenses)
	}
	if b.Discount != 0 || b.FinalPrice != 8 {
		t.Errorf("negative discount should clamp to 0, got discount=%v final=%v", b.Discount, b.FinalPrice)
	}
}

func TestApprovalFor_Boundaries(t *testing.T) {
	tests := []struct {
		discount float64
		want     ApprovalTier
	}{
		{0, ApprovalNone},
		{20, ApprovalNone},
		{20.5, ApprovalCommercialManagement},
		{21, ApprovalCommercialManagement},
		{50, ApprovalCommercialManagement},
		{51, ApprovalCEO},
		{60, ApprovalCEO},
	}

	for _, tt := range tests {
		if got := ApprovalFor(tt.discount); got != tt.want {
			t.Errorf("ApprovalFor(%v) = %v, want %v", tt.discount, got, tt.want)
		}
	}
}

func TestApprovalTier_Label(t *testing.T) {
	if ApprovalNone.Label() != "No requiere aprobación" {
		t.Errorf("unexpected label %q", ApprovalNone.Label())
	}
	if ApprovalCommercialManagement.Label() != "Aprobación de Gerencia Comercial" {
		t.Errorf("unexpected label %q", ApprovalCommercialManagement.Label())
	}
	if ApprovalCEO.Label() != "Aprobación del CEO" {
		t.Errorf("unexpected label %q", ApprovalCEO.Label())
	}
}

func TestMarginTierFor(t *testing.T) {
	tests := []struct {
		margin float64
		want   MarginTier
	}{
		{41.67, MarginHealthy},
		{20.01, MarginHealthy},
		{20, MarginCaution},
		{10, MarginCaution},
		{9.99, MarginRisk},
		{-15, MarginRisk},
	}

	for _, tt := range tests {
		if got := MarginTierFor(tt.margin); got != tt.want {
			t.Errorf("MarginTierFor(%v) = %v, want %v", tt.margin, got, tt.want)
		}
	}
}

func TestParseLicenses(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"10", 10},
		{" 25 ", 25},
		{"0", 1},
		{"-3", 1},
		{"", 1},
		{"abc", 1},
	}

	for _, tt := range tests {
		if got := ParseLicenses(tt.input); got != tt.want {
			t.Errorf("ParseLicenses(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestParseDiscount(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"", 0, false},
		{"25", 25, false},
		{"12.5", 12.5, false},
		{"-5", 0, false},
		{"150", 0, true},
		{"mucho", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseDiscount(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDiscount(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrInvalidDiscount) {
			t.Errorf("ParseDiscount(%q) error = %v, want ErrInvalidDiscount", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseDiscount(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewDraft_Defaults(t *testing.T) {
	d := NewDraft(testRule())
	if d.PlanName != catalog.PlanBasic || d.Licenses != 10 || d.Discount != 0 || len(d.SelectedAddons) != 0 {
		t.Errorf("unexpected default draft %+v", d)
	}
	if NewDraft(nil).PlanName != "" {
		t.Error("draft without rule should have no plan")
	}
}
