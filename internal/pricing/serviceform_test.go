package pricing

import "testing"

func testServicePriceList() ServicePriceList {
	return ServicePriceList{
		PaperSizes: []PaperSize{
			{ID: "a4", Name: "A4", BWPrice: 500, ColorPrice: 1_500},
			{ID: "a3", Name: "A3", BWPrice: 1_000, ColorPrice: 3_000},
		},
		PaperTypes: []PaperType{
			{ID: "standard", Name: "Standard", ExtraCost: 0},
			{ID: "glossy", Name: "Glossy", ExtraCost: 500},
		},
		Costs: ServiceCosts{
			ScanPerPage:       200,
			IDCard:            5_000,
			LaminationPerPage: 1_000,
			StaplePerSet:      100,
			UrgentFee:         5_000,
		},
	}
}

func TestComputeServicePhotocopy(t *testing.T) {
	form := ServiceForm{
		Kind:      ServicePhotocopy,
		PaperSize: "a4",
		PaperType: "standard",
		BWPages:   10,
		Copies:    2,
	}
	got := ComputeService(form, testServicePriceList())
	if got.Total != 10_000 {
		t.Fatalf("expected total 10000, got %d", got.Total)
	}
	if len(got.Breakdown) != 2 {
		t.Fatalf("expected 2 breakdown lines, got %d: %+v", len(got.Breakdown), got.Breakdown)
	}
	if got.Breakdown[0].Label != "B&W Pages (10 x Rs 5.00)" || got.Breakdown[0].Cost != 5_000 {
		t.Fatalf("unexpected first line: %+v", got.Breakdown[0])
	}
	if got.Breakdown[1].Label != "Copies (x2)" || got.Breakdown[1].Cost != 10_000 {
		t.Fatalf("unexpected copies line: %+v", got.Breakdown[1])
	}
}

func TestComputeServicePhotocopyFinishing(t *testing.T) {
	form := ServiceForm{
		Kind:       ServicePhotocopy,
		PaperSize:  "a4",
		PaperType:  "glossy",
		BWPages:    2,
		ColorPages: 3,
		Copies:     1,
		Lamination: true,
		Staple:     true,
	}
	got := ComputeService(form, testServicePriceList())
	// pages: 2 bw (1000) + 3 color (4500) + 5 glossy surcharge (2500) = 8000,
	// lamination 5 pages (5000), stapling 1 set (100).
	if got.Total != 13_100 {
		t.Fatalf("expected total 13100, got %d", got.Total)
	}
	last := got.Breakdown[len(got.Breakdown)-1]
	if last.Label != "Stapling (1 sets)" {
		t.Fatalf("expected stapling as last line, got %q", last.Label)
	}
}

func TestComputeServiceOmitsZeroComponents(t *testing.T) {
	form := ServiceForm{
		Kind:      ServicePhotocopy,
		PaperSize: "a4",
		PaperType: "standard",
		BWPages:   5,
		Copies:    1,
	}
	got := ComputeService(form, testServicePriceList())
	for _, line := range got.Breakdown {
		if line.Cost <= 0 {
			t.Fatalf("breakdown contains zero-cost line %q", line.Label)
		}
	}
	// Omitting zero-quantity components never changes the total.
	var shown Money
	for _, line := range got.Breakdown {
		shown += line.Cost
	}
	if shown != got.Total {
		t.Fatalf("expected displayed lines to sum to %d, got %d", got.Total, shown)
	}
}

func TestComputeServiceScan(t *testing.T) {
	got := ComputeService(ServiceForm{Kind: ServiceScan, ScanPages: 7}, testServicePriceList())
	if got.Total != 1_400 {
		t.Fatalf("expected total 1400, got %d", got.Total)
	}
	if got.Breakdown[0].Label != "Scanning (7 pages)" {
		t.Fatalf("unexpected label %q", got.Breakdown[0].Label)
	}
}

func TestComputeServiceScanZeroPages(t *testing.T) {
	got := ComputeService(ServiceForm{Kind: ServiceScan, ScanPages: 0}, testServicePriceList())
	if got.Total != 0 || len(got.Breakdown) != 0 {
		t.Fatalf("expected empty quote, got %+v", got)
	}
}

func TestComputeServiceIDCard(t *testing.T) {
	got := ComputeService(ServiceForm{Kind: ServiceIDCard, IDCardCount: 3}, testServicePriceList())
	if got.Total != 15_000 {
		t.Fatalf("expected total 15000, got %d", got.Total)
	}
}

func TestComputeServiceUrgentFeeAlwaysLast(t *testing.T) {
	form := ServiceForm{Kind: ServiceScan, ScanPages: 2, Urgent: true}
	got := ComputeService(form, testServicePriceList())
	if got.Total != 5_400 {
		t.Fatalf("expected total 5400, got %d", got.Total)
	}
	last := got.Breakdown[len(got.Breakdown)-1]
	if last.Label != "Urgent Service Fee" || last.Cost != 5_000 {
		t.Fatalf("expected urgent fee as final line, got %+v", last)
	}

	// The fee applies even when the variant itself produced nothing.
	empty := ComputeService(ServiceForm{Kind: ServiceScan, Urgent: true}, testServicePriceList())
	if empty.Total != 5_000 || len(empty.Breakdown) != 1 {
		t.Fatalf("expected lone urgent fee, got %+v", empty)
	}
}

func TestComputeServiceUnknownPaperSize(t *testing.T) {
	form := ServiceForm{Kind: ServicePhotocopy, PaperSize: "letter", BWPages: 10, Copies: 1}
	got := ComputeService(form, testServicePriceList())
	if got.Total != 0 {
		t.Fatalf("expected zero total for unknown paper size, got %d", got.Total)
	}
}
