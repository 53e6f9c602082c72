package pricing

import "fmt"

// ServiceKind discriminates the service-center order variants.
type ServiceKind string

const (
	// ServicePhotocopy is a black-and-white/color copying job.
	ServicePhotocopy ServiceKind = "photocopy"
	// ServiceScan is a per-page document scan.
	ServiceScan ServiceKind = "scan"
	// ServiceIDCard is an ID-card print job.
	ServiceIDCard ServiceKind = "id_card"
)

// ServiceForm captures a service-center order. Only the fields of the active
// variant are consulted; CustomerName and Urgent are shared.
type ServiceForm struct {
	Kind         ServiceKind `json:"serviceType"`
	CustomerName string      `json:"customerName"`

	PaperSize  string `json:"paperSize,omitempty"`
	PaperType  string `json:"paperType,omitempty"`
	BWPages    int    `json:"bwPages,omitempty"`
	ColorPages int    `json:"colorPages,omitempty"`
	Copies     int    `json:"copies,omitempty"`
	Lamination bool   `json:"finishingLamination,omitempty"`
	Staple     bool   `json:"finishingStaple,omitempty"`

	ScanPages int `json:"scanPages,omitempty"`

	IDCardCount     int  `json:"idCardCount,omitempty"`
	IDCardLaminated bool `json:"idCardLaminated,omitempty"`

	Urgent bool `json:"isUrgent,omitempty"`
}

// PaperSize carries the per-page copy prices for one sheet format.
type PaperSize struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	BWPrice    Money  `json:"bwPrice"`
	ColorPrice Money  `json:"colorPrice"`
}

// PaperType carries the per-page surcharge for a paper stock.
type PaperType struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ExtraCost Money  `json:"extraCost"`
}

// ServiceCosts lists the per-unit prices for auxiliary services.
type ServiceCosts struct {
	ScanPerPage       Money `json:"scanPerPage"`
	IDCard            Money `json:"idCard"`
	LaminationPerPage Money `json:"laminationPerPage"`
	StaplePerSet      Money `json:"staplePerSet"`
	UrgentFee         Money `json:"urgentFee"`
}

// ServicePriceList is the configuration the service calculator reads.
type ServicePriceList struct {
	PaperSizes []PaperSize  `json:"paperSizes"`
	PaperTypes []PaperType  `json:"paperTypes"`
	Costs      ServiceCosts `json:"serviceCosts"`
}

// PaperSizeByID returns the configured paper size, if present.
func (pl ServicePriceList) PaperSizeByID(id string) (PaperSize, bool) {
	for _, p := range pl.PaperSizes {
		if p.ID == id {
			return p, true
		}
	}
	return PaperSize{}, false
}

// PaperTypeByID returns the configured paper type, if present.
func (pl ServicePriceList) PaperTypeByID(id string) (PaperType, bool) {
	for _, p := range pl.PaperTypes {
		if p.ID == id {
			return p, true
		}
	}
	return PaperType{}, false
}

// BreakdownLine is one display row of a service quote.
type BreakdownLine struct {
	Label string `json:"item"`
	Cost  Money  `json:"cost"`
}

// ServiceTotals is the ordered quote breakdown plus the grand total. The
// breakdown is a display aid only; the total is authoritative.
type ServiceTotals struct {
	Breakdown []BreakdownLine `json:"breakdown"`
	Total     Money           `json:"total"`
}

// ComputeService prices a service-center order against the price list.
// Zero-quantity components produce no breakdown lines; the urgent fee, when
// set, is always the final line regardless of variant.
func ComputeService(form ServiceForm, pl ServicePriceList) ServiceTotals {
	breakdown := []BreakdownLine{}
	var total Money

	switch form.Kind {
	case ServicePhotocopy:
		size, ok := pl.PaperSizeByID(form.PaperSize)
		if !ok {
			break
		}
		totalPages := form.BWPages + form.ColorPages
		if totalPages == 0 {
			break
		}
		var extra Money
		if pt, ok := pl.PaperTypeByID(form.PaperType); ok {
			extra = pt.ExtraCost
		}
		bwCost := Money(form.BWPages) * size.BWPrice
		colorCost := Money(form.ColorPages) * size.ColorPrice
		surcharge := Money(totalPages) * extra
		subtotal := (bwCost + colorCost + surcharge) * Money(form.Copies)

		if bwCost > 0 {
			breakdown = append(breakdown, BreakdownLine{
				Label: fmt.Sprintf("B&W Pages (%d x Rs %s)", form.BWPages, FormatMoney(size.BWPrice)),
				Cost:  bwCost,
			})
		}
		if colorCost > 0 {
			breakdown = append(breakdown, BreakdownLine{
				Label: fmt.Sprintf("Color Pages (%d x Rs %s)", form.ColorPages, FormatMoney(size.ColorPrice)),
				Cost:  colorCost,
			})
		}
		if surcharge > 0 {
			name := form.PaperType
			if pt, ok := pl.PaperTypeByID(form.PaperType); ok {
				name = pt.Name
			}
			breakdown = append(breakdown, BreakdownLine{
				Label: fmt.Sprintf("Paper Surcharge (%s)", name),
				Cost:  surcharge,
			})
		}
		if form.Copies > 1 {
			breakdown = append(breakdown, BreakdownLine{
				Label: fmt.Sprintf("Copies (x%d)", form.Copies),
				Cost:  subtotal,
			})
		}
		total += subtotal

		if form.Lamination {
			lamination := Money(totalPages*form.Copies) * pl.Costs.LaminationPerPage
			breakdown = append(breakdown, BreakdownLine{
				Label: fmt.Sprintf("Lamination (%d pages)", totalPages*form.Copies),
				Cost:  lamination,
			})
			total += lamination
		}
		if form.Staple {
			staple := Money(form.Copies) * pl.Costs.StaplePerSet
			breakdown = append(breakdown, BreakdownLine{
				Label: fmt.Sprintf("Stapling (%d sets)", form.Copies),
				Cost:  staple,
			})
			total += staple
		}

	case ServiceScan:
		if form.ScanPages <= 0 {
			break
		}
		cost := Money(form.ScanPages) * pl.Costs.ScanPerPage
		breakdown = append(breakdown, BreakdownLine{
			Label: fmt.Sprintf("Scanning (%d pages)", form.ScanPages),
			Cost:  cost,
		})
		total += cost

	case ServiceIDCard:
		if form.IDCardCount <= 0 {
			break
		}
		cost := Money(form.IDCardCount) * pl.Costs.IDCard
		breakdown = append(breakdown, BreakdownLine{
			Label: fmt.Sprintf("ID Cards (%d)", form.IDCardCount),
			Cost:  cost,
		})
		total += cost
	}

	if form.Urgent {
		breakdown = append(breakdown, BreakdownLine{Label: "Urgent Service Fee", Cost: pl.Costs.UrgentFee})
		total += pl.Costs.UrgentFee
	}

	return ServiceTotals{Breakdown: breakdown, Total: total}
}
