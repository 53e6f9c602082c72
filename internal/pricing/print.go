package pricing

// ColorMode selects the per-page print price.
type ColorMode string

const (
	// ColorModeBW prints in black and white.
	ColorModeBW ColorMode = "bw"
	// ColorModeColor prints in full color.
	ColorModeColor ColorMode = "color"
)

// PrintSpec describes a print-order quote request.
type PrintSpec struct {
	Pages     int       `json:"pageCount"`
	Copies    int       `json:"copies"`
	ColorMode ColorMode `json:"colorMode"`
	PaperSize string    `json:"paperSize"`
	PaperType string    `json:"paperType"`
	Binding   string    `json:"binding"`
}

// BindingType carries the per-copy cost of one binding option.
type BindingType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Cost Money  `json:"cost"`
}

// PrintPriceList is the configuration the print calculator reads.
type PrintPriceList struct {
	PerPageBW    Money         `json:"perPageBw"`
	PerPageColor Money         `json:"perPageColor"`
	PaperTypes   []PaperType   `json:"paperTypes"`
	BindingTypes []BindingType `json:"bindingTypes"`
}

// PaperTypeByID returns the configured paper type, if present.
func (pl PrintPriceList) PaperTypeByID(id string) (PaperType, bool) {
	for _, p := range pl.PaperTypes {
		if p.ID == id {
			return p, true
		}
	}
	return PaperType{}, false
}

// BindingTypeByID returns the configured binding option, if present.
func (pl PrintPriceList) BindingTypeByID(id string) (BindingType, bool) {
	for _, b := range pl.BindingTypes {
		if b.ID == id {
			return b, true
		}
	}
	return BindingType{}, false
}

// PrintTotals is the three-part cost breakdown of a print order. Print orders
// carry no discount or tax concept.
type PrintTotals struct {
	PrintCost      Money `json:"printCost"`
	PaperSurcharge Money `json:"paperSurcharge"`
	BindingCost    Money `json:"bindingCost"`
	Total          Money `json:"total"`
	Pages          int   `json:"pageCount"`
	Copies         int   `json:"copies"`
}

// ComputePrint prices a print order against the price list. Unknown paper or
// binding ids contribute zero cost.
func ComputePrint(spec PrintSpec, pl PrintPriceList) PrintTotals {
	perPage := pl.PerPageBW
	if spec.ColorMode == ColorModeColor {
		perPage = pl.PerPageColor
	}
	var extra Money
	if pt, ok := pl.PaperTypeByID(spec.PaperType); ok {
		extra = pt.ExtraCost
	}
	var binding Money
	if bt, ok := pl.BindingTypeByID(spec.Binding); ok {
		binding = bt.Cost
	}
	printCost := Money(spec.Pages) * perPage * Money(spec.Copies)
	surcharge := Money(spec.Pages) * extra * Money(spec.Copies)
	bindingCost := binding * Money(spec.Copies)
	return PrintTotals{
		PrintCost:      printCost,
		PaperSurcharge: surcharge,
		BindingCost:    bindingCost,
		Total:          printCost + surcharge + bindingCost,
		Pages:          spec.Pages,
		Copies:         spec.Copies,
	}
}
