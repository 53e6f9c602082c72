package settings

import (
	"sync"

	"github.com/superiorbooks/backend-pos/internal/pricing"
)

// POSSettings controls register-wide defaults.
type POSSettings struct {
	DefaultTaxBps     int `json:"defaultTaxBps" validate:"min=0,max=10000"`
	LowStockThreshold int `json:"lowStockThreshold" validate:"min=0"`
}

// PaymentGateway is one configured payment channel for print orders.
type PaymentGateway struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// Store holds the console configuration behind a mutex. Getters return
// copies so callers can mutate freely; writes go through the setters.
type Store struct {
	mu       sync.RWMutex
	service  pricing.ServicePriceList
	print    pricing.PrintPriceList
	pos      POSSettings
	gateways []PaymentGateway
}

// NewStore returns a store seeded with the default price lists.
func NewStore() *Store {
	return &Store{
		service:  DefaultServicePriceList(),
		print:    DefaultPrintPriceList(),
		pos:      POSSettings{DefaultTaxBps: 0, LowStockThreshold: 5},
		gateways: DefaultPaymentGateways(),
	}
}

// DefaultServicePriceList is the seed tariff for the service desk, in
// minor currency units.
func DefaultServicePriceList() pricing.ServicePriceList {
	return pricing.ServicePriceList{
		PaperSizes: []pricing.PaperSize{
			{ID: "a4", Name: "A4", BWPrice: 500, ColorPrice: 1500},
			{ID: "a3", Name: "A3", BWPrice: 1000, ColorPrice: 3000},
			{ID: "legal", Name: "Legal", BWPrice: 700, ColorPrice: 2000},
		},
		PaperTypes: []pricing.PaperType{
			{ID: "standard", Name: "Standard", ExtraCost: 0},
			{ID: "glossy", Name: "Glossy", ExtraCost: 500},
			{ID: "matte", Name: "Matte", ExtraCost: 300},
		},
		Costs: pricing.ServiceCosts{
			ScanPerPage:       200,
			IDCard:            5000,
			LaminationPerPage: 1000,
			StaplePerSet:      100,
			UrgentFee:         5000,
		},
	}
}

// DefaultPrintPriceList is the seed tariff for document printing.
func DefaultPrintPriceList() pricing.PrintPriceList {
	return pricing.PrintPriceList{
		PerPageBW:    1000,
		PerPageColor: 5000,
		PaperTypes: []pricing.PaperType{
			{ID: "standard", Name: "Standard", ExtraCost: 0},
			{ID: "glossy", Name: "Glossy", ExtraCost: 500},
			{ID: "matte", Name: "Matte", ExtraCost: 300},
		},
		BindingTypes: []pricing.BindingType{
			{ID: "none", Name: "No Binding", Cost: 0},
			{ID: "staple", Name: "Staple", Cost: 10000},
			{ID: "spiral", Name: "Spiral Binding", Cost: 50000},
			{ID: "thermal", Name: "Thermal Binding", Cost: 75000},
		},
	}
}

// DefaultPaymentGateways is the seed payment channel configuration.
func DefaultPaymentGateways() []PaymentGateway {
	return []PaymentGateway{
		{ID: "bank_transfer", Name: "Bank Transfer", Enabled: true},
		{ID: "jazzcash", Name: "JazzCash", Enabled: true},
		{ID: "stripe", Name: "Stripe", Enabled: false},
	}
}

// ServicePriceList returns a copy of the service desk tariff.
func (s *Store) ServicePriceList() pricing.ServicePriceList {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyServiceList(s.service)
}

// SetServicePriceList replaces the service desk tariff.
func (s *Store) SetServicePriceList(list pricing.ServicePriceList) {
	s.mu.Lock()
	s.service = copyServiceList(list)
	s.mu.Unlock()
}

// PrintPriceList returns a copy of the print tariff.
func (s *Store) PrintPriceList() pricing.PrintPriceList {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyPrintList(s.print)
}

// SetPrintPriceList replaces the print tariff.
func (s *Store) SetPrintPriceList(list pricing.PrintPriceList) {
	s.mu.Lock()
	s.print = copyPrintList(list)
	s.mu.Unlock()
}

// POS returns the register defaults.
func (s *Store) POS() POSSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pos
}

// SetPOS replaces the register defaults.
func (s *Store) SetPOS(pos POSSettings) {
	s.mu.Lock()
	s.pos = pos
	s.mu.Unlock()
}

// PaymentGateways returns a copy of the payment channel configuration.
func (s *Store) PaymentGateways() []PaymentGateway {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]PaymentGateway, len(s.gateways))
	copy(out, s.gateways)
	return out
}

// SetPaymentGateways replaces the payment channel configuration.
func (s *Store) SetPaymentGateways(gateways []PaymentGateway) {
	s.mu.Lock()
	s.gateways = make([]PaymentGateway, len(gateways))
	copy(s.gateways, gateways)
	s.mu.Unlock()
}

// GatewayEnabled reports whether the named payment channel exists and is
// switched on.
func (s *Store) GatewayEnabled(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.gateways {
		if g.ID == id {
			return g.Enabled
		}
	}
	return false
}

func copyServiceList(in pricing.ServicePriceList) pricing.ServicePriceList {
	out := in
	out.PaperSizes = make([]pricing.PaperSize, len(in.PaperSizes))
	copy(out.PaperSizes, in.PaperSizes)
	out.PaperTypes = make([]pricing.PaperType, len(in.PaperTypes))
	copy(out.PaperTypes, in.PaperTypes)
	return out
}

func copyPrintList(in pricing.PrintPriceList) pricing.PrintPriceList {
	out := in
	out.PaperTypes = make([]pricing.PaperType, len(in.PaperTypes))
	copy(out.PaperTypes, in.PaperTypes)
	out.BindingTypes = make([]pricing.BindingType, len(in.BindingTypes))
	copy(out.BindingTypes, in.BindingTypes)
	return out
}
