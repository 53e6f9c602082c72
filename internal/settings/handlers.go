package settings

import (
	"net/http"

	"github.com/superiorbooks/backend-pos/internal/common"
	"github.com/superiorbooks/backend-pos/internal/pricing"
)

// Handler exposes console configuration over HTTP.
type Handler struct {
	Store *Store
}

type settingsResponse struct {
	ServicePrices   pricing.ServicePriceList `json:"servicePrices"`
	PrintPrices     pricing.PrintPriceList   `json:"printPrices"`
	POS             POSSettings              `json:"pos"`
	PaymentGateways []PaymentGateway         `json:"paymentGateways"`
}

// Get returns the full console configuration.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	common.JSON(w, http.StatusOK, settingsResponse{
		ServicePrices:   h.Store.ServicePriceList(),
		PrintPrices:     h.Store.PrintPriceList(),
		POS:             h.Store.POS(),
		PaymentGateways: h.Store.PaymentGateways(),
	})
}

type updateServicePricesRequest struct {
	PaperSizes []pricing.PaperSize  `json:"paperSizes" validate:"required,min=1,dive"`
	PaperTypes []pricing.PaperType  `json:"paperTypes" validate:"required,min=1,dive"`
	Costs      pricing.ServiceCosts `json:"costs"`
}

// UpdateServicePrices replaces the service desk tariff.
func (h *Handler) UpdateServicePrices(w http.ResponseWriter, r *http.Request) {
	var req updateServicePricesRequest
	if err := common.DecodeAndValidate(r, &req); err != nil {
		common.RenderError(w, err)
		return
	}
	h.Store.SetServicePriceList(pricing.ServicePriceList{
		PaperSizes: req.PaperSizes,
		PaperTypes: req.PaperTypes,
		Costs:      req.Costs,
	})
	common.JSON(w, http.StatusOK, h.Store.ServicePriceList())
}

type updatePrintPricesRequest struct {
	PerPageBW    pricing.Money         `json:"perPageBw" validate:"min=0"`
	PerPageColor pricing.Money         `json:"perPageColor" validate:"min=0"`
	PaperTypes   []pricing.PaperType   `json:"paperTypes" validate:"required,min=1,dive"`
	BindingTypes []pricing.BindingType `json:"bindingTypes" validate:"required,min=1,dive"`
}

// UpdatePrintPrices replaces the print tariff.
func (h *Handler) UpdatePrintPrices(w http.ResponseWriter, r *http.Request) {
	var req updatePrintPricesRequest
	if err := common.DecodeAndValidate(r, &req); err != nil {
		common.RenderError(w, err)
		return
	}
	h.Store.SetPrintPriceList(pricing.PrintPriceList{
		PerPageBW:    req.PerPageBW,
		PerPageColor: req.PerPageColor,
		PaperTypes:   req.PaperTypes,
		BindingTypes: req.BindingTypes,
	})
	common.JSON(w, http.StatusOK, h.Store.PrintPriceList())
}

// UpdatePOS replaces the register defaults.
func (h *Handler) UpdatePOS(w http.ResponseWriter, r *http.Request) {
	var req POSSettings
	if err := common.DecodeAndValidate(r, &req); err != nil {
		common.RenderError(w, err)
		return
	}
	h.Store.SetPOS(req)
	common.JSON(w, http.StatusOK, h.Store.POS())
}

type updateGatewaysRequest struct {
	Gateways []PaymentGateway `json:"gateways" validate:"required,min=1,dive"`
}

// UpdatePaymentGateways replaces the payment channel configuration.
func (h *Handler) UpdatePaymentGateways(w http.ResponseWriter, r *http.Request) {
	var req updateGatewaysRequest
	if err := common.DecodeAndValidate(r, &req); err != nil {
		common.RenderError(w, err)
		return
	}
	h.Store.SetPaymentGateways(req.Gateways)
	common.JSON(w, http.StatusOK, h.Store.PaymentGateways())
}
