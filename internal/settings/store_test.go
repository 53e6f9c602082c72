package settings

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGettersReturnCopies(t *testing.T) {
	store := NewStore()

	list := store.ServicePriceList()
	list.PaperSizes[0].BWPrice = 999_999

	require.Equal(t, DefaultServicePriceList().PaperSizes[0].BWPrice, store.ServicePriceList().PaperSizes[0].BWPrice)
}

func TestGatewayEnabled(t *testing.T) {
	store := NewStore()

	require.True(t, store.GatewayEnabled("bank_transfer"))
	require.False(t, store.GatewayEnabled("stripe"))
	require.False(t, store.GatewayEnabled("unknown"))
}

func TestSetPaymentGateways(t *testing.T) {
	store := NewStore()
	store.SetPaymentGateways([]PaymentGateway{{ID: "stripe", Name: "Stripe", Enabled: true}})

	require.True(t, store.GatewayEnabled("stripe"))
	require.False(t, store.GatewayEnabled("bank_transfer"))
}
