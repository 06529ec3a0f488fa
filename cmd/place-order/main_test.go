package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/kart-pricing/internal/domain/order"
)

func TestParseItems(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []order.LineItemDraft
		wantErr bool
	}{
		{name: "empty", in: ""},
		{
			name: "pairs with spaces",
			in:   "laptop-14:2, novel:1 ,",
			want: []order.LineItemDraft{{ProductID: "laptop-14", Quantity: 2}, {ProductID: "novel", Quantity: 1}},
		},
		{name: "zero passes through", in: "mug:0", want: []order.LineItemDraft{{ProductID: "mug", Quantity: 0}}},
		{name: "missing quantity", in: "mug", wantErr: true},
		{name: "missing id", in: ":3", wantErr: true},
		{name: "bad number", in: "mug:two", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseItems(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildRequest(t *testing.T) {
	req, err := buildRequest(options{
		items:    "laptop-14:2",
		shipping: "express",
		coupons:  "SAVE10,TECH20",
		payment:  "paypal",
	})
	require.NoError(t, err)
	assert.Equal(t, order.PlaceOrderRequest{
		Items:            []order.LineItemDraft{{ProductID: "laptop-14", Quantity: 2}},
		ShippingMethodID: "express",
		CouponIDs:        []string{"SAVE10", "TECH20"},
		PaymentMethod:    order.PaymentPayPal,
	}, req)

	_, err = buildRequest(options{items: "laptop-14:1", payment: "barter"})
	require.Error(t, err)
}
