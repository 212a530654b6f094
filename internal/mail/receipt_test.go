package mail

import (
	"strings"
	"testing"

	"soundhub/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseReceipt() ReceiptData {
	return ReceiptData{
		CustomerName: "Nguyen Van A",
		Email:        "a@example.com",
		Items: []model.OrderItemRequest{
			{ProductName: "Speaker X Black", Color: "black", Power: "60W", ConnectionType: "bluetooth", Price: 500000, Quantity: 2},
			{ProductName: "Legacy Speaker", Price: 100000, Quantity: 1},
		},
		SubTotal:    1100000,
		Discount:    100000,
		ShippingFee: 30000,
		Total:       1030000,
	}
}

func TestRenderReceipt_Lines(t *testing.T) {
	body, err := RenderReceipt(baseReceipt())
	require.NoError(t, err)

	assert.Contains(t, body, "Nguyen Van A")
	assert.Contains(t, body, "Speaker X Black")
	assert.Contains(t, body, "Legacy Speaker")
	assert.Contains(t, body, "1000000₫") // line total 2 x 500000
	assert.Contains(t, body, "1030000₫")
	assert.Contains(t, body, "30000₫")

	// Empty variant attributes render as dashes
	assert.Contains(t, body, ">-</td>")
}

func TestRenderReceipt_PasswordOnlyForNewAccounts(t *testing.T) {
	data := baseReceipt()

	body, err := RenderReceipt(data)
	require.NoError(t, err)
	assert.NotContains(t, body, "Password")

	data.Password = "9f3a2c1b"
	body, err = RenderReceipt(data)
	require.NoError(t, err)
	assert.Contains(t, body, "9f3a2c1b")
	assert.Equal(t, 1, strings.Count(body, "9f3a2c1b"))
	assert.Contains(t, body, "change your password")
}

func TestRenderReceipt_EscapesHTML(t *testing.T) {
	data := baseReceipt()
	data.CustomerName = `<script>alert("x")</script>`

	body, err := RenderReceipt(data)
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}
