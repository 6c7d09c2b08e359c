package template

import (
	"strings"
	"testing"

	"relay-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRequest() *domain.NotificationRequest {
	return &domain.NotificationRequest{
		CustomerEmail: "asha@example.com",
		OrderDetails: domain.OrderDetails{
			OrderNumber: "1042",
			Products: []domain.Product{
				{Name: "Rudraksha Mala", Quantity: "2", Price: "499"},
				{Name: "Incense <Sandal>", Quantity: "1", Price: "1"},
			},
			TotalAmount:   "999",
			PaymentMethod: "Razorpay",
		},
		CustomerDetails: domain.CustomerDetails{
			FirstName: "Asha",
			LastName:  "Rao",
			Email:     "asha.rao@example.com",
			Address:   "12 MG Road",
			City:      "Pune",
			State:     "MH",
			Zip:       "411001",
			Country:   "India",
		},
	}
}

func TestOrderConfirmationListsProducts(t *testing.T) {
	r := MustNew()

	html, err := r.OrderConfirmation(sampleRequest())
	require.NoError(t, err)

	assert.Contains(t, html, "Dear Asha Rao,")
	assert.Contains(t, html, "<strong>Order Number:</strong> 1042")
	assert.Contains(t, html, "Rudraksha Mala")
	assert.Contains(t, html, "₹ 499")
	assert.Contains(t, html, "Incense &lt;Sandal&gt;")
	assert.Contains(t, html, "<strong>Payment ID:</strong> N/A")
	assert.Contains(t, html, "<strong>Phone:</strong> Not provided")
	assert.Contains(t, html, "Pune, MH - 411001")
	assert.NotContains(t, html, "<strong>Product:</strong>")
}

func TestOrderConfirmationSingleProduct(t *testing.T) {
	req := sampleRequest()
	req.OrderDetails.Products = nil
	req.OrderDetails.ProductName = "Brass Diya"
	req.OrderDetails.Currency = "INR"

	html, err := MustNew().OrderConfirmation(req)
	require.NoError(t, err)

	assert.Contains(t, html, "<strong>Product:</strong> Brass Diya")
	assert.Contains(t, html, "<strong>Quantity:</strong> 1")
	assert.Contains(t, html, "INR 999")
	assert.NotContains(t, html, "<table")
}

func TestAbandonedOrderRendersBothParts(t *testing.T) {
	html, text, err := MustNew().AbandonedOrder(sampleRequest())
	require.NoError(t, err)

	assert.Contains(t, html, "Your Shopping Cart is Waiting")
	assert.Contains(t, html, "asha.rao@example.com")

	assert.Contains(t, text, "- Order ID: 1042")
	assert.Contains(t, text, "| Product Name                             | Quantity   | Price           |")
	assert.Contains(t, text, "| Rudraksha Mala                           | 2          | ₹ 499           |")
	assert.Contains(t, text, "- Total Amount: ₹ 999")
	assert.Contains(t, text, "Address Information:\n12 MG Road\nPune, MH - 411001\nIndia")
}

func TestAbandonedOrderTextTableRowsAreAligned(t *testing.T) {
	_, text, err := MustNew().AbandonedOrder(sampleRequest())
	require.NoError(t, err)

	var widths []int
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "|") || strings.HasPrefix(line, "+") {
			widths = append(widths, len([]rune(line)))
		}
	}
	require.Len(t, widths, 6)
	for _, w := range widths {
		assert.Equal(t, widths[0], w)
	}
}

func TestAdvancePaymentShowsBalance(t *testing.T) {
	req := sampleRequest()
	req.OrderDetails.AdvanceAmount = "300"

	html, err := MustNew().AdvancePayment(req)
	require.NoError(t, err)

	assert.Contains(t, html, "Advance Payment Received")
	assert.Contains(t, html, "₹ 300")
	assert.Contains(t, html, "₹ 699.00")
}

func TestAdvancePaymentUnknownBalance(t *testing.T) {
	req := sampleRequest()
	req.OrderDetails.TotalAmount = "on request"
	req.OrderDetails.PaidAmount = "300"

	html, err := MustNew().AdvancePayment(req)
	require.NoError(t, err)

	assert.Contains(t, html, "To be confirmed")
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab   ", pad(5, "ab"))
	assert.Equal(t, "abcde", pad(5, "abcdefgh"))
	assert.Equal(t, "₹ 1  ", pad(5, "₹ 1"))
}
