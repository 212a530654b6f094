package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"soundhub/internal/model"
)

// ReceiptSubject is the subject line for the checkout email.
const ReceiptSubject = "Your Loa SoundHub account and order"

// ReceiptData is everything the receipt template needs. Password is set only
// when the checkout auto-provisioned a new customer account; it carries the
// generated plaintext exactly once.
type ReceiptData struct {
	CustomerName string
	Email        string
	Password     string
	Items        []model.OrderItemRequest
	SubTotal     float64
	Discount     float64
	ShippingFee  float64
	Total        float64
}

var receiptFuncs = template.FuncMap{
	"money": func(v float64) string {
		return fmt.Sprintf("%.0f₫", v)
	},
	"lineTotal": func(item model.OrderItemRequest) float64 {
		return item.Price * float64(item.Quantity)
	},
	"orDash": func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	},
}

var receiptTmpl = template.Must(template.New("receipt").Funcs(receiptFuncs).Parse(`
<div style="font-family: Arial, sans-serif; color: #333; line-height: 1.5; padding: 20px;">
  <h2 style="text-align: center;">Hello {{.CustomerName}}</h2>
  {{if .Password}}
  <p><strong>Your login details:</strong></p>
  <ul>
    <li><strong>Email:</strong> {{.Email}}</li>
    <li><strong>Password:</strong> {{.Password}}</li>
  </ul>
  <p>Please change your password after your first login.</p>
  {{end}}
  <h3>Order details</h3>
  <table style="width: 100%; border-collapse: collapse;">
    <thead>
      <tr>
        <th style="border: 1px solid #ddd; padding: 8px; text-align: left;">Product</th>
        <th style="border: 1px solid #ddd; padding: 8px;">Color</th>
        <th style="border: 1px solid #ddd; padding: 8px;">Power</th>
        <th style="border: 1px solid #ddd; padding: 8px;">Connection</th>
        <th style="border: 1px solid #ddd; padding: 8px;">Qty</th>
        <th style="border: 1px solid #ddd; padding: 8px; text-align: right;">Price</th>
        <th style="border: 1px solid #ddd; padding: 8px; text-align: right;">Total</th>
      </tr>
    </thead>
    <tbody>
      {{range .Items}}
      <tr>
        <td style="border: 1px solid #ddd; padding: 8px;">{{.ProductName}}</td>
        <td style="border: 1px solid #ddd; padding: 8px; text-align: center;">{{orDash .Color}}</td>
        <td style="border: 1px solid #ddd; padding: 8px; text-align: center;">{{orDash .Power}}</td>
        <td style="border: 1px solid #ddd; padding: 8px; text-align: center;">{{orDash .ConnectionType}}</td>
        <td style="border: 1px solid #ddd; padding: 8px; text-align: center;">{{.Quantity}}</td>
        <td style="border: 1px solid #ddd; padding: 8px; text-align: right;">{{money .Price}}</td>
        <td style="border: 1px solid #ddd; padding: 8px; text-align: right;">{{money (lineTotal .)}}</td>
      </tr>
      {{end}}
    </tbody>
    <tfoot>
      <tr>
        <td colspan="6" style="padding: 8px; text-align: right;"><strong>Subtotal:</strong></td>
        <td style="padding: 8px; text-align: right;"><strong>{{money .SubTotal}}</strong></td>
      </tr>
      <tr>
        <td colspan="6" style="padding: 8px; text-align: right;"><strong>Discount:</strong></td>
        <td style="padding: 8px; text-align: right;"><strong>{{money .Discount}}</strong></td>
      </tr>
      <tr>
        <td colspan="6" style="padding: 8px; text-align: right;"><strong>Shipping:</strong></td>
        <td style="padding: 8px; text-align: right;"><strong>{{money .ShippingFee}}</strong></td>
      </tr>
      <tr>
        <td colspan="6" style="padding: 8px; text-align: right;"><strong>Total due:</strong></td>
        <td style="padding: 8px; text-align: right;"><strong>{{money .Total}}</strong></td>
      </tr>
    </tfoot>
  </table>
  <p style="margin-top: 25px; text-align: center;">Thank you for shopping at <strong>Loa SoundHub</strong>!</p>
</div>
`))

// RenderReceipt renders the checkout receipt email body.
func RenderReceipt(data ReceiptData) (string, error) {
	var buf bytes.Buffer
	if err := receiptTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.String(), nil
}
