// Package template renders the storefront emails from embedded templates.
package template

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"unicode/utf8"

	"relay-service/internal/domain"
)

//go:embed templates/*.html templates/*.txt
var files embed.FS

// Renderer is safe for concurrent use once built.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

func New() (*Renderer, error) {
	html, err := htmltemplate.New("mail").ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse html templates: %w", err)
	}
	text, err := texttemplate.New("mail").Funcs(texttemplate.FuncMap{
		"pad":  pad,
		"rule": rule,
	}).ParseFS(files, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("parse text templates: %w", err)
	}
	return &Renderer{html: html, text: text}, nil
}

// MustNew panics if the embedded templates fail to parse.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// View is the data every template receives.
type View struct {
	CustomerEmail string
	Customer      domain.CustomerDetails
	Order         domain.OrderDetails
	FullName      string
	Locality      string
	Currency      string
	Advance       string
	Balance       string
}

func NewView(req *domain.NotificationRequest) View {
	return View{
		CustomerEmail: req.CustomerEmail,
		Customer:      req.CustomerDetails,
		Order:         req.OrderDetails,
		FullName:      req.CustomerDetails.FullName(),
		Locality:      req.CustomerDetails.Locality(),
		Currency:      req.OrderDetails.CurrencySymbol(),
		Advance:       req.OrderDetails.AdvancePaid(),
		Balance:       req.OrderDetails.BalanceDue(),
	}
}

func (r *Renderer) OrderConfirmation(req *domain.NotificationRequest) (string, error) {
	return r.renderHTML("order_confirmation", NewView(req))
}

func (r *Renderer) AdvancePayment(req *domain.NotificationRequest) (string, error) {
	return r.renderHTML("advance_payment", NewView(req))
}

// AbandonedOrder returns the HTML body and its plain-text alternative.
func (r *Renderer) AbandonedOrder(req *domain.NotificationRequest) (html, text string, err error) {
	view := NewView(req)
	if html, err = r.renderHTML("abandoned_order", view); err != nil {
		return "", "", err
	}
	var buf bytes.Buffer
	if err = r.text.ExecuteTemplate(&buf, "abandoned_order", view); err != nil {
		return "", "", fmt.Errorf("render abandoned_order text: %w", err)
	}
	return html, buf.String(), nil
}

func (r *Renderer) renderHTML(name string, view View) (string, error) {
	var buf bytes.Buffer
	if err := r.html.ExecuteTemplate(&buf, name, view); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// pad right-pads s with spaces to width runes, truncating longer values.
func pad(width int, s string) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		return string([]rune(s)[:width])
	}
	return s + strings.Repeat(" ", width-n)
}

func rule() string {
	return "+" + strings.Repeat("-", 42) + "+" + strings.Repeat("-", 12) + "+" + strings.Repeat("-", 17) + "+"
}
