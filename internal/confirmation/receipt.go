package confirmation

import (
	"fmt"
	"strings"
	"time"

	"lashstudio/pkg/model"
)

const DateLabelLayout = "Monday, January 2, 2006"

// Receipt is what the customer sees once the booking is confirmed.
type Receipt struct {
	ID          string                 `json:"id"`
	Booking     model.CompletedBooking `json:"booking"`
	ConfirmedAt time.Time              `json:"confirmed_at"`
	Greeting    string                 `json:"greeting"`
	DateLabel   string                 `json:"date_label"`
	PriceLabel  string                 `json:"price_label"`
	Location    string                 `json:"location"`
}

type ReceiptConfig struct {
	Location       string
	CurrencySymbol string
}

func NewReceipt(id string, b model.CompletedBooking, confirmedAt time.Time, cfg ReceiptConfig) Receipt {
	return Receipt{
		ID:          id,
		Booking:     b,
		ConfirmedAt: confirmedAt,
		Greeting:    Greeting(b.Contact.Name),
		DateLabel:   b.Date.Time(time.UTC).Format(DateLabelLayout),
		PriceLabel:  PriceLabel(b.Service, cfg.CurrencySymbol),
		Location:    cfg.Location,
	}
}

// Greeting addresses the customer by the first word of their name.
func Greeting(name string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(name), " ")
	if first == "" {
		return "See you soon!"
	}
	return fmt.Sprintf("See you soon, %s!", first)
}

// PriceLabel renders "2.5 hrs • £85".
func PriceLabel(s model.ServiceOffering, currency string) string {
	return fmt.Sprintf("%s • %s%d", s.DurationLabel, currency, s.Price)
}
