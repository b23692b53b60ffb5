package services

import (
	"fmt"
	"strings"

	"busyatra/internal/domain"
	"busyatra/internal/domain/models"
)

const (
	PaymentUPI    = "upi"
	PaymentCard   = "card"
	PaymentWallet = "wallet"
)

// PaymentDetails is checked for completeness only and never stored.
type PaymentDetails struct {
	Method         string `json:"method"`
	UPIID          string `json:"upiId,omitempty"`
	CardNumber     string `json:"cardNumber,omitempty"`
	CardExpiry     string `json:"expiryDate,omitempty"`
	CardCVV        string `json:"cvv,omitempty"`
	CardName       string `json:"cardName,omitempty"`
	WalletProvider string `json:"walletProvider,omitempty"`
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// ValidatePassengers requires one complete entry per seat.
func ValidatePassengers(passengers []models.PassengerInfo, seats int) error {
	if len(passengers) != seats {
		return domain.ValidationError{Field: "passengers", Msg: fmt.Sprintf("need %d passengers, got %d", seats, len(passengers))}
	}
	for i, p := range passengers {
		field := fmt.Sprintf("passengers[%d]", i)
		switch {
		case blank(p.Name):
			return domain.ValidationError{Field: field + ".name", Msg: "required"}
		case p.Age <= 0:
			return domain.ValidationError{Field: field + ".age", Msg: "must be positive"}
		case blank(p.Gender):
			return domain.ValidationError{Field: field + ".gender", Msg: "required"}
		}
	}
	return nil
}

// ValidatePayment returns the normalized method name.
func ValidatePayment(p PaymentDetails) (string, error) {
	method := strings.ToLower(strings.TrimSpace(p.Method))
	var missing string
	switch method {
	case PaymentUPI:
		if blank(p.UPIID) {
			missing = "upiId"
		}
	case PaymentCard:
		switch {
		case blank(p.CardNumber):
			missing = "cardNumber"
		case blank(p.CardExpiry):
			missing = "expiryDate"
		case blank(p.CardCVV):
			missing = "cvv"
		case blank(p.CardName):
			missing = "cardName"
		}
	case PaymentWallet:
		if blank(p.WalletProvider) {
			missing = "walletProvider"
		}
	default:
		return "", domain.ValidationError{Field: "payment.method", Msg: "must be upi, card or wallet"}
	}
	if missing != "" {
		return "", domain.ValidationError{Field: "payment." + missing, Msg: "required"}
	}
	return method, nil
}
