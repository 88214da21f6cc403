package dto

import (
	"time"

	"github.com/delux1000/deluxwallet/internal/core/domain"
)

// AddCardRequest defines the data needed to link a new card.
type AddCardRequest struct {
	CardNumber     string `json:"cardNumber" binding:"required"`
	ExpiryDate     string `json:"expiryDate" binding:"required"`
	CVV            string `json:"cvv" binding:"required"`
	CardHolderName string `json:"cardHolderName" binding:"required"`
	CardType       string `json:"cardType" binding:"required"`
}

// ConfirmCardRequest carries the one-time code that activates a card.
type ConfirmCardRequest struct {
	Code string `json:"code" binding:"required"`
}

// CardResponse is the masked card view; the raw number and CVV are never
// returned.
type CardResponse struct {
	ID           string     `json:"id"`
	MaskedNumber string     `json:"maskedNumber"`
	ExpiryDate   string     `json:"expiryDate"`
	HolderName   string     `json:"cardHolderName"`
	Type         string     `json:"cardType"`
	Status       string     `json:"status"`
	AddedAt      time.Time  `json:"addedDate"`
	ActivatedAt  *time.Time `json:"activatedDate,omitempty"`
}

// ToCardResponse converts a domain.Card to CardResponse.
func ToCardResponse(c domain.Card) CardResponse {
	return CardResponse{
		ID:           c.ID,
		MaskedNumber: c.MaskedNumber,
		ExpiryDate:   c.ExpiryDate,
		HolderName:   c.HolderName,
		Type:         c.Type,
		Status:       string(c.Status),
		AddedAt:      c.AddedAt,
		ActivatedAt:  c.ActivatedAt,
	}
}

// ToCardResponses converts a card list.
func ToCardResponses(cards []domain.Card) []CardResponse {
	out := make([]CardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, ToCardResponse(c))
	}
	return out
}
