package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/delux1000/deluxwallet/internal/apperrors"
	"github.com/delux1000/deluxwallet/internal/core/domain"
	"github.com/delux1000/deluxwallet/internal/core/ports"
	"github.com/delux1000/deluxwallet/internal/dto"
	"github.com/delux1000/deluxwallet/internal/middleware"
	"github.com/delux1000/deluxwallet/internal/platform/locking"
	"github.com/delux1000/deluxwallet/internal/utils"
	"github.com/google/uuid"
)

// CardService manages the payment cards linked to an account.
type CardService struct {
	store    ports.DocumentStore
	locks    *locking.Manager
	notifier Notifier // optional
}

// NewCardService creates a CardService. notifier may be nil.
func NewCardService(store ports.DocumentStore, locks *locking.Manager, notifier Notifier) *CardService {
	return &CardService{store: store, locks: locks, notifier: notifier}
}

// AddCard saves a new card in pending state and sends the holder a one-time
// activation code.
func (s *CardService) AddCard(ctx context.Context, email string, req dto.AddCardRequest) (*domain.Card, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	number := utils.CleanCardNumber(req.CardNumber)
	if len(number) < utils.MinCardNumberLength {
		return nil, fmt.Errorf("%w: invalid card number", apperrors.ErrValidation)
	}

	release, err := s.locks.Acquire(ctx, string(ports.Accounts))
	if err != nil {
		return nil, err
	}
	defer release()

	accounts, err := ports.LoadAccounts(ctx, s.store)
	if err != nil {
		return nil, err
	}

	var account *domain.Account
	for i := range accounts {
		if accounts[i].Email == email {
			account = &accounts[i]
			break
		}
	}
	if account == nil {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, email)
	}

	card := domain.Card{
		ID:           uuid.NewString(),
		Number:       number,
		MaskedNumber: utils.MaskCardNumber(number),
		ExpiryDate:   req.ExpiryDate,
		CVV:          req.CVV,
		HolderName:   req.CardHolderName,
		Type:         req.CardType,
		Status:       domain.CardPending,
		AddedAt:      time.Now().UTC(),
	}
	account.Cards = append(account.Cards, card)

	if err := persist(ctx, s.store, ports.Accounts, accounts); err != nil {
		return nil, err
	}

	logger.Info("card added",
		slog.String("email", email),
		slog.String("card_id", card.ID),
		slog.String("card_type", card.Type))
	if s.notifier != nil {
		code, err := utils.GenerateSecureRandomString(3)
		if err == nil {
			s.notifier.CardActivationCode(*account, card, code)
		}
	}
	return &card, nil
}

// ConfirmCard activates a card with the code the holder submits. Any
// non-empty code is accepted and stored on the card; activation never
// reverts.
func (s *CardService) ConfirmCard(ctx context.Context, email, cardID, code string) (*domain.Card, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if code == "" {
		return nil, fmt.Errorf("%w: confirmation code is required", apperrors.ErrValidation)
	}

	release, err := s.locks.Acquire(ctx, string(ports.Accounts))
	if err != nil {
		return nil, err
	}
	defer release()

	accounts, err := ports.LoadAccounts(ctx, s.store)
	if err != nil {
		return nil, err
	}

	var account *domain.Account
	for i := range accounts {
		if accounts[i].Email == email {
			account = &accounts[i]
			break
		}
	}
	if account == nil {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, email)
	}

	card := account.FindCard(cardID)
	if card == nil {
		return nil, fmt.Errorf("%w: card %s", apperrors.ErrNotFound, cardID)
	}

	now := time.Now().UTC()
	card.Code = code
	card.Status = domain.CardActive
	card.ActivatedAt = &now

	if err := persist(ctx, s.store, ports.Accounts, accounts); err != nil {
		return nil, err
	}

	logger.Info("card activated", slog.String("email", email), slog.String("card_id", cardID))
	return card, nil
}

// ListCards returns the account's cards.
func (s *CardService) ListCards(ctx context.Context, email string) ([]domain.Card, error) {
	accounts, err := ports.LoadAccounts(ctx, s.store)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].Email == email {
			return accounts[i].Cards, nil
		}
	}
	return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, email)
}
