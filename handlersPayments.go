package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"github.com/starsbot/app/ledger"
)

var INVOICE_TITLE = "Support the bot"
var INVOICE_DESCRIPTION = "Buy the developers a coffee with Telegram Stars"
var INVOICE_AMOUNT = 1 // stars

// /pay - send the user an invoice they can click to pay with stars
func onPay(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	userID := update.Message.From.ID
	payload := uuid.NewString()

	log.Printf("%d : received /pay, sending invoice (payload %s)", userID, payload)

	_, err := b.SendInvoice(ctx, &bot.SendInvoiceParams{
		ChatID:      update.Message.Chat.ID,
		Title:       INVOICE_TITLE,
		Description: INVOICE_DESCRIPTION,
		Payload:     payload,
		Currency:    "XTR", // telegram stars, provider token stays empty
		Prices: []models.LabeledPrice{
			{Label: INVOICE_TITLE, Amount: INVOICE_AMOUNT},
		},
	})
	if err != nil {
		log.Printf("%d : failed to send invoice, %v", userID, err)
		sendReply(ctx, b, update.Message.Chat.ID, "Something went wrong creating your invoice, please try again.")
	}
}

// telegram sends this when a user clicks the payment button. It has to be
// answered within 10 seconds or the payment attempt is cancelled.
func onPreCheckout(ctx context.Context, b *bot.Bot, update *models.Update) {
	q := update.PreCheckoutQuery

	log.Printf(
		"%d : received pre checkout query %s (%d %s, payload %s)",
		q.From.ID, q.ID, q.TotalAmount, q.Currency, q.InvoicePayload,
	)

	ok, err := b.AnswerPreCheckoutQuery(ctx, &bot.AnswerPreCheckoutQueryParams{
		PreCheckoutQueryID: q.ID,
		OK:                 true,
	})
	if err != nil || !ok {
		log.Printf("%d : failed to answer pre checkout query, ok: %t, %v", q.From.ID, ok, err)
	}
}

// pull the fields the ledger needs out of a successful payment update.
// ok is false when the update is malformed, in which case the event must
// be dropped without touching the ledger.
func paymentFromUpdate(update *models.Update) (userID int64, rec ledger.PaymentRecord, ok bool) {
	if update == nil || update.Message == nil || update.Message.From == nil {
		return 0, ledger.PaymentRecord{}, false
	}

	payment := update.Message.SuccessfulPayment
	if payment == nil {
		return 0, ledger.PaymentRecord{}, false
	}
	if payment.TelegramPaymentChargeID == "" || payment.TotalAmount <= 0 {
		return 0, ledger.PaymentRecord{}, false
	}

	rec = ledger.PaymentRecord{
		PaymentID: payment.TelegramPaymentChargeID,
		Amount:    int64(payment.TotalAmount),
		Timestamp: time.Unix(int64(update.Message.Date), 0).UTC(),
	}
	return update.Message.From.ID, rec, true
}

// a payment went through - record it in the ledger and thank the user
func onSuccessfulPayment(ctx context.Context, b *bot.Bot, update *models.Update) {
	userID, rec, ok := paymentFromUpdate(update)
	if !ok {
		return // drop malformed events silently
	}

	starLedger.RecordPayment(userID, rec.PaymentID, rec.Amount, rec.Timestamp)

	log.Printf(
		"%d : recorded payment %s of %d stars (now %d payment(s), %d stars total)",
		userID, rec.PaymentID, rec.Amount,
		starLedger.Count(userID), starLedger.TotalPaid(userID),
	)

	sendReply(ctx, b, update.Message.Chat.ID, fmt.Sprintf(
		"Thank you! Your payment of %d Stars has been received.", rec.Amount,
	))
}
