package main

import (
	"context"
	"log"

	"github.com/go-telegram/bot"
	"github.com/starsbot/app/common"
	"github.com/starsbot/app/ledger"
)

// the one outbound payment action the refund workflow needs from the
// transport. *bot.Bot satisfies it.
type StarRefunder interface {
	RefundStarPayment(ctx context.Context, params *bot.RefundStarPaymentParams) (bool, error)
}

type RefundOutcome int

const (
	RefundDone RefundOutcome = iota
	RefundNothingToRefund
	RefundFailed
)

// explicit result of a refund attempt, consumed by the /refund handler
type RefundResult struct {
	Outcome RefundOutcome
	Amount  int64 // stars refunded, set when Outcome is RefundDone
}

// refund the users most recent payment. Pops the record first, then makes
// the external refund call, and restores the record if that call fails.
// A record is only ever destroyed on a confirmed refund, and because the
// pop is atomic two concurrent refunds can never target the same record.
func processRefund(
	ctx context.Context,
	lgr *ledger.Ledger,
	refunder StarRefunder,
	userID int64,
) RefundResult {
	rec, err := lgr.PopLastPayment(userID)
	if err != nil {
		log.Printf("%d : refund requested with no payments on record", userID)
		return RefundResult{Outcome: RefundNothingToRefund}
	}

	ok, err := refunder.RefundStarPayment(ctx, &bot.RefundStarPaymentParams{
		UserID:                  userID,
		TelegramPaymentChargeID: rec.PaymentID,
	})
	if err != nil || !ok {
		// put the record back, it hasn't been refunded
		lgr.RestoreLastPayment(userID, rec)

		common.LogAndSendAlertF(
			"%d : refund call failed for payment %s (%d stars), record restored, ok: %t, err: %v",
			userID, rec.PaymentID, rec.Amount, ok, err,
		)
		return RefundResult{Outcome: RefundFailed}
	}

	log.Printf("%d : refunded payment %s (%d stars)", userID, rec.PaymentID, rec.Amount)
	return RefundResult{Outcome: RefundDone, Amount: rec.Amount}
}
