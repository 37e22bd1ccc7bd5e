package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-telegram/bot"
	"github.com/starsbot/app/ledger"
)

var testTS = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// stand in for the telegram transport in refund tests
type fakeRefunder struct {
	ok  bool
	err error

	calls       int
	gotUserID   int64
	gotChargeID string
}

func (f *fakeRefunder) RefundStarPayment(
	ctx context.Context,
	params *bot.RefundStarPaymentParams,
) (bool, error) {
	f.calls++
	f.gotUserID = params.UserID
	f.gotChargeID = params.TelegramPaymentChargeID
	return f.ok, f.err
}

func TestProcessRefundSuccess(t *testing.T) {
	lgr := ledger.New()
	userID := int64(100)
	lgr.RecordPayment(userID, "ch_1", 2, testTS)

	refunder := &fakeRefunder{ok: true}
	res := processRefund(context.Background(), lgr, refunder, userID)

	if res.Outcome != RefundDone {
		t.Fatalf("expected RefundDone, got %v", res.Outcome)
	}
	if res.Amount != 2 {
		t.Errorf("expected refunded amount 2, got %d", res.Amount)
	}
	if refunder.calls != 1 {
		t.Errorf("expected 1 refund call, got %d", refunder.calls)
	}
	if refunder.gotUserID != userID || refunder.gotChargeID != "ch_1" {
		t.Errorf("refund called with wrong ids: %d / %s", refunder.gotUserID, refunder.gotChargeID)
	}

	// the record must be gone for good
	if count := lgr.Count(userID); count != 0 {
		t.Errorf("expected no records after refund, got %d", count)
	}
}

func TestProcessRefundFailure(t *testing.T) {
	lgr := ledger.New()
	userID := int64(100)
	lgr.RecordPayment(userID, "ch_1", 2, testTS)

	refunder := &fakeRefunder{ok: false, err: errors.New("telegram says no")}
	res := processRefund(context.Background(), lgr, refunder, userID)

	if res.Outcome != RefundFailed {
		t.Fatalf("expected RefundFailed, got %v", res.Outcome)
	}

	// the popped record must have been restored untouched
	records := lgr.Payments(userID)
	if len(records) != 1 {
		t.Fatalf("expected 1 record after failed refund, got %d", len(records))
	}
	if records[0].PaymentID != "ch_1" || records[0].Amount != 2 {
		t.Errorf("restored record changed: %+v", records[0])
	}
}

func TestProcessRefundRejected(t *testing.T) {
	// ok=false with a nil error is still a failure and must restore
	lgr := ledger.New()
	userID := int64(100)
	lgr.RecordPayment(userID, "ch_1", 2, testTS)

	refunder := &fakeRefunder{ok: false}
	res := processRefund(context.Background(), lgr, refunder, userID)

	if res.Outcome != RefundFailed {
		t.Fatalf("expected RefundFailed, got %v", res.Outcome)
	}
	if count := lgr.Count(userID); count != 1 {
		t.Errorf("expected record restored, got count %d", count)
	}
}

func TestProcessRefundNothingToRefund(t *testing.T) {
	lgr := ledger.New()

	refunder := &fakeRefunder{ok: true}
	res := processRefund(context.Background(), lgr, refunder, 100)

	if res.Outcome != RefundNothingToRefund {
		t.Fatalf("expected RefundNothingToRefund, got %v", res.Outcome)
	}
	if refunder.calls != 0 {
		t.Errorf("expected no external call, got %d", refunder.calls)
	}
}

func TestProcessRefundTargetsNewest(t *testing.T) {
	lgr := ledger.New()
	userID := int64(100)
	lgr.RecordPayment(userID, "ch_1", 2, testTS)
	lgr.RecordPayment(userID, "ch_2", 2, testTS.Add(time.Minute))
	lgr.RecordPayment(userID, "ch_3", 3, testTS.Add(2*time.Minute))

	refunder := &fakeRefunder{ok: true}
	res := processRefund(context.Background(), lgr, refunder, userID)

	if res.Outcome != RefundDone || res.Amount != 3 {
		t.Fatalf("expected RefundDone with amount 3, got %v / %d", res.Outcome, res.Amount)
	}
	if refunder.gotChargeID != "ch_3" {
		t.Errorf("expected refund of newest record ch_3, got %s", refunder.gotChargeID)
	}

	// the first two records stay, in their original order
	if total := lgr.TotalPaid(userID); total != 4 {
		t.Errorf("expected total 4, got %d", total)
	}
	records := lgr.Payments(userID)
	if len(records) != 2 {
		t.Fatalf("expected 2 remaining records, got %d", len(records))
	}
	if records[0].PaymentID != "ch_1" || records[1].PaymentID != "ch_2" {
		t.Errorf("remaining records out of order: %+v", records)
	}
}
