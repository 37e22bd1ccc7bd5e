package ledger

import (
	"errors"
	"sync"
	"time"
)

var ErrNoPayments = errors.New("no payments on record for this user")

// one completed Stars payment
type PaymentRecord struct {
	PaymentID string    // telegram_payment_charge_id, needed to refund this exact payment
	Amount    int64     // stars, smallest currency unit
	Timestamp time.Time // when the payment landed, informational only
}

// Ledger is the in-memory record of who paid what, how much, and in what
// order. It lives for the lifetime of the process and starts empty -
// nothing is persisted between runs.
//
// All methods are safe for concurrent use. The mutex serializes every
// mutation, so PopLastPayment is atomic - two concurrent refunds for the
// same user can never pop the same record.
type Ledger struct {
	payments map[int64][]PaymentRecord
	mu       sync.Mutex
}

func New() *Ledger {
	return &Ledger{
		payments: map[int64][]PaymentRecord{},
	}
}

// append a payment to the users sequence, creating it if absent
func (l *Ledger) RecordPayment(userID int64, paymentID string, amount int64, ts time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.payments[userID] = append(l.payments[userID], PaymentRecord{
		PaymentID: paymentID,
		Amount:    amount,
		Timestamp: ts,
	})
}

// get a copy of the users payments, oldest first. An empty slice means
// the user has never paid, or everything they paid has been refunded.
func (l *Ledger) Payments(userID int64) []PaymentRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	records := l.payments[userID]
	out := make([]PaymentRecord, len(records))
	copy(out, records)
	return out
}

// sum of the users payment amounts, 0 if they have none
func (l *Ledger) TotalPaid(userID int64) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	var total int64
	for _, rec := range l.payments[userID] {
		total += rec.Amount
	}
	return total
}

func (l *Ledger) Count(userID int64) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.payments[userID])
}

// remove and return the users most recent payment. Returns ErrNoPayments
// if they have none. If the pop empties the users sequence their entry is
// deleted entirely, so no zero length entries are ever left behind.
func (l *Ledger) PopLastPayment(userID int64) (PaymentRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	records := l.payments[userID]
	if len(records) == 0 {
		return PaymentRecord{}, ErrNoPayments
	}

	last := records[len(records)-1]
	if len(records) == 1 {
		delete(l.payments, userID)
	} else {
		l.payments[userID] = records[:len(records)-1]
	}
	return last, nil
}

// reinsert a previously popped record at the tail. Used to roll back a
// pop when the downstream refund call fails, so a record is only ever
// destroyed on a confirmed refund.
func (l *Ledger) RestoreLastPayment(userID int64, rec PaymentRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.payments[userID] = append(l.payments[userID], rec)
}
