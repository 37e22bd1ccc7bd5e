package main

import (
	"context"
	"fmt"
	"log"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// /start
func onStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	sendReply(ctx, b, update.Message.Chat.ID,
		`Welcome! I am a simple bot that can accept payments via Telegram Stars. The following commands are available:

/pay - to pay
/status - to check payment status
/refund - to refund payment`,
	)
}

// /paysupport - telegram requires bots selling in stars to answer
// payment support queries
func onPaySupport(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	sendReply(ctx, b, update.Message.Chat.ID,
		"Having trouble with a payment? Use /refund to refund your most recent payment, or contact the bot owner.",
	)
}

// /status - how many times the user has paid, and how much in total
func onStatus(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	userID := update.Message.From.ID

	count := starLedger.Count(userID)
	total := starLedger.TotalPaid(userID)
	log.Printf("%d : received /status (%d payment(s), %d stars total)", userID, count, total)

	if count == 0 {
		sendReply(ctx, b, update.Message.Chat.ID, "You have not paid yet")
		return
	}

	sendReply(ctx, b, update.Message.Chat.ID, fmt.Sprintf(
		"You have paid %d time(s), %d Stars in total", count, total,
	))
}

// /refund - refund the users most recent payment
func onRefund(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	userID := update.Message.From.ID

	log.Printf("%d : received /refund", userID)

	res := processRefund(ctx, starLedger, b, userID)
	switch res.Outcome {
	case RefundDone:
		sendReply(ctx, b, update.Message.Chat.ID, fmt.Sprintf(
			"Refund successful, %d Stars returned", res.Amount,
		))
	case RefundNothingToRefund:
		sendReply(ctx, b, update.Message.Chat.ID, "You have not paid yet, there is nothing to refund")
	case RefundFailed:
		sendReply(ctx, b, update.Message.Chat.ID, "Refund failed, please try again later")
	}
}
