package main

import (
	"context"
	"fmt"
	"log"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/starsbot/app/common"
)

var TGBOT string = "TGBOT"

// long running function, blocks until ctx is cancelled
func launchTelegramBot(ctx context.Context, botToken string) {
	defer func() {
		if err := recover(); err != nil {
			alert := fmt.Sprintf("telegram bot crashed, restarting\n\n%v", err)
			common.SendStaffAlert(alert)

			launchTelegramBot(ctx, botToken)
		}
	}()

	opts := []bot.Option{
		bot.WithDefaultHandler(onUpdate),
		bot.WithAllowedUpdates(bot.AllowedUpdates{
			"message",
			"pre_checkout_query",
		}),
	}

	b, err := bot.New(botToken, opts...)
	if err != nil {
		log.Fatalf("%s : failed to create bot, %v", TGBOT, err)
	}

	// add command handlers
	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, onStart)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/pay", bot.MatchTypeExact, onPay)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/status", bot.MatchTypeExact, onStatus)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/refund", bot.MatchTypeExact, onRefund)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/paysupport", bot.MatchTypeExact, onPaySupport)

	log.Printf("%s : bot is now online, long polling for updates", TGBOT)
	b.Start(ctx)
}

// catches the updates that aren't plain text commands: pre checkout
// queries and successful payment notifications
func onUpdate(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil {
		return
	}

	if update.PreCheckoutQuery != nil {
		onPreCheckout(ctx, b, update)
		return
	}

	if update.Message != nil && update.Message.SuccessfulPayment != nil {
		onSuccessfulPayment(ctx, b, update)
	}
}

// send a text reply to a chat, logging the send error if there is one
func sendReply(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		log.Printf("%s : failed to send reply to chat %d, %v", TGBOT, chatID, err)
	}
}
