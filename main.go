package main

import (
	"context"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/starsbot/app/common"
	"github.com/starsbot/app/ledger"
	"gopkg.in/natefinch/lumberjack.v2"
)

var ENVPATH = "inputs/settings.env"

var TESTING bool
var STAFF_DISC_WH_URL string

// the payment ledger, created in main and shared by the handlers
var starLedger *ledger.Ledger

func main() {
	// set up logger
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	logger := &lumberjack.Logger{ // change file at 200MB, and delete after 7 days
		Filename:   "bot-interactions.log",
		MaxSize:    200,        // in MB
		MaxBackups: 9999999999, // set very large to effectively disable the max simultaneous number of logfiles
		MaxAge:     7,          // days
	}

	wrt := io.MultiWriter(os.Stdout, logger)
	log.SetOutput(wrt)
	defer logger.Close()

	log.Printf("launching…")

	// get creds from settings env
	creds, err := godotenv.Read(ENVPATH)
	if err != nil {
		log.Fatalf("failed to read creds, %v", err)
	}
	TESTING, err = strconv.ParseBool(creds["TESTING"])
	if err != nil {
		log.Fatalf("non bool creds.TESTING %s, %v", creds["TESTING"], err)
	}

	BOT_TOKEN := creds["TELEGRAM_BOT_TOKEN"]
	if BOT_TOKEN == "" {
		log.Fatalf("TELEGRAM_BOT_TOKEN missing from %s", ENVPATH)
	}

	STAFF_DISC_WH_URL = creds["STAFF_DISC_WH_URL"]
	common.STAFF_DISC_WH_URL = STAFF_DISC_WH_URL

	log.Printf("in testing mode: %t", TESTING)

	// create the payment ledger. It lives for the lifetime of the process
	// and starts empty - nothing is persisted between runs.
	starLedger = ledger.New()

	// launch the bot, blocks until the process is killed
	launchTelegramBot(context.Background(), BOT_TOKEN)
}
