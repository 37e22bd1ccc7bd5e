package common

import (
	"errors"
	"fmt"
	"log"

	dwh "github.com/nat-echlin/dwhooks"
)

var STAFF_DISC_WH_URL string

// send an alert to the staff alerts webhook
func SendStaffAlert(desc string) error {
	if STAFF_DISC_WH_URL == "" {
		return errors.New("no staff webhook configured")
	}

	msg := dwh.NewMessage(desc)

	wh := dwh.NewWebhook(STAFF_DISC_WH_URL)
	status, err := wh.Send(msg)

	if err != nil {
		return fmt.Errorf("failed to send to webhook, %v", err)
	}
	expectedStatus := 204
	if status != expectedStatus {
		return fmt.Errorf("bad status; expected: %d, got: %d", expectedStatus, status)
	}
	return nil
}

// log to stdout, and send as a staff alert. internally launched as a goroutine
func LogAndSendAlertF(str string, v ...any) {
	go func() {
		msg := fmt.Sprintf("STAFF-ALERT : "+str, v...)
		log.Print(msg)

		err := SendStaffAlert(msg)
		if err != nil {
			log.Printf("failed to send staff alert, %v", err)
		}
	}()
}
