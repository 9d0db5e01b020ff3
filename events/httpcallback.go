package events

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"net/http"
	"time"
)

func marshalFlattenedEvent(event *NotificationWithSeq) []byte {
	notificationDataJSON, err := json.Marshal(event.Data)
	if err != nil {
		panic(
			fmt.Sprintf(
				"Error: could not json-encode notification for webhook: %v",
				err,
			),
		)
	}

	var flatNotificationData map[string]interface{}
	err = json.Unmarshal(notificationDataJSON, &flatNotificationData)
	if err != nil {
		panic(
			fmt.Sprintf(
				"Error: could not json-decode notificationDataJSON: %v",
				err,
			),
		)
	}

	flatNotificationData["seq"] = event.Seq
	flatNotificationData["type"] = event.Type

	flatNotificationJSON, err := json.Marshal(flatNotificationData)
	if err != nil {
		panic(
			fmt.Sprintf(
				"Error: could not json-encode flat notification: %s",
				err,
			),
		)
	}

	return flatNotificationJSON
}

func (e *eventBroker) sendDataToHTTPCallback(event *NotificationWithSeq) error {
	data := marshalFlattenedEvent(event)
	resp, err := http.Post(
		e.callbackURL,
		"application/json",
		bytes.NewReader(data),
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == 200 {
		return nil
	}

	errorText := fmt.Sprintf(
		"Got response with code %d calling HTTP callback %s",
		resp.StatusCode,
		e.callbackURL,
	)
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		errorText += " also failed to read response body " + err.Error()
	} else {
		errorText += " server replied " + string(body)
	}
	return fmt.Errorf(errorText)
}

func (e *eventBroker) shouldSendToHTTPCallback(event *NotificationWithSeq) bool {
	// rejected IPNs never reach the host shop: there is no order to act on
	return event.Type != IPNRejectedEvent
}

// sendHTTPCallbackNotifications delivers events stored after the last
// successfully delivered one to the configured http callback. Delivery of
// each event is retried with a fixed delay; after the configured number of
// retries is exhausted the event is skipped with a warning so that one dead
// endpoint does not wedge delivery forever.
func (e *eventBroker) sendHTTPCallbackNotifications() error {
	if e.callbackURL == "" {
		return nil
	}

	lastSentSeq, err := e.storage.GetLastHTTPSentSeq()
	if err != nil {
		return err
	}
	events, err := e.storage.GetEventsFromSeq(lastSentSeq + 1)
	if err != nil {
		return err
	}

	for _, event := range events {
		if e.shouldSendToHTTPCallback(event) {
			err = e.sendDataToHTTPCallback(event)
			for retries := 0; err != nil && retries < e.httpCallbackRetries; retries++ {
				log.Printf(
					"Warning: error calling webhook (retry %d): %v",
					retries+1, err,
				)
				time.Sleep(e.httpCallbackRetryDelay)
				err = e.sendDataToHTTPCallback(event)
			}
			if err != nil {
				log.Printf(
					"Warning: giving up on delivering event with seq %d to "+
						"http callback: %v",
					event.Seq, err,
				)
			}
		}
		if err := e.storage.StoreLastHTTPSentSeq(event.Seq); err != nil {
			return err
		}
	}
	return nil
}
