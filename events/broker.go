package events

import (
	"time"

	"github.com/caffeinepress/ipn-processing/settings"
)

// EventBroker is responsible for processing events - sending them to the
// host shop via http callback, to websocket subscribers and storing them.
type EventBroker interface {
	Notify(eventType EventType, data interface{}) error
	SubscribeFromSeq(seq int) chan []*NotificationWithSeq
	UnsubscribeFromSeq(ch chan []*NotificationWithSeq)
	GetEventsFromSeq(seq int) ([]*NotificationWithSeq, error)
	SendNotifications()

	Run() error
	Stop()
}

type eventBroker struct {
	storage          EventStorage
	eventBroadcaster *broadcasterWithStorage

	callbackURL            string
	httpCallbackRetries    int
	httpCallbackRetryDelay time.Duration

	notificationTrigger chan struct{}
	stopTrigger         chan struct{}
}

// NewEventBroker creates new instance of eventBroker. The http callback URL
// is read from setting order.callback.url and may be empty, in which case
// events are only stored and broadcasted to subscribers.
func NewEventBroker(s settings.Settings, storage EventStorage) EventBroker {
	callbackURL := s.GetString("order.callback.url")
	if callbackURL != "" {
		// validate it early, GetURL fatals on malformed values
		callbackURL = s.GetURL("order.callback.url")
	}
	return &eventBroker{
		storage:             storage,
		eventBroadcaster:    newBroadcasterWithStorage(storage),
		callbackURL:         callbackURL,
		httpCallbackRetries: s.GetInt("order.callback.retries"),
		httpCallbackRetryDelay: time.Duration(
			s.GetInt("order.callback.backoff"),
		) * time.Millisecond,
		notificationTrigger: make(chan struct{}, 3),
		stopTrigger:         make(chan struct{}),
	}
}

// Notify creates new event with given type and associated data and schedules
// its delivery. The event is stored before Notify returns; delivery to
// subscribers and to the http callback happens asynchronously in the broker's
// Run loop.
func (e *eventBroker) Notify(eventType EventType, data interface{}) error {
	_, err := e.storage.StoreEvent(Notification{eventType, data})
	if err != nil {
		return err
	}
	e.SendNotifications()
	return nil
}

// SendNotifications triggers delivery of stored but not yet delivered events
// without blocking.
func (e *eventBroker) SendNotifications() {
	select {
	case e.notificationTrigger <- struct{}{}:
	default:
	}
}

func (e *eventBroker) SubscribeFromSeq(seq int) chan []*NotificationWithSeq {
	return e.eventBroadcaster.SubscribeFromSeq(seq)
}

func (e *eventBroker) UnsubscribeFromSeq(ch chan []*NotificationWithSeq) {
	e.eventBroadcaster.Unsubscribe(ch)
}

func (e *eventBroker) GetEventsFromSeq(seq int) ([]*NotificationWithSeq, error) {
	return e.storage.GetEventsFromSeq(seq)
}

// Run delivers events until Stop is called. Each trigger drains everything
// accumulated since the last delivery, so a burst of notifications results in
// one pass.
func (e *eventBroker) Run() error {
	for {
		select {
		case <-e.stopTrigger:
			e.eventBroadcaster.Close()
			return nil
		case <-e.notificationTrigger:
			if err := e.eventBroadcaster.Broadcast(); err != nil {
				return err
			}
			if err := e.sendHTTPCallbackNotifications(); err != nil {
				return err
			}
		}
	}
}

func (e *eventBroker) Stop() {
	close(e.stopTrigger)
}
