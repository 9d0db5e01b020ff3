package ipn

import (
	"fmt"
	"log"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/caffeinepress/ipn-processing/commerce"
	"github.com/caffeinepress/ipn-processing/events"
	"github.com/caffeinepress/ipn-processing/identity"
	"github.com/caffeinepress/ipn-processing/ipn/types"
	"github.com/caffeinepress/ipn-processing/mail"
	"github.com/caffeinepress/ipn-processing/money"
	"github.com/caffeinepress/ipn-processing/settings"
	"github.com/caffeinepress/ipn-processing/util"
)

// Config holds the reconciliation options. It is resolved once at engine
// construction so that nothing in the processing path reads ambient
// process-wide state; tests pass a Config directly.
type Config struct {
	// SecretKey is the shared JVZoo secret the signature is computed with.
	// An empty secret does not disable verification, it just makes the
	// expected signature trivially computable
	SecretKey string

	// AmountUnit tells whether wire amounts arrive in cents or whole
	// currency units
	AmountUnit money.AmountUnit

	// CreateUserOnPurchase enables provisioning of a shop account for
	// customers that do not have one yet
	CreateUserOnPurchase bool

	// LogRawNotification forces the full raw field dump onto every created
	// order's audit notes. The same dump can be requested per-request with
	// the jvzoolog query param
	LogRawNotification bool
}

// ConfigFromSettings reads reconciliation options from settings.
func ConfigFromSettings(s settings.Settings) Config {
	secret := s.GetString("jvzoo.secret_key")
	if secret == "" {
		log.Print("Warning: jvzoo.secret_key is not set. Notifications with " +
			"an empty-secret signature will verify, which makes forgery " +
			"trivial")
	}
	return Config{
		SecretKey:            secret,
		AmountUnit:           s.GetAmountUnit("jvzoo.amount_unit"),
		CreateUserOnPurchase: s.GetBool("jvzoo.create_user_on_purchase"),
		LogRawNotification:   s.GetBool("jvzoo.log_raw_notification"),
	}
}

// Engine is the reconciliation engine: given a verified notification it
// decides whether to create a new pending order, detect-and-discard a
// duplicate, publish a sale, or mark matching orders refunded. It owns no
// records itself - orders live in its ledger Storage, accounts in the
// identity Storage.
type Engine struct {
	config      Config
	storage     Storage
	identity    identity.Storage
	mailer      mail.Mailer
	commerce    commerce.Context
	eventBroker events.EventBroker

	ipnsReceivedCount      prometheus.Counter
	ipnsRejectedCount      prometheus.Counter
	ordersPublishedCount   prometheus.Counter
	duplicatesDiscardCount prometheus.Counter
	ordersRefundedCount    prometheus.Counter
}

// NewEngine creates new Engine instance wired to its collaborators. The
// event broker may be nil, in which case no events are emitted.
func NewEngine(
	config Config,
	storage Storage,
	identityStorage identity.Storage,
	mailer mail.Mailer,
	commerceContext commerce.Context,
	eventBroker events.EventBroker,
) *Engine {
	e := &Engine{
		config:      config,
		storage:     storage,
		identity:    identityStorage,
		mailer:      mailer,
		commerce:    commerceContext,
		eventBroker: eventBroker,
	}
	e.initMetrics()
	return e
}

func (e *Engine) initMetrics() {
	e.ipnsReceivedCount = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ipn_processing",
		Subsystem: "engine",
		Name:      "notifications_received",
		Help:      "Total number of IPN callbacks received.",
	})
	e.ipnsRejectedCount = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ipn_processing",
		Subsystem: "engine",
		Name:      "notifications_rejected",
		Help:      "Total number of IPN callbacks that failed signature verification.",
	})
	e.ordersPublishedCount = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ipn_processing",
		Subsystem: "engine",
		Name:      "orders_published",
		Help:      "Total number of orders published from sale notifications.",
	})
	e.duplicatesDiscardCount = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ipn_processing",
		Subsystem: "engine",
		Name:      "duplicates_discarded",
		Help:      "Total number of orders discarded as duplicates.",
	})
	e.ordersRefundedCount = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ipn_processing",
		Subsystem: "engine",
		Name:      "orders_refunded",
		Help:      "Total number of orders moved to refunded status.",
	})
}

// RegisterMetrics registers the engine's prometheus metrics with the default
// registerer. It must be called at most once per process, so tests that
// construct engines do not call it.
func (e *Engine) RegisterMetrics() {
	prometheus.DefaultRegisterer.MustRegister(
		e.ipnsReceivedCount,
		e.ipnsRejectedCount,
		e.ordersPublishedCount,
		e.duplicatesDiscardCount,
		e.ordersRefundedCount,
	)
}

// ProcessIPN verifies a notification's signature and, when it matches,
// reconciles the notification against the ledger. A signature mismatch drops
// the notification silently (no ledger access) - the sender only cares about
// the HTTP acknowledgement, which the caller sends regardless.
func (e *Engine) ProcessIPN(notification *types.Notification) (*Outcome, error) {
	e.ipnsReceivedCount.Inc()

	verified := VerifySignature(
		notification.Fields,
		notification.ClaimedSignature,
		e.config.SecretKey,
	)
	if !verified {
		e.ipnsRejectedCount.Inc()
		log.Printf(
			"Warning: dropping IPN with invalid signature (receipt %q)",
			notification.TransactionID,
		)
		e.notify(events.IPNRejectedEvent, RejectedEventData{
			TransactionID:   notification.TransactionID,
			TransactionType: notification.TransactionType.String(),
		})
		return &Outcome{Type: OutcomeVerificationFailed}, nil
	}
	return e.Handle(notification)
}

// Handle applies a verified notification to the ledger and returns what was
// done. Unknown transaction types are acknowledged without any ledger
// mutation.
func (e *Engine) Handle(notification *types.Notification) (*Outcome, error) {
	switch {
	case notification.TransactionType == types.SaleTransaction:
		return e.handleSale(notification)
	case notification.TransactionType.IsRefund():
		return e.handleRefund(notification)
	default:
		log.Printf(
			"Ignoring IPN with transaction type %q (receipt %q)",
			notification.Fields[types.FieldTransactionType],
			notification.TransactionID,
		)
		return &Outcome{Type: OutcomeNoOp}, nil
	}
}

func (e *Engine) handleSale(notification *types.Notification) (*Outcome, error) {
	amount, err := money.AmountFromWire(notification.Amount, e.config.AmountUnit)
	if err != nil {
		// a sale without a usable amount is malformed, not fatal: ack and drop
		log.Printf(
			"Warning: dropping sale IPN with unparseable amount %q: %s",
			notification.Amount, err,
		)
		return &Outcome{Type: OutcomeNoOp}, nil
	}

	accountID, pendingMail := e.resolveAccount(notification)

	title, err := e.commerce.ProductTitle(notification.ProductID)
	if err != nil {
		log.Printf(
			"Warning: failed to look up title of product %q: %s",
			notification.ProductID, err,
		)
		title = notification.ProductID
	}

	// variable pricing: 1-based package number on the wire, 0-based tier
	priceID := -1
	if notification.PackageNumber > 0 {
		priceID = notification.PackageNumber - 1
	}

	order := &types.Order{
		Status:        types.PendingOrder,
		Amount:        amount,
		Currency:      e.commerce.Currency(),
		CustomerName:  notification.CustomerName,
		CustomerEmail: notification.CustomerEmail,
		AccountID:     accountID,
		Cart: []types.CartLine{{
			ProductID: notification.ProductID,
			Title:     title,
			Price:     amount,
			Quantity:  1,
			PriceID:   priceID,
		}},
		Fresh: true,
	}

	order, err = e.storage.StoreOrder(order)
	if err != nil {
		return nil, fmt.Errorf("Failed to create pending order: %s", err)
	}

	err = e.storage.SetOrderTransactionID(order.ID, notification.TransactionID)
	if err != nil {
		return nil, fmt.Errorf(
			"Failed to record transaction id on order %s: %s", order.ID, err,
		)
	}
	order.TransactionID = notification.TransactionID

	if e.config.LogRawNotification || notification.LogRaw {
		e.appendNote(
			order,
			"JVZoo POST fields: "+util.MustPrettyPrint(notification.Fields),
		)
	}
	e.appendNote(order, "JVZoo Transaction ID: "+notification.TransactionID)

	e.notifyOrderEvent(events.OrderCreatedEvent, order, types.PendingOrder)

	outcome, err := e.publishUnlessDuplicate(order)
	if err != nil {
		return nil, err
	}

	// side effects follow the ledger transition so their failure can neither
	// block nor roll back publication
	if pendingMail != nil {
		pendingMail.send(e.mailer)
	}
	if err := e.commerce.ClearCart(notification.CustomerEmail); err != nil {
		log.Printf(
			"Warning: failed to clear cart for %s: %s",
			notification.CustomerEmail, err,
		)
	}
	return outcome, nil
}

// publishUnlessDuplicate runs the duplicate check for a freshly created
// order and either publishes it or deletes it again. Only an already
// published competing order counts as a duplicate; the storage layer's
// uniqueness rule additionally catches the race where two copies of the same
// notification pass the query check concurrently.
func (e *Engine) publishUnlessDuplicate(order *types.Order) (*Outcome, error) {
	competitors, err := e.storage.GetOrdersByTransactionID(order.TransactionID)
	if err != nil {
		return nil, fmt.Errorf(
			"Failed to query orders for transaction id %q: %s",
			order.TransactionID, err,
		)
	}

	alreadyPublished := false
	for _, competitor := range competitors {
		if competitor.ID != order.ID && competitor.Status == types.PublishedOrder {
			alreadyPublished = true
			break
		}
	}

	if !alreadyPublished {
		err = e.storage.PublishOrder(order.ID)
		switch err {
		case nil:
			e.ordersPublishedCount.Inc()
			e.notifyOrderEvent(
				events.OrderPublishedEvent, order, types.PublishedOrder,
			)
			return &Outcome{Type: OutcomePublished, OrderID: order.ID}, nil
		case ErrDuplicatePublish:
			// lost the publish race, fall through to discard
		default:
			return nil, fmt.Errorf(
				"Failed to publish order %s: %s", order.ID, err,
			)
		}
	}

	log.Printf(
		"Duplicate payment received for transaction id %q, deleting order %s",
		order.TransactionID, order.ID,
	)
	if err := e.storage.DeleteOrder(order.ID); err != nil {
		return nil, fmt.Errorf(
			"Failed to delete duplicate order %s: %s", order.ID, err,
		)
	}
	e.duplicatesDiscardCount.Inc()
	e.notifyOrderEvent(events.DuplicateDiscardedEvent, order, types.PendingOrder)
	return &Outcome{Type: OutcomeDuplicateDiscarded, OrderID: order.ID}, nil
}

func (e *Engine) handleRefund(notification *types.Notification) (*Outcome, error) {
	if notification.TransactionID == "" {
		return &Outcome{Type: OutcomeNoOp}, nil
	}

	orders, err := e.storage.GetOrdersByTransactionID(notification.TransactionID)
	if err != nil {
		return nil, fmt.Errorf(
			"Failed to query orders for transaction id %q: %s",
			notification.TransactionID, err,
		)
	}
	if len(orders) == 0 {
		return &Outcome{Type: OutcomeNoOp}, nil
	}

	// there should be at most one order per receipt, but if duplicates
	// slipped through, refund them all
	outcome := &Outcome{Type: OutcomeRefunded}
	for _, order := range orders {
		e.appendNote(order, fmt.Sprintf(
			"JVZoo Payment #%s Refunded", notification.TransactionID,
		))
		err = e.storage.SetOrderStatus(order.ID, types.RefundedOrder)
		if err != nil {
			return nil, fmt.Errorf(
				"Failed to mark order %s refunded: %s", order.ID, err,
			)
		}
		e.ordersRefundedCount.Inc()
		e.notifyOrderEvent(events.OrderRefundedEvent, order, types.RefundedOrder)
		outcome.OrderIDs = append(outcome.OrderIDs, order.ID)
	}
	return outcome, nil
}

// appendNote attaches an audit note to an order. Notes are annotations, not
// ledger state: a failure is logged and processing continues.
func (e *Engine) appendNote(order *types.Order, note string) {
	if err := e.storage.AppendOrderNote(order.ID, note); err != nil {
		log.Printf(
			"Warning: failed to append note to order %s: %s", order.ID, err,
		)
	}
}
