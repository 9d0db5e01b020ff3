package main

import (
	"log"

	"github.com/caffeinepress/ipn-processing/api"
	"github.com/caffeinepress/ipn-processing/commerce"
	"github.com/caffeinepress/ipn-processing/events"
	"github.com/caffeinepress/ipn-processing/identity"
	"github.com/caffeinepress/ipn-processing/ipn"
	"github.com/caffeinepress/ipn-processing/mail"
	"github.com/caffeinepress/ipn-processing/settings"
	"github.com/caffeinepress/ipn-processing/storage"
)

func main() {
	settings.ReadSettingsAndRun(func(s settings.Settings) {
		db := storage.Open(s)

		orderStorage := ipn.NewStorage(db)
		eventStorage := events.NewEventStorage(db)
		identityStorage := identity.NewStorage(db)

		eventBroker := events.NewEventBroker(s, eventStorage)

		engine := ipn.NewEngine(
			ipn.ConfigFromSettings(s),
			orderStorage,
			identityStorage,
			mail.NewMailer(s),
			commerce.NewContext(s, db),
			eventBroker,
		)
		engine.RegisterMetrics()

		apiServer := api.NewServer(
			s.GetString("api.http.address"), engine, orderStorage, eventBroker,
		)

		runner := newComponentRunner()

		eventBrokerDone := runner.run(eventBroker, "Event broker")
		apiServerDone := runner.run(apiServer, "API server")

		// neither component stops on its own in normal operation, so any
		// stop brings the whole process down
		select {
		case <-eventBrokerDone:
		case <-apiServerDone:
		}
		eventBroker.Stop()
		log.Fatal("Stopped due to component failure")
	})
}
