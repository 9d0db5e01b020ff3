package api

import (
	"log"
	"net/http"

	"github.com/caffeinepress/ipn-processing/events"
	"github.com/caffeinepress/ipn-processing/ipn"
)

// Server runs http and websocket servers providing API. It receives IPN
// callbacks from JVZoo and serves the order ledger and event stream to
// operators and the host shop
type Server struct {
	engine        *ipn.Engine
	storage       ipn.Storage
	eventBroker   events.EventBroker
	listenAddress string
	httpServer    *http.Server
}

// NewServer creates new instance of API server
func NewServer(listenAddress string, engine *ipn.Engine, orderStorage ipn.Storage, eventBroker events.EventBroker) *Server {
	httpServer := &http.Server{
		Addr:    listenAddress,
		Handler: http.NewServeMux(),
	}
	server := &Server{
		engine:        engine,
		storage:       orderStorage,
		eventBroker:   eventBroker,
		listenAddress: listenAddress,
		httpServer:    httpServer,
	}
	server.initHTTPAPIServer()
	server.initWebsocketAPIServer()
	return server
}

// Run starts HTTP and websocket server
func (s *Server) Run() error {
	log.Printf("Starting API server on %s", s.listenAddress)
	return s.httpServer.ListenAndServe()
}
