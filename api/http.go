package api

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/gofrs/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	IPNURL           = "/"
	GetOrdersURL     = "/get_orders"
	GetOrderNotesURL = "/get_order_notes"
	GetEventsURL     = "/get_events"
	MetricsURL       = "/metrics"
)

// GetOrdersFilter describes data sent by client to set up filters in
// /get_orders request. Currently, filtering by status and transaction id is
// supported, empty value means do not filter
type GetOrdersFilter struct {
	Status        string `json:"status,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
}

type HTTPAPIResponseError string

func (err HTTPAPIResponseError) Error() string {
	return string(err)
}

type GenericHTTPAPIResponse struct {
	Error HTTPAPIResponseError `json:"error"`
}

type httpAPIResponse struct {
	GenericHTTPAPIResponse
	Result interface{} `json:"result"`
}

func (s *Server) respond(response http.ResponseWriter, data interface{}, err error) {
	var responseBody []byte
	if err != nil {
		responseBody, err = json.Marshal(httpAPIResponse{
			GenericHTTPAPIResponse: GenericHTTPAPIResponse{
				Error: HTTPAPIResponseError(err.Error()),
			}},
		)
		if err != nil {
			panic("Failed to marshal error response for error " + err.Error())
		}
		_, err = response.Write(responseBody)
		if err != nil {
			panic(fmt.Sprintf(
				"Failed to write error response %q: %s",
				responseBody,
				err,
			))
		}
		return
	}
	responseBody, err = json.Marshal(httpAPIResponse{
		GenericHTTPAPIResponse: GenericHTTPAPIResponse{Error: "ok"},
		Result:                 data,
	})
	if err != nil {
		panic("Failed to marshal ok response for error " + err.Error())
	}
	_, err = response.Write(responseBody)
	if err != nil {
		panic(fmt.Sprintf(
			"Failed to write ok response %q: %s",
			responseBody,
			err,
		))
	}
}

func (s *Server) getOrders(response http.ResponseWriter, request *http.Request) {
	var orderFilter GetOrdersFilter
	var body []byte
	var err error

	if body, err = ioutil.ReadAll(request.Body); err != nil {
		s.respond(response, nil, err)
		return
	}
	if len(body) > 0 {
		if err = json.Unmarshal(body, &orderFilter); err != nil {
			s.respond(response, nil, err)
			return
		}
	}
	orders, err := s.storage.GetOrdersWithFilter(
		orderFilter.Status, orderFilter.TransactionID,
	)

	s.respond(response, orders, err)
}

func (s *Server) getOrderNotes(response http.ResponseWriter, request *http.Request) {
	var id uuid.UUID
	var body []byte
	var err error

	if body, err = ioutil.ReadAll(request.Body); err != nil {
		s.respond(response, nil, err)
		return
	}
	if err = json.Unmarshal(body, &id); err != nil {
		s.respond(response, nil, err)
		return
	}
	notes, err := s.storage.GetOrderNotes(id)

	s.respond(response, notes, err)
}

func (s *Server) getEvents(response http.ResponseWriter, request *http.Request) {
	var body []byte
	var err error
	var seq int
	var subscription SubscribeMessage

	if body, err = ioutil.ReadAll(request.Body); err != nil {
		s.respond(response, nil, err)
		return
	}
	if len(body) > 0 {
		if err = json.Unmarshal(body, &subscription); err != nil {
			s.respond(response, nil, err)
			return
		}
		seq = subscription.Seq
	}
	eventSlice, err := s.eventBroker.GetEventsFromSeq(seq)

	s.respond(response, eventSlice, err)
}

func (s *Server) initHTTPAPIServer() {
	m := s.httpServer.Handler.(*http.ServeMux)
	m.HandleFunc(IPNURL, s.handleIPN)
	m.HandleFunc(GetOrdersURL, s.getOrders)
	m.HandleFunc(GetOrderNotesURL, s.getOrderNotes)
	m.HandleFunc(GetEventsURL, s.getEvents)
	m.Handle(MetricsURL, promhttp.Handler())
}
