package api

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/caffeinepress/ipn-processing/ipn/types"
)

// stripSlashes undoes PHP-style magic-quote escaping ("O\'Brien") that some
// JVZoo accounts still apply to posted field values.
func stripSlashes(value string) string {
	if !strings.ContainsRune(value, '\\') {
		return value
	}
	var b strings.Builder
	b.Grow(len(value))
	escaped := false
	for _, r := range value {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}

// handleIPN is the notification dispatcher. It is mounted on the server root:
// a request is an IPN callback iff the jvzooipn query param carries the
// sentinel value, anything else 404s. The sender is a fire-and-forget webhook
// caller, so every recognized callback is acknowledged with an empty 200 no
// matter how processing went - outcomes are observable through the event
// stream and logs, not through the response.
func (s *Server) handleIPN(response http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	if query.Get(types.QueryParamIPN) != types.IPNSentinelValue {
		http.NotFound(response, request)
		return
	}

	if err := request.ParseForm(); err != nil {
		log.Printf("Warning: failed to parse IPN request body: %s", err)
		response.WriteHeader(http.StatusOK)
		return
	}

	fields := make(map[string]string, len(request.PostForm))
	for name := range request.PostForm {
		fields[name] = stripSlashes(request.PostForm.Get(name))
	}

	// a missing or malformed package number means no variable pricing
	packageNumber, err := strconv.Atoi(query.Get(types.QueryParamPackageNumber))
	if err != nil {
		packageNumber = 0
	}

	notification := &types.Notification{
		Fields:           fields,
		ClaimedSignature: fields[types.FieldVerification],
		TransactionType: types.TransactionTypeFromString(
			fields[types.FieldTransactionType],
		),
		TransactionID: strings.TrimSpace(fields[types.FieldReceipt]),
		Amount:        fields[types.FieldAmount],
		CustomerName:  fields[types.FieldCustomerName],
		CustomerEmail: fields[types.FieldCustomerEmail],
		ProductID:     query.Get(types.QueryParamProductID),
		PackageNumber: packageNumber,
		LogRaw:        query.Get(types.QueryParamRawLog) == "1",
	}

	outcome, err := s.engine.ProcessIPN(notification)
	if err != nil {
		log.Printf(
			"Error: failed to process IPN with receipt %q: %s",
			notification.TransactionID, err,
		)
	} else {
		log.Printf(
			"Processed IPN with receipt %q: %s",
			notification.TransactionID, outcome.Type,
		)
	}
	response.WriteHeader(http.StatusOK)
}
