package api

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/caffeinepress/ipn-processing/commerce"
	"github.com/caffeinepress/ipn-processing/identity"
	"github.com/caffeinepress/ipn-processing/ipn"
	"github.com/caffeinepress/ipn-processing/ipn/types"
	"github.com/caffeinepress/ipn-processing/money"
)

const testSecret = "sekrit-key"

type testServer struct {
	*Server
	orderStorage ipn.Storage
}

func newTestServer() *testServer {
	orderStorage := ipn.NewInMemoryOrderStorage()
	engine := ipn.NewEngine(
		ipn.Config{SecretKey: testSecret, AmountUnit: money.Cents},
		orderStorage,
		identity.NewInMemoryIdentityStorage(),
		nil,
		commerce.NewInMemoryContext("USD"),
		nil,
	)
	return &testServer{
		Server:       NewServer("127.0.0.1:0", engine, orderStorage, nil),
		orderStorage: orderStorage,
	}
}

func signedSaleForm(overrides map[string]string) url.Values {
	fields := map[string]string{
		types.FieldCustomerName:    "Jane Buyer",
		types.FieldCustomerEmail:   "jane@example.com",
		types.FieldTransactionType: "SALE",
		types.FieldAmount:          "1999",
		types.FieldReceipt:         "AB12345678",
	}
	for name, value := range overrides {
		fields[name] = value
	}
	fields[types.FieldVerification] = ipn.ComputeSignature(fields, testSecret)

	form := make(url.Values)
	for name, value := range fields {
		form.Set(name, value)
	}
	return form
}

func postIPN(t *testing.T, server *testServer, target string, form url.Values) *httptest.ResponseRecorder {
	request := httptest.NewRequest(
		"POST", target, strings.NewReader(form.Encode()),
	)
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := httptest.NewRecorder()
	server.httpServer.Handler.ServeHTTP(recorder, request)
	return recorder
}

func TestDispatcherAcknowledgesSale(t *testing.T) {
	server := newTestServer()

	recorder := postIPN(
		t, server, "/?jvzooipn=ipn&eddid=42", signedSaleForm(nil),
	)

	if got, want := recorder.Code, http.StatusOK; got != want {
		t.Fatalf("Expected status %d, got %d", want, got)
	}
	body, _ := ioutil.ReadAll(recorder.Result().Body)
	if len(body) != 0 {
		t.Errorf("Expected empty acknowledgement body, got %q", body)
	}

	orders, err := server.orderStorage.GetOrdersByTransactionID("AB12345678")
	if err != nil {
		t.Fatalf("Failed to fetch orders: %s", err)
	}
	if len(orders) != 1 {
		t.Fatalf("Expected 1 order, got %d", len(orders))
	}
	if got, want := orders[0].Status, types.PublishedOrder; got != want {
		t.Errorf("Expected order status %s, got %s", want, got)
	}
	if got, want := orders[0].Cart[0].ProductID, "42"; got != want {
		t.Errorf("Expected product id %s, got %s", want, got)
	}
}

func TestDispatcherRequiresSentinel(t *testing.T) {
	server := newTestServer()

	for _, target := range []string{"/", "/?jvzooipn=other"} {
		recorder := postIPN(t, server, target, signedSaleForm(nil))
		if got, want := recorder.Code, http.StatusNotFound; got != want {
			t.Errorf("%s: expected status %d, got %d", target, want, got)
		}
	}

	orders, err := server.orderStorage.GetOrdersWithFilter("", "")
	if err != nil {
		t.Fatalf("Failed to fetch orders: %s", err)
	}
	if len(orders) != 0 {
		t.Errorf("Expected no orders, got %d", len(orders))
	}
}

func TestDispatcherAcknowledgesBadSignature(t *testing.T) {
	server := newTestServer()
	form := signedSaleForm(nil)
	form.Set(types.FieldVerification, "00000000")

	recorder := postIPN(t, server, "/?jvzooipn=ipn&eddid=42", form)

	if got, want := recorder.Code, http.StatusOK; got != want {
		t.Fatalf("Expected status %d even for bad signature, got %d", want, got)
	}
	orders, err := server.orderStorage.GetOrdersWithFilter("", "")
	if err != nil {
		t.Fatalf("Failed to fetch orders: %s", err)
	}
	if len(orders) != 0 {
		t.Errorf("Expected no orders after rejected IPN, got %d", len(orders))
	}
}

func TestDispatcherStripsMagicQuotes(t *testing.T) {
	server := newTestServer()

	// the sender signs the unescaped values, an intermediate PHP layer adds
	// the backslashes afterwards
	form := signedSaleForm(map[string]string{
		types.FieldCustomerName: "Jane O'Brien",
	})
	signature := form.Get(types.FieldVerification)
	form.Set(types.FieldCustomerName, `Jane O\'Brien`)
	form.Set(types.FieldVerification, signature)

	postIPN(t, server, "/?jvzooipn=ipn&eddid=42", form)

	orders, err := server.orderStorage.GetOrdersByTransactionID("AB12345678")
	if err != nil {
		t.Fatalf("Failed to fetch orders: %s", err)
	}
	if len(orders) != 1 {
		t.Fatalf("Expected 1 order, got %d", len(orders))
	}
	if got, want := orders[0].CustomerName, "Jane O'Brien"; got != want {
		t.Errorf("Expected unescaped customer name %q, got %q", want, got)
	}
}

func TestDispatcherPackageNumberAndRawLog(t *testing.T) {
	server := newTestServer()

	postIPN(
		t, server,
		"/?jvzooipn=ipn&eddid=42&edd_pn=2&jvzoolog=1",
		signedSaleForm(nil),
	)

	orders, err := server.orderStorage.GetOrdersByTransactionID("AB12345678")
	if err != nil {
		t.Fatalf("Failed to fetch orders: %s", err)
	}
	if len(orders) != 1 {
		t.Fatalf("Expected 1 order, got %d", len(orders))
	}
	if got, want := orders[0].Cart[0].PriceID, 1; got != want {
		t.Errorf("Expected price tier %d, got %d", want, got)
	}
	notes, err := server.orderStorage.GetOrderNotes(orders[0].ID)
	if err != nil {
		t.Fatalf("Failed to fetch order notes: %s", err)
	}
	if len(notes) != 2 || !strings.Contains(notes[0], "JVZoo POST fields") {
		t.Errorf("Expected raw field dump note, got %v", notes)
	}
}

func TestDispatcherRawLogRequiresExactFlag(t *testing.T) {
	server := newTestServer()

	// only jvzoolog=1 requests the raw dump, other values do not
	postIPN(t, server, "/?jvzooipn=ipn&eddid=42&jvzoolog=0", signedSaleForm(nil))

	orders, err := server.orderStorage.GetOrdersByTransactionID("AB12345678")
	if err != nil {
		t.Fatalf("Failed to fetch orders: %s", err)
	}
	if len(orders) != 1 {
		t.Fatalf("Expected 1 order, got %d", len(orders))
	}
	notes, err := server.orderStorage.GetOrderNotes(orders[0].ID)
	if err != nil {
		t.Fatalf("Failed to fetch order notes: %s", err)
	}
	if len(notes) != 1 || strings.Contains(notes[0], "JVZoo POST fields") {
		t.Errorf("Expected no raw field dump note, got %v", notes)
	}
}

func TestStripSlashes(t *testing.T) {
	cases := []struct{ in, want string }{
		{`Jane O\'Brien`, "Jane O'Brien"},
		{`back\\slash`, `back\slash`},
		{"untouched", "untouched"},
		{"", ""},
	}
	for _, c := range cases {
		if got := stripSlashes(c.in); got != c.want {
			t.Errorf("stripSlashes(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
