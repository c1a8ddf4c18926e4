package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	httpadapter "custody/internal/adapters/in/http"
	"custody/internal/adapters/out/postgres"
	"custody/internal/adapters/out/postgres/dbtest"
	"custody/internal/adapters/out/postgres/inventoryrepo"
	"custody/internal/adapters/out/report"
	"custody/internal/core/application/orderids"
	"custody/internal/core/application/usecases/commands"
	"custody/internal/core/application/usecases/queries"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/domain/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
)

var now = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

type counter struct {
	mu   sync.Mutex
	next int64
}

func (c *counter) Next(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next++
	return c.next, nil
}

type nopTracker struct{}

func (nopTracker) TrackAggregate(kernel.Aggregate) {}

type ServerTestSuite struct {
	suite.Suite
	e *echo.Echo
}

func (suite *ServerTestSuite) SetupTest() {
	db := dbtest.SQLite(suite.T())
	clock := kernel.FixedClock(now)
	factory := postgres.NewGormUnitOfWorkFactory(db, nil, nil)

	generator, err := orderids.NewGenerator(services.NewGeoCodeResolver(), &counter{next: 1000}, nil)
	suite.Require().NoError(err)

	server := httpadapter.NewServer(httpadapter.Handlers{
		CreatePickupIntake:     commands.NewCreatePickupIntakeCommandHandler(factory, generator, clock),
		CreateWalkInIntake:     commands.NewCreateWalkInIntakeCommandHandler(factory, generator, clock),
		AssignAgent:            commands.NewAssignAgentCommandHandler(factory, clock),
		SubmitVerification:     commands.NewSubmitVerificationCommandHandler(factory, clock),
		AppendVerificationNote: commands.NewAppendVerificationNoteCommandHandler(factory),
		DecideQC:               commands.NewDecideQCCommandHandler(factory, clock),
		TransferStock:          commands.NewTransferStockCommandHandler(factory, clock),
		StockOut:               commands.NewStockOutCommandHandler(factory, clock),
		GetInventoryAging:      queries.NewGetInventoryAgingQueryHandler(db, clock),
		GetItemHistory:         queries.NewGetItemHistoryQueryHandler(inventoryrepo.NewGormInventoryRepository(db, nopTracker{})),
		PreviewOrderID:         queries.NewPreviewOrderIDQueryHandler(generator),
	}, nil)
	suite.e = httpadapter.NewEcho(server)
}

func (suite *ServerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var payload bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	suite.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func (suite *ServerTestSuite) createPickup() httpadapter.IntakeCreated {
	rec := suite.do(http.MethodPost, "/api/v1/intakes/pickup", map[string]any{
		"postal_code":  "641004",
		"category":     "Camera",
		"product_name": "Canon EOS 90D",
		"price":        42000,
		"customer":     map[string]string{"name": "Priya", "phone": "9876543210"},
	})
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	return decode[httpadapter.IntakeCreated](suite.T(), rec)
}

func (suite *ServerTestSuite) stockedItem() string {
	created := suite.createPickup()
	base := "/api/v1/intakes/" + created.IntakeID

	rec := suite.do(http.MethodPost, base+"/assignment", map[string]string{"agent_id": "agent-7"})
	suite.Require().Equal(http.StatusNoContent, rec.Code, rec.Body.String())

	rec = suite.do(http.MethodPost, base+"/verification", map[string]any{
		"photo_refs":    []string{"p1", "p2", "p3"},
		"id_proof_ref":  "aadhaar-1",
		"serial_number": "SN-90D",
		"captured_by":   "agent-7",
	})
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	rec = suite.do(http.MethodPost, base+"/qc-decision", map[string]string{
		"decision":    "warehouse",
		"reviewer_id": "qc-1",
	})
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	decided := decode[httpadapter.QCDecided](suite.T(), rec)
	suite.Equal("warehouse", decided.Status)
	suite.Require().NotNil(decided.InventoryItemID)
	return *decided.InventoryItemID
}

func (suite *ServerTestSuite) TestHealth() {
	rec := suite.do(http.MethodGet, "/health", nil)

	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal("Healthy", rec.Body.String())
}

func (suite *ServerTestSuite) TestCreatePickupIntake_IssuesOrderID() {
	created := suite.createPickup()

	suite.Equal("TN37WTDSLR1001", created.OrderID)
	suite.NotEmpty(created.IntakeID)
}

func (suite *ServerTestSuite) TestCreatePickupIntake_RejectsIncompleteBody() {
	rec := suite.do(http.MethodPost, "/api/v1/intakes/pickup", map[string]any{"postal_code": "641004"})

	suite.Equal(http.StatusBadRequest, rec.Code)
	body := decode[httpadapter.Error](suite.T(), rec)
	suite.Equal("required", body.Fields["category"])
	suite.Equal("required", body.Fields["product_name"])
}

func (suite *ServerTestSuite) TestCreateWalkInIntake_ValidatesCapture() {
	rec := suite.do(http.MethodPost, "/api/v1/intakes/walk-in", map[string]any{
		"postal_code":  "560001",
		"category":     "Phone",
		"brand":        "Apple",
		"product_name": "iPhone 13",
		"capture": map[string]any{
			"photo_refs":   []string{"p1"},
			"id_proof_ref": "id",
			"captured_by":  "staff-1",
		},
	})

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Contains(decode[httpadapter.Error](suite.T(), rec).Message, "photo")
}

func (suite *ServerTestSuite) TestLedgerFlow() {
	itemID := suite.stockedItem()
	item := "/api/v1/inventory/" + itemID

	rec := suite.do(http.MethodPost, item+"/transfer", map[string]string{
		"to":             "showroom",
		"to_showroom_id": "SR-2",
		"reason":         "display",
		"performed_by":   "staff-2",
	})
	suite.Require().Equal(http.StatusNoContent, rec.Code, rec.Body.String())

	rec = suite.do(http.MethodGet, item+"/history", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	history := decode[httpadapter.ItemHistory](suite.T(), rec)
	suite.True(history.Consistent)
	suite.Equal("TN37WTDSLR1001", history.OrderID)
	suite.Require().Len(history.Movements, 2)
	suite.Equal("stock_in", history.Movements[0].Type)
	suite.Empty(history.Movements[0].From)
	suite.Equal("transfer", history.Movements[1].Type)
	suite.Equal("showroom", history.Stored.Location)
	suite.Equal("SR-2", history.Stored.ShowroomID)

	rec = suite.do(http.MethodGet, "/api/v1/inventory/aging?location=showroom", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	aging := decode[httpadapter.AgingReport](suite.T(), rec)
	suite.Require().Len(aging.Items, 1)
	suite.Equal(itemID, aging.Items[0].ID)
	suite.Equal("SN-90D", aging.Items[0].SerialNumber)
	suite.Equal(1, aging.Summary["0-7"])

	rec = suite.do(http.MethodPost, item+"/stock-out", map[string]string{
		"outcome":      "sold",
		"reason":       "sold online, no returns",
		"performed_by": "staff-2",
	})
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Equal("sold", decode[httpadapter.StockOutResult](suite.T(), rec).Status)

	rec = suite.do(http.MethodPost, item+"/stock-out", map[string]string{
		"outcome":      "sold",
		"reason":       "sold again",
		"performed_by": "staff-2",
	})
	suite.Equal(http.StatusConflict, rec.Code)

	rec = suite.do(http.MethodGet, item+"/history", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	history = decode[httpadapter.ItemHistory](suite.T(), rec)
	suite.Require().Len(history.Movements, 3)
	suite.Equal("sold", history.Movements[2].Outcome)
	suite.Equal("sold", history.Replayed.Status)

	rec = suite.do(http.MethodGet, "/api/v1/inventory/aging", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Empty(decode[httpadapter.AgingReport](suite.T(), rec).Items)
}

func (suite *ServerTestSuite) TestStockOut_RequiresKnownOutcome() {
	item := "/api/v1/inventory/" + suite.stockedItem()

	rec := suite.do(http.MethodPost, item+"/stock-out", map[string]string{"reason": "customer return", "performed_by": "staff-2"})
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Equal("required", decode[httpadapter.Error](suite.T(), rec).Fields["outcome"])

	rec = suite.do(http.MethodPost, item+"/stock-out", map[string]string{
		"outcome":      "lost",
		"reason":       "missing",
		"performed_by": "staff-2",
	})
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Equal("oneof", decode[httpadapter.Error](suite.T(), rec).Fields["outcome"])

	rec = suite.do(http.MethodPost, item+"/stock-out", map[string]string{
		"outcome":      "returned",
		"reason":       "handed back to owner",
		"performed_by": "staff-2",
	})
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Equal("returned", decode[httpadapter.StockOutResult](suite.T(), rec).Status)
}

func (suite *ServerTestSuite) TestGetInventoryAging_AsSpreadsheet() {
	suite.stockedItem()

	rec := suite.do(http.MethodGet, "/api/v1/inventory/aging?format=xlsx", nil)

	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Equal(report.ContentType, rec.Header().Get(echo.HeaderContentType))
	suite.Contains(rec.Header().Get(echo.HeaderContentDisposition), "aging-20250314.xlsx")

	f, err := excelize.OpenReader(rec.Body)
	suite.Require().NoError(err)
	defer f.Close()
	orderID, err := f.GetCellValue(report.ItemsSheet, "A2")
	suite.Require().NoError(err)
	suite.Equal("TN37WTDSLR1001", orderID)
}

func (suite *ServerTestSuite) TestDecideQC_PendingPickupConflicts() {
	created := suite.createPickup()
	base := "/api/v1/intakes/" + created.IntakeID

	rec := suite.do(http.MethodPost, base+"/qc-decision", map[string]string{"decision": "reject", "reviewer_id": "qc-1"})

	suite.Equal(http.StatusConflict, rec.Code, "a pending pickup cannot be decided")
}

func (suite *ServerTestSuite) TestDecideQC_UnknownDecision() {
	created := suite.createPickup()

	rec := suite.do(http.MethodPost, "/api/v1/intakes/"+created.IntakeID+"/qc-decision",
		map[string]string{"decision": "scrap", "reviewer_id": "qc-1"})

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Equal("oneof", decode[httpadapter.Error](suite.T(), rec).Fields["decision"])
}

func (suite *ServerTestSuite) TestPathParameters() {
	rec := suite.do(http.MethodPost, "/api/v1/intakes/not-a-uuid/assignment", map[string]string{"agent_id": "a"})
	suite.Equal(http.StatusBadRequest, rec.Code)

	rec = suite.do(http.MethodPost, "/api/v1/intakes/"+kernel.NewUUID().String()+"/assignment", map[string]string{"agent_id": "a"})
	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *ServerTestSuite) TestAppendVerificationNote() {
	created := suite.createPickup()
	base := "/api/v1/intakes/" + created.IntakeID

	rec := suite.do(http.MethodPost, base+"/verification/notes", map[string]string{"note": "scratch on lens"})
	suite.Equal(http.StatusNotFound, rec.Code, "no verification yet")

	suite.Require().Equal(http.StatusNoContent, suite.do(http.MethodPost, base+"/assignment", map[string]string{"agent_id": "agent-7"}).Code)
	suite.Require().Equal(http.StatusCreated, suite.do(http.MethodPost, base+"/verification", map[string]any{
		"photo_refs": []string{"p1", "p2", "p3"}, "id_proof_ref": "id", "serial_number": "SN", "captured_by": "agent-7",
	}).Code)

	rec = suite.do(http.MethodPost, base+"/verification/notes", map[string]string{"note": "scratch on lens"})
	suite.Equal(http.StatusNoContent, rec.Code, rec.Body.String())
}

func (suite *ServerTestSuite) TestPreviewOrderID() {
	rec := suite.do(http.MethodGet, "/api/v1/order-ids/preview?postal_code=560001&category=Phone&brand=Apple", nil)

	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Equal("KA01WTIPNEXXXX", decode[httpadapter.OrderIDPreview](suite.T(), rec).OrderID)

	created := suite.createPickup()
	suite.True(strings.HasSuffix(created.OrderID, "1001"), "preview does not consume a sequence")
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func TestMetricsEndpoint(t *testing.T) {
	e := httpadapter.NewEcho(httpadapter.NewServer(httpadapter.Handlers{}, nil))
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	e.ServeHTTP(httptest.NewRecorder(), req)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_request_duration_seconds")
}
