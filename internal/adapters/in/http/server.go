// Package http is the inbound REST adapter. It translates requests into
// commands and queries and maps the error taxonomy to status codes.
package http

import (
	"bytes"
	"fmt"
	"net/http"

	"custody/internal/adapters/out/report"
	"custody/internal/core/application/orderids"
	"custody/internal/core/application/usecases/commands"
	"custody/internal/core/application/usecases/queries"
	"custody/internal/core/domain/model/intake"
	"custody/internal/core/domain/model/inventory"
	"custody/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreatePickupIntake     commands.CreatePickupIntakeCommandHandler
	CreateWalkInIntake     commands.CreateWalkInIntakeCommandHandler
	AssignAgent            commands.AssignAgentCommandHandler
	SubmitVerification     commands.SubmitVerificationCommandHandler
	AppendVerificationNote commands.AppendVerificationNoteCommandHandler
	DecideQC               commands.DecideQCCommandHandler
	TransferStock          commands.TransferStockCommandHandler
	StockOut               commands.StockOutCommandHandler

	GetInventoryAging queries.GetInventoryAgingQueryHandler
	GetItemHistory    queries.GetItemHistoryQueryHandler
	PreviewOrderID    queries.PreviewOrderIDQueryHandler
}

type Server struct {
	handlers Handlers
	logger   *zap.Logger
}

func NewServer(handlers Handlers, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{handlers: handlers, logger: logger.With(zap.String("component", "http_server"))}
}

// NewEcho builds the router with health, metrics and every API route.
func NewEcho(s *Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewRequestValidator()
	e.Use(middleware.Recover())
	e.Use(RequestMetrics())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	s.Register(e.Group("/api/v1"))
	return e
}

func (s *Server) Register(g *echo.Group) {
	g.POST("/intakes/pickup", s.CreatePickupIntake)
	g.POST("/intakes/walk-in", s.CreateWalkInIntake)
	g.POST("/intakes/:id/assignment", s.AssignAgent)
	g.POST("/intakes/:id/verification", s.SubmitVerification)
	g.POST("/intakes/:id/verification/notes", s.AppendVerificationNote)
	g.POST("/intakes/:id/qc-decision", s.DecideQC)

	g.GET("/inventory/aging", s.GetInventoryAging)
	g.GET("/inventory/:id/history", s.GetItemHistory)
	g.POST("/inventory/:id/transfer", s.TransferStock)
	g.POST("/inventory/:id/stock-out", s.StockOut)

	g.GET("/order-ids/preview", s.PreviewOrderID)
}

// CreatePickupIntake handles POST /api/v1/intakes/pickup.
func (s *Server) CreatePickupIntake(ctx echo.Context) error {
	var body NewPickupIntake
	if ok, err := bind(ctx, &body); !ok {
		return err
	}

	cmd, err := commands.NewCreatePickupIntakeCommand(body.request(), body.details())
	if err != nil {
		return s.fail(ctx, "create_pickup_intake", err)
	}

	created, err := s.handlers.CreatePickupIntake.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "create_pickup_intake", err)
	}
	return ctx.JSON(http.StatusCreated, IntakeCreated{
		IntakeID: created.IntakeID.String(),
		OrderID:  created.OrderID.String(),
	})
}

// CreateWalkInIntake handles POST /api/v1/intakes/walk-in.
func (s *Server) CreateWalkInIntake(ctx echo.Context) error {
	var body NewWalkInIntake
	if ok, err := bind(ctx, &body); !ok {
		return err
	}

	cmd, err := commands.NewCreateWalkInIntakeCommand(body.request(), body.details(), body.Capture.domain())
	if err != nil {
		return s.fail(ctx, "create_walk_in_intake", err)
	}

	created, err := s.handlers.CreateWalkInIntake.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "create_walk_in_intake", err)
	}
	return ctx.JSON(http.StatusCreated, IntakeCreated{
		IntakeID: created.IntakeID.String(),
		OrderID:  created.OrderID.String(),
	})
}

// AssignAgent handles POST /api/v1/intakes/{id}/assignment.
func (s *Server) AssignAgent(ctx echo.Context) error {
	id, ok, err := pathUUID(ctx, "id")
	if !ok {
		return err
	}
	var body AgentAssignment
	if ok, err = bind(ctx, &body); !ok {
		return err
	}

	cmd, err := commands.NewAssignAgentCommand(id, body.AgentID)
	if err != nil {
		return s.fail(ctx, "assign_agent", err)
	}
	if err = s.handlers.AssignAgent.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "assign_agent", err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// SubmitVerification handles POST /api/v1/intakes/{id}/verification.
func (s *Server) SubmitVerification(ctx echo.Context) error {
	id, ok, err := pathUUID(ctx, "id")
	if !ok {
		return err
	}
	var body Capture
	if ok, err = bind(ctx, &body); !ok {
		return err
	}

	cmd, err := commands.NewSubmitVerificationCommand(id, body.domain())
	if err != nil {
		return s.fail(ctx, "submit_verification", err)
	}
	verificationID, err := s.handlers.SubmitVerification.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "submit_verification", err)
	}
	return ctx.JSON(http.StatusCreated, VerificationCreated{VerificationID: verificationID.String()})
}

// AppendVerificationNote handles POST /api/v1/intakes/{id}/verification/notes.
func (s *Server) AppendVerificationNote(ctx echo.Context) error {
	id, ok, err := pathUUID(ctx, "id")
	if !ok {
		return err
	}
	var body VerificationNote
	if ok, err = bind(ctx, &body); !ok {
		return err
	}

	cmd, err := commands.NewAppendVerificationNoteCommand(id, body.Note)
	if err != nil {
		return s.fail(ctx, "append_verification_note", err)
	}
	if err = s.handlers.AppendVerificationNote.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "append_verification_note", err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DecideQC handles POST /api/v1/intakes/{id}/qc-decision.
func (s *Server) DecideQC(ctx echo.Context) error {
	id, ok, err := pathUUID(ctx, "id")
	if !ok {
		return err
	}
	var body NewQCDecision
	if ok, err = bind(ctx, &body); !ok {
		return err
	}

	decision, err := intake.ParseDecision(body.Decision)
	if err != nil {
		return s.fail(ctx, "decide_qc", err)
	}
	cmd, err := commands.NewDecideQCCommand(id, intake.DecisionInput{
		Decision:         decision,
		TargetShowroomID: body.TargetShowroomID,
		ReviewerID:       body.ReviewerID,
		Notes:            body.Notes,
	})
	if err != nil {
		return s.fail(ctx, "decide_qc", err)
	}

	decided, err := s.handlers.DecideQC.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "decide_qc", err)
	}

	response := QCDecided{DecisionID: decided.DecisionID.String(), Status: decided.Status.String()}
	if decided.InventoryItemID != nil {
		itemID := decided.InventoryItemID.String()
		response.InventoryItemID = &itemID
	}
	return ctx.JSON(http.StatusCreated, response)
}

// TransferStock handles POST /api/v1/inventory/{id}/transfer.
func (s *Server) TransferStock(ctx echo.Context) error {
	id, ok, err := pathUUID(ctx, "id")
	if !ok {
		return err
	}
	var body StockTransfer
	if ok, err = bind(ctx, &body); !ok {
		return err
	}

	to, err := kernel.ParseLocation(body.To)
	if err != nil {
		return s.fail(ctx, "transfer_stock", err)
	}
	cmd, err := commands.NewTransferStockCommand(id, to, body.ToShowroomID, body.Reason, body.PerformedBy)
	if err != nil {
		return s.fail(ctx, "transfer_stock", err)
	}
	if err = s.handlers.TransferStock.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "transfer_stock", err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// StockOut handles POST /api/v1/inventory/{id}/stock-out.
func (s *Server) StockOut(ctx echo.Context) error {
	id, ok, err := pathUUID(ctx, "id")
	if !ok {
		return err
	}
	var body StockOut
	if ok, err = bind(ctx, &body); !ok {
		return err
	}

	outcome, err := inventory.ParseStockOutOutcome(body.Outcome)
	if err != nil {
		return s.fail(ctx, "stock_out", err)
	}
	cmd, err := commands.NewStockOutCommand(id, outcome, body.Reason, body.PerformedBy)
	if err != nil {
		return s.fail(ctx, "stock_out", err)
	}
	status, err := s.handlers.StockOut.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "stock_out", err)
	}
	return ctx.JSON(http.StatusOK, StockOutResult{Status: status.String()})
}

// GetInventoryAging handles GET /api/v1/inventory/aging. format=xlsx returns
// the report as a spreadsheet.
func (s *Server) GetInventoryAging(ctx echo.Context) error {
	var location, format *string
	if err := runtime.BindQueryParameter("form", true, false, "location", ctx.QueryParams(), &location); err != nil {
		return badRequest(ctx, "Invalid format for parameter location")
	}
	if err := runtime.BindQueryParameter("form", true, false, "format", ctx.QueryParams(), &format); err != nil {
		return badRequest(ctx, "Invalid format for parameter format")
	}

	filter := kernel.UnknownLocation
	if location != nil && *location != "" {
		parsed, err := kernel.ParseLocation(*location)
		if err != nil {
			return s.fail(ctx, "get_inventory_aging", err)
		}
		filter = parsed
	}
	query, err := queries.NewGetInventoryAgingQuery(filter)
	if err != nil {
		return s.fail(ctx, "get_inventory_aging", err)
	}

	result, err := s.handlers.GetInventoryAging.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, "get_inventory_aging", err)
	}

	if format != nil && *format == "xlsx" {
		var buf bytes.Buffer
		if err = report.WriteAgingReport(&buf, result); err != nil {
			return s.fail(ctx, "get_inventory_aging", err)
		}
		ctx.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf("attachment; filename=aging-%s.xlsx", result.GeneratedAt.Format("20060102")))
		return ctx.Blob(http.StatusOK, report.ContentType, buf.Bytes())
	}

	response := AgingReport{
		GeneratedAt: result.GeneratedAt,
		Items:       make([]AgingItem, len(result.Items)),
		Summary:     make(map[string]int, len(result.Summary)),
	}
	for i, item := range result.Items {
		response.Items[i] = AgingItem{
			ID:           item.ID.String(),
			OrderID:      item.OrderID,
			SerialNumber: item.SerialNumber,
			Location:     item.Location.String(),
			ShowroomID:   item.ShowroomID,
			StockInDate:  item.StockInDate,
			AgingDays:    item.AgingDays,
			Bucket:       string(item.Bucket),
		}
	}
	for bucket, count := range result.Summary {
		response.Summary[string(bucket)] = count
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetItemHistory handles GET /api/v1/inventory/{id}/history.
func (s *Server) GetItemHistory(ctx echo.Context) error {
	id, ok, err := pathUUID(ctx, "id")
	if !ok {
		return err
	}

	query, err := queries.NewGetItemHistoryQuery(id)
	if err != nil {
		return s.fail(ctx, "get_item_history", err)
	}
	history, err := s.handlers.GetItemHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, "get_item_history", err)
	}

	response := ItemHistory{
		ItemID:     history.ItemID.String(),
		OrderID:    history.OrderID,
		Stored:     snapshotResponse(history.Stored),
		Replayed:   snapshotResponse(history.Replayed),
		Consistent: history.Consistent,
		Movements:  make([]Movement, len(history.Movements)),
	}
	for i, m := range history.Movements {
		response.Movements[i] = Movement{
			ID:           m.ID.String(),
			Seq:          m.Seq,
			Type:         m.Type.String(),
			From:         locationName(m.From),
			To:           locationName(m.To),
			ToShowroomID: m.ToShowroomID,
			Outcome:      outcomeName(m.Outcome),
			Reason:       m.Reason,
			PerformedBy:  m.PerformedBy,
			Notes:        m.Notes,
			At:           m.At,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// PreviewOrderID handles GET /api/v1/order-ids/preview.
func (s *Server) PreviewOrderID(ctx echo.Context) error {
	params := make(map[string]string, 4)
	for _, name := range []string{"postal_code", "category", "brand", "state_name"} {
		var value *string
		if err := runtime.BindQueryParameter("form", true, false, name, ctx.QueryParams(), &value); err != nil {
			return badRequest(ctx, fmt.Sprintf("Invalid format for parameter %s", name))
		}
		if value != nil {
			params[name] = *value
		}
	}

	query, err := queries.NewPreviewOrderIDQuery(params["postal_code"], params["category"], params["brand"], params["state_name"])
	if err != nil {
		return s.fail(ctx, "preview_order_id", err)
	}
	id, err := s.handlers.PreviewOrderID.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, "preview_order_id", err)
	}
	return ctx.JSON(http.StatusOK, OrderIDPreview{OrderID: id})
}

// pathUUID binds a uuid path parameter. When ok is false the error response
// has already been written.
func pathUUID(ctx echo.Context, name string) (kernel.UUID, bool, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, false, badRequest(ctx, fmt.Sprintf("Invalid format for parameter %s", name))
	}

	parsed, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, false, badRequest(ctx, fmt.Sprintf("Invalid format for parameter %s", name))
	}
	return parsed, true, nil
}

func (b NewPickupIntake) request() orderids.Request {
	return orderids.Request{
		PostalCode: b.PostalCode,
		Category:   b.Category,
		Brand:      b.Brand,
		StateName:  b.StateName,
	}
}

func (b NewPickupIntake) details() intake.Details {
	return intake.Details{
		ProductName: b.ProductName,
		Price:       b.Price,
		Customer: intake.Customer{
			Name:    b.Customer.Name,
			Phone:   b.Customer.Phone,
			Address: b.Customer.Address,
		},
	}
}

func (c Capture) domain() intake.Capture {
	return intake.Capture{
		PhotoRefs:    c.PhotoRefs,
		IDProofRef:   c.IDProofRef,
		SerialNumber: c.SerialNumber,
		CapturedBy:   c.CapturedBy,
		Notes:        c.Notes,
	}
}

func snapshotResponse(s inventory.Snapshot) Snapshot {
	return Snapshot{
		Location:    s.Location.String(),
		ShowroomID:  s.ShowroomID,
		Status:      s.Status.String(),
		StockInDate: s.StockInDate,
	}
}

func locationName(l kernel.Location) string {
	if l == kernel.UnknownLocation {
		return ""
	}
	return l.String()
}

func outcomeName(s inventory.Status) string {
	if s == inventory.Unknown {
		return ""
	}
	return s.String()
}
