// Package http exposes the allocation and loyalty operations over a REST
// API built on Echo. Handlers translate between wire DTOs and application
// commands and queries; all business rules live below this layer.
package http

import (
	"errors"
	"net/http"
	"strings"

	"bakery/internal/core/application/usecases/commands"
	"bakery/internal/core/application/usecases/queries"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	assignHandler       commands.AssignDeliveryCommandHandler
	reassignHandler     commands.ReassignDeliveryCommandHandler
	updateStatusHandler commands.UpdateDeliveryStatusCommandHandler
	earnHandler         commands.EarnPointsCommandHandler
	redeemHandler       commands.RedeemPointsCommandHandler
	refundHandler       commands.RefundPointsCommandHandler

	// Query handlers
	workloadHandler queries.GetAgentWorkloadQueryHandler
	balanceHandler  queries.GetUserBalanceQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	assignHandler commands.AssignDeliveryCommandHandler,
	reassignHandler commands.ReassignDeliveryCommandHandler,
	updateStatusHandler commands.UpdateDeliveryStatusCommandHandler,
	earnHandler commands.EarnPointsCommandHandler,
	redeemHandler commands.RedeemPointsCommandHandler,
	refundHandler commands.RefundPointsCommandHandler,
	workloadHandler queries.GetAgentWorkloadQueryHandler,
	balanceHandler queries.GetUserBalanceQueryHandler,
) *Server {
	return &Server{
		assignHandler:       assignHandler,
		reassignHandler:     reassignHandler,
		updateStatusHandler: updateStatusHandler,
		earnHandler:         earnHandler,
		redeemHandler:       redeemHandler,
		refundHandler:       refundHandler,
		workloadHandler:     workloadHandler,
		balanceHandler:      balanceHandler,
	}
}

// RegisterRoutes attaches all API routes to the Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders/:orderId/assign", s.AssignDelivery)
	api.POST("/orders/:orderId/reassign", s.ReassignDelivery)
	api.PATCH("/orders/:orderId/status", s.UpdateDeliveryStatus)
	api.POST("/orders/:orderId/points/earn", s.EarnPoints)
	api.POST("/orders/:orderId/points/redeem", s.RedeemPoints)
	api.POST("/orders/:orderId/points/refund", s.RefundPoints)
	api.GET("/agents/workload", s.GetAgentWorkload)
	api.GET("/users/:userId/balance", s.GetUserBalance)
}

// Error is the wire format for error responses.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AssignmentResponse reports the outcome of an assignment attempt.
// Assigned is false when the order stays unassigned, which is a valid
// state ("searching for a driver"), not an error.
type AssignmentResponse struct {
	Assigned   bool   `json:"assigned"`
	AgentID    string `json:"agentId,omitempty"`
	AgentName  string `json:"agentName,omitempty"`
	Reassigned bool   `json:"reassigned,omitempty"`
}

// ReassignRequest optionally names the agent to exclude from the candidate
// set. When absent, the agent currently bound to the order is excluded.
type ReassignRequest struct {
	ExcludeAgentID string `json:"excludeAgentId,omitempty"`
}

// UpdateStatusRequest carries a delivery status transition.
type UpdateStatusRequest struct {
	Status    string `json:"status"`
	ChangedBy string `json:"changedBy"`
	Note      string `json:"note,omitempty"`
}

// EarnResponse reports points awarded for an order.
type EarnResponse struct {
	Points int64 `json:"points"`
}

// RedeemRequest carries a point redemption.
type RedeemRequest struct {
	Points int64 `json:"points"`
}

// RedeemResponse reports the discount granted by a redemption.
type RedeemResponse struct {
	Discount string `json:"discount"`
}

// RefundResponse reports points returned after a cancellation.
type RefundResponse struct {
	Points int64 `json:"points"`
}

// AgentWorkload is one row of the workload monitoring view.
type AgentWorkload struct {
	AgentID      string `json:"agentId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	ActiveOrders int    `json:"activeOrders"`
}

// Balance is the ledger-derived point balance breakdown.
type Balance struct {
	Earned       int64 `json:"earned"`
	Redeemed     int64 `json:"redeemed"`
	Available    int64 `json:"available"`
	ExpiringSoon int64 `json:"expiringSoon"`
}

// AssignDelivery handles POST /api/v1/orders/:orderId/assign.
func (s *Server) AssignDelivery(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID",
		})
	}

	cmd, err := commands.NewAssignDeliveryCommand(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid assignment request: " + err.Error(),
		})
	}

	assigned, err := s.assignHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid assignment request: " + err.Error(),
		})
	}

	return ctx.JSON(http.StatusOK, assignmentResponse(assigned))
}

// ReassignDelivery handles POST /api/v1/orders/:orderId/reassign.
func (s *Server) ReassignDelivery(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID",
		})
	}

	var req ReassignRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	var excludeAgentID *kernel.UUID
	if req.ExcludeAgentID != "" {
		excludeID, parseErr := kernel.UUIDFromString(req.ExcludeAgentID)
		if parseErr != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid excludeAgentId",
			})
		}
		excludeAgentID = &excludeID
	}

	cmd, err := commands.NewReassignDeliveryCommand(orderID, excludeAgentID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid reassignment request: " + err.Error(),
		})
	}

	assigned, err := s.reassignHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid reassignment request: " + err.Error(),
		})
	}

	return ctx.JSON(http.StatusOK, assignmentResponse(assigned))
}

// UpdateDeliveryStatus handles PATCH /api/v1/orders/:orderId/status.
func (s *Server) UpdateDeliveryStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID",
		})
	}

	var req UpdateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	status, ok := parseDeliveryStatus(req.Status)
	if !ok {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Unknown delivery status: " + req.Status,
		})
	}

	changedBy, err := kernel.UUIDFromString(req.ChangedBy)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid changedBy user ID",
		})
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(orderID, status, changedBy, req.Note)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid status update: " + err.Error(),
		})
	}

	if err = s.updateStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		case errors.Is(err, errs.ErrValueIsInvalid):
			return ctx.JSON(http.StatusConflict, Error{
				Code:    http.StatusConflict,
				Message: "Invalid status transition: " + err.Error(),
			})
		default:
			return ctx.JSON(http.StatusInternalServerError, Error{
				Code:    http.StatusInternalServerError,
				Message: "Failed to update delivery status",
			})
		}
	}

	return ctx.NoContent(http.StatusNoContent)
}

// EarnPoints handles POST /api/v1/orders/:orderId/points/earn.
func (s *Server) EarnPoints(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID",
		})
	}

	cmd, err := commands.NewEarnPointsCommand(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid earn request: " + err.Error(),
		})
	}

	points, err := s.earnHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid earn request: " + err.Error(),
		})
	}

	return ctx.JSON(http.StatusOK, EarnResponse{Points: points})
}

// RedeemPoints handles POST /api/v1/orders/:orderId/points/redeem.
func (s *Server) RedeemPoints(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID",
		})
	}

	var req RedeemRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	// Redeeming a non-positive amount changes nothing.
	if req.Points <= 0 {
		zero, _ := kernel.NewMoneyFromCents(0)
		return ctx.JSON(http.StatusOK, RedeemResponse{Discount: zero.String()})
	}

	cmd, err := commands.NewRedeemPointsCommand(orderID, req.Points)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid redemption request: " + err.Error(),
		})
	}

	discount, err := s.redeemHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInsufficientPoints):
			return ctx.JSON(http.StatusUnprocessableEntity, Error{
				Code:    http.StatusUnprocessableEntity,
				Message: "Insufficient points",
			})
		case errors.Is(err, commands.ErrExcessiveRedemption):
			return ctx.JSON(http.StatusUnprocessableEntity, Error{
				Code:    http.StatusUnprocessableEntity,
				Message: "Redemption exceeds order total",
			})
		case errors.Is(err, errs.ErrObjectNotFound):
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		case errors.Is(err, errs.ErrValueIsInvalid):
			return ctx.JSON(http.StatusConflict, Error{
				Code:    http.StatusConflict,
				Message: "Order already has a redemption",
			})
		default:
			return ctx.JSON(http.StatusInternalServerError, Error{
				Code:    http.StatusInternalServerError,
				Message: "Failed to redeem points",
			})
		}
	}

	return ctx.JSON(http.StatusOK, RedeemResponse{Discount: discount.String()})
}

// RefundPoints handles POST /api/v1/orders/:orderId/points/refund.
func (s *Server) RefundPoints(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID",
		})
	}

	cmd, err := commands.NewRefundPointsCommand(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid refund request: " + err.Error(),
		})
	}

	points, err := s.refundHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to refund points",
		})
	}

	return ctx.JSON(http.StatusOK, RefundResponse{Points: points})
}

// GetAgentWorkload handles GET /api/v1/agents/workload.
func (s *Server) GetAgentWorkload(ctx echo.Context) error {
	query := queries.NewGetAgentWorkloadQuery()

	workload, err := s.workloadHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve workload",
		})
	}

	response := make([]AgentWorkload, len(workload))
	for i, agent := range workload {
		response[i] = AgentWorkload{
			AgentID:      agent.AgentID.String(),
			Name:         agent.Name,
			Email:        agent.Email,
			ActiveOrders: agent.ActiveOrders,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetUserBalance handles GET /api/v1/users/:userId/balance.
func (s *Server) GetUserBalance(ctx echo.Context) error {
	userID, err := kernel.UUIDFromString(ctx.Param("userId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid user ID",
		})
	}

	query, err := queries.NewGetUserBalanceQuery(userID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid balance request: " + err.Error(),
		})
	}

	balance, err := s.balanceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve balance",
		})
	}

	return ctx.JSON(http.StatusOK, Balance{
		Earned:       balance.Earned,
		Redeemed:     balance.Redeemed,
		Available:    balance.Available,
		ExpiringSoon: balance.ExpiringSoon,
	})
}

func assignmentResponse(assigned *commands.AssignedAgent) AssignmentResponse {
	if assigned == nil {
		return AssignmentResponse{Assigned: false}
	}

	return AssignmentResponse{
		Assigned:   true,
		AgentID:    assigned.AgentID.String(),
		AgentName:  assigned.AgentName,
		Reassigned: assigned.Reassigned,
	}
}

func parseDeliveryStatus(s string) (order.DeliveryStatus, bool) {
	switch strings.ToLower(s) {
	case "pending":
		return order.Pending, true
	case "preparing":
		return order.Preparing, true
	case "in_transit", "intransit":
		return order.InTransit, true
	case "delivered":
		return order.Delivered, true
	case "cancelled":
		return order.Cancelled, true
	default:
		return order.StatusUnknown, false
	}
}
