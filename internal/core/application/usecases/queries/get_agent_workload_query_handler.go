package queries

import (
	"context"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/model/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAgentWorkloadQueryHandler computes per-agent delivery workloads.
// Uses direct SQL for optimal read performance in the CQRS pattern:
// counting is done in the database rather than by loading aggregates.
type GetAgentWorkloadQueryHandler struct {
	db *gorm.DB
}

// NewGetAgentWorkloadQueryHandler creates a handler for workload queries.
// Requires a GORM database connection for query execution.
func NewGetAgentWorkloadQueryHandler(db *gorm.DB) GetAgentWorkloadQueryHandler {
	return GetAgentWorkloadQueryHandler{db: db}
}

// Handle executes the workload query. Returns all available delivery
// agents with their active delivery counts, sorted busiest first.
func (h GetAgentWorkloadQueryHandler) Handle(
	ctx context.Context,
	query GetAgentWorkloadQuery,
) ([]GetAgentWorkloadQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	workload := make([]GetAgentWorkloadQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			u.id,
			u.name,
			u.email,
			COUNT(o.id) AS active_orders
		FROM users u
		LEFT JOIN orders o
			ON o.agent_id = u.id
			AND o.status IN (?, ?, ?)
		WHERE u.role = ? AND u.driver_status = ?
		GROUP BY u.id, u.name, u.email
		ORDER BY active_orders DESC
	`,
		int(order.Pending), int(order.Preparing), int(order.InTransit),
		int(user.RoleDelivery), int(user.DriverAvailable),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetAgentWorkloadQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&entry.Name,
			&entry.Email,
			&entry.ActiveOrders,
		)
		if err != nil {
			return nil, err
		}

		agentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		entry.AgentID = agentID

		workload = append(workload, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return workload, nil
}
