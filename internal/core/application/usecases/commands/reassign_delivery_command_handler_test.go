package commands_test

import (
	"testing"
	"time"

	"bakery/internal/core/application/usecases/commands"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReassignDeliveryCommandHandler_Handle_ExcludesCurrentAgent(t *testing.T) {
	ctx := t.Context()

	current := newTestAgent(t, "bob", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	replacement := newTestAgent(t, "carol", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	testOrder := newTestOrder(t, kernel.NewUUID(), 100)
	require.NoError(t, testOrder.AssignAgent(current.ID()))

	userRepo := new(MockUserRepository)
	orderRepo := new(MockOrderRepository)
	historyRepo := new(MockHistoryRepository)
	uow := new(MockAllocationUoW)
	publisher := new(MockEventPublisher)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Twice()
	uow.On("UserRepository").Return(userRepo).Once()
	uow.On("HistoryRepository").Return(historyRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once()

	// The current agent is still available but must not be picked again,
	// even with the lowest load.
	userRepo.On("GetAvailableAgents", ctx).Return([]*user.User{current, replacement}, nil).Once()
	orderRepo.On("CountActiveByAgent", ctx, mock.AnythingOfType("[]kernel.UUID")).
		Return(map[kernel.UUID]int{current.ID(): 0, replacement.ID(): 5}, nil).Once()
	orderRepo.On("Update", ctx, testOrder).Return(nil).Once()
	historyRepo.On("Add", ctx, mock.AnythingOfType("*order.StatusHistory")).Return(nil).Once()
	publisher.On("PublishOrderAssigned", ctx, mock.AnythingOfType("ports.OrderAssignedEvent")).
		Return(nil).Once()

	factory := new(MockAllocationUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReassignDeliveryCommandHandler(factory, publisher, discardLogger())
	cmd, err := commands.NewReassignDeliveryCommand(testOrder.ID(), nil)
	require.NoError(t, err)

	assigned, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, assigned)
	assert.True(t, assigned.AgentID.IsEqual(replacement.ID()))
	assert.True(t, assigned.Reassigned)
	require.NotNil(t, testOrder.Agent())
	assert.True(t, testOrder.Agent().IsEqual(replacement.ID()))
}

func TestReassignDeliveryCommandHandler_Handle_ExplicitExclusionOverridesBoundAgent(t *testing.T) {
	ctx := t.Context()

	current := newTestAgent(t, "bob", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	excluded := newTestAgent(t, "carol", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	testOrder := newTestOrder(t, kernel.NewUUID(), 100)
	require.NoError(t, testOrder.AssignAgent(current.ID()))

	userRepo := new(MockUserRepository)
	orderRepo := new(MockOrderRepository)
	historyRepo := new(MockHistoryRepository)
	uow := new(MockAllocationUoW)
	publisher := new(MockEventPublisher)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Twice()
	uow.On("UserRepository").Return(userRepo).Once()
	uow.On("HistoryRepository").Return(historyRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once()

	// The explicitly excluded agent is idle, yet the currently bound agent
	// wins because only the explicit exclusion applies.
	userRepo.On("GetAvailableAgents", ctx).Return([]*user.User{current, excluded}, nil).Once()
	orderRepo.On("CountActiveByAgent", ctx, mock.AnythingOfType("[]kernel.UUID")).
		Return(map[kernel.UUID]int{current.ID(): 2, excluded.ID(): 0}, nil).Once()
	orderRepo.On("Update", ctx, testOrder).Return(nil).Once()
	historyRepo.On("Add", ctx, mock.AnythingOfType("*order.StatusHistory")).Return(nil).Once()
	publisher.On("PublishOrderAssigned", ctx, mock.AnythingOfType("ports.OrderAssignedEvent")).
		Return(nil).Once()

	factory := new(MockAllocationUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReassignDeliveryCommandHandler(factory, publisher, discardLogger())
	excludedID := excluded.ID()
	cmd, err := commands.NewReassignDeliveryCommand(testOrder.ID(), &excludedID)
	require.NoError(t, err)

	assigned, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, assigned)
	assert.True(t, assigned.AgentID.IsEqual(current.ID()))
}

func TestReassignDeliveryCommandHandler_Handle_OnlyCurrentAgentAvailable(t *testing.T) {
	ctx := t.Context()

	current := newTestAgent(t, "bob", time.Now().UTC())
	testOrder := newTestOrder(t, kernel.NewUUID(), 100)
	require.NoError(t, testOrder.AssignAgent(current.ID()))

	userRepo := new(MockUserRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockAllocationUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Twice()
	uow.On("UserRepository").Return(userRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	userRepo.On("GetAvailableAgents", ctx).Return([]*user.User{current}, nil).Once()
	orderRepo.On("CountActiveByAgent", ctx, mock.AnythingOfType("[]kernel.UUID")).
		Return(map[kernel.UUID]int{current.ID(): 1}, nil).Once()

	factory := new(MockAllocationUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	handler := commands.NewReassignDeliveryCommandHandler(factory, publisher, discardLogger())
	cmd, err := commands.NewReassignDeliveryCommand(testOrder.ID(), nil)
	require.NoError(t, err)

	assigned, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Nil(t, assigned)
	uow.AssertNotCalled(t, "Commit")

	// Order keeps its original agent.
	require.NotNil(t, testOrder.Agent())
	assert.True(t, testOrder.Agent().IsEqual(current.ID()))
}

func TestReassignDeliveryCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()

	factory := new(MockAllocationUoWFactory)
	publisher := new(MockEventPublisher)
	handler := commands.NewReassignDeliveryCommandHandler(factory, publisher, discardLogger())

	_, err := handler.Handle(ctx, commands.ReassignDeliveryCommand{})

	require.ErrorIs(t, err, commands.ErrReassignDeliveryCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
