package commands_test

import (
	"errors"
	"testing"
	"time"

	"bakery/internal/core/application/usecases/commands"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/user"
	"bakery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssignDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	customerID := kernel.NewUUID()
	testOrder := newTestOrder(t, customerID, 100)
	idle := newTestAgent(t, "bob", time.Now().UTC().Add(-48*time.Hour))
	busy := newTestAgent(t, "carol", time.Now().UTC().Add(-24*time.Hour))

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
	userRepo.On("GetAvailableAgents", ctx).Return([]*user.User{idle, busy}, nil).Once()
	orderRepo.On("CountActiveByAgent", ctx, mock.AnythingOfType("[]kernel.UUID")).
		Return(map[kernel.UUID]int{idle.ID(): 0, busy.ID(): 3}, nil).Once()
	orderRepo.On("Update", ctx, testOrder).Return(nil).Once()
	historyRepo.On("Add", ctx, mock.AnythingOfType("*order.StatusHistory")).Return(nil).Once()
	publisher.On("PublishOrderAssigned", ctx, mock.AnythingOfType("ports.OrderAssignedEvent")).
		Return(nil).Once()

	factory := new(MockAllocationUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignDeliveryCommandHandler(factory, publisher, discardLogger())
	cmd, err := commands.NewAssignDeliveryCommand(testOrder.ID())
	require.NoError(t, err)

	assigned, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, assigned)
	assert.True(t, assigned.AgentID.IsEqual(idle.ID()))
	assert.Equal(t, "bob", assigned.AgentName)
	assert.False(t, assigned.Reassigned)
	require.NotNil(t, testOrder.Agent())
	assert.True(t, testOrder.Agent().IsEqual(idle.ID()))

	uow.AssertExpectations(t)
	userRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	historyRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAssignDeliveryCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()

	factory := new(MockAllocationUoWFactory)
	publisher := new(MockEventPublisher)
	handler := commands.NewAssignDeliveryCommandHandler(factory, publisher, discardLogger())

	_, err := handler.Handle(ctx, commands.AssignDeliveryCommand{})

	require.ErrorIs(t, err, commands.ErrAssignDeliveryCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestAssignDeliveryCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	orderRepo := new(MockOrderRepository)
	uow := new(MockAllocationUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("GetForUpdate", ctx, orderID).Return(nil, errs.ErrObjectNotFound).Once()

	factory := new(MockAllocationUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	handler := commands.NewAssignDeliveryCommandHandler(factory, publisher, discardLogger())
	cmd, err := commands.NewAssignDeliveryCommand(orderID)
	require.NoError(t, err)

	assigned, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Nil(t, assigned)
	publisher.AssertNotCalled(t, "PublishOrderAssigned")
}

func TestAssignDeliveryCommandHandler_Handle_NoAvailableAgents(t *testing.T) {
	ctx := t.Context()
	testOrder := newTestOrder(t, kernel.NewUUID(), 100)

	userRepo := new(MockUserRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockAllocationUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Twice()
	uow.On("UserRepository").Return(userRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	userRepo.On("GetAvailableAgents", ctx).Return([]*user.User{}, nil).Once()

	factory := new(MockAllocationUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	handler := commands.NewAssignDeliveryCommandHandler(factory, publisher, discardLogger())
	cmd, err := commands.NewAssignDeliveryCommand(testOrder.ID())
	require.NoError(t, err)

	assigned, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Nil(t, assigned)
	assert.Nil(t, testOrder.Agent())
	uow.AssertNotCalled(t, "Commit")
}

func TestAssignDeliveryCommandHandler_Handle_UpdateErrorAbsorbed(t *testing.T) {
	ctx := t.Context()
	testOrder := newTestOrder(t, kernel.NewUUID(), 100)
	agent := newTestAgent(t, "bob", time.Now().UTC())

	userRepo := new(MockUserRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockAllocationUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Twice()
	uow.On("UserRepository").Return(userRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	userRepo.On("GetAvailableAgents", ctx).Return([]*user.User{agent}, nil).Once()
	orderRepo.On("CountActiveByAgent", ctx, mock.AnythingOfType("[]kernel.UUID")).
		Return(map[kernel.UUID]int{}, nil).Once()
	orderRepo.On("Update", ctx, testOrder).Return(errors.New("write failed")).Once()

	factory := new(MockAllocationUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	handler := commands.NewAssignDeliveryCommandHandler(factory, publisher, discardLogger())
	cmd, err := commands.NewAssignDeliveryCommand(testOrder.ID())
	require.NoError(t, err)

	assigned, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Nil(t, assigned)
	uow.AssertNotCalled(t, "Commit")
	publisher.AssertNotCalled(t, "PublishOrderAssigned")
}

func TestAssignDeliveryCommandHandler_Handle_LeastLoadedWins(t *testing.T) {
	ctx := t.Context()

	registered := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	first := newTestAgent(t, "first", registered)
	second := newTestAgent(t, "second", registered.Add(time.Hour))
	third := newTestAgent(t, "third", registered.Add(2*time.Hour))
	testOrder := newTestOrder(t, kernel.NewUUID(), 50)

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
	userRepo.On("GetAvailableAgents", ctx).Return([]*user.User{first, second, third}, nil).Once()
	orderRepo.On("CountActiveByAgent", ctx, mock.AnythingOfType("[]kernel.UUID")).
		Return(map[kernel.UUID]int{first.ID(): 2, second.ID(): 1, third.ID(): 1}, nil).Once()
	orderRepo.On("Update", ctx, testOrder).Return(nil).Once()
	historyRepo.On("Add", ctx, mock.AnythingOfType("*order.StatusHistory")).Return(nil).Once()
	publisher.On("PublishOrderAssigned", ctx, mock.AnythingOfType("ports.OrderAssignedEvent")).
		Return(nil).Once()

	factory := new(MockAllocationUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignDeliveryCommandHandler(factory, publisher, discardLogger())
	cmd, err := commands.NewAssignDeliveryCommand(testOrder.ID())
	require.NoError(t, err)

	assigned, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, assigned)

	// second and third are tied on load, second registered earlier.
	assert.True(t, assigned.AgentID.IsEqual(second.ID()))
}
