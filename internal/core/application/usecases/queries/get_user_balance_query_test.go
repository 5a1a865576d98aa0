package queries_test

import (
	"testing"

	"bakery/internal/core/application/usecases/queries"
	"bakery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetUserBalanceQuery_Success(t *testing.T) {
	userID := kernel.NewUUID()

	query, err := queries.NewGetUserBalanceQuery(userID)

	require.NoError(t, err)
	assert.True(t, query.UserID().IsEqual(userID))
	assert.NoError(t, query.Validate())
}

func TestNewGetUserBalanceQuery_EmptyUserID(t *testing.T) {
	_, err := queries.NewGetUserBalanceQuery(kernel.UUID{})

	require.Error(t, err)
}

func TestGetAgentWorkloadQuery_Validate(t *testing.T) {
	query := queries.NewGetAgentWorkloadQuery()
	assert.NoError(t, query.Validate())

	var zero queries.GetAgentWorkloadQuery
	assert.ErrorIs(t, zero.Validate(), queries.ErrGetAgentWorkloadQueryIsNotConstructed)
}
