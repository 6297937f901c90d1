package workflows

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"

	internalactivities "github.com/graminroute/hub/internal/activities"
	"github.com/graminroute/hub/pkg/activities"
)

func TestPoolDispatchWorkflow_AllOrdersDispatched(t *testing.T) {
	testSuite := &testsuite.WorkflowTestSuite{}
	env := testSuite.NewTestWorkflowEnvironment()

	acts := &internalactivities.DispatchActivities{}
	env.OnActivity(acts.UpdateOrderStatus, mock.Anything, mock.Anything).
		Return(func(ctx context.Context, input activities.UpdateOrderStatusInput) (*activities.UpdateOrderStatusResult, error) {
			return &activities.UpdateOrderStatusResult{OrderID: input.OrderID, Updated: true}, nil
		}).Times(3)
	env.OnActivity(internalactivities.SendDispatchNotice, mock.Anything, mock.Anything).Return(nil)
	env.OnActivity(internalactivities.RecordPoolMetrics, mock.Anything, mock.Anything).Return(nil)

	env.ExecuteWorkflow(PoolDispatchWorkflow, PoolDispatchInput{
		PoolID:       "POOL-001",
		DiscountTier: "WHOLESALE",
		OrderIDs:     []string{"o-1", "o-2", "o-3"},
		RetailerIDs:  []string{"R001", "R002"},
	})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var result PoolDispatchResult
	require.NoError(t, env.GetWorkflowResult(&result))
	require.Equal(t, "POOL-001", result.PoolID)
	require.Equal(t, "in_transit", result.Status)
	require.Equal(t, 3, result.Dispatched)
	require.Empty(t, result.Failed)
}

func TestPoolDispatchWorkflow_EmptyPoolIsNoOp(t *testing.T) {
	testSuite := &testsuite.WorkflowTestSuite{}
	env := testSuite.NewTestWorkflowEnvironment()

	env.OnActivity(internalactivities.RecordPoolMetrics, mock.Anything, mock.Anything).Return(nil)

	env.ExecuteWorkflow(PoolDispatchWorkflow, PoolDispatchInput{
		PoolID: "POOL-007",
	})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var result PoolDispatchResult
	require.NoError(t, env.GetWorkflowResult(&result))
	require.Zero(t, result.Dispatched)
	require.Empty(t, result.Failed)
	require.Equal(t, "in_transit", result.Status)
}

func TestPoolDispatchWorkflow_PartialFailureReported(t *testing.T) {
	testSuite := &testsuite.WorkflowTestSuite{}
	env := testSuite.NewTestWorkflowEnvironment()

	acts := &internalactivities.DispatchActivities{}
	env.OnActivity(acts.UpdateOrderStatus, mock.Anything, mock.Anything).
		Return(func(ctx context.Context, input activities.UpdateOrderStatusInput) (*activities.UpdateOrderStatusResult, error) {
			if input.OrderID == "o-2" {
				return nil, errors.New("order store unavailable")
			}
			return &activities.UpdateOrderStatusResult{OrderID: input.OrderID, Updated: true}, nil
		})
	env.OnActivity(internalactivities.SendDispatchNotice, mock.Anything, mock.Anything).Return(nil)
	env.OnActivity(internalactivities.RecordPoolMetrics, mock.Anything, mock.Anything).Return(nil)

	env.ExecuteWorkflow(PoolDispatchWorkflow, PoolDispatchInput{
		PoolID:   "POOL-002",
		OrderIDs: []string{"o-1", "o-2", "o-3"},
	})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError(), "partial failure must not fail the workflow")

	var result PoolDispatchResult
	require.NoError(t, env.GetWorkflowResult(&result))
	require.Equal(t, 2, result.Dispatched)
	require.Equal(t, []string{"o-2"}, result.Failed)
}
