package orders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/kuhabites/kuha-web/pkg/errors"
	"github.com/kuhabites/kuha-web/pkg/kuha"
)

type stubBackend struct {
	orders    []kuha.Order
	listErr   error
	completed []int64
	deleted   []int64
}

func (s *stubBackend) ListOrders(ctx context.Context) ([]kuha.Order, error) {
	return s.orders, s.listErr
}

func (s *stubBackend) CompleteOrder(ctx context.Context, id int64) error {
	s.completed = append(s.completed, id)
	return nil
}

func (s *stubBackend) DeleteOrder(ctx context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func TestListSummarizes(t *testing.T) {
	backend := &stubBackend{orders: []kuha.Order{
		{ID: 1, Name: "Amina", Completed: true},
		{ID: 2, Name: "Baraka"},
		{ID: 3, Name: "Chebet"},
	}}
	svc, err := NewService(backend)
	require.NoError(t, err)

	board, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, board.Orders, 3)
	assert.Equal(t, Summary{Total: 3, Pending: 2, Completed: 1}, board.Summary)
}

func TestListEmpty(t *testing.T) {
	svc, err := NewService(&stubBackend{})
	require.NoError(t, err)

	board, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, board.Orders)
	assert.Equal(t, Summary{}, board.Summary)
}

func TestListPropagatesBackendError(t *testing.T) {
	svc, err := NewService(&stubBackend{listErr: pkgerrors.New(pkgerrors.CodeDependency, "down")})
	require.NoError(t, err)

	_, err = svc.List(context.Background())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
}

func TestMutationsValidateID(t *testing.T) {
	backend := &stubBackend{}
	svc, err := NewService(backend)
	require.NoError(t, err)

	assert.True(t, pkgerrors.IsCode(svc.MarkCompleted(context.Background(), 0), pkgerrors.CodeValidation))
	assert.True(t, pkgerrors.IsCode(svc.Delete(context.Background(), -3), pkgerrors.CodeValidation))

	require.NoError(t, svc.MarkCompleted(context.Background(), 7))
	require.NoError(t, svc.Delete(context.Background(), 8))
	assert.Equal(t, []int64{7}, backend.completed)
	assert.Equal(t, []int64{8}, backend.deleted)
}
