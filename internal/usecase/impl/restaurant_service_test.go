package impl

import (
	"context"
	"testing"

	domainerrors "tastebud/internal/domain/errors"
	"tastebud/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestaurantService_CreateAndGet(t *testing.T) {
	tm := newMemoryTxManager()
	svc := NewRestaurantService(tm, discardLogger())

	created, err := svc.Create(context.Background(), usecase.CreateRestaurantInput{Name: "Noodle Bar"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	found, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Noodle Bar", found.Name)

	_, err = svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrRestaurantNotFound)
}

func TestRestaurantService_List(t *testing.T) {
	tm := newMemoryTxManager()
	svc := NewRestaurantService(tm, discardLogger())

	for _, name := range []string{"First", "Second", "Third"} {
		_, err := svc.Create(context.Background(), usecase.CreateRestaurantInput{Name: name})
		require.NoError(t, err)
	}

	page, err := svc.List(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Second", page[0].Name)
}
