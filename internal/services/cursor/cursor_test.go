package cursor

import (
	"context"
	"errors"
	"testing"

	"github.com/killallgit/annotator/internal/models"
	apperrors "github.com/killallgit/annotator/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFetcher is a mock implementation of the PageFetcher interface
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchPage(ctx context.Context, page int, active models.Status) (*models.PaginationWindow, error) {
	args := m.Called(ctx, page, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaginationWindow), args.Error(1)
}

func intPtr(v int) *int { return &v }

func item(id int64, file string) models.DataItem {
	return models.DataItem{DataID: id, OriginalFilename: file, YoutubeStartTimeMs: id * 1000}
}

func window(page int, prev, next *int, items ...models.DataItem) *models.PaginationWindow {
	return &models.PaginationWindow{
		Items:    items,
		Page:     page,
		PrevPage: prev,
		NextPage: next,
		Active:   models.StatusPending,
	}
}

func TestResolveInteriorItemNeverFetches(t *testing.T) {
	ctx := context.Background()
	fetcher := new(MockFetcher)
	resolver := NewResolver(fetcher, nil)

	w := window(2, intPtr(1), intPtr(3),
		item(9, "a_10.wav"),
		item(5, "a_1.wav"),
		item(7, "a_2.wav"),
	)

	cur, err := resolver.Resolve(ctx, w, 7)
	require.NoError(t, err)

	require.NotNil(t, cur.Previous)
	require.NotNil(t, cur.Next)
	assert.Equal(t, int64(5), cur.Previous.DataID)
	assert.Equal(t, int64(9), cur.Next.DataID)
	assert.Equal(t, 2, cur.Previous.Page)
	assert.Equal(t, 2, cur.Next.Page)
	assert.Equal(t, "a_10.wav", cur.Next.Filename)
	assert.Equal(t, int64(9000), cur.Next.YoutubeStartTimeMs)
	fetcher.AssertNotCalled(t, "FetchPage", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveLastItemFetchesNextPageOnce(t *testing.T) {
	ctx := context.Background()
	fetcher := new(MockFetcher)
	resolver := NewResolver(fetcher, nil)

	w := window(2, intPtr(1), intPtr(3),
		item(5, "a_1.wav"),
		item(7, "a_2.wav"),
		item(9, "a_10.wav"),
	)
	fetcher.On("FetchPage", ctx, 3, models.StatusPending).
		Return(window(3, intPtr(2), nil, item(13, "a_12.wav"), item(11, "a_11.wav")), nil).
		Once()

	cur, err := resolver.Resolve(ctx, w, 9)
	require.NoError(t, err)

	require.NotNil(t, cur.Next)
	assert.Equal(t, int64(11), cur.Next.DataID)
	assert.Equal(t, 3, cur.Next.Page)
	require.NotNil(t, cur.Previous)
	assert.Equal(t, int64(7), cur.Previous.DataID)
	assert.Equal(t, 2, cur.Previous.Page)
	fetcher.AssertNumberOfCalls(t, "FetchPage", 1)
	fetcher.AssertExpectations(t)
}

func TestResolveLastItemWithoutNextPage(t *testing.T) {
	fetcher := new(MockFetcher)
	resolver := NewResolver(fetcher, nil)

	w := window(1, nil, nil, item(5, "a_1.wav"), item(7, "a_2.wav"))

	cur, err := resolver.Resolve(context.Background(), w, 7)
	require.NoError(t, err)
	assert.Nil(t, cur.Next)
	require.NotNil(t, cur.Previous)
	assert.Equal(t, int64(5), cur.Previous.DataID)
	fetcher.AssertNotCalled(t, "FetchPage", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveFirstItemFetchesPreviousPage(t *testing.T) {
	ctx := context.Background()
	fetcher := new(MockFetcher)
	resolver := NewResolver(fetcher, nil)

	w := window(2, intPtr(1), intPtr(3), item(7, "a_20.wav"), item(5, "a_11.wav"))
	fetcher.On("FetchPage", ctx, 1, models.StatusPending).
		Return(window(1, nil, intPtr(2), item(3, "a_10.wav"), item(1, "a_9.wav")), nil).
		Once()

	cur, err := resolver.Resolve(ctx, w, 5)
	require.NoError(t, err)

	require.NotNil(t, cur.Previous)
	assert.Equal(t, int64(3), cur.Previous.DataID, "last sorted item of the previous page")
	assert.Equal(t, 1, cur.Previous.Page)
	require.NotNil(t, cur.Next)
	assert.Equal(t, int64(7), cur.Next.DataID)
	fetcher.AssertExpectations(t)
}

func TestResolveFirstItemOfFirstPage(t *testing.T) {
	fetcher := new(MockFetcher)
	resolver := NewResolver(fetcher, nil)

	w := window(1, nil, intPtr(2), item(5, "a_1.wav"), item(7, "a_2.wav"))

	cur, err := resolver.Resolve(context.Background(), w, 5)
	require.NoError(t, err)
	assert.Nil(t, cur.Previous)
	require.NotNil(t, cur.Next)
	assert.Equal(t, int64(7), cur.Next.DataID)
	fetcher.AssertNotCalled(t, "FetchPage", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveSingleItemWindowResolvesBothSides(t *testing.T) {
	ctx := context.Background()
	fetcher := new(MockFetcher)
	resolver := NewResolver(fetcher, nil)

	w := window(2, intPtr(1), intPtr(3), item(5, "a_5.wav"))
	fetcher.On("FetchPage", ctx, 1, models.StatusPending).
		Return(window(1, nil, intPtr(2), item(3, "a_4.wav"), item(2, "a_3.wav")), nil)
	fetcher.On("FetchPage", ctx, 3, models.StatusPending).
		Return(window(3, intPtr(2), nil, item(6, "a_6.wav")), nil)

	cur, err := resolver.Resolve(ctx, w, 5)
	require.NoError(t, err)

	require.NotNil(t, cur.Previous)
	require.NotNil(t, cur.Next)
	assert.Equal(t, int64(3), cur.Previous.DataID)
	assert.Equal(t, int64(6), cur.Next.DataID)
	fetcher.AssertExpectations(t)
}

func TestResolveDegradesWhenAdjacentFetchFails(t *testing.T) {
	ctx := context.Background()
	fetcher := new(MockFetcher)
	resolver := NewResolver(fetcher, nil)

	w := window(1, nil, intPtr(2), item(5, "a_1.wav"), item(7, "a_2.wav"))
	fetcher.On("FetchPage", ctx, 2, models.StatusPending).Return(nil, errors.New("gateway timeout"))

	cur, err := resolver.Resolve(ctx, w, 7)
	require.NoError(t, err)
	assert.Nil(t, cur.Next)
	require.NotNil(t, cur.Previous)
	assert.Equal(t, int64(5), cur.Previous.DataID)
}

func TestResolveEmptyAdjacentPage(t *testing.T) {
	ctx := context.Background()
	fetcher := new(MockFetcher)
	resolver := NewResolver(fetcher, nil)

	w := window(1, nil, intPtr(2), item(5, "a_1.wav"), item(7, "a_2.wav"))
	fetcher.On("FetchPage", ctx, 2, models.StatusPending).Return(window(2, intPtr(1), nil), nil)

	cur, err := resolver.Resolve(ctx, w, 7)
	require.NoError(t, err)
	assert.Nil(t, cur.Next)
}

func TestResolveMissingItem(t *testing.T) {
	fetcher := new(MockFetcher)
	resolver := NewResolver(fetcher, nil)

	w := window(1, nil, intPtr(2), item(5, "a_1.wav"))

	_, err := resolver.Resolve(context.Background(), w, 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
	fetcher.AssertNotCalled(t, "FetchPage", mock.Anything, mock.Anything, mock.Anything)

	_, err = resolver.Resolve(context.Background(), nil, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNeighborTargetCarriesStatusFilter(t *testing.T) {
	w := window(4, intPtr(3), intPtr(5), item(5, "a_1.wav"), item(7, "a_2.wav"), item(9, "a_3.wav"))
	w.Active = models.StatusCompleted

	cur, err := NewResolver(new(MockFetcher), nil).Resolve(context.Background(), w, 7)
	require.NoError(t, err)

	target := cur.Next.Target()
	assert.Equal(t, "9&a_3.wav&9000&4&completed", target.String())
}
