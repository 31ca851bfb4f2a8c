package bundle_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"bundle-manager/core/discount"
	"bundle-manager/core/storage/mocks"
	"bundle-manager/feature/bundle"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func objects(infos ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, info := range infos {
		ch <- info
	}
	close(ch)
	return ch
}

type failingReader struct {
	err error
}

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestArchive_ListNewestFirst(t *testing.T) {
	store := new(mocks.Client)
	store.On("ListObjects", mock.Anything, "bundle-reports", minio.ListObjectsOptions{
		Prefix:    "reports/demo.myshopify.com/cart/",
		Recursive: true,
	}).Return(objects(
		minio.ObjectInfo{Key: "reports/demo.myshopify.com/cart/1700000000000.json", Size: 10},
		minio.ObjectInfo{Key: "reports/demo.myshopify.com/cart/notes.txt"},
		minio.ObjectInfo{Key: "reports/demo.myshopify.com/cart/1700000500000.json", Size: 20},
	))

	archive := bundle.NewArchive(store, "bundle-reports", zap.NewNop())
	infos, err := archive.List(context.Background(), shopDomain, "cart")
	require.NoError(t, err)

	require.Len(t, infos, 2)
	assert.Equal(t, int64(1700000500000), infos[0].Timestamp)
	assert.Equal(t, int64(1700000000000), infos[1].Timestamp)
}

func TestArchive_ListStopsOnError(t *testing.T) {
	var listCtx context.Context
	store := new(mocks.Client)
	store.On("ListObjects", mock.Anything, mock.Anything, mock.Anything).
		Return(func(ctx context.Context, _ string, _ minio.ListObjectsOptions) <-chan minio.ObjectInfo {
			listCtx = ctx
			ch := make(chan minio.ObjectInfo)
			go func() {
				defer close(ch)
				for _, obj := range []minio.ObjectInfo{{Err: errors.New("access denied")}, {Key: "reports/x/cart/1.json"}} {
					select {
					case ch <- obj:
					case <-ctx.Done():
						return
					}
				}
			}()
			return ch
		})

	archive := bundle.NewArchive(store, "bundle-reports", zap.NewNop())
	_, err := archive.List(context.Background(), shopDomain, "cart")

	assert.ErrorContains(t, err, "access denied")
	require.NotNil(t, listCtx)
	assert.ErrorIs(t, listCtx.Err(), context.Canceled)
}

func TestArchive_SameSecondReportsKeepDistinctKeys(t *testing.T) {
	var keys []string
	store := new(mocks.Client)
	store.On("PutObject", mock.Anything, "bundle-reports", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { keys = append(keys, args.String(2)) }).
		Return(minio.UploadInfo{}, nil)

	archive := bundle.NewArchive(store, "bundle-reports", zap.NewNop())
	first := time.Date(2025, 6, 1, 10, 0, 0, 100*int(time.Millisecond), time.UTC)
	for _, at := range []time.Time{first, first.Add(400 * time.Millisecond)} {
		_, err := archive.Put(context.Background(), bundle.Report{Shop: shopDomain, Surface: "cart", CreatedAt: at})
		require.NoError(t, err)
	}

	require.Len(t, keys, 2)
	assert.NotEqual(t, keys[0], keys[1])
	assert.Equal(t, "reports/demo.myshopify.com/cart/1748772000100.json", keys[0])
}

func TestArchive_Get(t *testing.T) {
	report := bundle.Report{
		Shop:      shopDomain,
		Surface:   "cart",
		CreatedAt: time.UnixMilli(1700000000000).UTC(),
		Plan:      discount.Plan{Prefix: "fubndl", ToDelete: []string{"fubndl-5"}},
		Outcome:   &discount.Outcome{Success: true},
	}
	body, err := json.Marshal(report)
	require.NoError(t, err)

	store := new(mocks.Client)
	store.On("GetObject", mock.Anything, "bundle-reports", "reports/demo.myshopify.com/cart/1700000000000.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(body)), nil)

	archive := bundle.NewArchive(store, "bundle-reports", zap.NewNop())
	got, err := archive.Get(context.Background(), shopDomain, "cart", 1700000000000)
	require.NoError(t, err)

	assert.Equal(t, []string{"fubndl-5"}, got.Plan.ToDelete)
	assert.True(t, got.Outcome.Success)
}

func TestArchive_GetMissing(t *testing.T) {
	store := new(mocks.Client)
	store.On("GetObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(io.NopCloser(failingReader{err: minio.ErrorResponse{Code: "NoSuchKey"}}), nil)

	archive := bundle.NewArchive(store, "bundle-reports", zap.NewNop())
	_, err := archive.Get(context.Background(), shopDomain, "cart", 42)

	assert.ErrorIs(t, err, bundle.ErrReportNotFound)
}

func TestHandleReports(t *testing.T) {
	store := new(mocks.Client)
	store.On("ListObjects", mock.Anything, mock.Anything, mock.Anything).
		Return(objects(minio.ObjectInfo{Key: "reports/demo.myshopify.com/product_page/1700000000000.json"}))
	store.On("GetObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(io.NopCloser(failingReader{err: minio.ErrorResponse{Code: "NoSuchKey"}}), nil)

	svc := bundle.NewService(staticFactory{shop: newFakeShop()}, bundle.NewArchive(store, "bundle-reports", zap.NewNop()), zap.NewNop())
	app := fiber.New()
	bundle.NewHandler(svc, "*").RegisterRoutes(app)

	req := httptest.NewRequest("GET", "/bundles/product_page/reports", nil)
	req.Header.Set(bundle.ShopHeader, shopDomain)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var infos []bundle.ReportInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&infos))
	require.Len(t, infos, 1)
	assert.Equal(t, int64(1700000000000), infos[0].Timestamp)

	req = httptest.NewRequest("GET", "/bundles/product_page/reports/1700000000001", nil)
	req.Header.Set(bundle.ShopHeader, shopDomain)
	resp, err = app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	req = httptest.NewRequest("GET", "/bundles/product_page/reports/abc", nil)
	resp, err = app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleReports_ArchiveDisabled(t *testing.T) {
	app := setupApp(newFakeShop())

	resp, err := app.Test(httptest.NewRequest("GET", "/bundles/cart/reports", nil), 2000)
	require.NoError(t, err)

	assert.Equal(t, 200, resp.StatusCode)
	var infos []bundle.ReportInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&infos))
	assert.Empty(t, infos)
}
