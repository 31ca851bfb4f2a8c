package bundle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"bundle-manager/core/discount"
	"bundle-manager/core/storage"

	"github.com/cockroachdb/errors"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ErrReportNotFound is returned when no report exists for a timestamp.
var ErrReportNotFound = errors.New("report not found")

// Report is the archived record of one save.
type Report struct {
	Shop      string            `json:"shop"`
	Surface   string            `json:"surface"`
	CreatedAt time.Time         `json:"created_at"`
	Plan      discount.Plan     `json:"plan"`
	Outcome   *discount.Outcome `json:"outcome"`
}

// ReportInfo describes an archived report without loading it.
type ReportInfo struct {
	Key string `json:"key"`
	// Timestamp is the report's creation time in Unix milliseconds.
	Timestamp    int64     `json:"timestamp"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Archive keeps reconciliation reports in object storage under
// reports/<shop>/<surface>/<unix-millis>.json.
type Archive struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewArchive creates a new Archive.
func NewArchive(client storage.Client, bucket string, logger *zap.Logger) *Archive {
	return &Archive{client: client, bucket: bucket, logger: logger}
}

func reportPrefix(shop, surface string) string {
	return path.Join("reports", shop, surface) + "/"
}

func reportKey(shop, surface string, ts int64) string {
	return fmt.Sprintf("%s%d.json", reportPrefix(shop, surface), ts)
}

// Put stores a report and returns its object key.
func (a *Archive) Put(ctx context.Context, r Report) (string, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode report")
	}

	key := reportKey(r.Shop, r.Surface, r.CreatedAt.UnixMilli())
	if _, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	}); err != nil {
		return "", errors.Wrapf(err, "failed to upload %s", key)
	}
	a.logger.Debug("Archived reconcile report", zap.String("key", key))
	return key, nil
}

// List returns the archived reports of a surface, newest first.
func (a *Archive) List(ctx context.Context, shop, surface string) ([]ReportInfo, error) {
	prefix := reportPrefix(shop, surface)

	// stops the lister goroutine when returning early
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	infos := []ReportInfo{}
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, errors.Wrapf(obj.Err, "failed to list %s", prefix)
		}
		name := strings.TrimSuffix(strings.TrimPrefix(obj.Key, prefix), ".json")
		var ts int64
		if _, err := fmt.Sscan(name, &ts); err != nil {
			continue
		}
		infos = append(infos, ReportInfo{
			Key:          obj.Key,
			Timestamp:    ts,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Timestamp > infos[j].Timestamp })
	return infos, nil
}

// Get loads one archived report by its millisecond timestamp.
func (a *Archive) Get(ctx context.Context, shop, surface string, ts int64) (*Report, error) {
	key := reportKey(shop, surface, ts)
	obj, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", key)
	}
	defer obj.Close()

	var r Report
	if err := json.NewDecoder(obj).Decode(&r); err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return nil, errors.Wrapf(ErrReportNotFound, "%s", key)
		}
		return nil, errors.Wrapf(err, "failed to read %s", key)
	}
	return &r, nil
}
