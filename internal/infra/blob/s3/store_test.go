package s3

import (
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"instructcore/internal/blob/core"
)

// fakeBucket implements just enough of the S3 REST protocol, at the HTTP
// transport level, to exercise the store without a network.
type fakeBucket struct {
	objects map[string]fakeObject
}

type fakeObject struct {
	body        []byte
	contentType string
	kind        string
}

func newTestStore(t *testing.T) (*Store, *fakeBucket) {
	t.Helper()
	bucket := &fakeBucket{objects: make(map[string]fakeObject)}
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("test", "test", "")),
	)
	if err != nil {
		t.Fatalf("aws config: %v", err)
	}
	client := awss3.NewFromConfig(cfg, func(o *awss3.Options) {
		o.HTTPClient = &http.Client{Transport: bucket}
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String("https://bucket.test.invalid")
	})
	return &Store{
		client:  client,
		presign: awss3.NewPresignClient(client),
		bucket:  "instruction-media",
	}, bucket
}

func (b *fakeBucket) RoundTrip(req *http.Request) (*http.Response, error) {
	// Path style: /<bucket>/<key>.
	key := ""
	if parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2); len(parts) == 2 {
		key = parts[1]
	}
	switch {
	case req.Method == http.MethodGet && req.URL.Query().Get("list-type") == "2":
		return b.handleList(req.URL.Query().Get("prefix")), nil
	case req.Method == http.MethodHead:
		return b.handleHead(key), nil
	case req.Method == http.MethodGet:
		return b.handleGet(key), nil
	case req.Method == http.MethodPut:
		return b.handlePut(key, req), nil
	case req.Method == http.MethodDelete:
		delete(b.objects, key)
		return response(http.StatusNoContent, nil, nil), nil
	}
	return response(http.StatusNotImplemented, nil, nil), nil
}

func (b *fakeBucket) handleHead(key string) *http.Response {
	obj, ok := b.objects[key]
	if !ok {
		return response(http.StatusNotFound, nil, nil)
	}
	return response(http.StatusOK, nil, objectHeaders(obj))
}

func (b *fakeBucket) handleGet(key string) *http.Response {
	obj, ok := b.objects[key]
	if !ok {
		return response(http.StatusNotFound, nil, nil)
	}
	return response(http.StatusOK, obj.body, objectHeaders(obj))
}

func (b *fakeBucket) handlePut(key string, req *http.Request) *http.Response {
	body, _ := io.ReadAll(req.Body)
	if payload, ok := unwrapChunked(body); ok {
		body = payload
	}
	b.objects[key] = fakeObject{
		body:        body,
		contentType: req.Header.Get("Content-Type"),
		kind:        req.Header.Get("X-Amz-Meta-Media-Kind"),
	}
	return response(http.StatusOK, nil, http.Header{"ETag": {`"fake"`}})
}

type listEntry struct {
	Key          string `xml:"Key"`
	Size         int    `xml:"Size"`
	LastModified string `xml:"LastModified"`
}

type listResult struct {
	XMLName     xml.Name    `xml:"ListBucketResult"`
	IsTruncated bool        `xml:"IsTruncated"`
	Contents    []listEntry `xml:"Contents"`
}

func (b *fakeBucket) handleList(prefix string) *http.Response {
	var keys []string
	for key := range b.objects {
		if prefix == "" || strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	result := listResult{}
	for _, key := range keys {
		result.Contents = append(result.Contents, listEntry{
			Key:          key,
			Size:         len(b.objects[key].body),
			LastModified: "2026-01-01T00:00:00Z",
		})
	}
	payload, _ := xml.Marshal(result)
	return response(http.StatusOK, payload, http.Header{"Content-Type": {"application/xml"}})
}

func objectHeaders(obj fakeObject) http.Header {
	return http.Header{
		"Content-Length": {strconv.Itoa(len(obj.body))},
		"Content-Type":   {obj.contentType},
		"ETag":           {`"fake"`},
		"Last-Modified":  {time.Now().UTC().Format(http.TimeFormat)},
	}
}

func response(status int, body []byte, header http.Header) *http.Response {
	if header == nil {
		header = http.Header{}
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader(body)),
		Header:     header,
	}
}

// unwrapChunked strips a single-chunk aws-chunked envelope:
// "<hex size>\r\n<payload>\r\n0\r\n...".
func unwrapChunked(body []byte) ([]byte, bool) {
	parts := strings.Split(string(body), "\r\n")
	if len(parts) < 3 || parts[2] != "0" {
		return nil, false
	}
	size, err := strconv.ParseInt(parts[0], 16, 64)
	if err != nil || int64(len(parts[1])) != size {
		return nil, false
	}
	return []byte(parts[1]), true
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatalf("missing bucket must fail")
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	info, err := store.Put(ctx, "media/clip.mp4", strings.NewReader("clipdata"), "")
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.ContentType != "video/mp4" || info.Kind != core.KindVideo {
		t.Fatalf("content type and kind must be inferred from the key: %+v", info)
	}
	got, rc, err := store.Get(ctx, "media/clip.mp4")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != "clipdata" || got.Key != "media/clip.mp4" {
		t.Fatalf("body=%q info=%+v", body, got)
	}
}

func TestPutStampsKindMetadata(t *testing.T) {
	ctx := context.Background()
	store, bucket := newTestStore(t)
	if _, err := store.Put(ctx, "media/photo.png", strings.NewReader("img"), ""); err != nil {
		t.Fatalf("put: %v", err)
	}
	if got := bucket.objects["media/photo.png"].kind; got != "image" {
		t.Fatalf("object metadata kind = %q, want image", got)
	}
}

func TestPutIsCreateOnly(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	if _, err := store.Put(ctx, "media/one.png", strings.NewReader("first"), ""); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := store.Put(ctx, "media/one.png", strings.NewReader("second"), ""); err == nil {
		t.Fatalf("second put for the same key must fail")
	}
	_, rc, err := store.Get(ctx, "media/one.png")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != "first" {
		t.Fatalf("original body must survive: %q", body)
	}
}

func TestListAndDelete(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	for _, key := range []string{"media/a.png", "media/b.mp4", "thumbs/a.png"} {
		if _, err := store.Put(ctx, key, strings.NewReader("x"), ""); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}
	infos, err := store.List(ctx, "media/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 2 || infos[0].Key != "media/a.png" || infos[1].Key != "media/b.mp4" {
		t.Fatalf("unexpected listing: %+v", infos)
	}
	if infos[0].Kind != core.KindImage || infos[1].Kind != core.KindVideo {
		t.Fatalf("listing must classify keys: %+v", infos)
	}
	existed, err := store.Delete(ctx, "media/a.png")
	if err != nil || !existed {
		t.Fatalf("delete: existed=%v err=%v", existed, err)
	}
	if _, err := store.Head(ctx, "media/a.png"); err == nil {
		t.Fatalf("head after delete must fail")
	}
}

func TestMediaURLPresignsGet(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	u, err := store.MediaURL(ctx, "media/a.png", 0)
	if err != nil {
		t.Fatalf("media url: %v", err)
	}
	if !strings.Contains(u, "media/a.png") || !strings.Contains(u, "X-Amz-Signature") {
		t.Fatalf("url must be a signed GET for the key: %q", u)
	}
}

func TestDriver(t *testing.T) {
	store, _ := newTestStore(t)
	if store.Driver() != core.DriverS3 {
		t.Fatalf("wrong driver identifier")
	}
}
