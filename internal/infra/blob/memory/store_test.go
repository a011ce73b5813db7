package memory

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"instructcore/internal/blob/core"
)

func TestPutGetDelete(t *testing.T) {
	ctx := context.Background()
	store := New()
	if _, err := store.Put(ctx, "k1.png", strings.NewReader("payload"), ""); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := store.Put(ctx, "k1.png", strings.NewReader("again"), ""); err == nil {
		t.Fatalf("duplicate put must fail")
	}
	info, rc, err := store.Get(ctx, "k1.png")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != "payload" || info.ContentType != "image/png" || info.Kind != core.KindImage {
		t.Fatalf("round trip mismatch: %q %+v", body, info)
	}
	existed, err := store.Delete(ctx, "k1.png")
	if err != nil || !existed {
		t.Fatalf("delete: existed=%v err=%v", existed, err)
	}
	if existed, _ := store.Delete(ctx, "k1.png"); existed {
		t.Fatalf("repeat delete must report false")
	}
}

func TestListIsSortedAndFiltered(t *testing.T) {
	ctx := context.Background()
	store := New()
	for _, key := range []string{"b/2", "a/1", "b/1"} {
		if _, err := store.Put(ctx, key, strings.NewReader("x"), ""); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}
	infos, err := store.List(ctx, "b/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 2 || infos[0].Key != "b/1" || infos[1].Key != "b/2" {
		t.Fatalf("unexpected listing: %+v", infos)
	}
}

func TestMediaURLUnsupported(t *testing.T) {
	if _, err := New().MediaURL(context.Background(), "k", 0); !errors.Is(err, core.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}
