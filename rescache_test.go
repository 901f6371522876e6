package canvas

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

type fakeResourceStore struct {
	blobs map[string][]byte
}

func newFakeResourceStore() *fakeResourceStore {
	return &fakeResourceStore{blobs: make(map[string][]byte)}
}

func (f *fakeResourceStore) Put(hash string, payload []byte) error {
	f.blobs[hash] = payload
	return nil
}

func (f *fakeResourceStore) Get(hash string) ([]byte, bool, error) {
	b, ok := f.blobs[hash]
	return b, ok, nil
}

func (f *fakeResourceStore) Has(hash string) (bool, error) {
	_, ok := f.blobs[hash]
	return ok, nil
}

func samplePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode sample PNG: %v", err)
	}
	return buf.Bytes()
}

func TestResourceCacheGetDecodesAndCachesOnFirstAccess(t *testing.T) {
	store := newFakeResourceStore()
	store.Put("abc", samplePNG(t))
	cache := NewResourceCache(store, nil)

	img, ok := cache.Get("abc")
	if !ok || img == nil {
		t.Fatal("expected a decoded image on first Get")
	}
	if cache.Len() != 1 {
		t.Errorf("expected 1 resident image, got %d", cache.Len())
	}

	img2, ok := cache.Get("abc")
	if !ok || img2 != img {
		t.Error("expected second Get to return the same cached image instance")
	}
}

func TestResourceCacheGetMissingHashReturnsFalse(t *testing.T) {
	store := newFakeResourceStore()
	cache := NewResourceCache(store, nil)

	_, ok := cache.Get("nope")
	if ok {
		t.Error("expected miss for a hash never stored")
	}
}

func TestResourceCacheGetEmptyHashReturnsFalse(t *testing.T) {
	cache := NewResourceCache(newFakeResourceStore(), nil)
	if _, ok := cache.Get(""); ok {
		t.Error("expected empty hash to always miss")
	}
}

func TestResourceCachePutEvictsStaleDecodedImage(t *testing.T) {
	store := newFakeResourceStore()
	store.Put("abc", samplePNG(t))
	cache := NewResourceCache(store, nil)
	cache.Get("abc")

	if err := cache.Put("abc", samplePNG(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.Len() != 0 {
		t.Errorf("expected Put to evict the decoded image, resident count = %d", cache.Len())
	}
}

func TestResourceCacheEvictRemovesResidentImage(t *testing.T) {
	store := newFakeResourceStore()
	store.Put("abc", samplePNG(t))
	cache := NewResourceCache(store, nil)
	cache.Get("abc")

	cache.Evict("abc")
	if cache.Len() != 0 {
		t.Errorf("expected evict to clear residency, got %d", cache.Len())
	}
}

func TestResourceCacheDecodeFailureReturnsFalse(t *testing.T) {
	store := newFakeResourceStore()
	store.Put("bad", []byte("not an image"))
	cache := NewResourceCache(store, nil)

	if _, ok := cache.Get("bad"); ok {
		t.Error("expected decode failure to surface as a miss")
	}
}
