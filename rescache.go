package canvas

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2"
)

// ResourceDecoder turns a stored payload into an image. Swapped out in tests
// for a decoder that doesn't need real image bytes.
type ResourceDecoder func(payload []byte) (image.Image, error)

// ResourceCache is the process-wide, content-hash-keyed associative store
// backing media nodes: a node's Properties.Hash is looked up here, never
// reloaded from ResourceStore on every frame. It assumes the single-threaded
// cooperative update/draw model ebiten's main loop already guarantees, so it
// carries no mutex.
//
// There is no automatic eviction: a decoded image stays resident until Evict
// removes it or Put replaces its payload. An LRU policy is a natural extension (evict on Get
// miss pressure, keyed by last-access tick) but isn't built: nothing in the
// current scenarios needs it, and guessing at a capacity knob without a real
// workload would just be a number nobody could justify.
type ResourceCache struct {
	store   ResourceStore
	decode  ResourceDecoder
	images  map[string]*ebiten.Image
}

// NewResourceCache wires a cache against store. decode is applied once per
// distinct hash; nil decode uses decodeImage.
func NewResourceCache(store ResourceStore, decode ResourceDecoder) *ResourceCache {
	if decode == nil {
		decode = decodeImage
	}
	return &ResourceCache{store: store, decode: decode, images: make(map[string]*ebiten.Image)}
}

// Get returns the resident image for hash, loading and decoding it from the
// backing store on first request. A store miss or a decode failure returns
// (nil, false) and logs — the caller draws a placeholder box rather than
// failing the frame, per ErrMissingResource's documented policy.
func (c *ResourceCache) Get(hash string) (*ebiten.Image, bool) {
	if hash == "" {
		return nil, false
	}
	if img, ok := c.images[hash]; ok {
		return img, true
	}
	if c.store == nil {
		return nil, false
	}
	payload, ok, err := c.store.Get(hash)
	if err != nil {
		logWarn("resource cache: load %s: %v", hash, err)
		return nil, false
	}
	if !ok {
		logWarn("resource cache: %s: %v", hash, ErrMissingResource)
		return nil, false
	}
	decoded, err := c.decode(payload)
	if err != nil {
		logWarn("resource cache: decode %s: %v", hash, err)
		return nil, false
	}
	img := ebiten.NewImageFromImage(decoded)
	c.images[hash] = img
	return img, true
}

// Put registers payload under hash in the backing store and evicts any
// stale decoded image for that hash so the next Get re-decodes it.
func (c *ResourceCache) Put(hash string, payload []byte) error {
	if c.store == nil {
		return nil
	}
	if err := c.store.Put(hash, payload); err != nil {
		return err
	}
	delete(c.images, hash)
	return nil
}

// Evict drops hash's decoded image, freeing its GPU-backed texture without
// touching the backing store. Used by LoadResource/UnloadResource hooks that
// want the cache to track residency independent of the render pipeline's own
// visibility cull.
func (c *ResourceCache) Evict(hash string) {
	delete(c.images, hash)
}

// Len reports how many distinct hashes currently have a decoded image
// resident, for tests and diagnostics.
func (c *ResourceCache) Len() int { return len(c.images) }

// decodeImage decodes a PNG or JPEG payload using the standard library's
// format-sniffing Decode; no third-party codec is needed for the two formats
// the snapshot schema's Filename extension set actually uses.
func decodeImage(payload []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(payload))
	return img, err
}
