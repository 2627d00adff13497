package filestore

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/koustreak/dbscaffold/internal/errs"
)

// Memory is an in-process Store. It backs dry runs and tests.
type Memory struct {
	mu      sync.RWMutex
	buckets map[string]map[string]memObject
}

type memObject struct {
	data []byte
	info ObjectInfo
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{buckets: make(map[string]map[string]memObject)}
}

func (m *Memory) Ping(ctx context.Context) error { return ctx.Err() }

func (m *Memory) Close() error { return nil }

func (m *Memory) EnsureBucket(_ context.Context, bucket string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.buckets[bucket]; !ok {
		m.buckets[bucket] = make(map[string]memObject)
	}
	return nil
}

func (m *Memory) ListObjects(_ context.Context, bucket string, opts ListOptions) ([]ObjectInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	objs, ok := m.buckets[bucket]
	if !ok {
		return nil, errs.New(errs.ErrKindNotFound, "no such bucket "+bucket)
	}

	keys := make([]string, 0, len(objs))
	for k := range objs {
		if strings.HasPrefix(k, opts.Prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var out []ObjectInfo
	for _, k := range keys {
		out = append(out, objs[k].info)
		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
	}
	return out, nil
}

func (m *Memory) GetObject(_ context.Context, bucket, key string) (Object, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.buckets[bucket][key]
	if !ok {
		return nil, errs.New(errs.ErrKindNotFound, "no such key "+bucket+"/"+key)
	}
	info := obj.info
	return &memReader{Reader: bytes.NewReader(obj.data), info: &info}, nil
}

func (m *Memory) PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts PutOptions) (*ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrKindTimeout, "put "+key, err)
	}
	data, err := io.ReadAll(io.LimitReader(r, size))
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindUnknown, "read body for "+key, err)
	}

	sum := md5.Sum(data)
	info := ObjectInfo{
		Key:          key,
		Size:         int64(len(data)),
		ContentType:  opts.ContentType,
		ETag:         hex.EncodeToString(sum[:]),
		LastModified: time.Now().UTC(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	objs, ok := m.buckets[bucket]
	if !ok {
		return nil, errs.New(errs.ErrKindNotFound, "no such bucket "+bucket)
	}
	objs[key] = memObject{data: data, info: info}
	return &info, nil
}

type memReader struct {
	*bytes.Reader
	info *ObjectInfo
}

func (r *memReader) Close() error { return nil }

func (r *memReader) Info() *ObjectInfo { return r.info }

var _ Store = (*Memory)(nil)
