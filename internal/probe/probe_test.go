package probe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"advisord/pkg/types"
)

const sampleMeminfo = `MemTotal:       16318480 kB
MemFree:         1234567 kB
MemAvailable:    8000000 kB
Buffers:          100000 kB
`

func TestParseMeminfo(t *testing.T) {
	mem, err := parseMeminfo(strings.NewReader(sampleMeminfo))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if mem.Total != 16318480*1024 || mem.Free != 8000000*1024 {
		t.Fatalf("unexpected mem: %+v", mem)
	}
}

func TestParseMeminfoMissingTotal(t *testing.T) {
	if _, err := parseMeminfo(strings.NewReader("MemFree: 1 kB\n")); err == nil {
		t.Fatalf("expected error without MemTotal")
	}
}

func TestParseMeminfoBadNumber(t *testing.T) {
	if _, err := parseMeminfo(strings.NewReader("MemTotal: abc kB\n")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSystemProberMeminfoPath(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("meminfo path only used on linux")
	}
	p := filepath.Join(t.TempDir(), "meminfo")
	if err := os.WriteFile(p, []byte(sampleMeminfo), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	info, err := SystemProber{MeminfoPath: p}.GetResourcesInfo(context.Background())
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if info.Mem.Total != 16318480*1024 {
		t.Fatalf("total=%d", info.Mem.Total)
	}
}

func TestStaticProber(t *testing.T) {
	info, err := StaticProber{Total: 8}.GetResourcesInfo(context.Background())
	if err != nil || info.Mem.Total != 8 {
		t.Fatalf("got %+v, %v", info, err)
	}
	if _, err := (StaticProber{}).GetResourcesInfo(context.Background()); err == nil {
		t.Fatalf("expected error for zero static total")
	}
}

type countingSource struct {
	calls int
	err   error
}

func (c *countingSource) GetResourcesInfo(context.Context) (types.ResourcesInfo, error) {
	c.calls++
	if c.err != nil {
		return types.ResourcesInfo{}, c.err
	}
	return types.ResourcesInfo{Mem: types.MemInfo{Total: uint64(c.calls)}}, nil
}

func TestCachedProberTTL(t *testing.T) {
	src := &countingSource{}
	c := NewCached(src, time.Minute, zerolog.Nop())
	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }

	if c.Probed() {
		t.Fatalf("should not be probed yet")
	}
	a, _ := c.GetResourcesInfo(context.Background())
	b, _ := c.GetResourcesInfo(context.Background())
	if src.calls != 1 || a.Mem.Total != b.Mem.Total {
		t.Fatalf("expected cached result, calls=%d", src.calls)
	}
	if !c.Probed() {
		t.Fatalf("expected Probed after success")
	}
	now = now.Add(2 * time.Minute)
	if _, err := c.GetResourcesInfo(context.Background()); err != nil || src.calls != 2 {
		t.Fatalf("expected refresh after ttl, calls=%d err=%v", src.calls, err)
	}
	c.Invalidate()
	if _, err := c.GetResourcesInfo(context.Background()); err != nil || src.calls != 3 {
		t.Fatalf("expected refresh after invalidate, calls=%d", src.calls)
	}
}

func TestCachedProberDoesNotCacheErrors(t *testing.T) {
	src := &countingSource{err: errors.New("nope")}
	c := NewCached(src, time.Minute, zerolog.Nop())
	_, _ = c.GetResourcesInfo(context.Background())
	_, _ = c.GetResourcesInfo(context.Background())
	if src.calls != 2 || c.Probed() {
		t.Fatalf("errors must not be cached, calls=%d", src.calls)
	}
}
