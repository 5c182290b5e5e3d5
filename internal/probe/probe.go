// Package probe supplies host resource information to the fit advisor.
package probe

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"advisord/pkg/types"
)

// SystemProber reads total and available memory from the host.
type SystemProber struct {
	// MeminfoPath overrides /proc/meminfo on linux.
	MeminfoPath string
}

// GetResourcesInfo implements fit.Prober.
func (p SystemProber) GetResourcesInfo(ctx context.Context) (types.ResourcesInfo, error) {
	switch runtime.GOOS {
	case "linux":
		path := p.MeminfoPath
		if path == "" {
			path = "/proc/meminfo"
		}
		f, err := os.Open(path)
		if err != nil {
			return types.ResourcesInfo{}, fmt.Errorf("open meminfo: %w", err)
		}
		defer f.Close()
		mem, err := parseMeminfo(f)
		if err != nil {
			return types.ResourcesInfo{}, err
		}
		return types.ResourcesInfo{Mem: mem}, nil
	case "darwin":
		cmd := exec.CommandContext(ctx, "sysctl", "-n", "hw.memsize")
		var stdout bytes.Buffer
		cmd.Stdout = &stdout
		if err := cmd.Run(); err != nil {
			return types.ResourcesInfo{}, fmt.Errorf("sysctl hw.memsize: %w", err)
		}
		total, err := strconv.ParseUint(strings.TrimSpace(stdout.String()), 10, 64)
		if err != nil {
			return types.ResourcesInfo{}, fmt.Errorf("parse memsize: %w", err)
		}
		return types.ResourcesInfo{Mem: types.MemInfo{Total: total}}, nil
	default:
		return types.ResourcesInfo{}, fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
}

// parseMeminfo reads MemTotal and MemAvailable (kB) from /proc/meminfo content.
func parseMeminfo(r io.Reader) (types.MemInfo, error) {
	var mem types.MemInfo
	found := false
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		var dst *uint64
		switch fields[0] {
		case "MemTotal:":
			dst = &mem.Total
			found = true
		case "MemAvailable:":
			dst = &mem.Free
		default:
			continue
		}
		kb, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return types.MemInfo{}, fmt.Errorf("parse meminfo %s: %w", fields[0], err)
		}
		*dst = kb * 1024
	}
	if err := sc.Err(); err != nil {
		return types.MemInfo{}, fmt.Errorf("read meminfo: %w", err)
	}
	if !found {
		return types.MemInfo{}, fmt.Errorf("MemTotal not found in meminfo")
	}
	return mem, nil
}

// StaticProber reports a fixed total, for hosts where probing is disabled.
type StaticProber struct{ Total uint64 }

// GetResourcesInfo implements fit.Prober.
func (p StaticProber) GetResourcesInfo(context.Context) (types.ResourcesInfo, error) {
	if p.Total == 0 {
		return types.ResourcesInfo{}, fmt.Errorf("static total RAM not configured")
	}
	return types.ResourcesInfo{Mem: types.MemInfo{Total: p.Total}}, nil
}

// Source is anything that can produce a ResourcesInfo.
type Source interface {
	GetResourcesInfo(ctx context.Context) (types.ResourcesInfo, error)
}

// CachedProber memoizes a successful probe for TTL. Failures are not cached.
type CachedProber struct {
	src Source
	ttl time.Duration
	log zerolog.Logger
	now func() time.Time

	mu     sync.RWMutex
	cached *types.ResourcesInfo
	at     time.Time
}

// NewCached wraps src. A non-positive ttl defaults to one minute.
func NewCached(src Source, ttl time.Duration, log zerolog.Logger) *CachedProber {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachedProber{src: src, ttl: ttl, log: log, now: time.Now}
}

// GetResourcesInfo implements fit.Prober.
func (c *CachedProber) GetResourcesInfo(ctx context.Context) (types.ResourcesInfo, error) {
	c.mu.RLock()
	if c.cached != nil && c.now().Sub(c.at) < c.ttl {
		info := *c.cached
		c.mu.RUnlock()
		c.log.Debug().Uint64("total", info.Mem.Total).Msg("using cached resource info")
		return info, nil
	}
	c.mu.RUnlock()

	info, err := c.src.GetResourcesInfo(ctx)
	if err != nil {
		return info, err
	}
	c.mu.Lock()
	c.cached = &info
	c.at = c.now()
	c.mu.Unlock()
	c.log.Debug().Uint64("total", info.Mem.Total).Uint64("free", info.Mem.Free).Msg("resource info probed")
	return info, nil
}

// Probed reports whether a probe has succeeded at least once.
func (c *CachedProber) Probed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cached != nil
}

// Invalidate drops the cached value.
func (c *CachedProber) Invalidate() {
	c.mu.Lock()
	c.cached = nil
	c.mu.Unlock()
}
