package fit

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"advisord/pkg/types"
)

const defaultProbeTimeout = 3 * time.Second

// errProbeTimeout is recorded when the prober does not answer before the deadline.
var errProbeTimeout = errors.New("resource probe timed out")

// Prober supplies host resource information.
type Prober interface {
	GetResourcesInfo(ctx context.Context) (types.ResourcesInfo, error)
}

// Assessment is one classification of a requirement against the host.
type Assessment struct {
	Tier        Tier
	Label       string
	Ratio       float64
	RequiredRAM float64
	TotalRAM    float64
	// Err is the probe failure that left Tier unset, if any.
	Err error
	At  time.Time
}

// AdvisorConfig holds Advisor tunables. Zero values take package defaults.
type AdvisorConfig struct {
	Prober  Prober
	Timeout time.Duration
	Logger  *zerolog.Logger
}

// Advisor probes the host and classifies model requirements against it.
// It never returns an error: a failed probe is an unset tier.
type Advisor struct {
	prober  Prober
	timeout time.Duration
	log     zerolog.Logger

	mu   sync.RWMutex
	last *Assessment
}

// NewAdvisor constructs an Advisor with the default timeout.
func NewAdvisor(p Prober) *Advisor {
	return NewAdvisorWithConfig(AdvisorConfig{Prober: p})
}

// NewAdvisorWithConfig constructs an Advisor from cfg, applying defaults.
func NewAdvisorWithConfig(cfg AdvisorConfig) *Advisor {
	a := &Advisor{prober: cfg.Prober, timeout: cfg.Timeout, log: zerolog.Nop()}
	if a.timeout <= 0 {
		a.timeout = defaultProbeTimeout
	}
	if cfg.Logger != nil {
		a.log = *cfg.Logger
	}
	return a
}

type probeResult struct {
	info types.ResourcesInfo
	err  error
}

// Resources probes the host under the advisor timeout.
func (a *Advisor) Resources(ctx context.Context) (types.ResourcesInfo, error) {
	if a.prober == nil {
		return types.ResourcesInfo{}, errors.New("no resource prober configured")
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	// Buffered so a prober that ignores ctx cannot block its goroutine forever.
	ch := make(chan probeResult, 1)
	go func() {
		info, err := a.prober.GetResourcesInfo(ctx)
		ch <- probeResult{info: info, err: err}
	}()
	select {
	case r := <-ch:
		if r.err != nil {
			return r.info, timeoutOr(r.err)
		}
		return r.info, nil
	case <-ctx.Done():
		return types.ResourcesInfo{}, timeoutOr(ctx.Err())
	}
}

func timeoutOr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errProbeTimeout
	}
	return err
}

// Assess probes the host and classifies requiredRAM against its total memory.
func (a *Advisor) Assess(ctx context.Context, requiredRAM float64) Assessment {
	info, err := a.Resources(ctx)
	if err != nil {
		a.log.Warn().Err(err).Float64("required_ram", requiredRAM).Msg("resource probe failed; fit tier unset")
		as := Assessment{RequiredRAM: requiredRAM, Err: err, At: time.Now()}
		a.store(as)
		return as
	}
	return a.AssessWithTotal(requiredRAM, float64(info.Mem.Total))
}

// AssessWithTotal classifies against a caller-supplied total, skipping the probe.
func (a *Advisor) AssessWithTotal(requiredRAM, totalRAM float64) Assessment {
	as := Assessment{RequiredRAM: requiredRAM, TotalRAM: totalRAM, At: time.Now()}
	tier, err := ClassifyStrict(requiredRAM, totalRAM)
	if err != nil {
		as.Err = err
	} else {
		as.Ratio = requiredRAM / totalRAM
	}
	as.Tier = tier
	as.Label = Label(tier)
	a.log.Debug().
		Str("tier", tier.String()).
		Float64("required_ram", requiredRAM).
		Float64("total_ram", totalRAM).
		Msg("fit assessed")
	a.store(as)
	return as
}

func (a *Advisor) store(as Assessment) {
	a.mu.Lock()
	a.last = &as
	a.mu.Unlock()
}

// Last returns the most recent assessment, if any.
func (a *Advisor) Last() (Assessment, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.last == nil {
		return Assessment{}, false
	}
	return *a.last, true
}
