// Package process tracks the game process across its lifetime.
package process

import (
	"context"
	"fmt"
	"strings"
	"time"

	"FF7Ultima/utils"

	"github.com/sasha-s/go-deadlock"
	gopsprocess "github.com/shirou/gopsutil/v3/process"
	"github.com/sirupsen/logrus"
)

const (
	DefaultPollInterval = 200 * time.Millisecond
	// DefaultMinResidentMemory is the RSS a healthy game stays above. A
	// crashed game can stay enumerable but its reported usage collapses.
	DefaultMinResidentMemory = 1024768
)

// Candidate is one enumerated process whose name matched.
type Candidate struct {
	PID    uint32
	Name   string
	Status []string
	RSS    uint64
}

// Lister enumerates running processes whose name satisfies match.
type Lister func(ctx context.Context, match func(name string) bool) ([]Candidate, error)

type Option func(*Locator)

func WithPollInterval(d time.Duration) Option {
	return func(l *Locator) { l.interval = d }
}

func WithMinResidentMemory(bytes uint64) Option {
	return func(l *Locator) { l.minRSS = bytes }
}

func WithLister(list Lister) Option {
	return func(l *Locator) { l.list = list }
}

// Locator polls the OS for one of a set of executable names and publishes
// the pid of the live match. It implements utils.Target.
type Locator struct {
	names    []string
	interval time.Duration
	minRSS   uint64
	list     Lister

	mu    deadlock.Mutex
	pid   uint32
	found bool

	runMu  deadlock.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewLocator(names []string, opts ...Option) *Locator {
	l := &Locator{
		interval: DefaultPollInterval,
		minRSS:   DefaultMinResidentMemory,
		list:     listProcesses,
	}
	for _, n := range names {
		l.names = append(l.names, strings.ToLower(n))
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CurrentTarget returns the last published pid without waiting.
func (l *Locator) CurrentTarget() (uint32, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pid, l.found
}

// Start launches the poll loop. It runs until Stop is called or ctx ends;
// after either, Start may be called again.
func (l *Locator) Start(ctx context.Context) {
	l.runMu.Lock()
	defer l.runMu.Unlock()
	if l.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.done = make(chan struct{})
	go l.run(ctx, l.done)
}

// Stop ends the poll loop and waits for it to exit.
func (l *Locator) Stop() {
	l.runMu.Lock()
	cancel, done := l.cancel, l.done
	l.cancel, l.done = nil, nil
	l.runMu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (l *Locator) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer l.release(done)
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		l.Refresh(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// release forgets the loop that owns done unless Stop already has.
func (l *Locator) release(done chan struct{}) {
	l.runMu.Lock()
	defer l.runMu.Unlock()
	if l.done != done {
		return
	}
	l.cancel()
	l.cancel, l.done = nil, nil
}

// Refresh performs one poll and returns the published value.
func (l *Locator) Refresh(ctx context.Context) (uint32, bool) {
	candidates, err := l.list(ctx, l.matches)
	if err != nil {
		utils.Log.WithError(err).Debug("process enumeration failed, keeping last target")
		return l.CurrentTarget()
	}

	prev, hadPrev := l.CurrentTarget()
	pid, ok := l.pick(candidates, prev, hadPrev)

	l.mu.Lock()
	l.pid, l.found = pid, ok
	l.mu.Unlock()

	switch {
	case ok && (!hadPrev || prev != pid):
		utils.Log.WithFields(logrus.Fields{"pid": pid}).Info("Found game process")
	case !ok && hadPrev:
		utils.Log.WithFields(logrus.Fields{"pid": prev}).Info("Game disconnected")
	}
	return pid, ok
}

// pick prefers the previously published pid while it stays alive.
func (l *Locator) pick(candidates []Candidate, prev uint32, hadPrev bool) (uint32, bool) {
	var first *Candidate
	for i := range candidates {
		c := &candidates[i]
		if !l.matches(c.Name) || !l.alive(c) {
			continue
		}
		if hadPrev && c.PID == prev {
			return c.PID, true
		}
		if first == nil {
			first = c
		}
	}
	if first == nil {
		return 0, false
	}
	return first.PID, true
}

func (l *Locator) matches(name string) bool {
	name = strings.ToLower(name)
	for _, n := range l.names {
		if n == name {
			return true
		}
	}
	return false
}

// alive requires an active run state and a resident set above the threshold.
// Platforms that cannot report a state count as active.
func (l *Locator) alive(c *Candidate) bool {
	if c.RSS <= l.minRSS {
		return false
	}
	for _, s := range c.Status {
		switch s {
		case gopsprocess.Zombie, gopsprocess.Stop:
			return false
		}
	}
	return true
}

// Cwd returns the working directory of the current target.
func (l *Locator) Cwd(ctx context.Context) (string, error) {
	pid, ok := l.CurrentTarget()
	if !ok {
		return "", utils.ErrProcessNotFound
	}
	p, err := gopsprocess.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return "", fmt.Errorf("process %d: %w", pid, err)
	}
	return p.CwdWithContext(ctx)
}

func listProcesses(ctx context.Context, match func(name string) bool) ([]Candidate, error) {
	procs, err := gopsprocess.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	var out []Candidate
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil || !match(name) {
			continue
		}
		mem, err := p.MemoryInfoWithContext(ctx)
		if err != nil {
			continue
		}
		// Status is not implemented on every platform; a missing state is
		// treated as running by the liveness check.
		status, _ := p.StatusWithContext(ctx)
		out = append(out, Candidate{
			PID:    uint32(p.Pid),
			Name:   name,
			Status: status,
			RSS:    mem.RSS,
		})
	}
	return out, nil
}
