// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pulsesim

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/db47h/pulsesim/internal/logging"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// MaxClusterSize is the maximum number of flip-flops in a cluster. A cluster
// snapshot packs the state of its flip-flops into a single uint64.
//
const MaxClusterSize = 64

// Cycle describes the recurrence of a cluster's flip-flop state. The state
// seen after Start presses is seen again after Start+Period presses, for the
// first time.
//
type Cycle struct {
	Start  uint64
	Period uint64
}

// Periods maps cluster keys to period lengths.
//
type Periods map[string]uint64

// Values returns the periods in cluster key order.
//
func (p Periods) Values() []uint64 {
	ks := make([]string, 0, len(p))
	for k := range p {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	vs := make([]uint64, len(ks))
	for i, k := range ks {
		vs[i] = p[k]
	}
	return vs
}

// NoCycleFoundError is returned when some clusters do not repeat their state
// within the configured number of trigger events.
//
type NoCycleFoundError struct {
	MaxTriggers uint64
	Unresolved  []string
}

func (e *NoCycleFoundError) Error() string {
	return fmt.Sprintf("no cycle found within %d trigger events for cluster(s) %s", e.MaxTriggers, strings.Join(e.Unresolved, ", "))
}

// A Detector finds the cycle of each cluster of flip-flops by simulating
// trigger events until every cluster state repeats.
//
type Detector struct {
	// MaxTriggers bounds the number of trigger events. Must be > 0.
	MaxTriggers uint64
	// Workers is the number of clusters analysed concurrently, each against
	// its own copy of the network state. If <= 1, all clusters are analysed in
	// a single simulation.
	Workers int
	// Target, if not empty, names the module whose first low pulse is computed
	// from the cycles. Each cluster must drive one input of the conjunction
	// feeding Target, see ValidateTarget, and that input must send its first
	// high pulse to the gate at the end of the cluster's first cycle.
	Target string
	Logger *slog.Logger
}

// tracker records the history of a cluster's snapshots.
type tracker struct {
	key   string
	ids   []int
	hist  map[uint64]uint64 // snapshot -> first press index
	cycle *Cycle
	in    int    // gate input driven by the cluster, -1 if none
	high  uint64 // first press during which in sent high to the gate
}

func newTracker(g *Graph, key string, ffs []string) (*tracker, error) {
	if len(ffs) > MaxClusterSize {
		return nil, errors.Errorf("cluster %s: %d flip-flops, at most %d supported", key, len(ffs), MaxClusterSize)
	}
	t := &tracker{key: key, hist: make(map[uint64]uint64), in: -1}
	for _, ff := range ffs {
		n, ok := g.ids[ff]
		if !ok || g.nodes[n].kind != FlipFlop {
			return nil, errors.Errorf("cluster %s: %s is not a flip-flop", key, ff)
		}
		t.ids = append(t.ids, n)
	}
	return t, nil
}

// snapshot packs the flip-flop states of the cluster in name order.
func (t *tracker) snapshot(s *State) uint64 {
	var v uint64
	for _, n := range t.ids {
		v <<= 1
		if s.on[n] {
			v |= 1
		}
	}
	return v
}

// record records the snapshot taken after i presses and reports whether the
// cluster is resolved.
func (t *tracker) record(s *State, i uint64) bool {
	v := t.snapshot(s)
	if first, ok := t.hist[v]; ok {
		t.cycle = &Cycle{Start: first, Period: i - first}
		return true
	}
	t.hist[v] = i
	return false
}

// checkInterval is the number of presses between context checks.
const checkInterval = 1024

// Detect returns the cycle of every cluster in c.
//
func (d *Detector) Detect(ctx context.Context, g *Graph, c Clusters) (map[string]Cycle, error) {
	if d.MaxTriggers == 0 {
		return nil, errors.New("MaxTriggers must be > 0")
	}
	logger := d.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	gate := -1
	var inputs map[string]int
	if d.Target != "" {
		var err error
		if gate, inputs, err = gateInputs(g, d.Target, c); err != nil {
			return nil, err
		}
	}
	var ts []*tracker
	for _, k := range c.Keys() {
		t, err := newTracker(g, k, c[k])
		if err != nil {
			return nil, err
		}
		if gate >= 0 {
			t.in = inputs[k]
		}
		ts = append(ts, t)
	}

	if d.Workers > 1 && len(ts) > 1 {
		if err := VerifyIndependence(g, c); err != nil {
			return nil, errors.Wrap(err, "parallel cycle detection")
		}
		grp, ctx := errgroup.WithContext(ctx)
		grp.SetLimit(d.Workers)
		for _, t := range ts {
			t := t
			grp.Go(func() error {
				return d.run(ctx, g, []*tracker{t}, gate, logger)
			})
		}
		if err := grp.Wait(); err != nil {
			return nil, err
		}
	} else if err := d.run(ctx, g, ts, gate, logger); err != nil {
		return nil, err
	}

	cs := make(map[string]Cycle, len(ts))
	for _, t := range ts {
		if gate >= 0 && t.high != t.cycle.Start+t.cycle.Period {
			return nil, gateTimingError(g, d.Target, t)
		}
		cs[t.key] = *t.cycle
	}
	return cs, nil
}

func gateTimingError(g *Graph, target string, t *tracker) error {
	end := t.cycle.Start + t.cycle.Period
	in := g.nodes[t.in].name
	if t.high == 0 {
		return &TargetError{target, fmt.Sprintf("gate input %s never sends a high pulse within the first %d presses (cycle of cluster %s)", in, end, t.key)}
	}
	return &TargetError{target, fmt.Sprintf("gate input %s first sends a high pulse during press %d, expected %d (cycle of cluster %s)", in, t.high, end, t.key)}
}

// run simulates trigger events on a fresh state until all trackers in ts are
// resolved. If gate is a valid node, the first high pulse sent to it by each
// tracker's gate input is recorded.
func (d *Detector) run(ctx context.Context, g *Graph, ts []*tracker, gate int, logger *slog.Logger) error {
	s := NewState(g)
	for _, t := range ts {
		t.record(s, 0)
	}
	unresolved := len(ts)
	var (
		q     []pulse
		press uint64
		fn    func(p pulse)
	)
	if gate >= 0 {
		fn = func(p pulse) {
			if !p.high || p.to != gate {
				return
			}
			for _, t := range ts {
				if t.in == p.from && t.high == 0 {
					t.high = press
				}
			}
		}
	}
	for i := uint64(1); unresolved > 0; i++ {
		press = i
		if i > d.MaxTriggers {
			e := &NoCycleFoundError{MaxTriggers: d.MaxTriggers}
			for _, t := range ts {
				if t.cycle == nil {
					e.Unresolved = append(e.Unresolved, t.key)
				}
			}
			return e
		}
		if i%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		q = propagate(g, s, q, fn)
		for _, t := range ts {
			if t.cycle == nil && t.record(s, i) {
				unresolved--
				logger.Info("cluster cycle found", "cluster", t.key, "start", t.cycle.Start, "period", t.cycle.Period)
			}
		}
	}
	return nil
}

// FindPeriods returns the period of every cluster in c, simulating at most
// maxTriggers trigger events.
//
func FindPeriods(ctx context.Context, g *Graph, c Clusters, maxTriggers uint64) (Periods, error) {
	d := Detector{MaxTriggers: maxTriggers}
	return d.periods(ctx, g, c)
}

// FindPeriodsParallel is like FindPeriods but analyses up to workers clusters
// concurrently, each against an independent copy of the network state. The
// clusters must be independent, see VerifyIndependence.
//
func FindPeriodsParallel(ctx context.Context, g *Graph, c Clusters, maxTriggers uint64, workers int) (Periods, error) {
	d := Detector{MaxTriggers: maxTriggers, Workers: workers}
	return d.periods(ctx, g, c)
}

func (d *Detector) periods(ctx context.Context, g *Graph, c Clusters) (Periods, error) {
	cs, err := d.Detect(ctx, g, c)
	if err != nil {
		return nil, err
	}
	p := make(Periods, len(cs))
	for k, cy := range cs {
		p[k] = cy.Period
	}
	return p, nil
}

// VerifyIndependence checks that the state of each cluster cannot be
// influenced by the flip-flops of another cluster other than through the
// broadcaster.
//
func VerifyIndependence(g *Graph, c Clusters) error {
	owner := make(map[int]string)
	for k, ffs := range c {
		for _, ff := range ffs {
			owner[g.ids[ff]] = k
		}
	}
	for _, k := range c.Keys() {
		var ids []int
		for _, ff := range c[k] {
			ids = append(ids, g.ids[ff])
		}
		cone := g.reach(ids, g.entry, true)
		for n, in := range cone {
			if o, ok := owner[n]; in && ok && o != k {
				return errors.Errorf("cluster %s depends on flip-flop %s of cluster %s", k, g.nodes[n].name, o)
			}
		}
	}
	return nil
}
