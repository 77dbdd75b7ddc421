package netmon

// fakeProber is a hand-rolled test double for the host's interface and
// counter subsystems. Tests mutate its fields between ticks to simulate
// interfaces appearing, disappearing, and counters advancing or failing.
type fakeProber struct {
	ifaces       []InterfaceInfo
	ifacesErr    error
	instances    []string
	instancesErr error
	openErr      error

	// Live counter values returned by every open handle.
	rx, tx uint64

	// readErr fails every read; failNextRead fails exactly one.
	readErr      error
	failNextRead error

	opens   int
	handles []*fakeHandle
}

func (p *fakeProber) Interfaces() ([]InterfaceInfo, error) {
	return p.ifaces, p.ifacesErr
}

func (p *fakeProber) CounterInstances() ([]string, error) {
	return p.instances, p.instancesErr
}

func (p *fakeProber) OpenCounters(instance string) (CounterHandle, error) {
	if p.openErr != nil {
		return nil, p.openErr
	}
	p.opens++
	h := &fakeHandle{prober: p, instance: instance}
	p.handles = append(p.handles, h)
	return h, nil
}

// totalCloses sums Close calls across every handle ever opened. A balanced
// prober has totalCloses == opens once all bindings are released.
func (p *fakeProber) totalCloses() int {
	n := 0
	for _, h := range p.handles {
		n += h.closes
	}
	return n
}

type fakeHandle struct {
	prober   *fakeProber
	instance string
	reads    int
	closes   int
}

func (h *fakeHandle) Read() (uint64, uint64, error) {
	h.reads++
	if h.prober.failNextRead != nil {
		err := h.prober.failNextRead
		h.prober.failNextRead = nil
		return 0, 0, err
	}
	if h.prober.readErr != nil {
		return 0, 0, h.prober.readErr
	}
	return h.prober.rx, h.prober.tx, nil
}

func (h *fakeHandle) Close() error {
	h.closes++
	return nil
}

// newWorkingProber returns a prober with one up ethernet interface whose
// counter instance matches exactly.
func newWorkingProber() *fakeProber {
	return &fakeProber{
		ifaces:    []InterfaceInfo{{Name: "eth0", Up: true, Kind: KindEthernet}},
		instances: []string{"eth0"},
		rx:        1000,
		tx:        500,
	}
}
