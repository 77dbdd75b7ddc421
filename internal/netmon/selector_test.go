package netmon

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelector_NoQualifyingInterface(t *testing.T) {
	tests := []struct {
		name   string
		ifaces []InterfaceInfo
	}{
		{"no interfaces at all", nil},
		{"only down interfaces", []InterfaceInfo{
			{Name: "eth0", Up: false, Kind: KindEthernet},
		}},
		{"only non-qualifying kinds", []InterfaceInfo{
			{Name: "lo", Up: true, Kind: KindOther},
			{Name: "tun0", Up: true, Kind: KindOther},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelector(&fakeProber{ifaces: tt.ifaces, instances: []string{"eth0"}}, "")

			_, err := s.Select()
			assert.ErrorIs(t, err, ErrNoActiveInterface)
			assert.False(t, s.HasQualifyingInterface())
		})
	}
}

func TestSelector_CounterCategoryUnavailable(t *testing.T) {
	p := newWorkingProber()
	p.instancesErr = errors.New("registry reset")

	_, err := NewSelector(p, "").Select()
	assert.ErrorIs(t, err, ErrCounterCategoryUnavailable)
}

func TestSelector_NoCounterInstances(t *testing.T) {
	p := newWorkingProber()
	p.instances = nil

	_, err := NewSelector(p, "").Select()
	assert.ErrorIs(t, err, ErrNoMatchingCounterInstance)
}

func TestSelector_ExactMatch(t *testing.T) {
	p := newWorkingProber()
	p.instances = []string{"wlan0", "eth0"}

	sel, err := NewSelector(p, "").Select()
	require.NoError(t, err)
	assert.Equal(t, "eth0", sel.Instance)
	assert.Equal(t, MatchExact, sel.Match)
}

func TestSelector_SubstringMatchIsCaseInsensitiveAndBidirectional(t *testing.T) {
	tests := []struct {
		name      string
		ifaceName string
		instances []string
		expected  string
	}{
		{
			"instance contains description",
			"intel(r) wireless adapter",
			[]string{"Something Else", "intel(r) wireless adapter #2"},
			"intel(r) wireless adapter #2",
		},
		{
			"description contains instance",
			"intel(r) wireless adapter",
			[]string{"Something Else", "Intel(R) Wireless"},
			"Intel(R) Wireless",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProber{
				ifaces:    []InterfaceInfo{{Name: tt.ifaceName, Up: true, Kind: KindWireless}},
				instances: tt.instances,
			}

			sel, err := NewSelector(p, "").Select()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sel.Instance)
			assert.Equal(t, MatchSubstring, sel.Match)
		})
	}
}

func TestSelector_FallbackToFirstInstance(t *testing.T) {
	p := newWorkingProber()
	p.instances = []string{"Virtual Adapter", "Another Adapter"}

	sel, err := NewSelector(p, "").Select()
	require.NoError(t, err)
	assert.Equal(t, "Virtual Adapter", sel.Instance)
	assert.Equal(t, MatchFallback, sel.Match)
	assert.Equal(t, "eth0", sel.Interface.Name, "the selected interface is still reported")
}

func TestSelector_FirstQualifyingInterfaceWins(t *testing.T) {
	p := &fakeProber{
		ifaces: []InterfaceInfo{
			{Name: "lo", Up: true, Kind: KindOther},
			{Name: "eth0", Up: false, Kind: KindEthernet},
			{Name: "wlan0", Up: true, Kind: KindWireless},
			{Name: "eth1", Up: true, Kind: KindEthernet},
		},
		instances: []string{"eth1", "wlan0"},
	}

	sel, err := NewSelector(p, "").Select()
	require.NoError(t, err)
	assert.Equal(t, "wlan0", sel.Interface.Name)
}

func TestSelector_PreferredInterface(t *testing.T) {
	p := &fakeProber{
		ifaces: []InterfaceInfo{
			{Name: "wlan0", Up: true, Kind: KindWireless},
			{Name: "eth1", Up: true, Kind: KindEthernet},
		},
		instances: []string{"eth1", "wlan0"},
	}

	sel, err := NewSelector(p, "eth1").Select()
	require.NoError(t, err)
	assert.Equal(t, "eth1", sel.Interface.Name, "preferred interface wins over enumeration order")

	sel, err = NewSelector(p, "eth9").Select()
	require.NoError(t, err)
	assert.Equal(t, "wlan0", sel.Interface.Name, "absent preferred interface falls back to first match")
}

func TestSelector_HasQualifyingInterface(t *testing.T) {
	p := newWorkingProber()
	s := NewSelector(p, "")
	assert.True(t, s.HasQualifyingInterface())

	p.ifaces[0].Up = false
	assert.False(t, s.HasQualifyingInterface())

	p.ifaces = nil
	p.ifacesErr = errors.New("enumeration failed")
	assert.False(t, s.HasQualifyingInterface(), "enumeration failure counts as no liveness")
}

func TestClassifyInterface_VirtualPrefixes(t *testing.T) {
	for _, name := range []string{"lo", "ppp0", "tun0", "tap1", "veth12ab", "docker0", "br-f00", "virbr0", "wg0", "dummy0"} {
		assert.Equal(t, KindOther, classifyInterface(name), name)
	}
	assert.NotEqual(t, KindOther, classifyInterface("eth0"))
	assert.NotEqual(t, KindOther, classifyInterface("enp3s0"))
}
