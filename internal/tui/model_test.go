package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"partner-map/internal/geo"
	"partner-map/internal/interaction"
	"partner-map/internal/partners"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualScheduler struct{ pending []func() }

type noopTimer struct{}

func (noopTimer) Stop() bool { return true }

func (s *manualScheduler) AfterFunc(_ time.Duration, f func()) interaction.Timer {
	s.pending = append(s.pending, f)
	return noopTimer{}
}

type staticSource struct {
	provs       []partners.Province
	invalidated int
}

func (s *staticSource) List(context.Context) ([]partners.Province, error) { return s.provs, nil }

func (s *staticSource) Invalidate(context.Context) error {
	s.invalidated++
	return nil
}

// 覆盖整个 viewBox 中部的大方块
func bigRegion() *geo.Collection {
	poly := orb.Polygon{{{100, 8}, {140, 8}, {140, -12}, {100, -12}, {100, 8}}}
	return &geo.Collection{Features: []*geo.Feature{
		{Geometry: poly, Properties: geojson.Properties{"kode": "31", "Propinsi": "TEST PROVINCE"}},
	}}
}

func province() partners.Province {
	p := partners.Province{ID: "31", Name: "Test Province"}
	for i := 1; i <= 4; i++ {
		p.Partners = append(p.Partners, partners.Partner{ID: uint64(i), Name: "RS Mitra", Address: "Jl. Raya", Maintenance: i})
	}
	return p
}

func newLoaded(t *testing.T) (*Model, *manualScheduler, *staticSource) {
	t.Helper()
	sched := &manualScheduler{}
	src := &staticSource{provs: []partners.Province{province()}}
	m := New(Options{Partners: src, Projection: geo.Reference(), Scheduler: sched})
	t.Cleanup(m.Shutdown)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.Update(geoLoadedMsg{coll: bigRegion()})
	m.Update(partnersLoadedMsg{provinces: src.provs})
	require.False(t, m.busy())
	require.Len(t, m.regions, 1)
	return m, sched, src
}

func centre(m *Model) tea.MouseMsg {
	return tea.MouseMsg{X: m.vp.w / 2, Y: headerHeight + m.vp.h/2, Action: tea.MouseActionMotion}
}

func TestViewport_CentreCellInsideRegion(t *testing.T) {
	m, _, _ := newLoaded(t)
	assert.Equal(t, 0, m.grid[(m.vp.h/2)*m.vp.w+m.vp.w/2])
	assert.Equal(t, -1, m.grid[0])
}

func TestHoverShowsTooltipAfterDelay(t *testing.T) {
	m, sched, _ := newLoaded(t)
	m.Update(centre(m))
	assert.Equal(t, interaction.Pending, m.ctrl.State().Hover.Phase)
	assert.NotContains(t, m.View(), "Test Province: 4 partners")

	require.Len(t, sched.pending, 1)
	sched.pending[0]()
	msg := m.listen()()
	require.IsType(t, hoverFiredMsg{}, msg)
	m.Update(msg)

	assert.Equal(t, interaction.Active, m.ctrl.State().Hover.Phase)
	assert.Contains(t, m.View(), "Test Province: 4 partners")
	assert.Contains(t, m.View(), "lon ")
}

func TestLeaveCancelsHover(t *testing.T) {
	m, sched, _ := newLoaded(t)
	m.Update(centre(m))
	m.Update(tea.MouseMsg{X: 0, Y: headerHeight, Action: tea.MouseActionMotion})
	assert.Equal(t, interaction.Idle, m.ctrl.State().Hover.Phase)

	// 取消后才送达的回调被丢弃
	sched.pending[0]()
	m.Update(m.listen()())
	assert.Equal(t, interaction.Idle, m.ctrl.State().Hover.Phase)
}

func TestClickOpensAndEscClosesDetail(t *testing.T) {
	m, _, _ := newLoaded(t)
	press := centre(m)
	press.Action = tea.MouseActionPress
	press.Button = tea.MouseButtonLeft
	m.Update(press)

	sel := m.ctrl.State().Selected
	require.NotNil(t, sel)
	assert.Equal(t, "31", sel.ID)
	view := m.View()
	assert.Contains(t, view, "Partners in Test Province")
	assert.Contains(t, view, "Maintenance visits: 1")
	assert.Contains(t, view, "[x]")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.ctrl.State().Selected)
}

func TestCloseButtonClick(t *testing.T) {
	m, _, _ := newLoaded(t)
	press := centre(m)
	press.Action = tea.MouseActionPress
	press.Button = tea.MouseButtonLeft
	m.Update(press)
	require.NotNil(t, m.ctrl.State().Selected)

	m.Update(tea.MouseMsg{X: m.vp.w - 4, Y: headerHeight, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Nil(t, m.ctrl.State().Selected)
}

func TestClickUnmatchedIsNoop(t *testing.T) {
	m, _, _ := newLoaded(t)
	m.Update(partnersLoadedMsg{provinces: nil})
	press := centre(m)
	press.Action = tea.MouseActionPress
	press.Button = tea.MouseButtonLeft
	m.Update(press)
	assert.Nil(t, m.ctrl.State().Selected)
}

func TestLoadingOverlay(t *testing.T) {
	m := New(Options{Projection: geo.Reference(), Scheduler: &manualScheduler{}})
	defer m.Shutdown()
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	assert.Contains(t, m.View(), "Loading map data...")

	m.Update(geoLoadedMsg{err: assert.AnError})
	m.Update(partnersLoadedMsg{err: partners.ErrNoSource})
	view := m.View()
	assert.NotContains(t, view, "Loading map data...")
	assert.Contains(t, view, "partner data unavailable")
	// 图例始终显示
	assert.Contains(t, view, ">3 partners")
}

func TestNotifyReloadsAndInvalidates(t *testing.T) {
	m, _, src := newLoaded(t)
	m.Notify()
	m.Notify()
	msg := m.listen()()
	require.IsType(t, reloadMsg{}, msg)
	_, cmd := m.Update(msg)
	assert.NotNil(t, cmd)
	assert.True(t, m.loading)
	assert.Equal(t, 1, src.invalidated)
}

func TestQuitDisposes(t *testing.T) {
	m, _, _ := newLoaded(t)
	m.Update(centre(m))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, interaction.State{}, m.ctrl.State())
	assert.Nil(t, m.listen()())
}

func TestCanvasClipsAndJoins(t *testing.T) {
	c := newCanvas(6, 2)
	c.text(3, 0, "abcdef", "", "")
	c.set(-1, 5, 'x', "", "")
	out := strings.Split(c.String(), "\n")
	require.Len(t, out, 2)
	assert.Equal(t, "   abc", out[0])
}
