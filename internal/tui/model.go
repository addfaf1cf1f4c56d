// 包 tui：终端交互宿主（bubbletea）
// 文档注释：
// 背景：把投影后的省份栅格化到单元格上，鼠标移动/点击转成控制器事件，再用 render.Compose 的场景绘制画面。
// 约束：控制器、路径缓存、栅格只在 Update 中修改；定时器与文件监听协程只往 events 通道投递消息。
package tui

import (
	"context"
	"fmt"
	"time"

	"partner-map/internal/geo"
	"partner-map/internal/interaction"
	"partner-map/internal/logger"
	"partner-map/internal/match"
	"partner-map/internal/partners"
	"partner-map/internal/render"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	headerHeight = 1
	footerHeight = 2
)

// 提示框相对指针的单元格偏移
var tooltipOffset = interaction.Point{X: 2, Y: -1}

// Options：宿主依赖
type Options struct {
	Geometry   *geo.Loader
	Partners   partners.Source
	Projection geo.Projection
	HoverDelay time.Duration
	Scheduler  interaction.Scheduler // nil 时使用系统定时器
}

type (
	geoLoadedMsg struct {
		coll *geo.Collection
		err  error
	}
	partnersLoadedMsg struct {
		provinces []partners.Province
		err       error
	}
	hoverFiredMsg struct{ fired interaction.Fired }
	reloadMsg     struct{}
)

// 支持失效的数据源（如 Redis 缓存），重新加载前先失效
type invalidator interface {
	Invalidate(ctx context.Context) error
}

type Model struct {
	opts   Options
	ctx    context.Context
	cancel context.CancelFunc
	events chan tea.Msg

	ctrl *interaction.Controller
	spin spinner.Model

	width, height int

	coll       *geo.Collection
	geoLoading bool
	cache      geo.PathCache

	records []partners.Province
	loading bool
	regions []render.Region

	vp       viewport
	grid     []int
	hoverIdx int
	pointer  interaction.Point
	inside   bool
	scroll   int
	status   string
}

func New(opts Options) *Model {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		opts:       opts,
		ctx:        ctx,
		cancel:     cancel,
		events:     make(chan tea.Msg, 16),
		geoLoading: true,
		loading:    true,
		hoverIdx:   -1,
	}
	m.spin = spinner.New()
	m.spin.Spinner = spinner.Dot
	m.ctrl = interaction.New(interaction.Options{
		Delay:     opts.HoverDelay,
		Scheduler: opts.Scheduler,
		Post:      func(f interaction.Fired) { m.post(hoverFiredMsg{fired: f}) },
	})
	return m
}

// Notify：外部（文件监听）通知业务数据已变化；合并重复通知
func (m *Model) Notify() {
	select {
	case m.events <- reloadMsg{}:
	default:
	}
}

// 定时器协程调用；退出后不再阻塞
func (m *Model) post(msg tea.Msg) {
	select {
	case m.events <- msg:
	case <-m.ctx.Done():
	}
}

func (m *Model) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.events:
			return msg
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m *Model) loadGeometry() tea.Cmd {
	loader := m.opts.Geometry
	ctx := m.ctx
	return func() tea.Msg {
		coll, err := loader.Load(ctx)
		return geoLoadedMsg{coll: coll, err: err}
	}
}

func (m *Model) loadPartners() tea.Cmd {
	src := m.opts.Partners
	ctx := m.ctx
	return func() tea.Msg {
		if src == nil {
			return partnersLoadedMsg{err: partners.ErrNoSource}
		}
		provs, err := src.List(ctx)
		return partnersLoadedMsg{provinces: provs, err: err}
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.loadGeometry(), m.loadPartners(), m.listen())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.rebuildGrid()

	case geoLoadedMsg:
		m.geoLoading = false
		if msg.err != nil {
			m.status = "map data unavailable"
			logger.L().Warn("tui_geo_unavailable", "err", msg.err)
		}
		m.coll = msg.coll
		m.cache.Invalidate()
		m.resolve()

	case partnersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = "partner data unavailable"
			logger.L().Warn("tui_partners_unavailable", "err", msg.err)
			return m, nil
		}
		m.status = ""
		m.records = msg.provinces
		for _, c := range match.Duplicates(m.records) {
			logger.L().Warn("match_duplicate_name", "name", c.Key, "ids", c.IDs)
		}
		m.resolve()

	case hoverFiredMsg:
		m.ctrl.Fire(msg.fired)
		return m, m.listen()

	case reloadMsg:
		return m, tea.Batch(m.reload(), m.listen())

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Shutdown()
			return m, tea.Quit
		case "esc":
			m.closeDetail()
		case "r":
			return m, m.reload()
		case "up", "k":
			if m.scroll > 0 {
				m.scroll--
			}
		case "down", "j":
			m.scroll++
		}

	case tea.MouseMsg:
		m.mouse(msg)
	}
	return m, nil
}

// Shutdown：取消定时器与后台加载，之后控制器不再响应
func (m *Model) Shutdown() {
	m.ctrl.Dispose()
	m.cancel()
}

func (m *Model) busy() bool { return m.loading || m.geoLoading }

func (m *Model) reload() tea.Cmd {
	if inv, ok := m.opts.Partners.(invalidator); ok {
		if err := inv.Invalidate(m.ctx); err != nil {
			logger.L().Warn("tui_cache_invalidate_error", "err", err)
		}
	}
	m.loading = true
	return tea.Batch(m.spin.Tick, m.loadPartners())
}

func (m *Model) closeDetail() {
	m.ctrl.Close()
	m.scroll = 0
}

// 几何或业务数据变化后重新解析省份并重建栅格
func (m *Model) resolve() {
	m.regions = render.Resolve(m.cache.Paths(m.coll, m.opts.Projection), m.records)
	m.rebuildGrid()
}

func (m *Model) mapSize() (int, int) {
	h := m.height - headerHeight - footerHeight
	if h < 0 {
		h = 0
	}
	return m.width, h
}

func (m *Model) rebuildGrid() {
	w, h := m.mapSize()
	m.vp = newViewport(w, h)
	m.grid = rasterize(m.cache.Paths(m.coll, m.opts.Projection), m.vp)
	m.hoverIdx = -1
	m.ctrl.Leave()
}

// 文档注释：鼠标事件 → 控制器事件
// 背景：浏览器里每个 path 各自触发 mouseenter/mouseleave；这里按单元格归属变化合成同样的序列。
// 约束：详情面板覆盖地图时只响应关闭按钮；点击成功后视为指针离开省份（面板遮住了它）。
func (m *Model) mouse(msg tea.MouseMsg) {
	cx, cy := msg.X, msg.Y-headerHeight
	m.inside = cx >= 0 && cy >= 0 && cx < m.vp.w && cy < m.vp.h
	press := msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft

	if m.ctrl.State().Selected != nil {
		if press && m.onCloseButton(cx, cy) {
			m.closeDetail()
		}
		return
	}

	idx := -1
	if m.inside {
		m.pointer = interaction.Point{X: float64(cx), Y: float64(cy)}
		m.ctrl.Move(m.pointer)
		idx = m.grid[cy*m.vp.w+cx]
	}
	if idx != m.hoverIdx {
		if idx < 0 {
			m.ctrl.Leave()
		} else {
			m.ctrl.Enter(m.regions[idx].RegionID)
		}
		m.hoverIdx = idx
	}
	if press && idx >= 0 {
		r := m.regions[idx]
		if m.ctrl.Click(r.Province, r.Matched) {
			m.ctrl.Leave()
			m.hoverIdx = -1
			m.scroll = 0
		}
	}
}

func (m *Model) onCloseButton(cx, cy int) bool {
	return cy == 0 && cx >= m.vp.w-6 && cx < m.vp.w-1
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	sc := render.Compose(render.Input{
		Regions:       m.regions,
		State:         m.ctrl.State(),
		Loading:       m.loading,
		GeoLoading:    m.geoLoading,
		TooltipOffset: tooltipOffset,
	})
	c := newCanvas(m.vp.w, m.vp.h)
	m.drawShapes(c, sc)
	drawLegend(c, sc.Legend)
	if sc.Tooltip != nil {
		drawTooltip(c, sc.Tooltip)
	}
	if sc.Detail != nil {
		drawDetail(c, sc.Detail, m.scroll)
	}
	if sc.Loading {
		drawLoading(c, m.spin.View()+" Loading map data...")
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.header(), c.String(), m.footer())
}

func (m *Model) header() string {
	n := 0
	for _, p := range m.records {
		n += len(p.Partners)
	}
	return titleStyle.Render(" Partner Map · Indonesia ") +
		statStyle.Render(fmt.Sprintf(" %d provinces · %d partners", len(m.records), n))
}

func (m *Model) footer() string {
	line := ""
	if m.inside && m.vp.w > 0 {
		ll := m.opts.Projection.Invert(m.vp.toView(int(m.pointer.X), int(m.pointer.Y)))
		line = fmt.Sprintf(" lon %.3f  lat %.3f", ll.Lon(), ll.Lat())
		if m.hoverIdx >= 0 && m.hoverIdx < len(m.regions) {
			line += "  " + m.regions[m.hoverIdx].DisplayName()
		}
	}
	status := statusStyle.Render(line)
	if m.status != "" {
		status += warnStyle.Render("  " + m.status)
	}
	help := helpStyle.Render(" move: hover · click: details · esc: close · r: reload · q: quit")
	return status + "\n" + help
}
