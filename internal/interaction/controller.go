// 包 interaction：悬停/选中状态机（含悬停意图防抖）
package interaction

import (
	"time"

	"partner-map/internal/logger"
	"partner-map/internal/metrics"
	"partner-map/internal/partners"
)

// DefaultDelay：指针在省份上停留多久才显示提示框
const DefaultDelay = 100 * time.Millisecond

// Point：宿主表面坐标（SVG 像素或终端单元格）
type Point struct {
	X, Y float64
}

// Phase：悬停轴上的阶段
type Phase int

const (
	Idle Phase = iota
	Pending
	Active
)

func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Active:
		return "active"
	}
	return "idle"
}

// Hover：悬停轴状态；Pos 仅在 Active 时有意义
type Hover struct {
	Phase    Phase
	RegionID string
	Pos      Point
}

// State：某一时刻的完整交互状态；悬停与选中相互独立
type State struct {
	Hover    Hover
	Selected *partners.Province
}

// Fired：定时器到期后投递回事件循环的消息
type Fired struct {
	Gen uint64
}

// Options：构造参数；Post 必填
type Options struct {
	Delay     time.Duration
	Scheduler Scheduler
	// Post 在定时器协程中调用，需把 Fired 转交给拥有 Controller 的事件循环
	Post func(Fired)
}

// 文档注释：交互控制器
// 背景：指针快速扫过相邻小省份时不应闪烁提示框，因此进入省份后延迟提交悬停；
// 切换省份或离开时必须取消未到期的定时器，避免旧的悬停在指针离开后才出现。
// 约束：所有方法只能在同一事件循环内调用（无锁）；定时器回调只做 Post，真正的状态迁移在 Fire 中完成，
// 并用代数（Gen）丢弃取消后才送达的回调。Dispose 之后控制器不再响应任何事件。
type Controller struct {
	delay time.Duration
	sched Scheduler
	post  func(Fired)

	hover    Hover
	pointer  Point
	selected *partners.Province
	timer    Timer
	gen      uint64
	disposed bool
}

func New(opts Options) *Controller {
	c := &Controller{delay: opts.Delay, sched: opts.Scheduler, post: opts.Post}
	if c.delay <= 0 {
		c.delay = DefaultDelay
	}
	if c.sched == nil {
		c.sched = SystemScheduler{}
	}
	if c.post == nil {
		c.post = func(Fired) {}
	}
	return c
}

// State：当前状态快照
func (c *Controller) State() State {
	s := State{Hover: c.hover}
	if c.selected != nil {
		p := *c.selected
		s.Selected = &p
	}
	return s
}

// Enter：指针进入省份；空编码视为离开（无法定位提示框对应的要素）
func (c *Controller) Enter(regionID string) {
	if c.disposed {
		return
	}
	if regionID == "" {
		c.Leave()
		return
	}
	if c.hover.Phase == Active && c.hover.RegionID == regionID {
		return
	}
	c.cancel()
	gen := c.gen
	c.hover = Hover{Phase: Pending, RegionID: regionID}
	post := c.post
	c.timer = c.sched.AfterFunc(c.delay, func() { post(Fired{Gen: gen}) })
}

// Fire：定时器消息回到事件循环；返回是否提交为 Active
func (c *Controller) Fire(f Fired) bool {
	if c.disposed || c.hover.Phase != Pending || f.Gen != c.gen {
		metrics.HoverStaleFiresTotal.Inc()
		return false
	}
	c.timer = nil
	c.hover.Phase = Active
	c.hover.Pos = c.pointer
	metrics.HoverActivationsTotal.Inc()
	logger.L().Debug("hover_active", "region", c.hover.RegionID)
	return true
}

// Leave：指针离开省份
func (c *Controller) Leave() {
	if c.disposed {
		return
	}
	c.cancel()
	c.hover = Hover{}
}

// Move：记录指针位置；Active 时同步更新提示框位置，不重置防抖
func (c *Controller) Move(p Point) {
	if c.disposed {
		return
	}
	c.pointer = p
	if c.hover.Phase == Active {
		c.hover.Pos = p
	}
}

// Click：点击省份；ok 为 false（未匹配到业务记录）时不改变状态
func (c *Controller) Click(p partners.Province, ok bool) bool {
	if c.disposed || !ok {
		return false
	}
	c.selected = &p
	logger.L().Debug("region_selected", "id", p.ID, "partners", len(p.Partners))
	return true
}

// Close：关闭详情面板
func (c *Controller) Close() {
	if c.disposed {
		return
	}
	c.selected = nil
}

// Dispose：拆除时调用，无条件取消定时器
func (c *Controller) Dispose() {
	c.cancel()
	c.disposed = true
	c.hover = Hover{}
	c.selected = nil
}

// 取消未到期定时器并推进代数，已触发但未送达的回调会在 Fire 中被丢弃
func (c *Controller) cancel() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
}
