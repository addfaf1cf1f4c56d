package interaction

import "time"

// Timer：可取消的延迟回调句柄
type Timer interface {
	Stop() bool
}

// Scheduler：延迟回调调度器，测试中替换为手动推进的实现
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemScheduler：基于 time.AfterFunc 的默认实现
type SystemScheduler struct{}

func (SystemScheduler) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
