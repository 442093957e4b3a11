package game

import (
	"sort"
	"time"
)

// FrameHandle 帧请求句柄，用于取消
type FrameHandle uint64

// FrameScheduler 宿主的帧调度端口
// 每个引擎实例只持有自己的句柄，实例之间互不影响
type FrameScheduler interface {
	RequestFrame(callback func(now time.Time)) FrameHandle
	CancelFrame(handle FrameHandle)
}

// FrameLoop 单线程帧调度器
//
// 宿主在每个 tick 调用一次 RunFrame：执行本帧之前登记的全部回调。
// 回调中再次请求的帧排到下一个 tick；已取消的句柄即使属于本批次也不会执行。
// 不是并发安全的，所有调用都应发生在宿主的主循环中。
type FrameLoop struct {
	next    FrameHandle
	pending map[FrameHandle]func(now time.Time)
}

// NewFrameLoop 创建帧调度器
func NewFrameLoop() *FrameLoop {
	return &FrameLoop{pending: make(map[FrameHandle]func(now time.Time))}
}

// RequestFrame 登记下一帧回调
func (fl *FrameLoop) RequestFrame(callback func(now time.Time)) FrameHandle {
	fl.next++
	fl.pending[fl.next] = callback
	return fl.next
}

// CancelFrame 取消已登记的回调，重复取消是空操作
func (fl *FrameLoop) CancelFrame(handle FrameHandle) {
	delete(fl.pending, handle)
}

// RunFrame 按登记顺序执行本批次回调，返回执行的数量
func (fl *FrameLoop) RunFrame(now time.Time) int {
	handles := make([]FrameHandle, 0, len(fl.pending))
	for h := range fl.pending {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	ran := 0
	for _, h := range handles {
		callback, ok := fl.pending[h]
		if !ok {
			continue
		}
		delete(fl.pending, h)
		callback(now)
		ran++
	}
	return ran
}

// Pending 返回等待执行的回调数量
func (fl *FrameLoop) Pending() int {
	return len(fl.pending)
}

// InputKind 输入事件类型
type InputKind int

const (
	InputPointerMove  InputKind = iota // X, Y：相对绘制表面左上角的逻辑坐标
	InputPointerLeave                  // 指针离开表面
	InputToggle                        // 点击/触摸：切换能量传输方向
	InputSelectScene                   // Index：直接选择场景
	InputResize                        // Width, Height, Density：显示尺寸与像素比
)

// InputEvent 输入事件
type InputEvent struct {
	Kind          InputKind
	X, Y          float64
	Index         int
	Width, Height float64
	Density       float64
}

// ListenerID 监听注册句柄
type ListenerID uint64

type listener struct {
	kind     InputKind
	callback func(InputEvent)
}

// InputHub 显式的输入端口
//
// 宿主把原始输入转成 InputEvent 后分发；引擎在挂载时注册监听、在销毁时逐一注销。
// 每个引擎实例使用自己的 InputHub，不存在全局监听器。
type InputHub struct {
	next      ListenerID
	listeners map[ListenerID]listener
}

// NewInputHub 创建输入端口
func NewInputHub() *InputHub {
	return &InputHub{listeners: make(map[ListenerID]listener)}
}

// Listen 注册指定类型事件的监听
func (h *InputHub) Listen(kind InputKind, callback func(InputEvent)) ListenerID {
	h.next++
	h.listeners[h.next] = listener{kind: kind, callback: callback}
	return h.next
}

// Unlisten 注销监听，重复注销是空操作
func (h *InputHub) Unlisten(id ListenerID) {
	delete(h.listeners, id)
}

// Dispatch 按注册顺序把事件交给对应类型的监听，返回调用的数量
func (h *InputHub) Dispatch(ev InputEvent) int {
	ids := make([]ListenerID, 0, len(h.listeners))
	for id, l := range h.listeners {
		if l.kind == ev.Kind {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	called := 0
	for _, id := range ids {
		if l, ok := h.listeners[id]; ok {
			l.callback(ev)
			called++
		}
	}
	return called
}

// ListenerCount 返回已注册的监听数量
func (h *InputHub) ListenerCount() int {
	return len(h.listeners)
}
