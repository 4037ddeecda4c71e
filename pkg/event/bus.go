package event

import "log"

// Handler 事件处理函数
type Handler func(HintEvent)

// Bus 同步事件总线
// 只在游戏线程上使用，不加锁
type Bus struct {
	nextID   uint64
	handlers []subscription
}

type subscription struct {
	id      uint64
	handler Handler
}

// NewBus 创建事件总线
func NewBus() *Bus {
	return &Bus{nextID: 1}
}

// Subscribe 注册监听函数
// 返回取消订阅函数，可重复调用
func (b *Bus) Subscribe(h Handler) (unsubscribe func()) {
	if h == nil {
		return func() {}
	}
	id := b.nextID
	b.nextID++
	b.handlers = append(b.handlers, subscription{id: id, handler: h})

	return func() {
		for i, s := range b.handlers {
			if s.id == id {
				// 复制新切片，避免影响正在进行的 Emit 遍历
				handlers := make([]subscription, 0, len(b.handlers)-1)
				handlers = append(handlers, b.handlers[:i]...)
				handlers = append(handlers, b.handlers[i+1:]...)
				b.handlers = handlers
				return
			}
		}
	}
}

// Emit 按注册顺序同步派发事件
// 单个监听者 panic 不影响其他监听者，也不会传播给发布方
func (b *Bus) Emit(e HintEvent) {
	for _, s := range b.handlers {
		dispatch(s.handler, e)
	}
}

// HandlerCount 返回当前监听者数量
func (b *Bus) HandlerCount() int {
	return len(b.handlers)
}

func dispatch(h Handler, e HintEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[EventBus] Error: handler for %s panicked: %v", e.Type, r)
		}
	}()
	h(e)
}
