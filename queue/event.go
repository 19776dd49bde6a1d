package queue

// EventType 表示队列事件的类型
type EventType int

const (
	// EventPut 元素入队事件
	EventPut EventType = iota

	// EventGet 元素出队事件
	EventGet

	// EventFull 有界队列变满事件
	EventFull

	// EventEmpty 队列变空事件
	EventEmpty

	// EventError 操作失败事件（满、空、超时、取消、参数错误）
	EventError
)

func (t EventType) String() string {
	switch t {
	case EventPut:
		return "put"
	case EventGet:
		return "get"
	case EventFull:
		return "full"
	case EventEmpty:
		return "empty"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event 表示队列中发生的事件
type Event struct {
	// 事件类型
	Type EventType

	// 事件发生时队列中的元素数量
	Size int

	// 与事件相关联的元素（如果有）
	Item any

	// 与事件相关联的错误（如果有）
	Err error
}

// EventListener 是接收队列事件的函数
//
// 监听器总是在队列锁释放之后被调用，因此可以在监听器里
// 对同一个队列再次调用 Put 或 Get。
type EventListener func(Event)

// EventEmitter 提供事件通知功能，监听器列表在创建后不再变化
type EventEmitter struct {
	listeners []EventListener
}

// NewEventEmitter 创建一个新的事件发射器
func NewEventEmitter(listeners []EventListener) *EventEmitter {
	copied := make([]EventListener, len(listeners))
	copy(copied, listeners)
	return &EventEmitter{listeners: copied}
}

// Emit 发送事件给所有监听器
func (e *EventEmitter) Emit(evt Event) {
	for _, listener := range e.listeners {
		listener(evt)
	}
}
