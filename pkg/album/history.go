package album

import (
	"sync"

	"github.com/samber/lo"

	"vmuicon/pkg/bitmap"
)

func NewHistory() *History {
	return &History{max: 3}
}

// History keeps the last few icons shown.
type History struct {
	mu    sync.Mutex
	max   int
	items []*HistoryLog
}

type HistoryLog struct {
	Name string
	Icon bitmap.Icon
}

func (h *History) push(item *HistoryLog) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.items = append(h.items, item)
	if len(h.items) > h.max {
		h.items = h.items[1:]
	}
}

func (h *History) Logs() []*HistoryLog {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*HistoryLog(nil), h.items...)
}

func (h *History) Add(name string, icon bitmap.Icon) {
	h.push(&HistoryLog{Name: name, Icon: icon})
}

func (h *History) Curr() *HistoryLog {
	h.mu.Lock()
	defer h.mu.Unlock()
	log, _ := lo.Last(h.items)
	return log
}

func (h *History) Prev() *HistoryLog {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.items) < 2 {
		return nil
	}
	return h.items[len(h.items)-2]
}
