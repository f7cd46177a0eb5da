package album

import (
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"vmuicon/pkg/bitmap"
	"vmuicon/pkg/vmu"
)

var ErrEmptyPlaylist = errors.New("playlist is empty")

func NewPlayer(lib *Library, sender *vmu.Sender, history *History, logger *zap.Logger) *Player {
	return &Player{
		errorWait:  3 * time.Second,
		changeWait: 30 * time.Second,
		lib:        lib,
		sender:     sender,
		history:    history,
		log:        logger,
		wakeup:     make(chan struct{}, 1),
	}
}

// Player cycles a playlist of library icons on one VMU.
type Player struct {
	l sync.RWMutex

	errorWait  time.Duration
	changeWait time.Duration
	lib        *Library
	sender     *vmu.Sender
	history    *History
	log        *zap.Logger
	wakeup     chan struct{}
	paused     bool
	names      []string
	pos        int
}

// ChangeWait is the delay between two icons.
func (p *Player) ChangeWait() time.Duration {
	p.l.RLock()
	defer p.l.RUnlock()
	return p.changeWait
}

func (p *Player) SetChangeWait(d time.Duration) {
	p.l.Lock()
	defer p.l.Unlock()
	p.changeWait = d
}

// ErrorWait is the delay before retrying after a failed draw.
func (p *Player) ErrorWait() time.Duration {
	p.l.RLock()
	defer p.l.RUnlock()
	return p.errorWait
}

func (p *Player) SetPlaylist(names []string, shuffle bool) {
	p.l.Lock()
	defer p.l.Unlock()
	p.names = append([]string(nil), names...)
	if shuffle {
		p.names = lo.Shuffle(p.names)
	}
	p.pos = 0
}

func (p *Player) Playlist() []string {
	p.l.RLock()
	defer p.l.RUnlock()
	return append([]string(nil), p.names...)
}

func (p *Player) Paused() bool {
	p.l.RLock()
	defer p.l.RUnlock()
	return p.paused
}

func (p *Player) WakeupChan() <-chan struct{} {
	return p.wakeup
}

func (p *Player) Pause() {
	p.l.Lock()
	defer p.l.Unlock()
	p.paused = true
}

// Wakeup resumes playback and asks the loop to draw now.
func (p *Player) Wakeup() {
	p.l.Lock()
	p.paused = false
	p.l.Unlock()

	select {
	case p.wakeup <- struct{}{}:
	default:
	}
}

// Next draws the next playlist entry.
func (p *Player) Next() error {
	p.l.Lock()
	if len(p.names) == 0 {
		p.l.Unlock()
		return ErrEmptyPlaylist
	}
	name := p.names[p.pos]
	p.pos = (p.pos + 1) % len(p.names)
	p.l.Unlock()

	icon, err := p.lib.Load(name)
	if err != nil {
		return fmt.Errorf("load %s failed: %w", name, err)
	}

	return p.Show(name, icon)
}

// Show draws icon right away and records it in the history.
func (p *Player) Show(name string, icon bitmap.Icon) error {
	if err := p.sender.SendIcon(icon); err != nil {
		return fmt.Errorf("draw %s failed: %w", name, err)
	}

	p.history.Add(name, icon)
	p.log.With(zap.String("name", name), zap.Stringer("addr", p.sender.Addr())).Info("shown")
	return nil
}
