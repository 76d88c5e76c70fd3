package dashboard

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Sender is the part of *tea.Program the bridge needs.
type Sender interface {
	Send(msg tea.Msg)
}

// Bridge implements transport.Observer and forwards link events to the
// Bubble Tea program via program.Send(). Observer calls never block: only
// the newest link state is kept, and Run hands it to the program.
type Bridge struct {
	program Sender

	mu      sync.Mutex
	pending *LinkMsg
	wake    chan struct{}
}

// NewBridge creates a new bridge that forwards events to the given program.
func NewBridge(program Sender) *Bridge {
	return &Bridge{program: program, wake: make(chan struct{}, 1)}
}

// Run delivers link events until ctx is cancelled.
func (b *Bridge) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-b.wake:
			b.mu.Lock()
			msg := b.pending
			b.pending = nil
			b.mu.Unlock()
			if msg != nil {
				b.program.Send(*msg)
			}
		}
	}
}

func (b *Bridge) post(msg LinkMsg) {
	b.mu.Lock()
	b.pending = &msg
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// Connecting forwards a connection attempt to the TUI.
func (b *Bridge) Connecting(endpoint string) {
	b.post(LinkMsg{State: LinkConnecting, Endpoint: endpoint})
}

// Connected forwards an established session to the TUI.
func (b *Bridge) Connected(endpoint string) {
	b.post(LinkMsg{State: LinkConnected, Endpoint: endpoint})
}

// Disconnected forwards a lost session to the TUI.
func (b *Bridge) Disconnected(endpoint string, err error) {
	b.post(LinkMsg{State: LinkDown, Endpoint: endpoint, Err: err})
}
