package testutil

import (
	"reflect"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// cmdTimeout bounds how long Send waits on one command. Commands that block
// longer, such as cursor blinks and store watchers, are dropped.
const cmdTimeout = 200 * time.Millisecond

// maxMessages caps the feedback loop so a self-renewing command cannot spin
// forever.
const maxMessages = 200

var cmdType = reflect.TypeOf(tea.Cmd(nil))

// Send delivers msgs to m in order, the way the Bubble Tea runtime would:
// every command returned by update is run and the messages it produces are
// fed back through update before the next input. It returns the final model
// and every message the commands produced.
func Send[M any](m M, update func(M, tea.Msg) (M, tea.Cmd), msgs ...tea.Msg) (M, []tea.Msg) {
	var produced []tea.Msg
	for _, msg := range msgs {
		queue := []tea.Msg{msg}
		for len(queue) > 0 && len(produced) < maxMessages {
			var cmd tea.Cmd
			m, cmd = update(m, queue[0])
			queue = queue[1:]

			out := run(cmd)
			produced = append(produced, out...)
			queue = append(queue, out...)
		}
	}
	return m, produced
}

// Type returns the key message for typing s in one go.
func Type(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// Key returns the key message for a special key such as tea.KeyEnter.
func Key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// run executes cmd and flattens batches and sequences into their messages.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(cmdTimeout):
		return nil
	}
	if msg == nil {
		return nil
	}

	// tea.Batch yields a BatchMsg; tea.Sequence yields an unexported slice
	// of the same shape.
	if v := reflect.ValueOf(msg); v.Kind() == reflect.Slice && v.Type().Elem() == cmdType {
		var out []tea.Msg
		for i := 0; i < v.Len(); i++ {
			if c, ok := v.Index(i).Interface().(tea.Cmd); ok {
				out = append(out, run(c)...)
			}
		}
		return out
	}
	return []tea.Msg{msg}
}
