package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"salc/internal/buildpipeline"
)

// RunProgress renders events until the channel is closed.
// work runs in its own goroutine and must not close events itself.
func RunProgress(out io.Writer, title string, files []string, work func(sink buildpipeline.ProgressSink)) error {
	events := make(chan buildpipeline.Event, 256)
	go func() {
		defer close(events)
		work(buildpipeline.ChannelSink{Ch: events})
	}()

	model := NewProgressModel(title, files, events)
	_, err := tea.NewProgram(model, tea.WithOutput(out)).Run()
	// экран закрыт раньше времени: дочитываем события, чтобы work не встал
	for range events {
	}
	return err
}
