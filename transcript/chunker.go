package transcript

import "strings"

// DefaultChunkSeconds is the window length used when none is configured.
const DefaultChunkSeconds = 30.0

// defaultItemDuration stands in for caption lines that carry no duration.
const defaultItemDuration = 3.0

// Window is a contiguous span of transcript text with its time bounds.
type Window struct {
	Text  string
	Start float64
	End   float64
}

// Chunk folds ordered transcript items into windows of at least
// chunkSeconds. A window closes once the end of the current item reaches
// chunkSeconds past the window's first item, and any trailing items form
// a final shorter window. Items never span two windows, so concatenating
// the windows reproduces the transcript text in order.
func Chunk(items []Item, chunkSeconds float64) []Window {
	if chunkSeconds <= 0 {
		chunkSeconds = DefaultChunkSeconds
	}

	windows := make([]Window, 0)
	var buffer []string
	var start float64
	open := false
	currentEnd := 0.0

	for _, item := range items {
		if !open {
			start = item.Start
			open = true
		}
		buffer = append(buffer, item.Text)
		duration := item.Duration
		if duration == 0 {
			duration = defaultItemDuration
		}
		currentEnd = item.Start + duration
		if currentEnd-start >= chunkSeconds {
			windows = append(windows, Window{
				Text:  strings.Join(buffer, " "),
				Start: start,
				End:   currentEnd,
			})
			buffer = nil
			open = false
		}
	}
	if open && len(buffer) > 0 {
		windows = append(windows, Window{
			Text:  strings.Join(buffer, " "),
			Start: start,
			End:   currentEnd,
		})
	}
	return windows
}
