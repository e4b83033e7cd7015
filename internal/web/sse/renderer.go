package sse

import (
	"bytes"
	"context"

	"github.com/mcoot/wordsearch/internal/model"
	"github.com/mcoot/wordsearch/internal/web/templates/components"
)

// HTMLFormatter renders events for htmx clients. Timer events become a
// timer fragment; anything that changes the board becomes a "refresh"
// event so the page re-fetches it.
func HTMLFormatter(event model.Event) ([]byte, bool) {
	switch event.Type {
	case model.EventTimer:
		payload, ok := event.Payload.(model.TimerPayload)
		if !ok {
			return nil, false
		}
		var buf bytes.Buffer
		if err := components.Timer(payload.Elapsed).Render(context.Background(), &buf); err != nil {
			return nil, false
		}
		return formatSSEMessage("timer", buf.String()), true

	case model.EventSelectionChanged, model.EventWordFound, model.EventGameComplete,
		model.EventGameReset, model.EventWordsToggled:
		return formatSSEMessage("refresh", string(event.Type)), true

	case model.EventGameAbandoned:
		return formatSSEMessage("abandoned", `<script>window.location.href = "/";</script>`), true
	}
	return nil, false
}
