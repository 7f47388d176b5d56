package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/rolecolor-agent/internal/pipeline"
)

// errStreamingUnsupported is returned when the ResponseWriter cannot flush.
var errStreamingUnsupported = errors.New("streaming not supported")

// progressStream emits pipeline progress over Server-Sent Events. Each
// pipeline step becomes a "step" event carrying the typed ProgressEvent; a
// run ends with exactly one terminal "complete" or "error" event.
type progressStream struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// runCompletion is the payload of the terminal "complete" event.
type runCompletion struct {
	RunID        string `json:"run_id"`
	Status       string `json:"status"`
	DominantRole string `json:"dominant_role,omitempty"`
}

func newProgressStream(w http.ResponseWriter) (*progressStream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errStreamingUnsupported
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	return &progressStream{w: w, flusher: flusher}, nil
}

// Step forwards one pipeline progress event to the client.
func (p *progressStream) Step(event pipeline.ProgressEvent) error {
	return p.send("step", event)
}

// Fail emits the terminal error event. Stream errors at this point are
// unrecoverable, so the return value is dropped.
func (p *progressStream) Fail(message string) {
	p.send("error", map[string]string{"error": message}) //nolint:errcheck
}

// Complete emits the terminal event summarizing a finished run.
func (p *progressStream) Complete(result *pipeline.Result) {
	completion := runCompletion{Status: "completed"}
	if result.RunID != uuid.Nil {
		completion.RunID = result.RunID.String()
	}
	if result.Score != nil {
		completion.DominantRole = result.Score.DominantRole.String()
	}
	p.send("complete", completion) //nolint:errcheck
}

func (p *progressStream) send(event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(p.w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	p.flusher.Flush()
	return nil
}
