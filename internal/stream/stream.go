package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/landlord-heaven/wizard-go/internal/domain"
	"github.com/landlord-heaven/wizard-go/internal/temporal/querier"
	"github.com/landlord-heaven/wizard-go/internal/uischema"
)

// Config controls SSE stream behavior.
type Config struct {
	PollInterval time.Duration
	MaxDuration  time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		PollInterval: 2 * time.Second,
		MaxDuration:  30 * time.Minute,
	}
}

// Handler serves SSE events for a case's generation state changes. The {id}
// path value is the case ID.
func Handler(q querier.GenerationQuerier, cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caseID := r.PathValue("id")
		if caseID == "" {
			http.Error(w, "case id required", http.StatusBadRequest)
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming not supported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		ctx, cancel := context.WithTimeout(r.Context(), cfg.MaxDuration)
		defer cancel()

		writeSSE(w, flusher, Event{
			Type:      EventRunStarted,
			Timestamp: time.Now().UTC(),
			CaseID:    caseID,
		})

		// Initial state snapshot.
		result, err := q.GetGenerationState(ctx, caseID)
		if err != nil {
			writeSSE(w, flusher, Event{
				Type:      EventRunError,
				Timestamp: time.Now().UTC(),
				CaseID:    caseID,
				Data:      ErrorData{Message: err.Error()},
			})
			return
		}

		schema := uischema.Build(result.State)
		writeSSE(w, flusher, Event{
			Type:      EventStateSnapshot,
			Timestamp: time.Now().UTC(),
			CaseID:    caseID,
			Data: StateSnapshotData{
				Phase:    result.State.CurrentPhase,
				State:    result.State,
				UISchema: schema,
			},
		})

		prev := result.State

		if prev.ShouldTerminate || result.Reason != "" {
			writeSSE(w, flusher, Event{
				Type:      EventRunFinished,
				Timestamp: time.Now().UTC(),
				CaseID:    caseID,
				Data:      map[string]any{"reason": string(result.Reason)},
			})
			return
		}

		// Poll loop.
		ticker := time.NewTicker(cfg.PollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				result, err = q.GetGenerationState(ctx, caseID)
				if err != nil {
					writeSSE(w, flusher, Event{
						Type:      EventRunError,
						Timestamp: time.Now().UTC(),
						CaseID:    caseID,
						Data:      ErrorData{Message: err.Error()},
					})
					return
				}

				current := result.State

				if current.CurrentPhase != prev.CurrentPhase {
					writeSSE(w, flusher, Event{
						Type:      EventStepFinished,
						Timestamp: time.Now().UTC(),
						CaseID:    caseID,
						Data:      StepData{Phase: prev.CurrentPhase},
					})
					writeSSE(w, flusher, Event{
						Type:      EventStepStarted,
						Timestamp: time.Now().UTC(),
						CaseID:    caseID,
						Data:      StepData{Phase: current.CurrentPhase},
					})
				}

				if patches := computePatches(prev, current); len(patches) > 0 {
					schema = uischema.Build(current)
					writeSSE(w, flusher, Event{
						Type:      EventStateDelta,
						Timestamp: time.Now().UTC(),
						CaseID:    caseID,
						Data: StateDeltaData{
							Phase:    current.CurrentPhase,
							Patches:  patches,
							UISchema: schema,
						},
					})
				}

				if current.ShouldTerminate || result.Reason != "" {
					writeSSE(w, flusher, Event{
						Type:      EventRunFinished,
						Timestamp: time.Now().UTC(),
						CaseID:    caseID,
						Data:      map[string]any{"reason": string(result.Reason)},
					})
					return
				}
				prev = current
			}
		}
	}
}

// computePatches diffs the fields the preview UI watches. Field-specific
// comparison avoids a generic deep-diff dependency.
func computePatches(prev, current domain.GenerationState) []Patch {
	var patches []Patch
	if current.CurrentPhase != prev.CurrentPhase {
		patches = append(patches, Patch{Op: "replace", Path: "/current_phase", Value: current.CurrentPhase})
	}
	if current.Review != prev.Review {
		patches = append(patches, Patch{Op: "replace", Path: "/review", Value: current.Review})
	}
	if len(current.Documents) != len(prev.Documents) {
		patches = append(patches, Patch{Op: "replace", Path: "/documents", Value: current.Documents})
	}
	if (current.Error == nil) != (prev.Error == nil) {
		patches = append(patches, Patch{Op: "replace", Path: "/error", Value: current.Error})
	}
	return patches
}

func writeSSE(w http.ResponseWriter, flusher http.Flusher, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data)
	flusher.Flush()
}
