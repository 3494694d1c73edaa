package stream_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landlord-heaven/wizard-go/internal/domain"
	"github.com/landlord-heaven/wizard-go/internal/stream"
	"github.com/landlord-heaven/wizard-go/internal/temporal/activities"
	"github.com/landlord-heaven/wizard-go/internal/temporal/querier"
	"github.com/landlord-heaven/wizard-go/internal/temporal/workflows"
)

type stubQuerier struct {
	state     *workflows.WorkflowResult
	callCount int
	err       error
}

func (s *stubQuerier) ListWorkflows(_ context.Context, _ querier.ListOptions) ([]querier.WorkflowSummary, error) {
	return nil, nil
}

func (s *stubQuerier) GetGenerationState(_ context.Context, _ string) (*workflows.WorkflowResult, error) {
	s.callCount++
	return s.state, s.err
}

func (s *stubQuerier) DescribeWorkflow(_ context.Context, _ string) (*querier.WorkflowDescription, error) {
	return nil, nil
}

func (s *stubQuerier) SubmitReview(_ context.Context, _ string, _ activities.ReviewResponse) (string, error) {
	return "", nil
}

func newStream(t *testing.T, q querier.GenerationQuerier) *httptest.Server {
	t.Helper()
	cfg := stream.Config{PollInterval: 50 * time.Millisecond, MaxDuration: 5 * time.Second}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/cases/{id}/generation/stream", stream.Handler(q, cfg))
	return httptest.NewServer(mux)
}

func TestHandler_CompletedGeneration(t *testing.T) {
	c, err := domain.NewCase(domain.ProductNoticeOnly, domain.JurisdictionEngland)
	require.NoError(t, err)
	state := domain.NewGenerationState(c)
	state.CurrentPhase = "completed"
	state.ShouldTerminate = true

	q := &stubQuerier{
		state: &workflows.WorkflowResult{State: state, Reason: workflows.ReasonCompleted},
	}
	ts := newStream(t, q)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/cases/" + c.CaseID + "/generation/stream")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := parseSSE(t, resp)
	require.True(t, len(events) >= 3, "expected at least 3 events (RUN_STARTED, STATE_SNAPSHOT, RUN_FINISHED), got %d", len(events))
	assert.Equal(t, "RUN_STARTED", events[0].Type)
	assert.Equal(t, "STATE_SNAPSHOT", events[1].Type)
	assert.Equal(t, "RUN_FINISHED", events[2].Type)
	assert.Contains(t, events[2].Data, "completed")
}

func TestHandler_ErrorQuerying(t *testing.T) {
	q := &stubQuerier{err: assert.AnError}
	ts := newStream(t, q)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/cases/case-1/generation/stream")
	require.NoError(t, err)
	defer resp.Body.Close()

	events := parseSSE(t, resp)
	require.True(t, len(events) >= 2)
	assert.Equal(t, "RUN_STARTED", events[0].Type)
	assert.Equal(t, "RUN_ERROR", events[1].Type)
}

type sseEvent struct {
	Type string
	Data string
}

func parseSSE(t *testing.T, resp *http.Response) []sseEvent {
	t.Helper()
	var events []sseEvent
	scanner := bufio.NewScanner(resp.Body)
	var current sseEvent
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "event: ") {
			current.Type = strings.TrimPrefix(line, "event: ")
		} else if strings.HasPrefix(line, "data: ") {
			current.Data = strings.TrimPrefix(line, "data: ")
		} else if line == "" && current.Type != "" {
			events = append(events, current)
			current = sseEvent{}
		}
	}
	return events
}

func TestEventSerialization(t *testing.T) {
	event := stream.Event{
		Type:      stream.EventRunStarted,
		Timestamp: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		CaseID:    "case-test",
	}

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "RUN_STARTED", decoded["type"])
	assert.Equal(t, "case-test", decoded["case_id"])
}
