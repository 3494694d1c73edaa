package tests

// Replay test validates workflow determinism by replaying a recorded history.
//
// The test is a stub until we have a recorded history JSON in tests/testdata/.
// To generate:
//
//  1. Run the worker + start a generation via the CLI (wizard generate --case-id ID)
//  2. Export history: temporal workflow show --workflow-id case-generation-ID -o json > tests/testdata/case_generation_history.json
//  3. Uncomment the test below.
//
// import (
//     "testing"
//     "go.temporal.io/sdk/worker"
//     "github.com/landlord-heaven/wizard-go/internal/temporal/workflows"
// )
//
// func TestReplayCaseGeneration(t *testing.T) {
//     replayer := worker.NewWorkflowReplayer()
//     replayer.RegisterWorkflow(workflows.CaseGenerationWorkflow)
//     err := replayer.ReplayWorkflowHistoryFromJSONFile(nil, "testdata/case_generation_history.json")
//     if err != nil {
//         t.Fatalf("replay failed: %v", err)
//     }
// }
