// Command wizard is a CLI tool for driving case generation workflows.
//
// Usage:
//
//	wizard generate --case-id ID
//	wizard status   --case-id ID
//	wizard state    --case-id ID
//	wizard approve  --case-id ID --by USER
//	wizard reject   --case-id ID --by USER --reason R
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"go.temporal.io/sdk/client"

	"github.com/landlord-heaven/wizard-go/internal/config"
	"github.com/landlord-heaven/wizard-go/internal/temporal/activities"
	"github.com/landlord-heaven/wizard-go/internal/temporal/querier"
	"github.com/landlord-heaven/wizard-go/internal/temporal/workflows"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "generate":
		cmdGenerate(os.Args[2:])
	case "status":
		cmdStatus(os.Args[2:])
	case "state":
		cmdState(os.Args[2:])
	case "approve":
		cmdApprove(os.Args[2:])
	case "reject":
		cmdReject(os.Args[2:])
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: wizard <generate|status|state|approve|reject> [flags]")
	os.Exit(1)
}

func dial() client.Client {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	c, err := client.Dial(client.Options{
		HostPort:  cfg.TemporalHostPort,
		Namespace: cfg.TemporalNamespace,
	})
	if err != nil {
		log.Fatalf("unable to create Temporal client: %v", err)
	}
	return c
}

func caseIDFlag(fs *flag.FlagSet, args []string) string {
	caseID := fs.String("case-id", "", "case ID (required)")
	_ = fs.Parse(args)
	if *caseID == "" {
		fs.Usage()
		os.Exit(1)
	}
	return *caseID
}

func cmdGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	caseID := caseIDFlag(fs, args)

	c := dial()
	defer c.Close()

	q := querier.New(c, nil)
	workflowID, err := q.StartGeneration(context.Background(), caseID)
	if err != nil {
		log.Fatalf("failed to start generation: %v", err)
	}
	fmt.Printf("started generation %s\n", workflowID)
}

func cmdStatus(args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	caseID := caseIDFlag(fs, args)

	c := dial()
	defer c.Close()

	wfID := workflows.WorkflowID(caseID)
	desc, err := c.DescribeWorkflowExecution(context.Background(), wfID, "")
	if err != nil {
		log.Fatalf("failed to describe workflow: %v", err)
	}

	data, err := json.MarshalIndent(map[string]any{
		"case_id":     caseID,
		"workflow_id": wfID,
		"status":      desc.WorkflowExecutionInfo.Status.String(),
		"start_time":  desc.WorkflowExecutionInfo.StartTime,
		"close_time":  desc.WorkflowExecutionInfo.CloseTime,
	}, "", "  ")
	if err != nil {
		log.Fatalf("failed to marshal status: %v", err)
	}
	fmt.Println(string(data))
}

func cmdState(args []string) {
	fs := flag.NewFlagSet("state", flag.ExitOnError)
	caseID := caseIDFlag(fs, args)

	c := dial()
	defer c.Close()

	q := querier.New(c, nil)
	result, err := q.GetGenerationState(context.Background(), caseID)
	if err != nil {
		log.Fatalf("failed to query generation state: %v", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("failed to marshal state: %v", err)
	}
	fmt.Println(string(data))
}

func cmdApprove(args []string) {
	fs := flag.NewFlagSet("approve", flag.ExitOnError)
	caseID := fs.String("case-id", "", "case ID (required)")
	by := fs.String("by", "", "reviewer identity (required)")
	_ = fs.Parse(args)

	if *caseID == "" || *by == "" {
		fs.Usage()
		os.Exit(1)
	}

	sendReview(*caseID, activities.ReviewResponse{Approved: true, By: *by})
}

func cmdReject(args []string) {
	fs := flag.NewFlagSet("reject", flag.ExitOnError)
	caseID := fs.String("case-id", "", "case ID (required)")
	by := fs.String("by", "", "reviewer identity (required)")
	reason := fs.String("reason", "", "rejection reason (required)")
	_ = fs.Parse(args)

	if *caseID == "" || *by == "" || *reason == "" {
		fs.Usage()
		os.Exit(1)
	}

	sendReview(*caseID, activities.ReviewResponse{Approved: false, By: *by, Reason: *reason})
}

func sendReview(caseID string, resp activities.ReviewResponse) {
	c := dial()
	defer c.Close()

	q := querier.New(c, nil)
	result, err := q.SubmitReview(context.Background(), caseID, resp)
	if err != nil {
		log.Fatalf("failed to submit review: %v", err)
	}
	fmt.Printf("review result: %s\n", result)
}
