package wizard_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landlord-heaven/wizard-go/internal/domain"
	"github.com/landlord-heaven/wizard-go/internal/testutil"
	"github.com/landlord-heaven/wizard-go/internal/wizard"
)

func newSession(t *testing.T) (*wizard.Session, *testutil.MemEvidence) {
	t.Helper()
	store := testutil.NewMemCaseStore()
	evidence := testutil.NewMemEvidence()
	engine := wizard.NewEngine(store, evidence, nil)
	return wizard.NewSession(engine), evidence
}

func startSession(t *testing.T, s *wizard.Session) {
	t.Helper()
	require.NoError(t, s.Start(context.Background(), domain.ProductCompletePack, domain.JurisdictionEngland))
	require.Equal(t, wizard.StateQuestion, s.State())
	require.Equal(t, "eviction_intro", s.Current().ID)
}

// submit answers the current question and requires the step to succeed.
func submit(t *testing.T, s *wizard.Session, answer any) {
	t.Helper()
	id := s.Current().ID
	require.NoError(t, s.Submit(context.Background(), answer), "question %s", id)
}

func TestSessionStartAndFirstSteps(t *testing.T) {
	t.Parallel()
	s, _ := newSession(t)
	startSession(t, s)

	submit(t, s, true) // intro acknowledged
	assert.Equal(t, "tenancy_type", s.Current().ID)
	submit(t, s, "ast")
	assert.Equal(t, "tenancy_start_date", s.Current().ID)
	assert.Len(t, s.History(), 2)
}

// Progress never decreases while answering forward; Back decreases it.
func TestSessionProgressMonotonic(t *testing.T) {
	t.Parallel()
	s, _ := newSession(t)
	startSession(t, s)

	steps := []any{
		true, "ast", "2023-05-01", "no",
		map[string]any{"rent_amount": 1000.0, "rent_period": "monthly"},
		"no",
		// Picking three reasons reveals four dependent questions at once;
		// the displayed progress still must not drop.
		[]any{"arrears", "antisocial", "breach"},
		3.0,    // arrears_months
		2850.0, // arrears_amount
		"no",   // asb_conviction
		"late-night parties in breach of clause 4",
	}
	last := s.Progress()
	for _, answer := range steps {
		submit(t, s, answer)
		require.GreaterOrEqual(t, s.Progress(), last, "question %v", answer)
		last = s.Progress()
	}

	require.True(t, s.Back())
	assert.Less(t, s.Progress(), last)
}

func TestSessionStructuralErrorStaysOnQuestion(t *testing.T) {
	t.Parallel()
	s, _ := newSession(t)
	startSession(t, s)
	submit(t, s, true)

	err := s.Submit(context.Background(), "narrowboat")
	require.Error(t, err)
	assert.Equal(t, wizard.StateQuestion, s.State())
	assert.Equal(t, "tenancy_type", s.Current().ID)
	assert.Empty(t, s.History()[1:])
}

// An over-cap deposit holds the session on the deposit question until the
// answer is amended; it is never a server 422.
func TestSessionDepositCapBlocksNext(t *testing.T) {
	t.Parallel()
	s, _ := newSession(t)
	startSession(t, s)

	for _, answer := range []any{
		true, "ast", "2023-05-01", "no",
		map[string]any{"rent_amount": 1000.0, "rent_period": "monthly"},
		"yes", // deposit taken
	} {
		submit(t, s, answer)
	}
	require.Equal(t, "deposit_amount", s.Current().ID)

	err := s.Submit(context.Background(), 2500.0)
	var blocked *wizard.BlockedError
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, "DEPOSIT_OVER_CAP", blocked.Issues[0].Code)
	assert.Equal(t, wizard.StateQuestion, s.State())
	assert.Equal(t, "deposit_amount", s.Current().ID, "session must not advance past the cap")
	assert.NotEmpty(t, s.Blocked())

	// Amending the answer clears the gate and advances.
	submit(t, s, 1100.0)
	assert.Empty(t, s.Blocked())
	assert.Equal(t, "deposit_protected", s.Current().ID)
}

// Compliance failures come back as warnings and the flow keeps moving.
func TestSessionComplianceAdvances(t *testing.T) {
	t.Parallel()
	s, _ := newSession(t)
	startSession(t, s)

	for _, answer := range []any{
		true, "ast", "2023-05-01", "no",
		map[string]any{"rent_amount": 1000.0, "rent_period": "monthly"},
		"no",                // no deposit
		[]any{"no_fault"},   // reason
		"yes", "C",          // epc given, rating
		"no",                // no gas
	} {
		submit(t, s, answer)
	}
	require.Equal(t, "how_to_rent_given", s.Current().ID)

	require.NoError(t, s.Submit(context.Background(), "no"))
	assert.Equal(t, wizard.StateQuestion, s.State())
	assert.NotEqual(t, "how_to_rent_given", s.Current().ID, "session must advance despite the failure")

	var found bool
	for _, w := range s.Warnings() {
		if w.Code == "HOW_TO_RENT_MISSING" {
			found = true
		}
	}
	assert.True(t, found, "compliance failure recorded as a warning")
}

// Two Backs after two forward steps restore the exact question/answer pairs.
func TestSessionBackRestoresHistory(t *testing.T) {
	t.Parallel()
	s, _ := newSession(t)
	startSession(t, s)
	submit(t, s, true)

	require.Equal(t, "tenancy_type", s.Current().ID)
	submit(t, s, "ast")
	require.Equal(t, "tenancy_start_date", s.Current().ID)
	submit(t, s, "2023-05-01")

	require.True(t, s.Back())
	assert.Equal(t, "tenancy_start_date", s.Current().ID)
	assert.Equal(t, "2023-05-01", s.RestoredAnswer())

	require.True(t, s.Back())
	assert.Equal(t, "tenancy_type", s.Current().ID)
	assert.Equal(t, "ast", s.RestoredAnswer())
}

func TestSessionBackAtStartIsNoop(t *testing.T) {
	t.Parallel()
	s, _ := newSession(t)
	startSession(t, s)
	assert.False(t, s.Back())
	assert.Equal(t, "eviction_intro", s.Current().ID)
}

// reentrantService triggers a second Submit while the first is saving.
type reentrantService struct {
	wizard.SessionService
	session *wizard.Session
	inner   error
}

func (r *reentrantService) SubmitAnswer(ctx context.Context, caseID, questionID string, answer any) (domain.AnswerOutcome, error) {
	r.inner = r.session.Submit(ctx, answer)
	return r.SessionService.SubmitAnswer(ctx, caseID, questionID, answer)
}

func TestSessionDoubleSubmitGuard(t *testing.T) {
	t.Parallel()
	store := testutil.NewMemCaseStore()
	engine := wizard.NewEngine(store, testutil.NewMemEvidence(), nil)

	svc := &reentrantService{SessionService: engine}
	s := wizard.NewSession(svc)
	svc.session = s
	startSession(t, s)

	require.NoError(t, s.Submit(context.Background(), true))
	assert.ErrorIs(t, svc.inner, wizard.ErrSubmitInFlight)
	assert.Len(t, s.History(), 1, "only the first submit may freeze an answer")
}

// A three-file batch failing on file two reports one error and does not
// attach the batch to the session.
func TestSessionUploadBatchAborts(t *testing.T) {
	t.Parallel()
	s, evidence := newSession(t)
	startSession(t, s)
	evidence.FailAfter = 1

	done, err := s.UploadBatch(context.Background(), []wizard.Upload{
		{Name: "one.pdf", Size: 3, Body: strings.NewReader("one")},
		{Name: "two.pdf", Size: 3, Body: strings.NewReader("two")},
		{Name: "three.pdf", Size: 5, Body: strings.NewReader("three")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3")
	assert.Nil(t, done)
	assert.Empty(t, s.PendingUploads())
	assert.Len(t, evidence.Objects, 1, "the third file is never attempted")
}

func TestSessionUploadBatchSuccess(t *testing.T) {
	t.Parallel()
	s, _ := newSession(t)
	startSession(t, s)

	done, err := s.UploadBatch(context.Background(), []wizard.Upload{
		{Name: "ledger.pdf", Size: 6, Body: strings.NewReader("ledger")},
		{Name: "epc.pdf", Size: 3, Body: strings.NewReader("epc")},
	})
	require.NoError(t, err)
	assert.Len(t, done, 2)
	assert.Len(t, s.PendingUploads(), 2)

	// The next successful answer carries the uploads in its history frame.
	submit(t, s, true)
	require.Len(t, s.History(), 1)
	assert.Len(t, s.History()[0].Uploads, 2)
	assert.Empty(t, s.PendingUploads())
}
