package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/nxtprof/nxtprof/pkg/domain/model"
	"github.com/nxtprof/nxtprof/pkg/usecase"
)

// stubSummary returns a canned SBI summary
type stubSummary struct {
	summary *model.FeedbackSummary
	err     error
	calls   int
}

func (s *stubSummary) Summarize(ctx context.Context, message string) (*model.FeedbackSummary, error) {
	s.calls++
	return s.summary, s.err
}

func TestGiveFeedback(t *testing.T) {
	uc, repo := newUseCases(t)
	seedEmployees(t, repo, testEmployees()...)

	created, err := uc.GiveFeedback(userCtx("u1"), "u2", "Great pairing session on the sync engine")
	gt.NoError(t, err).Required()
	gt.S(t, created.ID).NotEqual("")
	gt.V(t, created.GiverUID).Equal("u1")
	gt.V(t, created.RecipientUID).Equal("u2")
	gt.V(t, created.CreatedAt).Equal(fixedNow)
	gt.V(t, created.Summary).Nil()

	t.Run("visible to the recipient", func(t *testing.T) {
		received, err := uc.ListReceivedFeedback(userCtx("u2"))
		gt.NoError(t, err).Required()
		gt.A(t, received).Length(1)
		gt.V(t, received[0].Message).Equal("Great pairing session on the sync engine")
	})

	t.Run("visible to the giver", func(t *testing.T) {
		given, err := uc.ListGivenFeedback(userCtx("u1"))
		gt.NoError(t, err).Required()
		gt.A(t, given).Length(1)
	})

	t.Run("rejects self-feedback", func(t *testing.T) {
		_, err := uc.GiveFeedback(userCtx("u1"), "u1", "I am great")
		gt.Error(t, err).Is(usecase.ErrInvalidArgument)
	})

	t.Run("rejects empty message", func(t *testing.T) {
		_, err := uc.GiveFeedback(userCtx("u1"), "u2", "   ")
		gt.Error(t, err).Is(usecase.ErrInvalidArgument)
	})

	t.Run("rejects unknown recipient", func(t *testing.T) {
		_, err := uc.GiveFeedback(userCtx("u1"), "ghost", "hello")
		gt.Error(t, err).Is(usecase.ErrEmployeeNotFound)
	})
}

func TestGiveFeedbackWithSummary(t *testing.T) {
	stub := &stubSummary{summary: &model.FeedbackSummary{
		Situation: "During the release",
		Behavior:  "Caught a regression in review",
		Impact:    "Saved a rollback",
	}}
	uc, repo := newUseCases(t, usecase.WithSummary(stub))
	seedEmployees(t, repo, testEmployees()...)

	created, err := uc.GiveFeedback(userCtx("u1"), "u2", "You caught that regression before release")
	gt.NoError(t, err).Required()
	gt.V(t, created.Summary).NotNil()
	gt.V(t, created.Summary.Behavior).Equal("Caught a regression in review")
	gt.V(t, stub.calls).Equal(1)
}

func TestGiveFeedbackSummaryFailureIsBestEffort(t *testing.T) {
	stub := &stubSummary{err: context.DeadlineExceeded}
	uc, repo := newUseCases(t, usecase.WithSummary(stub))
	seedEmployees(t, repo, testEmployees()...)

	created, err := uc.GiveFeedback(userCtx("u1"), "u2", "Solid incident handling last night")
	gt.NoError(t, err).Required()
	gt.V(t, created.Summary).Nil()
}

func TestSummarizeFeedback(t *testing.T) {
	stub := &stubSummary{summary: &model.FeedbackSummary{Situation: "s", Behavior: "b", Impact: "i"}}
	uc, _ := newUseCases(t, usecase.WithSummary(stub))

	summary, err := uc.SummarizeFeedback(userCtx("u1"), "draft message")
	gt.NoError(t, err).Required()
	gt.V(t, summary.Situation).Equal("s")

	t.Run("unconfigured", func(t *testing.T) {
		plain, _ := newUseCases(t)
		_, err := plain.SummarizeFeedback(userCtx("u1"), "draft")
		gt.Error(t, err).Is(usecase.ErrInvalidArgument)
	})
}
