package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nxtprof/nxtprof/pkg/domain/model"
	"github.com/nxtprof/nxtprof/pkg/utils/logging"
)

// GiveFeedback stores one piece of peer feedback from the caller to another
// employee. When the AI helper is configured the structured summary is
// attached best-effort; a summarization failure never blocks the feedback.
func (uc *UseCases) GiveFeedback(ctx context.Context, recipientUID, message string) (*model.PeerFeedback, error) {
	token, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(message) == "" {
		return nil, goerr.Wrap(ErrInvalidArgument, "feedback message is required")
	}
	if recipientUID == token.Sub {
		return nil, goerr.Wrap(ErrInvalidArgument, "feedback cannot be given to yourself")
	}

	if _, err := uc.repo.Employee().Get(ctx, recipientUID); err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrEmployeeNotFound, "unknown recipient", goerr.V("uid", recipientUID))
		}
		return nil, goerr.Wrap(err, "failed to get recipient")
	}

	fb := &model.PeerFeedback{
		GiverUID:     token.Sub,
		RecipientUID: recipientUID,
		Message:      message,
		CreatedAt:    uc.now(),
	}

	if uc.summaryService != nil {
		summary, err := uc.summaryService.Summarize(ctx, message)
		if err != nil {
			logging.From(ctx).Warn("Failed to summarize feedback, storing without summary",
				"error", err.Error())
		} else {
			fb.Summary = summary
		}
	}

	created, err := uc.repo.Feedback().Create(ctx, fb)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store feedback")
	}
	return created, nil
}

// SummarizeFeedback previews the structured form of a draft message without
// storing anything
func (uc *UseCases) SummarizeFeedback(ctx context.Context, message string) (*model.FeedbackSummary, error) {
	if _, err := requireUser(ctx); err != nil {
		return nil, err
	}
	if uc.summaryService == nil {
		return nil, goerr.Wrap(ErrInvalidArgument, "AI summarization is not configured")
	}
	if strings.TrimSpace(message) == "" {
		return nil, goerr.Wrap(ErrInvalidArgument, "feedback message is required")
	}

	summary, err := uc.summaryService.Summarize(ctx, message)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to summarize feedback")
	}
	return summary, nil
}

// ListReceivedFeedback returns the feedback the caller has received, newest
// first
func (uc *UseCases) ListReceivedFeedback(ctx context.Context) ([]*model.PeerFeedback, error) {
	token, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	items, err := uc.repo.Feedback().ListByRecipient(ctx, token.Sub)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list received feedback")
	}
	return items, nil
}

// ListGivenFeedback returns the feedback the caller has given, newest first
func (uc *UseCases) ListGivenFeedback(ctx context.Context) ([]*model.PeerFeedback, error) {
	token, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	items, err := uc.repo.Feedback().ListByGiver(ctx, token.Sub)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list given feedback")
	}
	return items, nil
}
