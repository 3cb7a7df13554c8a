package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gracebase/steward/internal/apperrors"
	"github.com/gracebase/steward/internal/core/domain"
	portsrepo "github.com/gracebase/steward/internal/core/ports/repositories"
	portssvc "github.com/gracebase/steward/internal/core/ports/services"
	"github.com/gracebase/steward/internal/core/workflow"
	"github.com/gracebase/steward/internal/dto"
)

// reviewService implements the ReviewSvcFacade interface. It is the single
// write path for status transitions: every review runs the relevant machine,
// applies the change in one transaction, queues the outbox notification in
// that transaction and dispatches it only after commit.
type reviewService struct {
	BaseService
	eventRepo        portsrepo.EventRepositoryWithTx
	expenseRepo      portsrepo.ExpenseRepositoryWithTx
	allocationRepo   portsrepo.AllocationRepositoryWithTx
	notificationRepo portsrepo.NotificationRepositoryFacade
	userRepo         portsrepo.UserReader
	dispatcher       portssvc.NotificationDispatcher
}

// NewReviewService creates a new review service with the provided dependencies.
// The dispatcher may be nil, in which case notifications stay queued in the outbox.
func NewReviewService(
	eventRepo portsrepo.EventRepositoryWithTx,
	expenseRepo portsrepo.ExpenseRepositoryWithTx,
	allocationRepo portsrepo.AllocationRepositoryWithTx,
	notificationRepo portsrepo.NotificationRepositoryFacade,
	userRepo portsrepo.UserReader,
	authorizer portssvc.OrganizationAuthorizerSvc,
	dispatcher portssvc.NotificationDispatcher,
) portssvc.ReviewSvcFacade {
	return &reviewService{
		BaseService:      BaseService{OrganizationAuthorizer: authorizer},
		eventRepo:        eventRepo,
		expenseRepo:      expenseRepo,
		allocationRepo:   allocationRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		dispatcher:       dispatcher,
	}
}

// Ensure reviewService implements the ReviewSvcFacade interface
var _ portssvc.ReviewSvcFacade = (*reviewService)(nil)

// resolveActor builds the workflow actor for a review attempt.
func (s *reviewService) resolveActor(ctx context.Context, organizationID, actingUserID, requesterID string) (workflow.Actor, error) {
	role, err := s.OrganizationAuthorizer.ResolveUserRole(ctx, actingUserID, organizationID)
	if err != nil {
		return workflow.Actor{}, err
	}
	return workflow.Actor{
		Role:        role,
		IsRequester: actingUserID == requesterID,
	}, nil
}

// ReviewEvent applies a review action to an event request. Series-scoped
// rejections touch the root and every occurrence in one transaction; a single
// illegal member aborts the whole batch.
func (s *reviewService) ReviewEvent(ctx context.Context, organizationID, eventID, actingUserID string, action domain.ReviewAction, opts domain.ReviewOptions) (*dto.EventReviewOutcome, error) {
	event, err := s.eventRepo.FindEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OrganizationID != organizationID {
		return nil, apperrors.NewNotFoundError("event request not found")
	}

	actor, err := s.resolveActor(ctx, organizationID, actingUserID, event.RequesterID)
	if err != nil {
		return nil, err
	}

	// Only rejection cascades; any other series-wide action is a scope error.
	if opts.Scope == domain.ScopeAll && action != domain.ActionReject {
		return nil, apperrors.ErrInvalidScope
	}

	machine := workflow.Event()
	rule, err := machine.Next(event.Status, action, actor)
	if err != nil {
		return nil, err
	}
	if rule.RequiresNotes && strings.TrimSpace(opts.Notes) == "" {
		return nil, apperrors.ErrMissingReason
	}

	targetIDs, err := resolveSeriesTargets(ctx, s.eventRepo, event, opts.Scope)
	if err != nil {
		return nil, err
	}

	var notification *domain.Notification
	if rule.Notify {
		notification, err = s.buildNotification(ctx, organizationID, domain.KindEvent, eventID, event.RequesterID, actingUserID,
			fmt.Sprintf("Event request %q is now %s", event.Title, rule.To),
			opts.Notes)
		if err != nil {
			return nil, err
		}
	}

	tx, err := s.eventRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.eventRepo.Rollback(ctx, tx) }()

	locked, err := s.eventRepo.FindEventsForUpdate(ctx, tx, targetIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var updatedTarget domain.EventRequest
	for _, id := range targetIDs {
		record := locked[id]
		recordRule, err := machine.Next(record.Status, action, actor)
		if err != nil {
			return nil, err
		}

		updated := record
		updated.Status = recordRule.To
		updated.ReviewerID = &actingUserID
		updated.ReviewerNotes = optionalNotes(opts.Notes)
		updated.Version = record.Version + 1
		updated.LastUpdatedAt = now
		updated.LastUpdatedBy = actingUserID

		if err := s.eventRepo.ApplyEventTransition(ctx, tx, updated, record.Version, now); err != nil {
			return nil, err
		}
		if id == eventID {
			updatedTarget = updated
		}
	}

	if notification != nil {
		if err := s.notificationRepo.SaveNotificationInTx(ctx, tx, *notification); err != nil {
			return nil, err
		}
	}

	if err := s.eventRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Event review committed",
		slog.String("event_id", eventID),
		slog.String("action", string(action)),
		slog.String("new_status", string(updatedTarget.Status)),
		slog.Int("affected", len(targetIDs)))

	return &dto.EventReviewOutcome{
		Event:            dto.ToEventResponse(&updatedTarget),
		AffectedEventIDs: targetIDs,
		Notification:     s.dispatchAfterCommit(ctx, notification),
	}, nil
}

// LegalEventActions lists the review actions available to the acting user.
func (s *reviewService) LegalEventActions(ctx context.Context, organizationID, eventID, actingUserID string) ([]domain.ReviewAction, error) {
	event, err := s.eventRepo.FindEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OrganizationID != organizationID {
		return nil, apperrors.NewNotFoundError("event request not found")
	}
	actor, err := s.resolveActor(ctx, organizationID, actingUserID, event.RequesterID)
	if err != nil {
		return nil, err
	}
	return workflow.Event().LegalActions(event.Status, actor), nil
}

// ReviewExpense applies a review action to an expense request, advancing or
// denying the approval chain.
func (s *reviewService) ReviewExpense(ctx context.Context, organizationID, expenseID, actingUserID string, action domain.ReviewAction, opts domain.ReviewOptions) (*dto.ExpenseReviewOutcome, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.OrganizationID != organizationID {
		return nil, apperrors.NewNotFoundError("expense request not found")
	}
	if opts.Scope == domain.ScopeAll {
		return nil, apperrors.ErrInvalidScope
	}

	actor, err := s.resolveActor(ctx, organizationID, actingUserID, expense.RequesterID)
	if err != nil {
		return nil, err
	}

	machine := workflow.Expense()
	rule, err := machine.Next(expense.Status, action, actor)
	if err != nil {
		return nil, err
	}
	if rule.RequiresNotes && strings.TrimSpace(opts.Notes) == "" {
		return nil, apperrors.ErrMissingReason
	}

	var notification *domain.Notification
	if rule.Notify {
		notification, err = s.buildNotification(ctx, organizationID, domain.KindExpense, expenseID, expense.RequesterID, actingUserID,
			fmt.Sprintf("Expense request for %s is now %s", expense.Amount.StringFixed(2), rule.To),
			opts.Notes)
		if err != nil {
			return nil, err
		}
	}

	tx, err := s.expenseRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.expenseRepo.Rollback(ctx, tx) }()

	locked, err := s.expenseRepo.FindExpenseForUpdate(ctx, tx, expenseID)
	if err != nil {
		return nil, err
	}
	lockedRule, err := machine.Next(locked.Status, action, actor)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updated := *locked
	updated.Status = lockedRule.To
	updated.ReviewerID = &actingUserID
	updated.ReviewerNotes = optionalNotes(opts.Notes)
	updated.Version = locked.Version + 1
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actingUserID

	if err := s.expenseRepo.ApplyExpenseTransition(ctx, tx, updated, locked.Version, now); err != nil {
		return nil, err
	}

	if notification != nil {
		if err := s.notificationRepo.SaveNotificationInTx(ctx, tx, *notification); err != nil {
			return nil, err
		}
	}

	if err := s.expenseRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Expense review committed",
		slog.String("expense_id", expenseID),
		slog.String("action", string(action)),
		slog.String("new_status", string(updated.Status)))

	return &dto.ExpenseReviewOutcome{
		Expense:      dto.ToExpenseResponse(&updated),
		Notification: s.dispatchAfterCommit(ctx, notification),
	}, nil
}

// LegalExpenseActions lists the review actions available to the acting user.
func (s *reviewService) LegalExpenseActions(ctx context.Context, organizationID, expenseID, actingUserID string) ([]domain.ReviewAction, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.OrganizationID != organizationID {
		return nil, apperrors.NewNotFoundError("expense request not found")
	}
	actor, err := s.resolveActor(ctx, organizationID, actingUserID, expense.RequesterID)
	if err != nil {
		return nil, err
	}
	return workflow.Expense().LegalActions(expense.Status, actor), nil
}

// ReviewAllocation applies a review action to a budget allocation request.
// Approvals consult the approved amount to decide between full and partial
// approval; out-of-range amounts fail before anything is written.
func (s *reviewService) ReviewAllocation(ctx context.Context, organizationID, allocationID, actingUserID string, action domain.ReviewAction, opts domain.ReviewOptions) (*dto.AllocationReviewOutcome, error) {
	allocation, err := s.allocationRepo.FindAllocationByID(ctx, allocationID)
	if err != nil {
		return nil, err
	}
	if allocation.OrganizationID != organizationID {
		return nil, apperrors.NewNotFoundError("allocation request not found")
	}
	if opts.Scope == domain.ScopeAll {
		return nil, apperrors.ErrInvalidScope
	}

	actor, err := s.resolveActor(ctx, organizationID, actingUserID, allocation.RequesterID)
	if err != nil {
		return nil, err
	}

	machine := workflow.Allocation()
	rule, err := machine.Next(allocation.Status, action, actor)
	if err != nil {
		return nil, err
	}
	if rule.RequiresNotes && strings.TrimSpace(opts.Notes) == "" {
		return nil, apperrors.ErrMissingReason
	}
	if rule.RequiresAmount {
		if _, err := workflow.ApprovalOutcome(allocation.RequestedAmount, opts.ApprovedAmount); err != nil {
			return nil, err
		}
	}

	var notification *domain.Notification
	if rule.Notify {
		notification, err = s.buildNotification(ctx, organizationID, domain.KindAllocation, allocationID, allocation.RequesterID, actingUserID,
			fmt.Sprintf("Budget allocation request for %s", allocation.RequestedAmount.StringFixed(2)),
			opts.Notes)
		if err != nil {
			return nil, err
		}
	}

	tx, err := s.allocationRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.allocationRepo.Rollback(ctx, tx) }()

	locked, err := s.allocationRepo.FindAllocationForUpdate(ctx, tx, allocationID)
	if err != nil {
		return nil, err
	}
	lockedRule, err := machine.Next(locked.Status, action, actor)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updated := *locked
	updated.Breakdown = allocation.Breakdown
	updated.Status = lockedRule.To
	updated.ReviewerID = &actingUserID
	updated.ReviewerNotes = optionalNotes(opts.Notes)
	updated.Version = locked.Version + 1
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actingUserID

	switch {
	case lockedRule.RequiresAmount:
		target, err := workflow.ApprovalOutcome(locked.RequestedAmount, opts.ApprovedAmount)
		if err != nil {
			return nil, err
		}
		updated.Status = target
		granted := locked.RequestedAmount
		if opts.ApprovedAmount != nil {
			granted = *opts.ApprovedAmount
		}
		updated.ApprovedAmount = &granted
	case action == domain.ActionUnapprove:
		updated.ApprovedAmount = nil
	}

	if err := s.allocationRepo.ApplyAllocationTransition(ctx, tx, updated, locked.Version, now); err != nil {
		return nil, err
	}

	if notification != nil {
		notification.Subject = fmt.Sprintf("Budget allocation request for %s is now %s", updated.RequestedAmount.StringFixed(2), updated.Status)
		if err := s.notificationRepo.SaveNotificationInTx(ctx, tx, *notification); err != nil {
			return nil, err
		}
	}

	if err := s.allocationRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Allocation review committed",
		slog.String("allocation_id", allocationID),
		slog.String("action", string(action)),
		slog.String("new_status", string(updated.Status)))

	return &dto.AllocationReviewOutcome{
		Allocation:   dto.ToAllocationResponse(&updated),
		Notification: s.dispatchAfterCommit(ctx, notification),
	}, nil
}

// LegalAllocationActions lists the review actions available to the acting user.
func (s *reviewService) LegalAllocationActions(ctx context.Context, organizationID, allocationID, actingUserID string) ([]domain.ReviewAction, error) {
	allocation, err := s.allocationRepo.FindAllocationByID(ctx, allocationID)
	if err != nil {
		return nil, err
	}
	if allocation.OrganizationID != organizationID {
		return nil, apperrors.NewNotFoundError("allocation request not found")
	}
	actor, err := s.resolveActor(ctx, organizationID, actingUserID, allocation.RequesterID)
	if err != nil {
		return nil, err
	}
	return workflow.Allocation().LegalActions(allocation.Status, actor), nil
}

// buildNotification assembles the outbox row for a review outcome. The
// requester must still exist; a missing requester aborts the review.
func (s *reviewService) buildNotification(ctx context.Context, organizationID string, kind domain.RequestKind, requestID, requesterID, actingUserID, subject, notes string) (*domain.Notification, error) {
	requester, err := s.userRepo.FindUserByID(ctx, requesterID)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve notification recipient",
			slog.String("requester_id", requesterID))
		return nil, err
	}

	body := fmt.Sprintf("Hello %s,\n\n%s.\n", requester.Name, subject)
	if strings.TrimSpace(notes) != "" {
		body += fmt.Sprintf("\nReviewer notes: %s\n", notes)
	}

	now := time.Now()
	return &domain.Notification{
		NotificationID: uuid.NewString(),
		OrganizationID: organizationID,
		RequestKind:    kind,
		RequestID:      requestID,
		RecipientEmail: requester.Email,
		Subject:        subject,
		Body:           body,
		Status:         domain.NotificationPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actingUserID,
		},
	}, nil
}

// dispatchAfterCommit delivers the outbox row once the transaction is safely
// committed. Delivery failures are recorded and reported as a warning; they
// never undo the transition.
func (s *reviewService) dispatchAfterCommit(ctx context.Context, notification *domain.Notification) domain.NotificationOutcome {
	if notification == nil {
		return domain.NotificationNone
	}
	if s.dispatcher == nil {
		return domain.NotificationQueued
	}

	if err := s.dispatcher.Dispatch(ctx, *notification); err != nil {
		s.GetLogger(ctx).Warn("Notification dispatch failed",
			slog.String("notification_id", notification.NotificationID),
			slog.String("recipient", notification.RecipientEmail),
			slog.String("error", err.Error()))
		if markErr := s.notificationRepo.MarkNotificationFailed(ctx, notification.NotificationID, err.Error(), time.Now()); markErr != nil {
			s.LogError(ctx, markErr, "Failed to record notification failure",
				slog.String("notification_id", notification.NotificationID))
		}
		return domain.NotificationFailed
	}

	if err := s.notificationRepo.MarkNotificationDelivered(ctx, notification.NotificationID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to record notification delivery",
			slog.String("notification_id", notification.NotificationID))
	}
	return domain.NotificationSent
}

func optionalNotes(notes string) *string {
	trimmed := strings.TrimSpace(notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
