package usecase

import (
	"context"
	"go-careerbridge/internal/store"
	"go-careerbridge/pkg/apperror"
	"go-careerbridge/pkg/logger"
	"go-careerbridge/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// Lanes group requests that write the same part of the state. A new request
// on a lane supersedes the one in flight.
const (
	laneUserSession  = "user/session"
	laneUserProfile  = "user/profile"
	laneResumeList   = "user/resumes"
	laneResumeDetail = "user/resume/current"
	laneResumeFlag   = "user/resume/default"

	laneJobList    = "job/list"
	laneJobCurrent = "job/current"
	laneJobSearch  = "job/search"
	laneJobSimilar = "job/similar"
	laneJobSaved   = "job/saved"
	laneJobStats   = "job/stats"

	laneCompanyList    = "company/list"
	laneCompanyMine    = "company/mine"
	laneCompanyCurrent = "company/current"
	laneCompanySearch  = "company/search"
	laneCompanyTop     = "company/top"
	laneCompanyStats   = "company/stats"

	laneAppMine         = "application/mine"
	laneAppReceived     = "application/received"
	laneAppAll          = "application/all"
	laneAppCurrent      = "application/current"
	laneAppStats        = "application/stats"
	laneAppConversation = "application/conversation"
)

// recordLane is the lane for mutations of a single record.
func recordLane(kind, id string) string {
	return kind + ":" + id
}

// run executes one async action: Pending, the repository call, then
// Fulfilled with the result or Rejected with the backend message (fallback
// when the backend sent none).
func run[T any](ctx context.Context, st *store.Store, op store.Op, lane, fallback string, call func(context.Context) (T, error)) (T, error) {
	return runWith(ctx, st, op, lane, fallback, call, func(v T) any { return v })
}

// runWith is run with a custom Fulfilled payload.
func runWith[T any](ctx context.Context, st *store.Store, op store.Op, lane, fallback string, call func(context.Context) (T, error), payload func(T) any) (T, error) {
	ctx, req := st.Begin(ctx, op, lane)
	v, err := call(ctx)
	if err != nil {
		msg := apperror.MessageOr(err, fallback)
		if st.Reject(req, msg) {
			logger.Log.Warn("action rejected", "op", string(op), "status", apperror.StatusCode(err), "error", err)
		}
		var zero T
		return zero, err
	}
	st.Fulfill(req, payload(v))
	return v, nil
}

// runErr is run for endpoints whose only result is success. payload is
// what the reducer receives on success, usually the affected id.
func runErr(ctx context.Context, st *store.Store, op store.Op, lane, fallback string, payload any, call func(context.Context) error) error {
	_, err := runWith(ctx, st, op, lane, fallback, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, call(ctx)
	}, func(struct{}) any { return payload })
	return err
}

// check validates in before any request is made. A failure is committed as
// a rejection of op and returned.
func check(st *store.Store, v *validator.Validate, op store.Op, in any) error {
	if err := validation.Struct(v, in); err != nil {
		rejectLocal(st, op, err)
		return err
	}
	return nil
}

// rejectLocal commits err as a rejection of op without a network call.
func rejectLocal(st *store.Store, op store.Op, err error) {
	_, req := st.Begin(context.Background(), op, "")
	st.Reject(req, apperror.MessageOr(err, "Invalid input"))
	logger.Log.Debug("action rejected locally", "op", string(op), "error", err)
}
