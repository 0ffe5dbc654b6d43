package store

import (
	"fmt"
	"go-careerbridge/internal/domain"
)

type ApplicationState struct {
	Applications         []*domain.Application
	MyApplications       []*domain.Application
	ReceivedApplications []*domain.Application
	CurrentApplication   *domain.Application
	CurrentConversation  *domain.Conversation
	Stats                *domain.ApplicationStats

	Loading        bool
	AppLoading     bool
	MessageLoading bool
	StatsLoading   bool

	Error   string
	Success string

	Pagination         domain.Pagination
	ReceivedPagination domain.Pagination
}

func (s *ApplicationState) loadingFlag(op Op) *bool {
	switch op {
	case OpGetMyApplications, OpGetReceivedApplications, OpGetAllApplications:
		return &s.Loading
	case OpApplyForJob, OpGetApplicationByID, OpUpdateApplicationStatus, OpWithdrawApplication,
		OpRateApplication, OpBulkUpdateApplications:
		return &s.AppLoading
	case OpSendMessage, OpGetConversation:
		return &s.MessageLoading
	case OpGetApplicationStats:
		return &s.StatsLoading
	}
	return nil
}

func reduceApplication(s ApplicationState, a Action) ApplicationState {
	switch a := a.(type) {
	case Pending:
		setFlag(s.loadingFlag(a.Op), true)
		s.Error = ""
	case Rejected:
		setFlag(s.loadingFlag(a.Op), false)
		s.Error = a.Error
	case Fulfilled:
		setFlag(s.loadingFlag(a.Op), false)
		s = s.fulfill(a)
	case ClearError:
		s.Error = ""
	case ClearSuccess:
		s.Success = ""
	case ResetCurrent:
		s.CurrentApplication = nil
	case ClearConversation:
		s.CurrentConversation = nil
	case AddMessageLocally:
		s.CurrentConversation = appendMessage(s.CurrentConversation, a.Message)
	}
	return s
}

func (s ApplicationState) fulfill(a Fulfilled) ApplicationState {
	switch a.Op {
	case OpApplyForJob:
		if app, ok := a.Payload.(*domain.Application); ok {
			s.MyApplications = prepend(s.MyApplications, app)
			s.Success = "Application submitted successfully"
		}

	case OpGetMyApplications:
		if page, ok := a.Payload.(*domain.Page[*domain.Application]); ok {
			s.MyApplications = page.Items
			s.Pagination = page.Pagination
		}

	case OpGetReceivedApplications:
		if page, ok := a.Payload.(*domain.Page[*domain.Application]); ok {
			s.ReceivedApplications = page.Items
			s.ReceivedPagination = page.Pagination
		}

	case OpGetAllApplications:
		if page, ok := a.Payload.(*domain.Page[*domain.Application]); ok {
			s.Applications = page.Items
			s.Pagination = page.Pagination
		}

	case OpGetApplicationByID:
		if app, ok := a.Payload.(*domain.Application); ok {
			s.CurrentApplication = app
		}

	case OpUpdateApplicationStatus:
		if app, ok := a.Payload.(*domain.Application); ok {
			s.Applications = replaceByID(s.Applications, app)
			s.MyApplications = replaceByID(s.MyApplications, app)
			s.ReceivedApplications = replaceByID(s.ReceivedApplications, app)
			s.CurrentApplication = replaceCurrent(s.CurrentApplication, app)
			s.Success = fmt.Sprintf("Application status updated to %s", app.Status)
		}

	case OpWithdrawApplication:
		if id, ok := a.Payload.(string); ok {
			s.MyApplications = removeByID(s.MyApplications, id)
			s.Success = "Application withdrawn successfully"
		}

	case OpSendMessage:
		if sent, ok := a.Payload.(*domain.SentMessage); ok {
			if s.CurrentConversation != nil && s.CurrentConversation.ApplicationID == sent.ApplicationID {
				s.CurrentConversation = appendMessage(s.CurrentConversation, sent.Message)
			}
			s.Success = "Message sent successfully"
		}

	case OpRateApplication:
		s.Success = "Rating submitted successfully"

	case OpGetApplicationStats:
		if st, ok := a.Payload.(*domain.ApplicationStats); ok {
			s.Stats = st
		}

	case OpBulkUpdateApplications:
		if res, ok := a.Payload.(*domain.BulkUpdateResult); ok {
			s.Success = fmt.Sprintf("Updated %d applications", res.TotalUpdated)
		}

	case OpGetConversation:
		if conv, ok := a.Payload.(*domain.Conversation); ok {
			s.CurrentConversation = conv
		}
	}
	return s
}

// appendMessage returns a copy of conv with m appended. A nil conversation
// stays nil.
func appendMessage(conv *domain.Conversation, m domain.Message) *domain.Conversation {
	if conv == nil {
		return nil
	}
	next := *conv
	next.Messages = make([]domain.Message, 0, len(conv.Messages)+1)
	next.Messages = append(next.Messages, conv.Messages...)
	next.Messages = append(next.Messages, m)
	return &next
}
