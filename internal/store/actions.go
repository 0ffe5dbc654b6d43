package store

import (
	"go-careerbridge/internal/domain"
	"strings"
)

// SliceName identifies one of the four entity slices.
type SliceName string

const (
	SliceUser        SliceName = "user"
	SliceJob         SliceName = "job"
	SliceCompany     SliceName = "company"
	SliceApplication SliceName = "application"
)

// Op names an async action. The prefix before the slash is the slice that
// reduces it.
type Op string

func (o Op) Slice() SliceName {
	prefix, _, _ := strings.Cut(string(o), "/")
	return SliceName(prefix)
}

const (
	OpRegister          Op = "user/register"
	OpLogin             Op = "user/login"
	OpLogout            Op = "user/logout"
	OpGetProfile        Op = "user/getProfile"
	OpUpdateProfile     Op = "user/updateProfile"
	OpChangePassword    Op = "user/changePassword"
	OpUpdateSocialLinks Op = "user/updateSocialLinks"
	OpToggleVisibility  Op = "user/toggleVisibility"
	OpUploadResume      Op = "user/uploadResume"
	OpGetMyResumes      Op = "user/getMyResumes"
	OpGetResumeByID     Op = "user/getResumeById"
	OpDeleteResume      Op = "user/deleteResume"
	OpSetDefaultResume  Op = "user/setDefaultResume"
	OpUpdateResumeData  Op = "user/updateResumeData"
	OpUpdateResumeItem  Op = "user/updateResumeItem"
	OpDeleteResumeItem  Op = "user/deleteResumeItem"
	OpBulkUpdateResume  Op = "user/bulkUpdateResume"
)

const (
	OpCreateJob      Op = "job/createJob"
	OpGetAllJobs     Op = "job/getAllJobs"
	OpGetJobByID     Op = "job/getJobById"
	OpGetMyJobs      Op = "job/getMyJobs"
	OpUpdateJob      Op = "job/updateJob"
	OpDeleteJob      Op = "job/deleteJob"
	OpPublishJob     Op = "job/publishJob"
	OpCloseJob       Op = "job/closeJob"
	OpTrackJobView   Op = "job/trackView"
	OpSearchJobs     Op = "job/searchJobs"
	OpGetSimilarJobs Op = "job/getSimilarJobs"
	OpSaveJob        Op = "job/saveJob"
	OpUnsaveJob      Op = "job/unsaveJob"
	OpGetSavedJobs   Op = "job/getSavedJobs"
	OpGetJobStats    Op = "job/getJobStats"
)

const (
	OpCreateCompany     Op = "company/createCompany"
	OpGetAllCompanies   Op = "company/getAllCompanies"
	OpGetCompanyByID    Op = "company/getCompanyById"
	OpGetMyCompanies    Op = "company/getMyCompanies"
	OpUpdateCompany     Op = "company/updateCompany"
	OpDeleteCompany     Op = "company/deleteCompany"
	OpUploadCompanyLogo Op = "company/uploadLogo"
	OpSearchCompanies   Op = "company/searchCompanies"
	OpGetCompanyStats   Op = "company/getStats"
	OpAddCompanyReview  Op = "company/addReview"
	OpGetTopCompanies   Op = "company/getTopCompanies"
	OpVerifyCompany     Op = "company/verifyCompany"
)

const (
	OpApplyForJob             Op = "application/applyForJob"
	OpGetMyApplications       Op = "application/getMyApplications"
	OpGetReceivedApplications Op = "application/getReceivedApplications"
	OpGetApplicationByID      Op = "application/getApplicationById"
	OpUpdateApplicationStatus Op = "application/updateStatus"
	OpWithdrawApplication     Op = "application/withdrawApplication"
	OpGetAllApplications      Op = "application/getAllApplications"
	OpSendMessage             Op = "application/sendMessage"
	OpRateApplication         Op = "application/rateApplication"
	OpGetApplicationStats     Op = "application/getStats"
	OpBulkUpdateApplications  Op = "application/bulkUpdate"
	OpGetConversation         Op = "application/getConversation"
)

// Action is anything the store can reduce. Every action belongs to exactly
// one slice.
type Action interface {
	Slice() SliceName
	Type() string
}

// Pending marks the start of an async action.
type Pending struct {
	Op Op
}

// Fulfilled carries the decoded result of an async action. Payload is the
// value the matching repository call returned (or the id for deletions).
type Fulfilled struct {
	Op      Op
	Payload any
}

// Rejected carries the user-facing message of a failed async action.
type Rejected struct {
	Op    Op
	Error string
}

func (a Pending) Slice() SliceName   { return a.Op.Slice() }
func (a Fulfilled) Slice() SliceName { return a.Op.Slice() }
func (a Rejected) Slice() SliceName  { return a.Op.Slice() }

func (a Pending) Type() string   { return string(a.Op) + "/pending" }
func (a Fulfilled) Type() string { return string(a.Op) + "/fulfilled" }
func (a Rejected) Type() string  { return string(a.Op) + "/rejected" }

// Local actions.

type ClearError struct{ Target SliceName }

type ClearSuccess struct{ Target SliceName }

// ResetCurrent empties the current-record slot of the job, company or
// application slice.
type ResetCurrent struct{ Target SliceName }

// ClearSearchResults empties the search list of the job or company slice.
type ClearSearchResults struct{ Target SliceName }

type ClearConversation struct{}

// AddMessageLocally appends a message to the current thread without a
// round trip. No async action dispatches it.
type AddMessageLocally struct{ Message domain.Message }

type SetToken struct{ Token string }

type ClearUserData struct{}

func (a ClearError) Slice() SliceName         { return a.Target }
func (a ClearSuccess) Slice() SliceName       { return a.Target }
func (a ResetCurrent) Slice() SliceName       { return a.Target }
func (a ClearSearchResults) Slice() SliceName { return a.Target }
func (ClearConversation) Slice() SliceName    { return SliceApplication }
func (AddMessageLocally) Slice() SliceName    { return SliceApplication }
func (SetToken) Slice() SliceName             { return SliceUser }
func (ClearUserData) Slice() SliceName        { return SliceUser }

func (a ClearError) Type() string         { return string(a.Target) + "/clearError" }
func (a ClearSuccess) Type() string       { return string(a.Target) + "/clearSuccess" }
func (a ResetCurrent) Type() string       { return string(a.Target) + "/resetCurrent" }
func (a ClearSearchResults) Type() string { return string(a.Target) + "/clearSearchResults" }
func (ClearConversation) Type() string    { return "application/clearConversation" }
func (AddMessageLocally) Type() string    { return "application/addMessageLocally" }
func (SetToken) Type() string             { return "user/setToken" }
func (ClearUserData) Type() string        { return "user/clearUserData" }
