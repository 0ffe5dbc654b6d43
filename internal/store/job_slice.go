package store

import (
	"go-careerbridge/internal/domain"
)

type JobState struct {
	Jobs          []*domain.Job
	CurrentJob    *domain.Job
	SavedJobs     []*domain.Job
	SimilarJobs   []*domain.Job
	SearchResults []*domain.Job
	Stats         *domain.JobStats

	Loading       bool
	JobLoading    bool
	SearchLoading bool
	StatsLoading  bool

	Error   string
	Success string

	Pagination       domain.Pagination
	SearchPagination domain.Pagination
}

func (s *JobState) loadingFlag(op Op) *bool {
	switch op {
	case OpGetAllJobs, OpGetMyJobs, OpGetSimilarJobs, OpGetSavedJobs:
		return &s.Loading
	case OpCreateJob, OpGetJobByID, OpUpdateJob, OpDeleteJob, OpPublishJob, OpCloseJob, OpSaveJob, OpUnsaveJob:
		return &s.JobLoading
	case OpSearchJobs:
		return &s.SearchLoading
	case OpGetJobStats:
		return &s.StatsLoading
	}
	return nil
}

func reduceJob(s JobState, a Action) JobState {
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
		s.CurrentJob = nil
	case ClearSearchResults:
		s.SearchResults = nil
		s.SearchPagination = domain.Pagination{CurrentPage: 1, TotalPages: 1}
	}
	return s
}

func (s JobState) fulfill(a Fulfilled) JobState {
	switch a.Op {
	case OpCreateJob:
		if j, ok := a.Payload.(*domain.Job); ok {
			s.Jobs = prepend(s.Jobs, j)
			s.Success = "Job created successfully (Status: DRAFT)"
		}

	case OpGetAllJobs, OpGetMyJobs:
		if page, ok := a.Payload.(*domain.Page[*domain.Job]); ok {
			s.Jobs = page.Items
			s.Pagination = page.Pagination
		}

	case OpGetJobByID:
		if j, ok := a.Payload.(*domain.Job); ok {
			s.CurrentJob = j
		}

	case OpUpdateJob, OpPublishJob, OpCloseJob:
		j, ok := a.Payload.(*domain.Job)
		if !ok {
			break
		}
		s = s.replaced(j)
		switch a.Op {
		case OpUpdateJob:
			s.Success = "Job updated successfully"
		case OpPublishJob:
			s.Success = "Job published successfully"
		default:
			s.Success = "Job closed successfully"
		}

	case OpDeleteJob:
		if id, ok := a.Payload.(string); ok {
			s.Jobs = removeByID(s.Jobs, id)
			s.SavedJobs = removeByID(s.SavedJobs, id)
			s.SimilarJobs = removeByID(s.SimilarJobs, id)
			s.SearchResults = removeByID(s.SearchResults, id)
			s.CurrentJob = clearCurrent(s.CurrentJob, id)
			s.Success = "Job deleted successfully"
		}

	case OpSearchJobs:
		if page, ok := a.Payload.(*domain.Page[*domain.Job]); ok {
			s.SearchResults = page.Items
			s.SearchPagination = page.Pagination
		}

	case OpGetSimilarJobs:
		if jobs, ok := a.Payload.([]*domain.Job); ok {
			s.SimilarJobs = jobs
		}

	case OpSaveJob:
		s.Success = "Job saved successfully"

	case OpUnsaveJob:
		if id, ok := a.Payload.(string); ok {
			s.SavedJobs = removeByID(s.SavedJobs, id)
			s.Success = "Job removed from saved jobs"
		}

	case OpGetSavedJobs:
		if page, ok := a.Payload.(*domain.Page[*domain.Job]); ok {
			s.SavedJobs = page.Items
			s.Pagination = page.Pagination
		}

	case OpGetJobStats:
		if st, ok := a.Payload.(*domain.JobStats); ok {
			s.Stats = st
		}
	}
	return s
}

func (s JobState) replaced(j *domain.Job) JobState {
	s.Jobs = replaceByID(s.Jobs, j)
	s.SavedJobs = replaceByID(s.SavedJobs, j)
	s.SimilarJobs = replaceByID(s.SimilarJobs, j)
	s.SearchResults = replaceByID(s.SearchResults, j)
	s.CurrentJob = replaceCurrent(s.CurrentJob, j)
	return s
}
