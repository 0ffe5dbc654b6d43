package store

import (
	"go-careerbridge/internal/domain"
)

type CompanyState struct {
	Companies      []*domain.Company
	CurrentCompany *domain.Company
	MyCompanies    []*domain.Company
	TopCompanies   []*domain.Company
	SearchResults  []*domain.Company
	Stats          *domain.CompanyStats

	Loading        bool
	CompanyLoading bool
	SearchLoading  bool
	UploadLoading  bool
	StatsLoading   bool

	Error   string
	Success string

	Pagination       domain.Pagination
	SearchPagination domain.Pagination
}

func (s *CompanyState) loadingFlag(op Op) *bool {
	switch op {
	case OpGetAllCompanies, OpGetMyCompanies, OpGetTopCompanies:
		return &s.Loading
	case OpCreateCompany, OpGetCompanyByID, OpUpdateCompany, OpDeleteCompany, OpAddCompanyReview, OpVerifyCompany:
		return &s.CompanyLoading
	case OpUploadCompanyLogo:
		return &s.UploadLoading
	case OpSearchCompanies:
		return &s.SearchLoading
	case OpGetCompanyStats:
		return &s.StatsLoading
	}
	return nil
}

func reduceCompany(s CompanyState, a Action) CompanyState {
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
		s.CurrentCompany = nil
	case ClearSearchResults:
		s.SearchResults = nil
		s.SearchPagination = domain.Pagination{CurrentPage: 1, TotalPages: 1}
	}
	return s
}

func (s CompanyState) fulfill(a Fulfilled) CompanyState {
	switch a.Op {
	case OpCreateCompany:
		if c, ok := a.Payload.(*domain.Company); ok {
			s.MyCompanies = prepend(s.MyCompanies, c)
			s.Success = "Company created successfully"
		}

	case OpGetAllCompanies:
		if page, ok := a.Payload.(*domain.Page[*domain.Company]); ok {
			s.Companies = page.Items
			s.Pagination = page.Pagination
		}

	case OpGetMyCompanies:
		if page, ok := a.Payload.(*domain.Page[*domain.Company]); ok {
			s.MyCompanies = page.Items
			s.Pagination = page.Pagination
		}

	case OpGetCompanyByID:
		if c, ok := a.Payload.(*domain.Company); ok {
			s.CurrentCompany = c
		}

	case OpUpdateCompany, OpUploadCompanyLogo, OpVerifyCompany:
		c, ok := a.Payload.(*domain.Company)
		if !ok {
			break
		}
		s.Companies = replaceByID(s.Companies, c)
		s.MyCompanies = replaceByID(s.MyCompanies, c)
		s.TopCompanies = replaceByID(s.TopCompanies, c)
		s.SearchResults = replaceByID(s.SearchResults, c)
		s.CurrentCompany = replaceCurrent(s.CurrentCompany, c)
		switch a.Op {
		case OpUpdateCompany:
			s.Success = "Company updated successfully"
		case OpUploadCompanyLogo:
			s.Success = "Logo uploaded successfully"
		default:
			s.Success = "Company verified successfully"
		}

	case OpDeleteCompany:
		if id, ok := a.Payload.(string); ok {
			s.Companies = removeByID(s.Companies, id)
			s.MyCompanies = removeByID(s.MyCompanies, id)
			s.TopCompanies = removeByID(s.TopCompanies, id)
			s.SearchResults = removeByID(s.SearchResults, id)
			s.CurrentCompany = clearCurrent(s.CurrentCompany, id)
			s.Success = "Company deleted successfully"
		}

	case OpSearchCompanies:
		if page, ok := a.Payload.(*domain.Page[*domain.Company]); ok {
			s.SearchResults = page.Items
			s.SearchPagination = page.Pagination
		}

	case OpGetCompanyStats:
		if st, ok := a.Payload.(*domain.CompanyStats); ok {
			s.Stats = st
		}

	case OpAddCompanyReview:
		s.Success = "Review added successfully"

	case OpGetTopCompanies:
		if list, ok := a.Payload.([]*domain.Company); ok {
			s.TopCompanies = list
		}
	}
	return s
}
