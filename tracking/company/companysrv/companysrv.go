package companysrv

import (
	"context"
	"time"

	"github.com/acamacho/jobtrail/pkg/errx"
	"github.com/acamacho/jobtrail/pkg/kernel"
	"github.com/acamacho/jobtrail/tracking/company"
	"github.com/google/uuid"
)

// CompanyService provides business operations for companies
type CompanyService struct {
	companyRepo company.Repository
}

// NewCompanyService creates a new instance of the company service
func NewCompanyService(companyRepo company.Repository) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
	}
}

// CreateCompany creates a new company
func (s *CompanyService) CreateCompany(ctx context.Context, req company.CreateCompanyRequest) (*company.Company, error) {
	newCompany := &company.Company{
		ID:        kernel.NewCompanyID(uuid.NewString()),
		Name:      req.Name,
		Industry:  req.Industry,
		Location:  req.Location,
		Website:   req.Website,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.companyRepo.Create(ctx, newCompany); err != nil {
		return nil, errx.Wrap(err, "failed to create company", errx.TypeInternal)
	}

	return newCompany, nil
}

// GetCompanyByID retrieves a company by ID
func (s *CompanyService) GetCompanyByID(ctx context.Context, id kernel.CompanyID) (*company.Company, error) {
	c, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, company.ErrCompanyNotFound().WithDetail("company_id", id.String())
	}

	return c, nil
}

// ListCompanies retrieves all companies
func (s *CompanyService) ListCompanies(ctx context.Context) ([]company.Company, error) {
	companies, err := s.companyRepo.List(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list companies", errx.TypeInternal)
	}

	return companies, nil
}

// DeleteCompany deletes a company and all its applications
func (s *CompanyService) DeleteCompany(ctx context.Context, id kernel.CompanyID) error {
	if err := s.companyRepo.DeleteCascade(ctx, id); err != nil {
		if _, ok := err.(*errx.Error); ok {
			return err
		}
		return errx.Wrap(err, "failed to delete company", errx.TypeInternal)
	}

	return nil
}
