package service

import (
	"context"
	"encoding/json"
	"errors"

	"preowned/catalog/internal/client"
	"preowned/catalog/internal/domain"
)

// Enquiries orchestrates lead submission. Linkage to a car uses the
// server-assigned numeric id; callers that only know a registration number go
// through SubmitForCar, which resolves it first.
type Enquiries struct {
	catalog client.CatalogClient
	enquiry client.EnquiryClient
}

func NewEnquiries(catalog client.CatalogClient, enquiry client.EnquiryClient) *Enquiries {
	return &Enquiries{
		catalog: catalog,
		enquiry: enquiry,
	}
}

func (s *Enquiries) Submit(ctx context.Context, form domain.Enquiry) (json.RawMessage, error) {
	return s.enquiry.Submit(ctx, form)
}

func (s *Enquiries) SubmitForCar(ctx context.Context, form domain.Enquiry, regNo string) (json.RawMessage, error) {
	car, err := s.catalog.GetByRegistration(ctx, regNo)
	if err != nil {
		if errors.Is(err, domain.ErrCarNotFound) {
			return nil, &domain.SubmissionError{Message: "unknown car " + regNo, Err: err}
		}
		return nil, &domain.SubmissionError{Err: err}
	}
	if car.ID != 0 {
		id := car.ID
		form.CarID = &id
	}
	return s.enquiry.Submit(ctx, form)
}
