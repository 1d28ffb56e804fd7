package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"preowned/catalog/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnquiryClient struct {
	submitted []domain.Enquiry
	err       error
}

func (c *fakeEnquiryClient) Submit(ctx context.Context, form domain.Enquiry) (json.RawMessage, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.submitted = append(c.submitted, form)
	return json.RawMessage(`{"id":1}`), nil
}

func TestSubmitForCarLinksByServerID(t *testing.T) {
	catalog := &fakeCatalog{getByReg: func(regNo string) (*domain.Car, error) {
		require.Equal(t, "VFA397", regNo)
		return &domain.Car{ID: 7, RegistrationNo: "VFA397"}, nil
	}}
	enquiry := &fakeEnquiryClient{}
	s := NewEnquiries(catalog, enquiry)

	form := domain.Enquiry{Name: "Jane", Email: "jane@example.com", Phone: "0123456789", State: "Selangor", PDPAConsent: true}
	_, err := s.SubmitForCar(context.Background(), form, "VFA397")
	require.NoError(t, err)

	require.Len(t, enquiry.submitted, 1)
	require.NotNil(t, enquiry.submitted[0].CarID)
	assert.Equal(t, int64(7), *enquiry.submitted[0].CarID)
}

func TestSubmitForCarUnknownRegistration(t *testing.T) {
	catalog := &fakeCatalog{}
	enquiry := &fakeEnquiryClient{}
	s := NewEnquiries(catalog, enquiry)

	_, err := s.SubmitForCar(context.Background(), domain.Enquiry{PDPAConsent: true}, "NOPE123")
	require.Error(t, err)
	var subErr *domain.SubmissionError
	assert.ErrorAs(t, err, &subErr)
	assert.True(t, errors.Is(err, domain.ErrCarNotFound))
	assert.Empty(t, enquiry.submitted, "nothing may be submitted for an unknown car")
}

func TestSubmitPassesThrough(t *testing.T) {
	enquiry := &fakeEnquiryClient{}
	s := NewEnquiries(&fakeCatalog{}, enquiry)

	form := domain.Enquiry{Name: "Jane", Email: "jane@example.com", Phone: "0123456789", State: "Selangor", PDPAConsent: true}
	payload, err := s.Submit(context.Background(), form)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1}`, string(payload))
	require.Len(t, enquiry.submitted, 1)
	assert.Nil(t, enquiry.submitted[0].CarID)
}
