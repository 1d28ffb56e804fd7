package domain

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// States a lead can pick on the enquiry form.
var States = []string{
	"Johor", "Kedah", "Kelantan", "Kuala Lumpur", "Labuan", "Melaka",
	"Negeri Sembilan", "Pahang", "Penang", "Perak", "Perlis",
	"Putrajaya", "Sabah", "Sarawak", "Selangor", "Terengganu",
}

var phonePattern = regexp.MustCompile(`^[0-9-+\s()]*$`)

var enquiryValidator = newEnquiryValidator()

func newEnquiryValidator() *validator.Validate {
	v := validator.New()

	v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	v.RegisterValidation("state", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, s := range States {
			if s == value {
				return true
			}
		}
		return false
	})

	return v
}

// Enquiry is a lead submission. It is built by the caller, submitted once and
// discarded; nothing is persisted locally. CarID links the lead to a catalog
// record by its server-assigned id and is omitted from the wire when nil.
type Enquiry struct {
	Name             string `validate:"required"`
	Email            string `validate:"required,email"`
	Phone            string `validate:"required,phone"`
	State            string `validate:"required,state"`
	PDPAConsent      bool
	MarketingConsent bool
	CarID            *int64
}

func (e Enquiry) Validate() error {
	if err := enquiryValidator.Struct(e); err != nil {
		return fmt.Errorf("invalid enquiry: %w", err)
	}
	return nil
}
