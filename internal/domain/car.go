package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type Status string

func (s Status) String() string {
	return string(s)
}

const (
	StatusAvailable Status = "Available"
	StatusSold      Status = "Sold"
	StatusBooked    Status = "Booked"
)

var Statuses = []Status{
	StatusAvailable,
	StatusSold,
	StatusBooked,
}

type Transmission string

const (
	TransmissionAutomatic Transmission = "Automatic"
	TransmissionManual    Transmission = "Manual"
)

// ImageURLs is the ordered list of photo URLs for a car. The backend sends it
// either as a native JSON array or as a JSON-encoded string holding an array;
// both forms decode to the same value. A string form that does not hold a valid
// JSON array fails the decode of the whole record.
type ImageURLs []string

func (u *ImageURLs) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return fmt.Errorf("invalid imageUrls string: %w", err)
		}
		var urls []string
		if err := json.Unmarshal([]byte(encoded), &urls); err != nil {
			return fmt.Errorf("imageUrls string is not a JSON array: %w", err)
		}
		*u = urls
		return nil
	}

	var urls []string
	if err := json.Unmarshal(data, &urls); err != nil {
		return fmt.Errorf("invalid imageUrls: %w", err)
	}
	*u = urls
	return nil
}

// Car is a single catalog entry. RegistrationNo is the unique business key and
// never changes once assigned; ID is assigned by the backend and is zero until
// the record has been persisted there.
type Car struct {
	ID                 int64        `json:"id,omitempty"`
	Name               string       `json:"name"`
	Price              float64      `json:"price"`
	Year               int          `json:"year"`
	RegistrationNo     string       `json:"registrationNo"`
	Location           string       `json:"location"`
	Status             Status       `json:"status"`
	MonthlyInstallment float64      `json:"monthlyInstallment"`
	Color              string       `json:"color"`
	Transmission       Transmission `json:"transmission"`
	Mileage            float64      `json:"mileage"`
	BookingFee         float64      `json:"bookingFee"`
	Remarks            string       `json:"remarks,omitempty"`
	ImageURLs          ImageURLs    `json:"imageUrls"`
}
