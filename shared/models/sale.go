package models

import "time"

type Sale struct {
	ID        int64     `json:"id" db:"id"`
	ClientID  int64     `json:"client" db:"client_id"`
	Valor     Money     `json:"valor" db:"valor"`
	Data      Date      `json:"data" db:"data"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// SaleWithClient is a Sale joined with its client's name, used by listing
// pages.
type SaleWithClient struct {
	Sale
	ClientName string `json:"clientName"`
}

// SaleInput is the writable part of a Sale. Data and CreatedAt are set on
// insert and never change.
type SaleInput struct {
	ClientID *int64 `json:"client"`
	Valor    *Money `json:"valor"`
}

type SaleFilter struct {
	ClientID int64
	Data     *Date
}

func (in *SaleInput) Validate(partial bool) error {
	errs := ValidationErrors{}

	if in.ClientID == nil {
		if !partial {
			errs.Add("client", "This field is required.")
		}
	} else if *in.ClientID <= 0 {
		errs.Add("client", "Invalid pk - object does not exist.")
	}

	if in.Valor == nil {
		if !partial {
			errs.Add("valor", "This field is required.")
		}
	} else {
		switch {
		case *in.Valor < 0:
			errs.Add("valor", "Ensure this value is greater than or equal to 0.")
		case *in.Valor > MaxMoney:
			errs.Add("valor", "Ensure that there are no more than 10 digits in total.")
		}
	}

	return errs.OrNil()
}

func (in *SaleInput) Apply(s *Sale) {
	if in.ClientID != nil {
		s.ClientID = *in.ClientID
	}
	if in.Valor != nil {
		s.Valor = *in.Valor
	}
}
