package models

import (
	"net/mail"
	"strings"
	"time"
)

const maxNameLength = 255

type Client struct {
	ID             int64     `json:"id" db:"id"`
	NomeCompleto   string    `json:"nomeCompleto" db:"nome_completo"`
	Email          string    `json:"email" db:"email"`
	DataNascimento Date      `json:"dataNascimento" db:"data_nascimento"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// ClientInput is the writable part of a Client. Nil fields are left
// untouched by a partial update.
type ClientInput struct {
	NomeCompleto   *string `json:"nomeCompleto"`
	Email          *string `json:"email"`
	DataNascimento *Date   `json:"dataNascimento"`
}

// ClientFilter narrows a client listing. Empty fields match everything.
type ClientFilter struct {
	NomeCompleto string
	Email        string
}

// Validate checks the input. With partial set, missing fields are allowed.
func (in *ClientInput) Validate(partial bool) error {
	errs := ValidationErrors{}

	if in.NomeCompleto == nil {
		if !partial {
			errs.Add("nomeCompleto", "This field is required.")
		}
	} else {
		name := strings.TrimSpace(*in.NomeCompleto)
		switch {
		case name == "":
			errs.Add("nomeCompleto", "This field may not be blank.")
		case len([]rune(name)) > maxNameLength:
			errs.Add("nomeCompleto", "Ensure this field has no more than 255 characters.")
		}
	}

	if in.Email == nil {
		if !partial {
			errs.Add("email", "This field is required.")
		}
	} else if addr, err := mail.ParseAddress(*in.Email); err != nil || addr.Address != *in.Email {
		errs.Add("email", "Enter a valid email address.")
	}

	if in.DataNascimento == nil && !partial {
		errs.Add("dataNascimento", "This field is required.")
	}

	return errs.OrNil()
}

// Apply copies the set fields onto c.
func (in *ClientInput) Apply(c *Client) {
	if in.NomeCompleto != nil {
		c.NomeCompleto = strings.TrimSpace(*in.NomeCompleto)
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	if in.DataNascimento != nil {
		c.DataNascimento = *in.DataNascimento
	}
}
