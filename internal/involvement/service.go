// Package involvement forwards the foundation's get-involved and partner
// forms to the submissions API.
package involvement

import (
	"context"
	"strings"

	pkgerrors "github.com/kuhabites/kuha-web/pkg/errors"
	"github.com/kuhabites/kuha-web/pkg/imarika"
	"github.com/kuhabites/kuha-web/pkg/validate"
)

const (
	FormVolunteer = "volunteer"
	FormDonate    = "donate"
	FormPartner   = "partner"
	FormSponsor   = "sponsor"
)

type Backend interface {
	Submit(ctx context.Context, sub imarika.Submission) (*imarika.SubmissionReceipt, error)
	SubmitPartner(ctx context.Context, form imarika.PartnerForm) error
}

// Submission is a get-involved form. MpesaCode is only meaningful for
// donations and is blanked for every other form type.
type Submission struct {
	FormType  string `json:"form_type" validate:"required,oneof=volunteer donate partner sponsor"`
	FullName  string `json:"full_name" validate:"required,max=200"`
	Email     string `json:"email" validate:"required,email"`
	Message   string `json:"message" validate:"max=4000"`
	MpesaCode string `json:"mpesa_code" validate:"required_if=FormType donate,max=32"`
}

type PartnerForm struct {
	FullName string `json:"full_name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Message  string `json:"message" validate:"max=4000"`
}

// Receipt is returned to the submitter.
type Receipt struct {
	Message string `json:"message"`
}

const defaultReceipt = "Submission successful!"

type Service interface {
	Submit(ctx context.Context, sub Submission) (*Receipt, error)
	Partner(ctx context.Context, form PartnerForm) (*Receipt, error)
}

type service struct {
	backend Backend
}

func NewService(backend Backend) (Service, error) {
	if backend == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "submissions backend is required")
	}
	return &service{backend: backend}, nil
}

func (s *service) Submit(ctx context.Context, sub Submission) (*Receipt, error) {
	sub = Submission{
		FormType:  strings.ToLower(strings.TrimSpace(sub.FormType)),
		FullName:  strings.TrimSpace(sub.FullName),
		Email:     strings.TrimSpace(sub.Email),
		Message:   strings.TrimSpace(sub.Message),
		MpesaCode: strings.TrimSpace(sub.MpesaCode),
	}
	if sub.FormType != FormDonate {
		sub.MpesaCode = ""
	}
	if err := validate.Struct(sub); err != nil {
		return nil, err
	}

	res, err := s.backend.Submit(ctx, imarika.Submission{
		FormType:  sub.FormType,
		FullName:  sub.FullName,
		Email:     sub.Email,
		Message:   sub.Message,
		MpesaCode: sub.MpesaCode,
	})
	if err != nil {
		return nil, err
	}
	if res == nil || res.Message == "" {
		return &Receipt{Message: defaultReceipt}, nil
	}
	return &Receipt{Message: res.Message}, nil
}

func (s *service) Partner(ctx context.Context, form PartnerForm) (*Receipt, error) {
	form = PartnerForm{
		FullName: strings.TrimSpace(form.FullName),
		Email:    strings.TrimSpace(form.Email),
		Message:  strings.TrimSpace(form.Message),
	}
	if err := validate.Struct(form); err != nil {
		return nil, err
	}
	if err := s.backend.SubmitPartner(ctx, imarika.PartnerForm{
		FullName: form.FullName,
		Email:    form.Email,
		Message:  form.Message,
	}); err != nil {
		return nil, err
	}
	return &Receipt{Message: "Thank you for partnering with us!"}, nil
}
