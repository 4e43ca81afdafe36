package workflow

import (
	"context"
	"strings"

	"civiceye/internal/api"
	"civiceye/internal/domain"
	appErrors "civiceye/internal/errors"
)

// FormPhase is the lifecycle of a report submission.
type FormPhase int

const (
	FormEditing FormPhase = iota
	FormValidating
	FormSubmitting
	FormSuccess
	FormError
)

func (p FormPhase) String() string {
	switch p {
	case FormEditing:
		return "editing"
	case FormValidating:
		return "validating"
	case FormSubmitting:
		return "submitting"
	case FormSuccess:
		return "success"
	case FormError:
		return "error"
	default:
		return "unknown"
	}
}

// MsgRequiredFields is shown when any required field is blank.
const MsgRequiredFields = "Please fill in all required fields"

// ReportForm holds a pending issue report.
type ReportForm struct {
	Title       string
	Description string
	Location    string
	Image       *domain.Image

	Phase FormPhase
	// ErrMessage is the message of the last failure.
	ErrMessage string
}

// Validate checks that title, description and location are non-blank after
// trimming. One aggregate error covers every missing field.
func (f *ReportForm) Validate() error {
	f.Phase = FormValidating
	if strings.TrimSpace(f.Title) == "" || strings.TrimSpace(f.Description) == "" || strings.TrimSpace(f.Location) == "" {
		f.Phase = FormError
		f.ErrMessage = MsgRequiredFields
		return appErrors.New(appErrors.CodeValidationFailed, MsgRequiredFields, nil)
	}
	f.Phase = FormEditing
	return nil
}

// Payload builds the submission with trimmed fields.
func (f *ReportForm) Payload() api.NewIssue {
	return api.NewIssue{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Location:    strings.TrimSpace(f.Location),
		Image:       f.Image,
	}
}

// BeginSubmit validates and moves to submitting. The caller performs the
// network call with the returned payload and reports back via FinishSubmit.
func (f *ReportForm) BeginSubmit() (api.NewIssue, error) {
	if err := f.Validate(); err != nil {
		return api.NewIssue{}, err
	}
	f.Phase = FormSubmitting
	f.ErrMessage = ""
	return f.Payload(), nil
}

// FinishSubmit records the outcome. Success clears the fields and image;
// failure keeps everything for a retry.
func (f *ReportForm) FinishSubmit(err error) {
	if err != nil {
		f.Phase = FormError
		f.ErrMessage = appErrors.Message(err, api.FallbackMessage(api.OpCreateIssue))
		return
	}
	f.Reset()
	f.Phase = FormSuccess
}

// Submit validates and sends the report synchronously. Validation failures
// never reach the network.
func (f *ReportForm) Submit(ctx context.Context, client api.Client) (domain.Issue, error) {
	payload, err := f.BeginSubmit()
	if err != nil {
		return domain.Issue{}, err
	}
	created, err := client.CreateIssue(ctx, payload)
	f.FinishSubmit(err)
	if err != nil {
		return domain.Issue{}, err
	}
	return created, nil
}

// Submitting reports whether a submission is in flight.
func (f *ReportForm) Submitting() bool {
	return f.Phase == FormSubmitting
}

// AttachImage sets the photo sent with the report.
func (f *ReportForm) AttachImage(img *domain.Image) {
	f.Image = img
}

// RemoveImage drops the attached photo.
func (f *ReportForm) RemoveImage() {
	f.Image = nil
}

// Reset clears every field and returns to editing.
func (f *ReportForm) Reset() {
	*f = ReportForm{}
}
