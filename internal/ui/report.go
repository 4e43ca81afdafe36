package ui

import (
	"context"
	"strings"
	"unicode/utf8"

	"civiceye/internal/api"
	"civiceye/internal/domain"
	appErrors "civiceye/internal/errors"
	"civiceye/internal/location"
	"civiceye/internal/workflow"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Report toasts.
const (
	msgPhotoCaptured  = "Photo captured successfully"
	msgImageSelected  = "Image selected successfully"
	msgIssueReported  = "Issue reported successfully!"
	msgLocating       = "Getting current location..."
	msgImageFallback  = "Failed to attach image"
	msgLocateFallback = "Unable to get current location"
)

type reportField int

const (
	fieldNone reportField = iota
	fieldTitle
	fieldDescription
	fieldLocation
	fieldImagePath
)

type reportTab struct {
	form workflow.ReportForm

	title       textinput.Model
	description textarea.Model
	location    textinput.Model
	imagePath   textinput.Model
	focus       reportField

	suggestions []location.Suggestion
	suggestion  int
	suggest     debouncer

	locating   bool
	attaching  bool
	autoFilled bool
}

func newReportTab() reportTab {
	title := textinput.New()
	title.Placeholder = "Brief description of the issue"
	title.CharLimit = 120

	desc := textarea.New()
	desc.Placeholder = "Provide detailed information about the issue..."
	desc.ShowLineNumbers = false
	desc.SetHeight(4)

	loc := textinput.New()
	loc.Placeholder = "Enter location or use current location"

	path := textinput.New()
	path.Placeholder = "Path to an image, e.g. ~/Pictures/pothole.jpg"

	return reportTab{
		title:       title,
		description: desc,
		location:    loc,
		imagePath:   path,
		suggest:     newDebouncer("location-suggest", suggestDelay),
	}
}

func (r *reportTab) resize(width int) {
	w := clamp(width-8, 20, 100)
	r.title.Width = w
	r.location.Width = w
	r.imagePath.Width = w
	r.description.SetWidth(w)
}

func (r *reportTab) busy() bool {
	return r.locating || r.attaching || r.form.Submitting()
}

// enter focuses the title and, on the first visit, fills the location from
// the device position.
func (r *reportTab) enter(m *App) tea.Cmd {
	cmds := []tea.Cmd{r.setFocus(fieldTitle)}
	if !r.autoFilled && m.cfg.Locations != nil {
		r.autoFilled = true
		cmds = append(cmds, r.locate(m, true))
	}
	return tea.Batch(cmds...)
}

func (r *reportTab) blur() {
	r.setFocus(fieldNone)
}

func (r *reportTab) setFocus(field reportField) tea.Cmd {
	if r.focus == fieldLocation && field != fieldLocation {
		r.clearSuggestions()
	}
	r.title.Blur()
	r.description.Blur()
	r.location.Blur()
	r.imagePath.Blur()
	r.focus = field
	switch field {
	case fieldTitle:
		return r.title.Focus()
	case fieldDescription:
		return r.description.Focus()
	case fieldLocation:
		return r.location.Focus()
	case fieldImagePath:
		return r.imagePath.Focus()
	}
	return nil
}

func (r *reportTab) clearSuggestions() {
	r.suggestions = nil
	r.suggestion = 0
	r.suggest.Cancel()
}

// syncForm copies the inputs into the form model.
func (r *reportTab) syncForm() {
	r.form.Title = r.title.Value()
	r.form.Description = r.description.Value()
	r.form.Location = r.location.Value()
}

func (r *reportTab) resetInputs() {
	r.title.Reset()
	r.description.Reset()
	r.location.Reset()
	r.imagePath.Reset()
	r.clearSuggestions()
}

func (r *reportTab) handleCommandKey(m *App, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Edit):
		return r.setFocus(fieldTitle)
	case key.Matches(msg, m.keys.Locate):
		return r.locate(m, false)
	case key.Matches(msg, m.keys.Capture):
		return r.capture(m)
	case key.Matches(msg, m.keys.Pick):
		return r.setFocus(fieldImagePath)
	case key.Matches(msg, m.keys.RemoveImage):
		if r.form.Image != nil {
			r.form.RemoveImage()
			m.haptics.Impact(ImpactLight)
		}
	case key.Matches(msg, m.keys.Submit):
		return r.submit(m)
	}
	return nil
}

func (r *reportTab) handleEditKey(m *App, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return r.submit(m)
	case key.Matches(msg, m.keys.Locate):
		return r.locate(m, false)
	case key.Matches(msg, m.keys.Escape):
		if r.focus == fieldLocation && len(r.suggestions) > 0 {
			r.clearSuggestions()
			return nil
		}
		if r.focus == fieldImagePath {
			r.imagePath.Reset()
		}
		return r.setFocus(fieldNone)
	case key.Matches(msg, m.keys.NextField):
		if r.focus == fieldImagePath {
			return nil
		}
		return r.setFocus(r.focus%fieldLocation + 1)
	case key.Matches(msg, m.keys.PrevField):
		if r.focus == fieldImagePath {
			return nil
		}
		return r.setFocus((r.focus+1)%fieldLocation + 1)
	}

	switch r.focus {
	case fieldTitle:
		if msg.Type == tea.KeyEnter {
			return r.setFocus(fieldDescription)
		}
	case fieldLocation:
		if len(r.suggestions) > 0 {
			switch msg.Type {
			case tea.KeyUp:
				r.suggestion = clamp(r.suggestion-1, 0, len(r.suggestions)-1)
				return nil
			case tea.KeyDown:
				r.suggestion = clamp(r.suggestion+1, 0, len(r.suggestions)-1)
				return nil
			case tea.KeyEnter:
				r.location.SetValue(r.suggestions[r.suggestion].Formatted)
				r.location.CursorEnd()
				r.clearSuggestions()
				return nil
			}
		}
		if msg.Type == tea.KeyEnter {
			return r.setFocus(fieldNone)
		}
	case fieldImagePath:
		if msg.Type == tea.KeyEnter {
			path := strings.TrimSpace(r.imagePath.Value())
			r.imagePath.Reset()
			r.setFocus(fieldNone)
			if path == "" {
				return nil
			}
			return r.pick(m, path)
		}
	}
	return r.updateInputs(m, msg)
}

// updateInputs forwards msg to the focused input and schedules a suggestion
// search when the location text changed.
func (r *reportTab) updateInputs(m *App, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch r.focus {
	case fieldTitle:
		r.title, cmd = r.title.Update(msg)
	case fieldDescription:
		r.description, cmd = r.description.Update(msg)
	case fieldImagePath:
		r.imagePath, cmd = r.imagePath.Update(msg)
	case fieldLocation:
		before := r.location.Value()
		r.location, cmd = r.location.Update(msg)
		if after := r.location.Value(); after != before {
			return tea.Batch(cmd, r.queryChanged(m, after))
		}
	}
	return cmd
}

func (r *reportTab) queryChanged(m *App, query string) tea.Cmd {
	if m.cfg.Locations == nil || utf8.RuneCountInString(query) < location.MinQueryLength {
		r.clearSuggestions()
		return nil
	}
	return r.suggest.Trigger()
}

func (r *reportTab) handleMsg(m *App, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case debounceMsg:
		if !r.suggest.Fired(msg) || r.focus != fieldLocation {
			return nil
		}
		return suggestCmd(m.reporter, msg.seq, r.location.Value())
	case suggestionsMsg:
		if msg.seq != r.suggest.seq || msg.query != r.location.Value() || r.focus != fieldLocation {
			return nil
		}
		r.suggestions = msg.items
		r.suggestion = 0
	case locationFilledMsg:
		r.locating = false
		if msg.err != nil {
			if msg.auto {
				return nil
			}
			return m.errorToast(appErrors.Message(msg.err, msgLocateFallback))
		}
		if msg.address != "" && (!msg.auto || strings.TrimSpace(r.location.Value()) == "") {
			r.location.SetValue(msg.address)
			r.location.CursorEnd()
			r.clearSuggestions()
		}
	case imageAttachedMsg:
		r.attaching = false
		if msg.err != nil {
			return m.errorToast(appErrors.Message(msg.err, msgImageFallback))
		}
		if msg.image == nil {
			return nil
		}
		r.form.AttachImage(msg.image)
		if msg.source == imageFromCamera {
			return m.successToast(msgPhotoCaptured)
		}
		return m.successToast(msgImageSelected)
	case submitDoneMsg:
		r.form.FinishSubmit(msg.err)
		if msg.err != nil {
			return m.errorToast(r.form.ErrMessage)
		}
		r.resetInputs()
		return tea.Batch(m.successToast(msgIssueReported), m.switchTab(TabIssues))
	}
	return nil
}

func (r *reportTab) locate(m *App, auto bool) tea.Cmd {
	if r.locating || m.cfg.Locations == nil {
		return nil
	}
	r.locating = true
	return tea.Batch(m.spinner.Tick, locateCmd(m.reporter, auto))
}

func (r *reportTab) capture(m *App) tea.Cmd {
	if r.attaching || m.cfg.Images == nil {
		return nil
	}
	r.attaching = true
	m.haptics.Impact(ImpactMedium)
	return tea.Batch(m.spinner.Tick, attachCmd(m.reporter, imageFromCamera, ""))
}

func (r *reportTab) pick(m *App, path string) tea.Cmd {
	if r.attaching || m.cfg.Images == nil {
		return nil
	}
	r.attaching = true
	m.haptics.Impact(ImpactMedium)
	return tea.Batch(m.spinner.Tick, attachCmd(m.reporter, imageFromGallery, path))
}

// submit validates locally first; a validation failure never reaches the
// network.
func (r *reportTab) submit(m *App) tea.Cmd {
	if r.form.Submitting() {
		return nil
	}
	r.syncForm()
	payload, err := r.form.BeginSubmit()
	if err != nil {
		return m.showToast(toastError, titleValidationError, r.form.ErrMessage)
	}
	m.haptics.Impact(ImpactHeavy)
	r.setFocus(fieldNone)
	return tea.Batch(m.spinner.Tick, submitCmd(m.reporter, payload))
}

func suggestCmd(reporter *workflow.Reporter, seq uint64, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		return suggestionsMsg{seq: seq, query: query, items: reporter.Suggest(ctx, query)}
	}
}

func locateCmd(reporter *workflow.Reporter, auto bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deviceTimeout)
		defer cancel()
		address, err := reporter.AutoFillLocation(ctx)
		return locationFilledMsg{address: address, auto: auto, err: err}
	}
}

func attachCmd(reporter *workflow.Reporter, source imageSource, path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deviceTimeout)
		defer cancel()
		var (
			img *domain.Image
			err error
		)
		if source == imageFromCamera {
			img, err = reporter.Capture(ctx)
		} else {
			img, err = reporter.Pick(ctx, path)
		}
		return imageAttachedMsg{source: source, image: img, err: err}
	}
}

func submitCmd(reporter *workflow.Reporter, payload api.NewIssue) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		issue, err := reporter.Submit(ctx, payload)
		return submitDoneMsg{issue: issue, err: err}
	}
}

func (r *reportTab) view(m *App) string {
	var b strings.Builder
	b.WriteString(styleSectionTitle().Render("Report an Issue"))
	b.WriteString("\n")
	b.WriteString(styleMuted().Render("Help improve your community by reporting civic issues"))
	b.WriteString("\n\n")

	field := func(label string, focused bool, body string) {
		b.WriteString(styleField().Render(label))
		b.WriteString("\n")
		b.WriteString(styleInput(focused).Render(body))
		b.WriteString("\n")
	}
	field("Issue Title *", r.focus == fieldTitle, r.title.View())
	field("Description *", r.focus == fieldDescription, r.description.View())

	locLabel := "Location *"
	if r.locating {
		locLabel += " " + m.spinner.View() + " " + msgLocating
	}
	field(locLabel, r.focus == fieldLocation, r.location.View())
	if len(r.suggestions) > 0 {
		for i, s := range r.suggestions {
			line := "  📍 " + s.Formatted
			if i == r.suggestion {
				line = styleSelected().Render(line)
			} else {
				line = styleMuted().Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString(styleField().Render("Photo (Optional)"))
	b.WriteString("\n")
	switch {
	case r.attaching:
		b.WriteString(m.spinner.View() + " Waiting for image...")
	case r.focus == fieldImagePath:
		b.WriteString(styleInput(true).Render(r.imagePath.View()))
	case r.form.Image != nil:
		img := r.form.Image
		info := img.Name
		if img.Size > 0 {
			info += " · " + domain.FormatFileSize(img.Size)
		}
		if img.Type != "" {
			info += " · " + img.Type
		}
		b.WriteString(styleText().Render("📷 " + info))
	default:
		b.WriteString(styleMuted().Render("No image attached. Press c to take a photo or p to choose one."))
	}
	b.WriteString("\n\n")

	submit := "Submit Report"
	if r.form.Submitting() {
		submit = m.spinner.View() + " Submitting..."
	}
	b.WriteString(styleKeyPill().Render(submit))
	if r.form.Phase == workflow.FormError && r.form.ErrMessage != "" {
		b.WriteString("  ")
		b.WriteString(styleErrorText().Render(r.form.ErrMessage))
	}
	return b.String()
}
