package ui

import (
	"context"
	"os"
	"testing"
	"time"

	"civiceye/internal/api"
	"civiceye/internal/domain"
	"civiceye/internal/location"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func fixtureIssues() []domain.Issue {
	base := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	return []domain.Issue{
		{ID: "i1", Title: "Pothole", Description: "Deep pothole", Location: "MG Road", CreatedAt: base},
		{ID: "i2", Title: "Streetlight", Description: "Flickering", Location: "Indiranagar", Resolved: true, CreatedAt: base.Add(time.Hour)},
		{ID: "i3", Title: "Garbage", Description: "Overflowing bin", Location: "Koramangala", CreatedAt: base.Add(2 * time.Hour)},
	}
}

type fakeLocations struct {
	address string
	err     error
	results []location.Suggestion
	queries []string
}

func (f *fakeLocations) CurrentLocation(context.Context) (location.Position, error) {
	if f.err != nil {
		return location.Position{}, f.err
	}
	return location.Position{Latitude: 12.9716, Longitude: 77.5946}, nil
}

func (f *fakeLocations) ReverseGeocode(context.Context, float64, float64) string {
	return f.address
}

func (f *fakeLocations) SearchLocations(_ context.Context, q string) []location.Suggestion {
	f.queries = append(f.queries, q)
	return f.results
}

type fakeImages struct {
	image *domain.Image
	err   error
}

func (f *fakeImages) Capture(context.Context) (*domain.Image, error)     { return f.image, f.err }
func (f *fakeImages) Pick(context.Context, string) (*domain.Image, error) { return f.image, f.err }
func (f *fakeImages) Validate(domain.Image) error                         { return nil }
func (f *fakeImages) Compress(img domain.Image) domain.Image              { return img }

type recordingHaptics struct {
	impacts []ImpactStyle
}

func (r *recordingHaptics) Impact(style ImpactStyle) {
	r.impacts = append(r.impacts, style)
}

type testEnv struct {
	app     *App
	client  *api.MockClient
	places  *fakeLocations
	images  *fakeImages
	haptics *recordingHaptics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	client := api.NewMockClient()
	client.ListIssuesFn = func(context.Context) ([]domain.Issue, error) { return fixtureIssues(), nil }
	env := &testEnv{
		client:  client,
		places:  &fakeLocations{address: "Cubbon Park, Bengaluru"},
		images:  &fakeImages{},
		haptics: &recordingHaptics{},
	}
	app, err := NewApp(Config{
		Client:       client,
		Locations:    env.places,
		Images:       env.images,
		Haptics:      env.haptics,
		OutputFormat: "plain",
		Version:      "1.0.0",
	})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	app.resize(100, 40)
	env.app = app
	return env
}

func (e *testEnv) send(msg tea.Msg) tea.Cmd {
	_, cmd := e.app.Update(msg)
	return cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func (e *testEnv) typeText(s string) {
	for _, r := range s {
		e.send(keyRunes(string(r)))
	}
}
