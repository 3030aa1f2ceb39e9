package routes_test

import (
	"time"

	"github.com/dasdy/keyview/model"
	"github.com/dasdy/keyview/viewer"
	"github.com/dasdy/keyview/web/routes"
)

// SimpleStorageMock is a simple manual mock implementation of the Storage interface
type SimpleStorageMock struct {
	ReturnCounts []model.LabelCount
	ReturnRecent []model.LoggedTransition
	ReturnError  error
	Stored       []model.Transition
	LastLimit    int
	CallCount    int
}

func (m *SimpleStorageMock) Store(tr model.Transition) error {
	m.Stored = append(m.Stored, tr)

	return m.ReturnError
}

func (m *SimpleStorageMock) GatherAll() ([]model.LabelCount, error) {
	m.CallCount++

	return m.ReturnCounts, m.ReturnError
}

func (m *SimpleStorageMock) Recent(limit int) ([]model.LoggedTransition, error) {
	m.LastLimit = limit

	return m.ReturnRecent, m.ReturnError
}

func (m *SimpleStorageMock) Close() {}

// TrackerMock is a simple mock implementation of the Tracker interface
type TrackerMock struct {
	ReturnChords []model.Chord
	CallCount    int
	LastLabel    string
}

func (m *TrackerMock) HandleTransition(model.Transition, time.Time) {}

func (m *TrackerMock) GatherChords(label string) []model.Chord {
	m.CallCount++
	m.LastLabel = label

	return m.ReturnChords
}

func testLayout() *model.Layout {
	return &model.Layout{
		Name: "board",
		Keys: []model.KeyGeometry{
			{X: 0, Y: 0, W: 10, H: 10},
			{X: 10, Y: 0, W: 10, H: 10},
			{X: 20, Y: 0, W: 10, H: 10},
		},
		Labels: []string{"A", "LCTRL", "TRANS"},
		Layers: []model.Layer{
			{Name: "default", Labels: []string{"A", "LCTRL", "TRANS"}},
			{Name: "lower", Labels: []string{"N1", "N2", "N3"}},
		},
	}
}

type MockServerHandler struct {
	routes.ServerHandler
	MockStorage *SimpleStorageMock
	MockTracker *TrackerMock
}

// setupMockServerHandler creates a handler around a loaded viewer state.
func setupMockServerHandler() MockServerHandler {
	state := viewer.New()
	state.Load(testLayout())

	storage := &SimpleStorageMock{}
	tracker := &TrackerMock{}

	return MockServerHandler{
		ServerHandler: routes.ServerHandler{
			State:        state,
			Storage:      storage,
			Tracker:      tracker,
			CanvasWidth:  300,
			CanvasHeight: 100,
		},
		MockStorage: storage,
		MockTracker: tracker,
	}
}
