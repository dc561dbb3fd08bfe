package application

import (
	"context"
	"os"
	"sync"

	"github.com/devbush/swiftconvert/internal/domain"
	"github.com/devbush/swiftconvert/internal/ports"
)

// Mock implementations for testing

type notice struct {
	level   string
	title   string
	message string
	link    *ports.Link
}

type mockNotifier struct {
	mu      sync.Mutex
	notices []notice
}

func (m *mockNotifier) add(n notice) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notices = append(m.notices, n)
}

func (m *mockNotifier) Info(message string)  { m.add(notice{level: "info", message: message}) }
func (m *mockNotifier) Warn(message string)  { m.add(notice{level: "warn", message: message}) }
func (m *mockNotifier) Error(message string) { m.add(notice{level: "error", message: message}) }
func (m *mockNotifier) Success(title, message string, link *ports.Link) {
	m.add(notice{level: "success", title: title, message: message, link: link})
}

func (m *mockNotifier) all() []notice {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notice(nil), m.notices...)
}

type mockConverter struct {
	mu       sync.Mutex
	calls    []domain.SelectedFile
	params   []ports.ConvertParams
	convert  func(ctx context.Context, file domain.SelectedFile, progress func(sent, total int64)) (*ports.ConvertResponse, error)
	errFiles map[string]error
}

func (m *mockConverter) Convert(ctx context.Context, file domain.SelectedFile, params ports.ConvertParams, progress func(sent, total int64)) (*ports.ConvertResponse, error) {
	m.mu.Lock()
	m.calls = append(m.calls, file)
	m.params = append(m.params, params)
	m.mu.Unlock()

	if err, ok := m.errFiles[file.Name]; ok {
		return nil, err
	}
	if m.convert != nil {
		return m.convert(ctx, file, progress)
	}
	progress(file.Size, file.Size)
	return &ports.ConvertResponse{
		Results: []domain.ConversionResult{{
			ID:          "id-" + file.Name,
			Name:        file.Name + "." + string(params.TargetFormat),
			Type:        string(params.TargetFormat),
			DownloadURL: "https://files.example.com/" + file.Name,
		}},
	}, nil
}

func (m *mockConverter) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

type mockFetcher struct {
	mu       sync.Mutex
	payloads map[string][]byte
	errs     map[string]error
	fetches  int
}

func (m *mockFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetches++
	if err, ok := m.errs[url]; ok {
		return nil, err
	}
	if data, ok := m.payloads[url]; ok {
		return data, nil
	}
	return []byte("data:" + url), nil
}

func (m *mockFetcher) Download(ctx context.Context, url string, destPath string, progress func(downloaded, total int64)) error {
	data, err := m.Fetch(ctx, url)
	if err != nil {
		return err
	}
	return os.WriteFile(destPath, data, 0644)
}

type mockArchiver struct {
	writes  int
	path    string
	entries []ports.ArchiveEntry
	err     error
}

func (m *mockArchiver) Write(destPath string, entries []ports.ArchiveEntry) error {
	m.writes++
	if m.err != nil {
		return m.err
	}
	m.path = destPath
	m.entries = entries
	return nil
}

type mockCloud struct {
	calls  int
	userID string
	files  []ports.ExportFile
	result *ports.ExportResult
	err    error
}

func (m *mockCloud) ExportToGoogleDrive(ctx context.Context, userID string, files []ports.ExportFile) (*ports.ExportResult, error) {
	m.calls++
	m.userID = userID
	m.files = files
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

type mockAuth struct {
	session ports.AuthSession
	err     error
	signIns int
}

func (m *mockAuth) Session(ctx context.Context) (ports.AuthSession, error) {
	return m.session, m.err
}

func (m *mockAuth) SignIn(ctx context.Context) error {
	m.signIns++
	return nil
}

type captured struct {
	event      string
	properties map[string]any
}

type mockAnalytics struct {
	mu     sync.Mutex
	events []captured
}

func (m *mockAnalytics) Capture(event string, properties map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, captured{event: event, properties: properties})
}

type mockSession struct {
	mu    sync.Mutex
	state *ports.SessionState
	err   error
	saves int
}

func (m *mockSession) Load(ctx context.Context) (*ports.SessionState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.state == nil {
		return nil, domain.ErrSessionMiss
	}
	copied := *m.state
	return &copied, nil
}

func (m *mockSession) Save(ctx context.Context, state *ports.SessionState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	copied := *state
	m.state = &copied
	return nil
}

func (m *mockSession) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = nil
	return nil
}
