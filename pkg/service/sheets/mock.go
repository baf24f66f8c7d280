package sheets

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"
)

// Mock is an in-memory Service for tests. Tabs are addressed by title, rows
// are stored as plain string grids.
type Mock struct {
	mu   sync.Mutex
	tabs []*mockTab
}

type mockTab struct {
	id    int64
	title string
	rows  [][]string
}

func NewMock(titles ...string) *Mock {
	m := &Mock{}
	for _, title := range titles {
		m.AddTab(title)
	}
	return m
}

// AddTab appends a tab with the given title and returns its sheet ID.
func (m *Mock) AddTab(title string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := int64(len(m.tabs) + 1000)
	m.tabs = append(m.tabs, &mockTab{id: id, title: title})
	return id
}

// SetRows replaces the contents of the named tab.
func (m *Mock) SetRows(title string, rows [][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tab := m.findByTitle(title)
	if tab == nil {
		id := int64(len(m.tabs) + 1000)
		tab = &mockTab{id: id, title: title}
		m.tabs = append(m.tabs, tab)
	}
	tab.rows = nil
	for _, row := range rows {
		tab.rows = append(tab.rows, append([]string{}, row...))
	}
}

// Rows returns a copy of the named tab's contents.
func (m *Mock) Rows(title string) [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	tab := m.findByTitle(title)
	if tab == nil {
		return nil
	}
	out := make([][]string, len(tab.rows))
	for i, row := range tab.rows {
		out[i] = append([]string{}, row...)
	}
	return out
}

func (m *Mock) findByTitle(title string) *mockTab {
	for _, tab := range m.tabs {
		if tab.title == title {
			return tab
		}
	}
	return nil
}

func (m *Mock) findByID(id int64) *mockTab {
	for _, tab := range m.tabs {
		if tab.id == id {
			return tab
		}
	}
	return nil
}

func (m *Mock) ListTabs(_ context.Context, _ string) ([]Tab, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tabs := make([]Tab, 0, len(m.tabs))
	for i, tab := range m.tabs {
		tabs = append(tabs, Tab{ID: tab.id, Title: tab.title, Index: int64(i)})
	}
	return tabs, nil
}

func (m *Mock) GetValues(_ context.Context, _ string, rangeA1 string) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	title, colRange, err := splitRange(rangeA1)
	if err != nil {
		return nil, err
	}
	tab := m.findByTitle(title)
	if tab == nil {
		return nil, goerr.New("tab not found", goerr.V("title", title))
	}

	// Only single-column ranges like A:A or A2:A are used by callers; a full
	// range returns the whole grid.
	if strings.HasPrefix(colRange, "A") && strings.HasSuffix(colRange, ":A") || colRange == "A:A" {
		out := make([][]string, 0, len(tab.rows))
		for _, row := range tab.rows {
			if len(row) == 0 {
				out = append(out, []string{})
				continue
			}
			out = append(out, []string{row[0]})
		}
		return out, nil
	}

	out := make([][]string, len(tab.rows))
	for i, row := range tab.rows {
		out[i] = append([]string{}, row...)
	}
	return out, nil
}

func (m *Mock) DeleteRows(_ context.Context, _ string, tabID int64, rows []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tab := m.findByID(tabID)
	if tab == nil {
		return goerr.New("tab not found", goerr.V("tabID", tabID))
	}

	drop := make(map[int64]bool, len(rows))
	for _, row := range rows {
		if row < 0 || row >= int64(len(tab.rows)) {
			return goerr.New("row index out of range",
				goerr.V("row", row), goerr.V("rows", len(tab.rows)))
		}
		drop[row] = true
	}

	kept := tab.rows[:0]
	for i, row := range tab.rows {
		if !drop[int64(i)] {
			kept = append(kept, row)
		}
	}
	tab.rows = kept
	return nil
}

func (m *Mock) AppendRows(_ context.Context, _ string, rangeA1 string, rows [][]any) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	title, _, err := splitRange(rangeA1)
	if err != nil {
		return 0, err
	}
	tab := m.findByTitle(title)
	if tab == nil {
		return 0, goerr.New("tab not found", goerr.V("title", title))
	}

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = fmt.Sprint(cell)
		}
		tab.rows = append(tab.rows, cells)
	}
	return len(rows), nil
}

// splitRange separates a "'Tab Title'!A:A" style range into title and cells.
func splitRange(rangeA1 string) (string, string, error) {
	title := rangeA1
	cells := ""
	if idx := strings.LastIndex(rangeA1, "!"); idx >= 0 {
		title = rangeA1[:idx]
		cells = rangeA1[idx+1:]
	}
	title = strings.Trim(title, "'")
	if title == "" {
		return "", "", goerr.New("invalid range", goerr.V("range", rangeA1))
	}
	return title, cells, nil
}
