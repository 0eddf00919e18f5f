package generator

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResolver_Flags(t *testing.T) {
	tests := []struct {
		name              string
		force, skip, diff bool
		want              ConflictStrategy
		wantErr           bool
	}{
		{name: "default", want: InteractiveStrategy{}},
		{name: "force", force: true, want: ForceStrategy{}},
		{name: "skip", skip: true, want: SkipStrategy{}},
		{name: "diff", diff: true, want: &DiffStrategy{}},
		{name: "force and skip", force: true, skip: true, wantErr: true},
		{name: "force and diff", force: true, diff: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewResolver(tt.force, tt.skip, tt.diff, &bytes.Buffer{})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrConflictFlags)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, r.strategy)
		})
	}
}

func TestAutomaticStrategies(t *testing.T) {
	c := Conflict{Path: "a.c", Existing: []byte("a"), Generated: []byte("b")}

	got, err := ForceStrategy{}.Resolve(c)
	require.NoError(t, err)
	assert.Equal(t, Overwrite, got)

	got, err = SkipStrategy{}.Resolve(c)
	require.NoError(t, err)
	assert.Equal(t, Skip, got)
}

func TestDiffStrategy_PrintsThenDelegates(t *testing.T) {
	var out bytes.Buffer
	s := &DiffStrategy{diffGen: NewDiffGenerator(), out: &out, next: SkipStrategy{}}

	got, err := s.Resolve(Conflict{Path: "a.c", Existing: []byte("old\n"), Generated: []byte("new\n")})
	require.NoError(t, err)
	assert.Equal(t, Skip, got)
	assert.Contains(t, out.String(), "-old")
	assert.Contains(t, out.String(), "+new")
}

func TestConflictMenuModel(t *testing.T) {
	m := newConflictMenuModel(Conflict{Path: "a.c", Dropped: []string{"Legacy"}}, nil)
	assert.Contains(t, m.View(), "a.c")
	assert.Contains(t, m.View(), "Legacy")

	down := tea.KeyMsg{Type: tea.KeyDown}
	next, _ := m.Update(down)
	next, _ = next.Update(down)
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})

	menu := next.(conflictMenuModel)
	require.NotNil(t, menu.selected)
	assert.Equal(t, Overwrite, *menu.selected)
	assert.NotNil(t, cmd)
}

func TestConflictMenuModel_CursorBounds(t *testing.T) {
	var model tea.Model = newConflictMenuModel(Conflict{Path: "a.c"}, nil)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, model.(conflictMenuModel).cursor)

	for range 10 {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, len(menuChoices)-1, model.(conflictMenuModel).cursor)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, model.(conflictMenuModel).selected)
}

func TestDiffViewerModel(t *testing.T) {
	var model tea.Model = newDiffViewerModel("a.c", "+x\n")
	assert.Equal(t, "Loading diff...", model.View())

	model, _ = model.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	view := model.View()
	assert.Contains(t, view, "Diff: a.c")
	assert.Contains(t, view, "+x")

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, model.(diffViewerModel).cancelled)
}

func TestResolutionString(t *testing.T) {
	assert.Equal(t, "skip", Skip.String())
	assert.Equal(t, "overwrite", Overwrite.String())
	assert.Equal(t, "diff", ShowDiff.String())
	assert.Equal(t, "cancel", Cancel.String())
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Now()
	tests := []struct {
		t    time.Time
		want string
	}{
		{now, "just now"},
		{now.Add(-1 * time.Minute), "1 minute ago"},
		{now.Add(-5 * time.Minute), "5 minutes ago"},
		{now.Add(-2 * time.Hour), "2 hours ago"},
		{now.Add(-3 * 24 * time.Hour), "3 days ago"},
		{now.Add(-14 * 24 * time.Hour), "2 weeks ago"},
		{now.Add(-400 * 24 * time.Hour), "1 year ago"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatRelativeTime(tt.t))
		})
	}
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "512 B", formatFileSize(512))
	assert.Equal(t, "1.0 KB", formatFileSize(1024))
	assert.Equal(t, "1.5 MB", formatFileSize(1024*1024*3/2))
}
