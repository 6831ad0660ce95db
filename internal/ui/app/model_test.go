package app

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	librarydto "readrise/internal/modules/library/dto"
	sessiondto "readrise/internal/modules/session/dto"
	statsdto "readrise/internal/modules/stats/dto"
	"readrise/internal/platform/civil"
	libraryview "readrise/internal/ui/views/library"
)

type recorder struct {
	moved     string
	progress  *librarydto.LogProgressInput
	goal      int
	started   bool
	startPage *int
	ended     string
	endPage   *int
	note      *string
}

type fakeLibrary struct{ rec *recorder }

func (f fakeLibrary) ListEntries(context.Context, string, string) ([]librarydto.EntryOutput, error) {
	return nil, nil
}
func (f fakeLibrary) ListProgress(context.Context, string, string, int) ([]librarydto.ProgressOutput, error) {
	return nil, nil
}
func (f fakeLibrary) MoveShelf(_ context.Context, _, entryID, shelf string, _ *civil.Date) (librarydto.EntryOutput, error) {
	f.rec.moved = entryID + ":" + shelf
	return librarydto.EntryOutput{ID: entryID, Title: "Dune", Shelf: shelf}, nil
}
func (f fakeLibrary) LogProgress(_ context.Context, in librarydto.LogProgressInput) (librarydto.LogProgressOutput, error) {
	f.rec.progress = &in
	return librarydto.LogProgressOutput{Progress: librarydto.ProgressOutput{Page: in.Page}}, nil
}
func (f fakeLibrary) SetGoal(_ context.Context, _ string, year, target int) (librarydto.GoalOutput, error) {
	f.rec.goal = target
	return librarydto.GoalOutput{Year: 2024, Target: target}, nil
}

type fakeSession struct{ rec *recorder }

func (f fakeSession) Start(_ context.Context, _, entryID string, startPage *int) (sessiondto.StartOutput, error) {
	f.rec.started = true
	f.rec.startPage = startPage
	return sessiondto.StartOutput{Session: sessiondto.SessionOutput{ID: "s-1", EntryID: entryID}}, nil
}
func (f fakeSession) End(_ context.Context, _, sessionID string, endPage *int, note *string) (sessiondto.SessionOutput, error) {
	f.rec.ended = sessionID
	f.rec.endPage = endPage
	f.rec.note = note
	return sessiondto.SessionOutput{ID: sessionID}, nil
}

type fakeStats struct{}

func (fakeStats) Dashboard(context.Context, string) (statsdto.DashboardOutput, error) {
	return statsdto.DashboardOutput{}, nil
}

func newTestModel(rec *recorder, withEntry bool) Model {
	m := NewModel("u-1", fakeLibrary{rec: rec}, fakeSession{rec: rec}, fakeStats{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)
	if withEntry {
		next, _ = m.Update(libraryview.EntriesLoadedMsg{Entries: []librarydto.EntryOutput{{ID: "e-1", Title: "Dune", Shelf: "reading"}}})
		m = next.(Model)
	}
	return m
}

func TestExecutePaletteParsesArguments(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		input      string
		noEntry    bool
		running    bool
		wantStatus string
		check      func(t *testing.T, rec *recorder)
	}{
		{name: "shelf", input: "shelf finished", check: func(t *testing.T, rec *recorder) {
			if rec.moved != "e-1:finished" {
				t.Fatalf("moved = %q", rec.moved)
			}
		}},
		{name: "shelf without target", input: "shelf", wantStatus: "usage: shelf <want_to_read|reading|finished|abandoned>"},
		{name: "shelf without selection", input: "shelf finished", noEntry: true, wantStatus: "no book selected"},
		{name: "progress with note", input: "progress 42  loved the ending", check: func(t *testing.T, rec *recorder) {
			if rec.progress == nil || rec.progress.Page != 42 || rec.progress.EntryID != "e-1" {
				t.Fatalf("progress = %+v", rec.progress)
			}
			if rec.progress.Note == nil || *rec.progress.Note != "loved the ending" {
				t.Fatalf("note = %v", rec.progress.Note)
			}
		}},
		{name: "progress without note", input: "progress 42", check: func(t *testing.T, rec *recorder) {
			if rec.progress == nil || rec.progress.Note != nil {
				t.Fatalf("progress = %+v", rec.progress)
			}
		}},
		{name: "progress bad page", input: "progress abc", wantStatus: "invalid page"},
		{name: "progress missing page", input: "progress", wantStatus: "usage: progress <page> [note]"},
		{name: "session start with page", input: "session:start 10", check: func(t *testing.T, rec *recorder) {
			if !rec.started || rec.startPage == nil || *rec.startPage != 10 {
				t.Fatalf("start page = %v", rec.startPage)
			}
		}},
		{name: "session start bare", input: "session:start", check: func(t *testing.T, rec *recorder) {
			if !rec.started || rec.startPage != nil {
				t.Fatalf("start page = %v", rec.startPage)
			}
		}},
		{name: "session start bad page", input: "session:start x", wantStatus: "invalid page"},
		{name: "session start while running", input: "session:start", running: true, wantStatus: "end the running session first"},
		{name: "session end idle", input: "session:end 5", wantStatus: "no session running"},
		{name: "session end with page and note", input: "session:end 120 good pace", running: true, check: func(t *testing.T, rec *recorder) {
			if rec.ended != "s-9" || rec.endPage == nil || *rec.endPage != 120 {
				t.Fatalf("ended %q at %v", rec.ended, rec.endPage)
			}
			if rec.note == nil || *rec.note != "good pace" {
				t.Fatalf("note = %v", rec.note)
			}
		}},
		{name: "session end bad page", input: "session:end x", running: true, wantStatus: "invalid page"},
		{name: "goal", input: "goal 12", check: func(t *testing.T, rec *recorder) {
			if rec.goal != 12 {
				t.Fatalf("goal = %d", rec.goal)
			}
		}},
		{name: "goal bad target", input: "goal many", wantStatus: "invalid target"},
		{name: "unknown", input: "teleport", wantStatus: "unknown command: teleport"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := &recorder{}
			m := newTestModel(rec, !tc.noEntry)
			if tc.running {
				m = m.WithSession(sessiondto.SessionOutput{ID: "s-9", EntryID: "e-1"}, "Dune")
			}
			next, cmd := m.executePalette(tc.input)
			got := next.(Model)

			if tc.wantStatus != "" {
				if got.status != tc.wantStatus {
					t.Fatalf("status = %q, want %q", got.status, tc.wantStatus)
				}
				if cmd != nil {
					t.Fatalf("rejected input must not emit a command")
				}
				return
			}
			if cmd == nil {
				t.Fatalf("expected a command for %q", tc.input)
			}
			_ = cmd()
			tc.check(t, rec)
		})
	}
}

func TestExecutePaletteIgnoresBlankInput(t *testing.T) {
	t.Parallel()
	m := newTestModel(&recorder{}, true)
	next, cmd := m.executePalette("   ")
	if cmd != nil || next.(Model).status != "ready" {
		t.Fatalf("blank input should be a no-op, status %q", next.(Model).status)
	}
}

func TestRestAfter(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		input string
		n     int
		want  string
	}{
		{input: "progress 42 a  spaced note", n: 2, want: "a  spaced note"},
		{input: "progress 42", n: 2, want: ""},
		{input: "  session:end\t7 done ", n: 2, want: "done"},
	} {
		if got := restAfter(tc.input, tc.n); got != tc.want {
			t.Fatalf("restAfter(%q, %d) = %q, want %q", tc.input, tc.n, got, tc.want)
		}
	}
}
