package backup

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ScrapTracker_Go/internal/domain"
	"github.com/osse101/ScrapTracker_Go/internal/entry"
	"github.com/osse101/ScrapTracker_Go/internal/option"
	"github.com/osse101/ScrapTracker_Go/internal/repository"
	"github.com/osse101/ScrapTracker_Go/internal/testing/storetest"
)

var fixedNow = time.Date(2024, 3, 5, 7, 30, 0, 0, time.Local)

func newBackup(t *testing.T) (Service, repository.Store) {
	t.Helper()
	store := storetest.NewSQLite(t)
	svc := NewService(store, nil)
	svc.(*service).now = func() time.Time { return fixedNow }
	return svc, store
}

func seed(t *testing.T, store repository.Store) {
	t.Helper()
	ctx := context.Background()
	entries := entry.NewService(store.Entries(), entry.WithClock(func() time.Time { return fixedNow }))

	_, err := entries.Insert(ctx, domain.EntryForm{Parts: "Bolt", Line: "TRIM 1", Reason: "Scratch", Sequence: "5", Shift: "BLUE", Notes: "left, side"})
	require.NoError(t, err)
	_, err = entries.Insert(ctx, domain.EntryForm{Parts: "Bolt", Line: "TRIM 1", Reason: "Dent", Sequence: "6", Shift: "RED", Comments: `said "ok"`})
	require.NoError(t, err)
}

func snapshot(t *testing.T, svc Service) *domain.BackupDocument {
	t.Helper()
	doc, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	return doc
}

func TestExportJSON(t *testing.T) {
	svc, store := newBackup(t)
	seed(t, store)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportJSON(context.Background(), &buf))

	want := `{
  "options": {
    "line": ["CHASSIS 1", "CHASSIS 2", "FINAL 1", "TRIM 1", "TRIM 2", "TRIM 3"],
    "shift": ["BLUE", "RED"]
  },
  "items": [
    {"id": 1, "created_at": "2024-03-05 07:30:00", "parts": "Bolt", "line": "TRIM 1", "reason": "Scratch",
     "sequence": 5, "shift": "BLUE", "notes": "left, side", "comments": null},
    {"id": 2, "created_at": "2024-03-05 07:30:00", "parts": "Bolt", "line": "TRIM 1", "reason": "Dent",
     "sequence": 6, "shift": "RED", "notes": null, "comments": "said \"ok\""}
  ]
}`
	assert.JSONEq(t, want, buf.String())
	assert.True(t, strings.HasPrefix(buf.String(), "{\n  \"options\": {\n"), "output is pretty printed")
}

func TestExportJSON_EmptyStore(t *testing.T) {
	svc, _ := newBackup(t)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportJSON(context.Background(), &buf))
	assert.Contains(t, buf.String(), `"items": []`)
}

func TestExportCSV(t *testing.T) {
	svc, store := newBackup(t)
	seed(t, store)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), &buf))

	want := "DateTime,Parts,Line,Reason,Sequence,Shift,Notes,Comments\n" +
		"2024-03-05 07:30:00,Bolt,TRIM 1,Scratch,5,BLUE,\"left, side\",\n" +
		"2024-03-05 07:30:00,Bolt,TRIM 1,Dent,6,RED,,\"said \"\"ok\"\"\"\n"
	assert.Equal(t, want, buf.String())
}

func TestRoundTrip(t *testing.T) {
	src, srcStore := newBackup(t)
	seed(t, srcStore)
	ctx := context.Background()

	_, err := option.NewService(srcStore, nil).Add(ctx, domain.OptionGroupShift, "GREEN")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, src.ExportJSON(ctx, &buf))

	dst, _ := newBackup(t)
	result, err := dst.ImportJSON(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Items)

	if diff := cmp.Diff(snapshot(t, src), snapshot(t, dst)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestImportJSON_ReplacesPriorState(t *testing.T) {
	svc, store := newBackup(t)
	seed(t, store)

	doc := `{
		"options": {"line": ["PAINT 1"], "shift": ["NIGHT", "DAY"]},
		"items": [{"id": 40, "created_at": "2023-12-31 23:59:59", "parts": "Hood", "line": "PAINT 1",
			"reason": "Run", "sequence": 2, "shift": "NIGHT"}]
	}`
	_, err := svc.ImportJSON(context.Background(), strings.NewReader(doc))
	require.NoError(t, err)

	got := snapshot(t, svc)
	assert.Equal(t, []string{"PAINT 1"}, got.Options.Line)
	assert.Equal(t, []string{"DAY", "NIGHT"}, got.Options.Shift)
	require.Len(t, got.Items, 1)
	assert.Equal(t, domain.Entry{
		ID: 40, CreatedAt: "2023-12-31 23:59:59", Parts: "Hood", Line: "PAINT 1", Reason: "Run", Sequence: 2, Shift: "NIGHT",
	}, got.Items[0])
}

func TestImportJSON_Coercion(t *testing.T) {
	svc, _ := newBackup(t)

	doc := `{"options": {"line": [], "shift": []}, "items": [
		{"id": "7", "parts": "X", "line": "A", "reason": "R", "sequence": " 12 ", "shift": "S", "notes": "", "comments": "  "},
		{"id": 8.0, "created_at": null, "parts": "Y", "line": "A", "reason": "R", "sequence": 3, "shift": "S", "notes": null}
	]}`
	_, err := svc.ImportJSON(context.Background(), strings.NewReader(doc))
	require.NoError(t, err)

	got := snapshot(t, svc)
	require.Len(t, got.Items, 2)
	assert.Equal(t, int64(7), got.Items[0].ID)
	assert.Equal(t, 12, got.Items[0].Sequence)
	assert.Equal(t, "2024-03-05 07:30:00", got.Items[0].CreatedAt, "missing created_at becomes now")
	assert.Equal(t, int64(8), got.Items[1].ID)
	assert.Equal(t, "2024-03-05 07:30:00", got.Items[1].CreatedAt)
	assert.Nil(t, got.Items[0].Notes, "empty notes are stored as NULL")
	assert.Nil(t, got.Items[0].Comments, "blank comments are stored as NULL")

	// empty option groups fall back to the defaults
	assert.Equal(t, []string{"BLUE", "RED"}, got.Options.Shift)
	assert.Len(t, got.Options.Line, len(domain.DefaultLines))
}

func TestImportJSON_RejectsAndLeavesStateIntact(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{"items": [`},
		{"not an object", `[]`},
		{"missing items", `{"options": {"line": ["A"], "shift": ["B"]}}`},
		{"unknown top-level key", `{"options": {"line": ["A"], "shift": ["B"]}, "items": [], "extra": 1}`},
		{"missing options", `{"items": []}`},
		{"options missing shift", `{"options": {"line": ["A"]}, "items": []}`},
		{"items not an array", `{"options": {"line": ["A"], "shift": ["S"]}, "items": {}}`},
		{"sequence not a number", `{"options": {"line": ["A"], "shift": ["S"]}, "items": [{"id": 1, "parts": "X", "line": "A", "reason": "R", "sequence": "not-a-number", "shift": "S"}]}`},
		{"fractional sequence", `{"options": {"line": ["A"], "shift": ["S"]}, "items": [{"id": 1, "parts": "X", "line": "A", "reason": "R", "sequence": 1.5, "shift": "S"}]}`},
		{"id not a number", `{"options": {"line": ["A"], "shift": ["S"]}, "items": [{"id": "one", "parts": "X", "line": "A", "reason": "R", "sequence": 1, "shift": "S"}]}`},
		{"missing id", `{"options": {"line": ["A"], "shift": ["S"]}, "items": [{"parts": "X", "line": "A", "reason": "R", "sequence": 1, "shift": "S"}]}`},
		{"missing parts", `{"options": {"line": ["A"], "shift": ["S"]}, "items": [{"id": 1, "line": "A", "reason": "R", "sequence": 1, "shift": "S"}]}`},
		{"blank shift", `{"options": {"line": ["A"], "shift": ["S"]}, "items": [{"id": 1, "parts": "X", "line": "A", "reason": "R", "sequence": 1, "shift": "  "}]}`},
		{"duplicate ids", `{"options": {"line": ["A"], "shift": ["S"]}, "items": [
			{"id": 1, "parts": "X", "line": "A", "reason": "R", "sequence": 1, "shift": "S"},
			{"id": "1", "parts": "Y", "line": "A", "reason": "R", "sequence": 2, "shift": "S"}]}`},
		{"bad created_at", `{"options": {"line": ["A"], "shift": ["S"]}, "items": [{"id": 1, "created_at": "yesterday", "parts": "X", "line": "A", "reason": "R", "sequence": 1, "shift": "S"}]}`},
		{"option value not a string", `{"options": {"line": [1], "shift": ["S"]}, "items": []}`},
		{"sequence beyond 32 bits", `{"options": {"line": ["A"], "shift": ["S"]}, "items": [{"id": 1, "parts": "X", "line": "A", "reason": "R", "sequence": 3000000000, "shift": "S"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newBackup(t)
			seed(t, store)
			before := snapshot(t, svc)

			_, err := svc.ImportJSON(context.Background(), strings.NewReader(tt.doc))
			require.ErrorIs(t, err, domain.ErrImport)

			if diff := cmp.Diff(before, snapshot(t, svc)); diff != "" {
				t.Errorf("store changed after rejected import (-before +after):\n%s", diff)
			}
		})
	}
}

func TestRoundTrip_SequenceBounds(t *testing.T) {
	src, srcStore := newBackup(t)
	ctx := context.Background()
	entries := entry.NewService(srcStore.Entries(), entry.WithClock(func() time.Time { return fixedNow }))

	for _, seq := range []string{"2147483647", "-2147483648"} {
		_, err := entries.Insert(ctx, domain.EntryForm{Parts: "Bolt", Line: "TRIM 1", Reason: "Dent", Sequence: seq, Shift: "RED"})
		require.NoError(t, err)
	}
	_, err := entries.Insert(ctx, domain.EntryForm{Parts: "Bolt", Line: "TRIM 1", Reason: "Dent", Sequence: "3000000000", Shift: "RED"})
	require.ErrorIs(t, err, domain.ErrValidation, "a sequence the backup could not hold is rejected at insert")

	var buf bytes.Buffer
	require.NoError(t, src.ExportJSON(ctx, &buf))

	dst, _ := newBackup(t)
	_, err = dst.ImportJSON(ctx, &buf)
	require.NoError(t, err)

	got := snapshot(t, dst)
	require.Len(t, got.Items, 2)
	assert.Equal(t, 2147483647, got.Items[0].Sequence)
	assert.Equal(t, -2147483648, got.Items[1].Sequence)
	if diff := cmp.Diff(snapshot(t, src), got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestImportJSON_TooLarge(t *testing.T) {
	svc, _ := newBackup(t)

	big := strings.NewReader(`{"items": [], "pad": "` + strings.Repeat("x", MaxImportBytes) + `"}`)
	_, err := svc.ImportJSON(context.Background(), big)
	require.ErrorIs(t, err, domain.ErrImport)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    int64
		wantErr bool
	}{
		{"string", "42", 42, false},
		{"signed string", "-3", -3, false},
		{"padded string", " 9 ", 9, false},
		{"decimal string", "4.0", 0, true},
		{"nil", nil, 0, true},
		{"bool", true, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := coerceInt(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
