package ui

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/five82/receipt/internal/prefs"
	"github.com/five82/receipt/internal/printer"
)

func TestComposeFieldsCoverEveryKind(t *testing.T) {
	for _, kind := range printer.Kinds() {
		if len(composeFields[kind]) == 0 {
			t.Errorf("no compose fields for %q", kind)
		}
	}
}

func TestBuildDocument(t *testing.T) {
	rule := 90
	seed := int64(-7)

	cases := []struct {
		name   string
		kind   string
		values map[string]string
		want   printer.Document
	}{
		{
			name:   "text",
			kind:   printer.KindText,
			values: map[string]string{"text": "hi", "force_wrap": "on", "feed": "on"},
			want:   printer.Text{Text: "hi", ForceWrap: true, Feed: true},
		},
		{
			name:   "chat without feed",
			kind:   printer.KindChat,
			values: map[string]string{"username": "ada", "content": "hello"},
			want:   printer.Chat{Username: "ada", Content: "hello"},
		},
		{
			name:   "calendar defaults",
			kind:   printer.KindCalendar,
			values: map[string]string{"year": " ", "month": "", "feed": "on"},
			want:   printer.Calendar{Feed: true},
		},
		{
			name:   "sunrise",
			kind:   printer.KindSunrise,
			values: map[string]string{"latitude": "52.5", "longitude": "-13.25", "month": "6"},
			want:   printer.Sunrise{Latitude: 52.5, Longitude: -13.25, Month: 6},
		},
		{
			name:   "cells with rule",
			kind:   printer.KindCells,
			values: map[string]string{"rule": "90", "rows": "12"},
			want:   printer.Cells{Rule: &rule, Rows: 12},
		},
		{
			name:   "cells random rule",
			kind:   printer.KindCells,
			values: map[string]string{"rule": ""},
			want:   printer.Cells{},
		},
		{
			name:   "egg with seed",
			kind:   printer.KindEgg,
			values: map[string]string{"seed": "-7", "mode": "bw"},
			want:   printer.Egg{Seed: &seed, Mode: "bw"},
		},
		{
			name:   "xkcd latest",
			kind:   printer.KindXKCD,
			values: map[string]string{"number": ""},
			want:   printer.XKCD{},
		},
		{
			name:   "catfishing",
			kind:   printer.KindCatfishing,
			values: map[string]string{"day": "3", "feed": "on"},
			want:   printer.Catfishing{Day: 3, Feed: true},
		},
		{
			name:   "tictactoe",
			kind:   printer.KindTicTacToe,
			values: map[string]string{"feed": "on"},
			want:   printer.TicTacToe{Feed: true},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := buildDocument(tc.kind, tc.values)
			if err != nil {
				t.Fatalf("buildDocument returned error: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("buildDocument = %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestBuildDocument_Errors(t *testing.T) {
	if _, err := buildDocument(printer.KindSunrise, map[string]string{"longitude": "1"}); !errors.Is(err, printer.ErrMissingField) {
		t.Fatalf("missing latitude error = %v, want ErrMissingField", err)
	}
	if _, err := buildDocument(printer.KindXKCD, map[string]string{"number": "abc"}); err == nil || !strings.Contains(err.Error(), `"abc" is not a number`) {
		t.Fatalf("bad number error = %v", err)
	}
	if _, err := buildDocument(printer.KindPhoto, map[string]string{"title": "x"}); !errors.Is(err, printer.ErrMissingField) {
		t.Fatalf("missing file error = %v, want ErrMissingField", err)
	}
	for _, bad := range []map[string]string{
		{"rows": "-3"},
		{"rows": "0"},
		{"scale": "-1"},
		{"scale": " 0 "},
	} {
		if _, err := buildDocument(printer.KindCells, bad); err == nil || !strings.Contains(err.Error(), "must be positive") {
			t.Fatalf("cells %v error = %v, want must be positive", bad, err)
		}
	}
	if _, err := buildDocument("fax", nil); err == nil {
		t.Fatal("unknown kind returned nil error")
	}
}

func TestBuildDocument_ReadsFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cat.png")
	if err := os.WriteFile(path, []byte("PNG!"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	doc, err := buildDocument(printer.KindImage, map[string]string{"file": path, "algo": printer.AlgoStucki, "bright": "on"})
	if err != nil {
		t.Fatalf("buildDocument returned error: %v", err)
	}
	img, ok := doc.(printer.Image)
	if !ok {
		t.Fatalf("doc = %T, want printer.Image", doc)
	}
	if img.Filename != "cat.png" || string(img.Data) != "PNG!" || img.Algo != printer.AlgoStucki || !img.Bright || img.Seamless {
		t.Fatalf("image = %#v", img)
	}

	t.Setenv("HOME", dir)
	doc, err = buildDocument(printer.KindPhoto, map[string]string{"file": "~/cat.png", "title": "Cat"})
	if err != nil {
		t.Fatalf("buildDocument with ~ returned error: %v", err)
	}
	if photo := doc.(printer.Photo); photo.Title != "Cat" || string(photo.Data) != "PNG!" {
		t.Fatalf("photo = %#v", photo)
	}
}

func TestFileHint(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.jpg")
	if err := os.WriteFile(path, make([]byte, 2048), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if got := fileHint(path); got != "2.0 KiB" {
		t.Fatalf("fileHint = %q, want 2.0 KiB", got)
	}
	if got := fileHint(filepath.Join(dir, "nope.jpg")); got != "not found" {
		t.Fatalf("fileHint missing = %q, want not found", got)
	}
	if got := fileHint(dir); got != "is a directory" {
		t.Fatalf("fileHint dir = %q", got)
	}
	if got := fileHint("  "); got != "" {
		t.Fatalf("fileHint blank = %q, want empty", got)
	}
}

func TestNewComposeForm_Prefills(t *testing.T) {
	form := newComposeForm(printer.KindChat, prefs.Prefs{Username: "ada"}, 80)
	if got := form.value("username"); got != "ada" {
		t.Fatalf("username = %q, want ada", got)
	}
	if got := form.value("feed"); got != "on" {
		t.Fatalf("feed = %q, want on by default", got)
	}

	image := newComposeForm(printer.KindImage, prefs.Prefs{Algo: printer.AlgoStucki}, 80)
	if got := image.value("algo"); got != printer.AlgoStucki {
		t.Fatalf("algo = %q, want %s", got, printer.AlgoStucki)
	}
	if got := image.value("bright"); got != "on" {
		t.Fatalf("bright = %q, want on by default", got)
	}
	if got := image.value("seamless"); got != "" {
		t.Fatalf("seamless = %q, want off by default", got)
	}
}

func TestUntouchedImageFormUsesServerDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dog.png")
	if err := os.WriteFile(path, []byte("PNG!"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	form := newComposeForm(printer.KindImage, prefs.Prefs{}, 80)
	for i := range form.fields {
		if form.fields[i].def.name == "file" {
			form.fields[i].input.SetValue(path)
		}
	}
	doc, err := form.document()
	if err != nil {
		t.Fatalf("document returned error: %v", err)
	}
	img := doc.(printer.Image)
	if !img.Bright || img.Seamless || !img.Feed {
		t.Fatalf("image flags = bright:%v seamless:%v feed:%v, want true/false/true", img.Bright, img.Seamless, img.Feed)
	}
}

func TestComposeForm_FocusWraps(t *testing.T) {
	form := newComposeForm(printer.KindText, prefs.Prefs{}, 80)
	form.setFocus(-1)
	if form.focus != len(form.fields)-1 {
		t.Fatalf("focus = %d, want last field", form.focus)
	}
	form.setFocus(len(form.fields))
	if form.focus != 0 {
		t.Fatalf("focus = %d, want 0", form.focus)
	}
}

func TestShiftKind(t *testing.T) {
	kinds := printer.Kinds()
	if got := shiftKind(kinds[0], -1); got != kinds[len(kinds)-1] {
		t.Fatalf("shiftKind back from first = %q, want %q", got, kinds[len(kinds)-1])
	}
	if got := shiftKind(kinds[len(kinds)-1], 1); got != kinds[0] {
		t.Fatalf("shiftKind past last = %q, want %q", got, kinds[0])
	}
	if got := shiftKind("unknown", 1); got != kinds[1] {
		t.Fatalf("shiftKind unknown = %q, want %q", got, kinds[1])
	}
}
