package printer

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/url"
	"testing"
)

func formValues(t *testing.T, sub Submission) url.Values {
	t.Helper()
	if sub.ContentType != "application/x-www-form-urlencoded" {
		t.Fatalf("ContentType = %q, want form encoding", sub.ContentType)
	}
	values, err := url.ParseQuery(string(sub.Body))
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	return values
}

func multipartFields(t *testing.T, sub Submission) (map[string]string, map[string][]byte) {
	t.Helper()
	mediaType, params, err := mime.ParseMediaType(sub.ContentType)
	if err != nil || mediaType != "multipart/form-data" {
		t.Fatalf("ContentType = %q, want multipart/form-data", sub.ContentType)
	}
	reader := multipart.NewReader(bytes.NewReader(sub.Body), params["boundary"])
	fields := map[string]string{}
	files := map[string][]byte{}
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("NextPart: %v", err)
		}
		data, err := io.ReadAll(part)
		if err != nil {
			t.Fatalf("ReadAll part: %v", err)
		}
		if part.FileName() != "" {
			files[part.FormName()] = data
			continue
		}
		fields[part.FormName()] = string(data)
	}
	return fields, files
}

func TestFormDocuments(t *testing.T) {
	rule := 30
	seed := int64(-7)

	cases := []struct {
		name string
		doc  Document
		path string
		want map[string]string
		omit []string
	}{
		{
			name: "text",
			doc:  Text{Text: "hello\nworld", ForceWrap: true, Feed: true},
			path: "/text",
			want: map[string]string{"text": "hello\nworld", "force_wrap": "true", "feed": "true"},
		},
		{
			name: "chat trims username",
			doc:  Chat{Username: " ada ", Content: "hi"},
			path: "/chat",
			want: map[string]string{"username": "ada", "content": "hi", "feed": "false"},
		},
		{
			name: "banner",
			doc:  Banner{Text: "SALE", Feed: true},
			path: "/banner",
			want: map[string]string{"text": "SALE", "feed": "true"},
		},
		{
			name: "calendar defaults",
			doc:  Calendar{Feed: true},
			path: "/calendar",
			want: map[string]string{"feed": "true"},
			omit: []string{"year", "month"},
		},
		{
			name: "calendar explicit",
			doc:  Calendar{Year: 2024, Month: 2},
			path: "/calendar",
			want: map[string]string{"year": "2024", "month": "2"},
		},
		{
			name: "sunrise",
			doc:  Sunrise{Latitude: 52.52, Longitude: 13.405, Month: 6},
			path: "/sunrise",
			want: map[string]string{"latitude": "52.52", "longitude": "13.405", "month": "6"},
			omit: []string{"year"},
		},
		{
			name: "cells with rule zero rows",
			doc:  Cells{Rule: &rule, Scale: 2},
			path: "/cells",
			want: map[string]string{"rule": "30", "scale": "2"},
			omit: []string{"rows"},
		},
		{
			name: "cells random rule",
			doc:  Cells{},
			path: "/cells",
			omit: []string{"rule", "rows", "scale"},
		},
		{
			name: "egg",
			doc:  Egg{Seed: &seed, Mode: " bad "},
			path: "/egg",
			want: map[string]string{"seed": "-7", "mode": "bad"},
		},
		{
			name: "tictactoe",
			doc:  TicTacToe{Feed: true},
			path: "/tictactoe",
			want: map[string]string{"feed": "true"},
		},
		{
			name: "xkcd latest",
			doc:  XKCD{},
			path: "/xkcd",
			omit: []string{"number"},
		},
		{
			name: "catfishing",
			doc:  Catfishing{Day: 12, Feed: true},
			path: "/catfishing",
			want: map[string]string{"day": "12", "feed": "true"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub, err := tc.doc.Submission()
			if err != nil {
				t.Fatalf("Submission returned error: %v", err)
			}
			if sub.Path != tc.path {
				t.Fatalf("Path = %q, want %q", sub.Path, tc.path)
			}
			values := formValues(t, sub)
			for key, want := range tc.want {
				if got := values.Get(key); got != want {
					t.Fatalf("%s = %q, want %q (all: %v)", key, got, want, values)
				}
			}
			for _, key := range tc.omit {
				if values.Has(key) {
					t.Fatalf("%s present = %q, want omitted", key, values.Get(key))
				}
			}
		})
	}
}

func TestFormDocuments_Validation(t *testing.T) {
	badRule := 256
	cases := []struct {
		name    string
		doc     Document
		missing bool
	}{
		{"text blank", Text{Text: "  "}, true},
		{"chat no user", Chat{Content: "x"}, true},
		{"chat no content", Chat{Username: "x"}, true},
		{"banner blank", Banner{}, true},
		{"catfishing no day", Catfishing{}, true},
		{"calendar month", Calendar{Month: 13}, false},
		{"sunrise latitude", Sunrise{Latitude: 91}, false},
		{"sunrise longitude", Sunrise{Longitude: -181}, false},
		{"cells rule", Cells{Rule: &badRule}, false},
		{"cells negative rows", Cells{Rows: -2}, false},
		{"cells negative scale", Cells{Scale: -1}, false},
		{"xkcd negative", XKCD{Number: -1}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.doc.Submission()
			if err == nil {
				t.Fatal("Submission returned nil error")
			}
			if got := errors.Is(err, ErrMissingField); got != tc.missing {
				t.Fatalf("errors.Is(ErrMissingField) = %v, want %v (err %v)", got, tc.missing, err)
			}
		})
	}
}

func TestImage_MultipartCheckboxes(t *testing.T) {
	sub, err := Image{Filename: "cat.png", Data: []byte("PNG"), Bright: true}.Submission()
	if err != nil {
		t.Fatalf("Submission returned error: %v", err)
	}
	if sub.Path != "/image" || sub.Kind != KindImage {
		t.Fatalf("submission = %s %s, want image /image", sub.Kind, sub.Path)
	}

	fields, files := multipartFields(t, sub)
	if string(files["image"]) != "PNG" {
		t.Fatalf("image file = %q, want PNG", files["image"])
	}
	// An empty value is how a false checkbox reaches the server; an absent
	// field would leave the server default in place.
	if v, ok := fields["feed"]; !ok || v != "" {
		t.Fatalf("feed = %q (present %v), want present and empty", v, ok)
	}
	if fields["bright"] == "" {
		t.Fatalf("bright = %q, want non-empty", fields["bright"])
	}
	if fields["algo"] != AlgoFloydSteinberg {
		t.Fatalf("algo = %q, want default %q", fields["algo"], AlgoFloydSteinberg)
	}
}

func TestPhoto_RequiresImageAndTitle(t *testing.T) {
	if _, err := (Photo{Title: "x"}).Submission(); !errors.Is(err, ErrMissingField) {
		t.Fatalf("missing image err = %v, want ErrMissingField", err)
	}
	if _, err := (Photo{Data: []byte("x")}).Submission(); !errors.Is(err, ErrMissingField) {
		t.Fatalf("missing title err = %v, want ErrMissingField", err)
	}

	sub, err := Photo{Data: []byte("JPEG"), Title: "Summer"}.Submission()
	if err != nil {
		t.Fatalf("Submission returned error: %v", err)
	}
	fields, files := multipartFields(t, sub)
	if fields["title"] != "Summer" || string(files["image"]) != "JPEG" {
		t.Fatalf("fields = %v files = %v, want title and image", fields, files)
	}
	if sub.Size() != len(sub.Body) {
		t.Fatalf("Size() = %d, want %d", sub.Size(), len(sub.Body))
	}
}

func TestKinds_AreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, k := range Kinds() {
		if seen[k] {
			t.Fatalf("duplicate kind %q", k)
		}
		seen[k] = true
	}
	if len(seen) != 12 {
		t.Fatalf("Kinds() has %d entries, want 12", len(seen))
	}
}
