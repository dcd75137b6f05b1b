package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/five82/receipt/internal/config"
	"github.com/five82/receipt/internal/prefs"
	"github.com/five82/receipt/internal/printer"
)

type fieldKind int

const (
	fieldLine fieldKind = iota
	fieldArea
	fieldToggle
	fieldFile
)

type fieldDef struct {
	name        string
	label       string
	kind        fieldKind
	placeholder string
}

func feedField() fieldDef {
	return fieldDef{name: "feed", label: "Feed paper", kind: fieldToggle}
}

// composeFields lists the form fields per document kind, in display order.
var composeFields = map[string][]fieldDef{
	printer.KindText: {
		{name: "text", label: "Text", kind: fieldArea, placeholder: "What should be printed?"},
		{name: "force_wrap", label: "Force wrap", kind: fieldToggle},
		feedField(),
	},
	printer.KindChat: {
		{name: "username", label: "Username", kind: fieldLine, placeholder: "who is talking"},
		{name: "content", label: "Message", kind: fieldArea},
		feedField(),
	},
	printer.KindBanner: {
		{name: "text", label: "Text", kind: fieldLine},
		feedField(),
	},
	printer.KindImage: {
		{name: "file", label: "Image file", kind: fieldFile, placeholder: "~/Pictures/cat.png"},
		{name: "algo", label: "Dither", kind: fieldLine, placeholder: printer.AlgoFloydSteinberg + " or " + printer.AlgoStucki},
		{name: "bright", label: "Brighten", kind: fieldToggle},
		{name: "seamless", label: "Seamless", kind: fieldToggle},
		feedField(),
	},
	printer.KindPhoto: {
		{name: "file", label: "Photo file", kind: fieldFile, placeholder: "~/Pictures/cat.jpg"},
		{name: "title", label: "Title", kind: fieldLine},
	},
	printer.KindCalendar: {
		{name: "year", label: "Year", kind: fieldLine, placeholder: "current"},
		{name: "month", label: "Month", kind: fieldLine, placeholder: "current"},
		feedField(),
	},
	printer.KindSunrise: {
		{name: "latitude", label: "Latitude", kind: fieldLine, placeholder: "52.52"},
		{name: "longitude", label: "Longitude", kind: fieldLine, placeholder: "13.40"},
		{name: "year", label: "Year", kind: fieldLine, placeholder: "current"},
		{name: "month", label: "Month", kind: fieldLine, placeholder: "current"},
		feedField(),
	},
	printer.KindCells: {
		{name: "rule", label: "Rule", kind: fieldLine, placeholder: "random"},
		{name: "rows", label: "Rows", kind: fieldLine, placeholder: "default"},
		{name: "scale", label: "Scale", kind: fieldLine, placeholder: "default"},
		feedField(),
	},
	printer.KindEgg: {
		{name: "seed", label: "Seed", kind: fieldLine, placeholder: "random"},
		{name: "mode", label: "Mode", kind: fieldLine, placeholder: "default"},
		feedField(),
	},
	printer.KindTicTacToe: {
		feedField(),
	},
	printer.KindXKCD: {
		{name: "number", label: "Comic", kind: fieldLine, placeholder: "latest"},
		feedField(),
	},
	printer.KindCatfishing: {
		{name: "day", label: "Day", kind: fieldLine},
		feedField(),
	},
}

type formField struct {
	def   fieldDef
	input textinput.Model
	area  textarea.Model
	on    bool
}

func (f formField) value() string {
	switch f.def.kind {
	case fieldArea:
		return f.area.Value()
	case fieldToggle:
		if f.on {
			return "on"
		}
		return ""
	default:
		return f.input.Value()
	}
}

// composeForm is the editable form for one document kind.
type composeForm struct {
	kind   string
	fields []formField
	focus  int
}

func newComposeForm(kind string, p prefs.Prefs, width int) composeForm {
	defs := composeFields[kind]
	form := composeForm{kind: kind, fields: make([]formField, len(defs))}
	for i, def := range defs {
		field := formField{def: def}
		switch def.kind {
		case fieldArea:
			area := textarea.New()
			area.Placeholder = def.placeholder
			area.ShowLineNumbers = false
			area.SetWidth(formWidth(width))
			area.SetHeight(6)
			field.area = area
		case fieldToggle:
			// Match the server defaults: feed and bright are on unless cleared.
			field.on = def.name == "feed" || def.name == "bright"
		default:
			input := textinput.New()
			input.Placeholder = def.placeholder
			input.CharLimit = 512
			input.Width = formWidth(width)
			field.input = input
		}
		switch def.name {
		case "username":
			field.input.SetValue(p.Username)
		case "algo":
			field.input.SetValue(p.Algo)
		}
		form.fields[i] = field
	}
	form.setFocus(0)
	return form
}

func formWidth(width int) int {
	w := width - 24
	if w < 20 {
		return 20
	}
	if w > 80 {
		return 80
	}
	return w
}

// setFocus moves focus to field i, wrapping around.
func (f *composeForm) setFocus(i int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	i = ((i % len(f.fields)) + len(f.fields)) % len(f.fields)
	f.focus = i
	var cmd tea.Cmd
	for idx := range f.fields {
		field := &f.fields[idx]
		switch field.def.kind {
		case fieldArea:
			if idx == i {
				cmd = field.area.Focus()
			} else {
				field.area.Blur()
			}
		case fieldToggle:
		default:
			if idx == i {
				cmd = field.input.Focus()
			} else {
				field.input.Blur()
			}
		}
	}
	return cmd
}

// setWidth resizes the text widgets. Fields share their backing array with
// every copy of the form, so drafts are updated in place.
func (f composeForm) setWidth(width int) {
	for i := range f.fields {
		field := &f.fields[i]
		switch field.def.kind {
		case fieldArea:
			field.area.SetWidth(width)
		case fieldToggle:
		default:
			field.input.Width = width
		}
	}
}

func (f *composeForm) focused() *formField {
	if len(f.fields) == 0 {
		return nil
	}
	return &f.fields[f.focus]
}

// update routes a message to the focused field.
func (f *composeForm) update(msg tea.Msg, keys keyMap) tea.Cmd {
	field := f.focused()
	if field == nil {
		return nil
	}
	var cmd tea.Cmd
	switch field.def.kind {
	case fieldArea:
		field.area, cmd = field.area.Update(msg)
	case fieldToggle:
		if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, keys.Toggle) {
			field.on = !field.on
		}
	default:
		field.input, cmd = field.input.Update(msg)
	}
	return cmd
}

func (f composeForm) values() map[string]string {
	out := make(map[string]string, len(f.fields))
	for _, field := range f.fields {
		out[field.def.name] = field.value()
	}
	return out
}

func (f composeForm) value(name string) string {
	for _, field := range f.fields {
		if field.def.name == name {
			return field.value()
		}
	}
	return ""
}

// document turns the form into a printer document.
func (f composeForm) document() (printer.Document, error) {
	return buildDocument(f.kind, f.values())
}

// buildDocument converts raw form values into the document for kind.
// Empty numeric fields leave the server default in place.
func buildDocument(kind string, v map[string]string) (printer.Document, error) {
	feed := v["feed"] != ""
	switch kind {
	case printer.KindText:
		return printer.Text{Text: v["text"], ForceWrap: v["force_wrap"] != "", Feed: feed}, nil
	case printer.KindChat:
		return printer.Chat{Username: v["username"], Content: v["content"], Feed: feed}, nil
	case printer.KindBanner:
		return printer.Banner{Text: v["text"], Feed: feed}, nil
	case printer.KindImage:
		name, data, err := readFormFile(v["file"])
		if err != nil {
			return nil, err
		}
		return printer.Image{
			Filename: name,
			Data:     data,
			Algo:     v["algo"],
			Bright:   v["bright"] != "",
			Seamless: v["seamless"] != "",
			Feed:     feed,
		}, nil
	case printer.KindPhoto:
		name, data, err := readFormFile(v["file"])
		if err != nil {
			return nil, err
		}
		return printer.Photo{Filename: name, Data: data, Title: v["title"]}, nil
	case printer.KindCalendar:
		year, err := optionalInt("year", v["year"])
		if err != nil {
			return nil, err
		}
		month, err := optionalInt("month", v["month"])
		if err != nil {
			return nil, err
		}
		return printer.Calendar{Year: year, Month: month, Feed: feed}, nil
	case printer.KindSunrise:
		lat, err := requiredFloat("latitude", v["latitude"])
		if err != nil {
			return nil, err
		}
		lon, err := requiredFloat("longitude", v["longitude"])
		if err != nil {
			return nil, err
		}
		year, err := optionalInt("year", v["year"])
		if err != nil {
			return nil, err
		}
		month, err := optionalInt("month", v["month"])
		if err != nil {
			return nil, err
		}
		return printer.Sunrise{Latitude: lat, Longitude: lon, Year: year, Month: month, Feed: feed}, nil
	case printer.KindCells:
		doc := printer.Cells{Feed: feed}
		if strings.TrimSpace(v["rule"]) != "" {
			rule, err := optionalInt("rule", v["rule"])
			if err != nil {
				return nil, err
			}
			doc.Rule = &rule
		}
		var err error
		if doc.Rows, err = positiveInt("rows", v["rows"]); err != nil {
			return nil, err
		}
		if doc.Scale, err = positiveInt("scale", v["scale"]); err != nil {
			return nil, err
		}
		return doc, nil
	case printer.KindEgg:
		doc := printer.Egg{Mode: v["mode"], Feed: feed}
		if raw := strings.TrimSpace(v["seed"]); raw != "" {
			seed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("seed: %q is not a number", raw)
			}
			doc.Seed = &seed
		}
		return doc, nil
	case printer.KindTicTacToe:
		return printer.TicTacToe{Feed: feed}, nil
	case printer.KindXKCD:
		number, err := optionalInt("comic", v["number"])
		if err != nil {
			return nil, err
		}
		return printer.XKCD{Number: number, Feed: feed}, nil
	case printer.KindCatfishing:
		day, err := optionalInt("day", v["day"])
		if err != nil {
			return nil, err
		}
		return printer.Catfishing{Day: day, Feed: feed}, nil
	default:
		return nil, fmt.Errorf("unknown document kind %q", kind)
	}
}

func optionalInt(name, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", name, raw)
	}
	return n, nil
}

// positiveInt is optionalInt for fields where zero means "server default" and
// anything typed must be at least one.
func positiveInt(name, raw string) (int, error) {
	n, err := optionalInt(name, raw)
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(raw) != "" && n < 1 {
		return 0, fmt.Errorf("%s: must be positive, got %d", name, n)
	}
	return n, nil
}

func requiredFloat(name, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s", printer.ErrMissingField, name)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", name, raw)
	}
	return f, nil
}

func readFormFile(raw string) (string, []byte, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil, fmt.Errorf("%w: file", printer.ErrMissingField)
	}
	path, err := config.ExpandPath(raw)
	if err != nil {
		return "", nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return filepath.Base(path), data, nil
}

// fileHint describes the file a path field points at, or why it cannot be read.
func fileHint(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	path, err := config.ExpandPath(raw)
	if err != nil {
		return ""
	}
	info, err := os.Stat(path)
	if err != nil {
		return "not found"
	}
	if info.IsDir() {
		return "is a directory"
	}
	return humanize.IBytes(uint64(info.Size()))
}

func kindIndex(kind string) int {
	for i, k := range printer.Kinds() {
		if k == kind {
			return i
		}
	}
	return 0
}

func shiftKind(kind string, delta int) string {
	kinds := printer.Kinds()
	i := ((kindIndex(kind)+delta)%len(kinds) + len(kinds)) % len(kinds)
	return kinds[i]
}
