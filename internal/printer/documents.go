package printer

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Document kinds, also used as endpoint names below the API prefix.
const (
	KindText       = "text"
	KindChat       = "chat"
	KindBanner     = "banner"
	KindCalendar   = "calendar"
	KindCells      = "cells"
	KindEgg        = "egg"
	KindTicTacToe  = "tictactoe"
	KindXKCD       = "xkcd"
	KindSunrise    = "sunrise"
	KindCatfishing = "catfishing"
	KindImage      = "image"
	KindPhoto      = "photo"
)

// Kinds lists every document kind in menu order.
func Kinds() []string {
	return []string{
		KindText, KindChat, KindBanner, KindImage, KindPhoto, KindCalendar,
		KindSunrise, KindCells, KindEgg, KindTicTacToe, KindXKCD, KindCatfishing,
	}
}

// Dither algorithms understood by the image endpoint.
const (
	AlgoFloydSteinberg = "floyd-steinberg"
	AlgoStucki         = "stucki"
)

func endpoint(kind string) string {
	return "/" + kind
}

func feedValues(feed bool) url.Values {
	values := url.Values{}
	values.Set("feed", strconv.FormatBool(feed))
	return values
}

// Text prints a block of plain text.
type Text struct {
	Text      string
	ForceWrap bool
	Feed      bool
}

func (d Text) Submission() (Submission, error) {
	if blank(d.Text) {
		return Submission{}, missing("text")
	}
	values := feedValues(d.Feed)
	values.Set("text", d.Text)
	values.Set("force_wrap", strconv.FormatBool(d.ForceWrap))
	return FormSubmission(KindText, endpoint(KindText), values), nil
}

// Chat prints a chat message attributed to Username.
type Chat struct {
	Username string
	Content  string
	Feed     bool
}

func (d Chat) Submission() (Submission, error) {
	if blank(d.Username) {
		return Submission{}, missing("username")
	}
	if blank(d.Content) {
		return Submission{}, missing("content")
	}
	values := feedValues(d.Feed)
	values.Set("username", strings.TrimSpace(d.Username))
	values.Set("content", d.Content)
	return FormSubmission(KindChat, endpoint(KindChat), values), nil
}

// Banner prints Text sideways along the paper.
type Banner struct {
	Text string
	Feed bool
}

func (d Banner) Submission() (Submission, error) {
	if blank(d.Text) {
		return Submission{}, missing("text")
	}
	values := feedValues(d.Feed)
	values.Set("text", d.Text)
	return FormSubmission(KindBanner, endpoint(KindBanner), values), nil
}

// Calendar prints a month view. Zero Year or Month lets the server pick the
// current one.
type Calendar struct {
	Year  int
	Month int
	Feed  bool
}

func (d Calendar) Submission() (Submission, error) {
	if d.Month < 0 || d.Month > 12 {
		return Submission{}, fmt.Errorf("month %d out of range", d.Month)
	}
	values := feedValues(d.Feed)
	if d.Year != 0 {
		values.Set("year", strconv.Itoa(d.Year))
	}
	if d.Month != 0 {
		values.Set("month", strconv.Itoa(d.Month))
	}
	return FormSubmission(KindCalendar, endpoint(KindCalendar), values), nil
}

// Sunrise prints a month of sunrise and sunset times for a location.
type Sunrise struct {
	Latitude  float64
	Longitude float64
	Year      int
	Month     int
	Feed      bool
}

func (d Sunrise) Submission() (Submission, error) {
	if d.Latitude < -90 || d.Latitude > 90 {
		return Submission{}, fmt.Errorf("latitude %v out of range", d.Latitude)
	}
	if d.Longitude < -180 || d.Longitude > 180 {
		return Submission{}, fmt.Errorf("longitude %v out of range", d.Longitude)
	}
	if d.Month < 0 || d.Month > 12 {
		return Submission{}, fmt.Errorf("month %d out of range", d.Month)
	}
	values := feedValues(d.Feed)
	values.Set("latitude", strconv.FormatFloat(d.Latitude, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(d.Longitude, 'f', -1, 64))
	if d.Year != 0 {
		values.Set("year", strconv.Itoa(d.Year))
	}
	if d.Month != 0 {
		values.Set("month", strconv.Itoa(d.Month))
	}
	return FormSubmission(KindSunrise, endpoint(KindSunrise), values), nil
}

// Cells prints an elementary cellular automaton. A nil Rule lets the server
// pick one at random; zero Rows or Scale use server defaults.
type Cells struct {
	Rule  *int
	Rows  int
	Scale int
	Feed  bool
}

func (d Cells) Submission() (Submission, error) {
	values := feedValues(d.Feed)
	if d.Rule != nil {
		if *d.Rule < 0 || *d.Rule > 255 {
			return Submission{}, fmt.Errorf("rule %d out of range", *d.Rule)
		}
		values.Set("rule", strconv.Itoa(*d.Rule))
	}
	if d.Rows < 0 || d.Scale < 0 {
		return Submission{}, fmt.Errorf("rows %d and scale %d must not be negative", d.Rows, d.Scale)
	}
	if d.Rows > 0 {
		values.Set("rows", strconv.Itoa(d.Rows))
	}
	if d.Scale > 0 {
		values.Set("scale", strconv.Itoa(d.Scale))
	}
	return FormSubmission(KindCells, endpoint(KindCells), values), nil
}

// Egg prints a randomly decorated egg. A nil Seed is chosen by the server.
type Egg struct {
	Seed *int64
	Mode string
	Feed bool
}

func (d Egg) Submission() (Submission, error) {
	values := feedValues(d.Feed)
	if d.Seed != nil {
		values.Set("seed", strconv.FormatInt(*d.Seed, 10))
	}
	if mode := strings.TrimSpace(d.Mode); mode != "" {
		values.Set("mode", mode)
	}
	return FormSubmission(KindEgg, endpoint(KindEgg), values), nil
}

// TicTacToe prints an empty game board.
type TicTacToe struct {
	Feed bool
}

func (d TicTacToe) Submission() (Submission, error) {
	return FormSubmission(KindTicTacToe, endpoint(KindTicTacToe), feedValues(d.Feed)), nil
}

// XKCD prints comic Number, or the latest one when Number is zero.
type XKCD struct {
	Number int
	Feed   bool
}

func (d XKCD) Submission() (Submission, error) {
	if d.Number < 0 {
		return Submission{}, fmt.Errorf("comic number %d is negative", d.Number)
	}
	values := feedValues(d.Feed)
	if d.Number > 0 {
		values.Set("number", strconv.Itoa(d.Number))
	}
	return FormSubmission(KindXKCD, endpoint(KindXKCD), values), nil
}

// Catfishing prints the article list of a daily catfishing puzzle.
type Catfishing struct {
	Day  int
	Feed bool
}

func (d Catfishing) Submission() (Submission, error) {
	if d.Day <= 0 {
		return Submission{}, missing("day")
	}
	values := feedValues(d.Feed)
	values.Set("day", strconv.Itoa(d.Day))
	return FormSubmission(KindCatfishing, endpoint(KindCatfishing), values), nil
}

// Image prints a dithered picture.
type Image struct {
	Filename string
	Data     []byte
	Seamless bool
	Feed     bool
	Bright   bool
	Algo     string
}

func (d Image) Submission() (Submission, error) {
	if len(d.Data) == 0 {
		return Submission{}, missing("image")
	}
	algo := strings.TrimSpace(d.Algo)
	if algo == "" {
		algo = AlgoFloydSteinberg
	}
	return MultipartSubmission(KindImage, endpoint(KindImage), []Part{
		{Name: "image", Filename: filenameOr(d.Filename, "image"), Data: d.Data},
		{Name: "seamless", Value: checkbox(d.Seamless)},
		{Name: "feed", Value: checkbox(d.Feed)},
		{Name: "bright", Value: checkbox(d.Bright)},
		{Name: "algo", Value: algo},
	})
}

// Photo prints a captioned photo, as submitted from the photo view.
type Photo struct {
	Filename string
	Data     []byte
	Title    string
}

func (d Photo) Submission() (Submission, error) {
	if len(d.Data) == 0 {
		return Submission{}, missing("image")
	}
	if blank(d.Title) {
		return Submission{}, missing("title")
	}
	return MultipartSubmission(KindPhoto, endpoint(KindPhoto), []Part{
		{Name: "image", Filename: filenameOr(d.Filename, "photo"), Data: d.Data},
		{Name: "title", Value: d.Title},
	})
}

func filenameOr(name, fallback string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return fallback
}
