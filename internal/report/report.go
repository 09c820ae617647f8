// Package report renders the weekly progress report a parent can export or
// have mailed.
package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"math"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/snapsense/snapsense-server/internal/domain"
	"github.com/snapsense/snapsense-server/internal/util"
)

// MaxHighlights is how many activity messages the report lists.
const MaxHighlights = 5

// Report is the content of one weekly report.
type Report struct {
	ProfileID    string    `json:"profileId"`
	ProfileName  string    `json:"profileName"`
	Level        int       `json:"level"`
	TotalExp     int       `json:"totalExp"`
	NextLevelExp int       `json:"nextLevelExp"`
	Modules      []string  `json:"modules"`
	WinRate      int       `json:"winRate"` // percent
	StreakCount  int       `json:"streakCount"`
	Highlights   []string  `json:"highlights"`
	GeneratedAt  time.Time `json:"generatedAt"`

	expByModule []domain.ExpSlice
}

// Build assembles a report from a profile and its dashboard payload.
// Highlights are the first activity messages in feed order.
func Build(profile domain.Profile, d *domain.Dashboard, feed []domain.ActivityEvent, now time.Time) *Report {
	modules := make([]string, len(d.Modules))
	for i, m := range d.Modules {
		modules[i] = m.Name
	}

	highlights := make([]string, 0, MaxHighlights)
	for _, ev := range feed {
		if len(highlights) == MaxHighlights {
			break
		}
		highlights = append(highlights, ev.Message)
	}

	return &Report{
		ProfileID:    profile.ID,
		ProfileName:  profile.Name,
		Level:        d.Level,
		TotalExp:     d.TotalExp,
		NextLevelExp: d.NextLevelExp,
		Modules:      modules,
		WinRate:      int(math.Round(d.Stats.WinRate * 100)),
		StreakCount:  d.StreakCount,
		Highlights:   highlights,
		GeneratedAt:  now.UTC(),
		expByModule:  d.ExpByModule,
	}
}

// Title is the report heading.
func (r *Report) Title() string {
	return "SnapSense Weekly Report for " + r.ProfileName
}

// Filename is the suggested download name without extension.
func (r *Report) Filename() string {
	name := util.Slugify(r.ProfileName)
	if name == "" {
		name = "profile"
	}
	return name + "-weekly-report"
}

// Lines returns the report as plain text lines.
func (r *Report) Lines() []string {
	lines := []string{
		r.Title(),
		fmt.Sprintf("Level %d | EXP %d/%d", r.Level, r.TotalExp, r.NextLevelExp),
		"Modules cleared: " + strings.Join(r.Modules, ", "),
		fmt.Sprintf("Win rate: %d%%", r.WinRate),
		fmt.Sprintf("Streak: %d days", r.StreakCount),
		"Highlights:",
	}
	for _, h := range r.Highlights {
		lines = append(lines, "• "+h)
	}
	return lines
}

// Text returns the plain text report.
func (r *Report) Text() string {
	return strings.Join(r.Lines(), "\n") + "\n"
}

//go:embed report.html.tmpl
var htmlSource string

var htmlTemplate = template.Must(template.New("report").Parse(htmlSource))

// HTML renders the report as a standalone HTML document.
func (r *Report) HTML() (string, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("render report html: %w", err)
	}
	return buf.String(), nil
}

// Markdown renders the report as Markdown, converted from the HTML form.
func (r *Report) Markdown() (string, error) {
	html, err := r.HTML()
	if err != nil {
		return "", err
	}
	md, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("convert report to markdown: %w", err)
	}
	return strings.TrimSpace(md) + "\n", nil
}
