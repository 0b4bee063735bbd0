// Package gcode turns a box layout into laser GCode and reads such
// programs back for previews and job estimates.
package gcode

import (
	"fmt"
	"strings"

	"github.com/OraMartindale/laser-cutter-files/internal/model"
)

// Generator produces laser GCode from a box layout.
type Generator struct {
	Settings model.LaserSettings
	profile  model.GCodeProfile
}

func New(settings model.LaserSettings) *Generator {
	return &Generator{
		Settings: settings,
		profile:  model.GetProfile(settings.Profile),
	}
}

// Profile returns the post-processor the generator writes for.
func (g *Generator) Profile() model.GCodeProfile {
	return g.profile
}

// Generate produces one program that cuts every panel of the layout. The
// canvas Y axis points down while machine Y points up, so Y is mirrored
// about the canvas height and the layout keeps its orientation on the bed.
func (g *Generator) Generate(layout *model.Layout) string {
	var b strings.Builder

	g.writeHeader(&b, layout)
	for i, panel := range layout.Panels {
		g.writePanel(&b, layout, panel, i+1)
	}
	g.writeFooter(&b)

	return b.String()
}

func (g *Generator) passes() int {
	if g.Settings.Passes < 1 {
		return 1
	}
	return g.Settings.Passes
}

func (g *Generator) writeHeader(b *strings.Builder, layout *model.Layout) {
	p := g.profile
	d := layout.Dimensions

	b.WriteString(g.comment("boxcut laser GCode"))
	b.WriteString(g.comment(fmt.Sprintf("Book: %.1f x %.1f x %.1f mm, material %.1f mm",
		d.BookWidth, d.BookHeight, d.BookThickness, d.MaterialThickness)))
	b.WriteString(g.comment(fmt.Sprintf("Canvas: %.1f x %.1f mm, panels: %d",
		layout.CanvasWidth, layout.CanvasHeight, len(layout.Panels))))
	b.WriteString(g.comment(fmt.Sprintf("Power: S%d, Feed: %.0f mm/min, Passes: %d",
		g.Settings.Power, g.Settings.FeedRate, g.passes())))
	b.WriteString(g.comment(fmt.Sprintf("Profile: %s", p.Name)))
	b.WriteString("\n")

	for _, code := range p.StartCode {
		b.WriteString(code + "\n")
	}
	if p.LaserOff != "" {
		b.WriteString(p.LaserOff + "\n")
	}
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(0), g.format(0)))
	b.WriteString("\n")
}

func (g *Generator) writeFooter(b *strings.Builder) {
	b.WriteString(g.comment("=== Job complete ==="))
	for _, code := range g.profile.EndCode {
		b.WriteString(code + "\n")
	}
}

// writePanel traces the panel outline once per pass. The laser is off for
// the rapid move to the first vertex and switched off again at the end of
// every pass.
func (g *Generator) writePanel(b *strings.Builder, layout *model.Layout, panel model.Panel, num int) {
	p := g.profile

	b.WriteString(g.comment(fmt.Sprintf("--- Panel %d: %s (%.1f x %.1f) ---",
		num, panel.Label, panel.Width, panel.Height)))

	pts := panel.Path.Points()
	if len(pts) < 3 {
		b.WriteString(g.comment("WARNING: outline has fewer than 3 points, skipping"))
		return
	}
	machine := make(model.Outline, len(pts))
	for i, pt := range pts {
		machine[i] = model.Point2D{X: pt.X, Y: layout.CanvasHeight - pt.Y}
	}

	passes := g.passes()
	for pass := 1; pass <= passes; pass++ {
		if passes > 1 {
			b.WriteString(g.comment(fmt.Sprintf("Pass %d/%d", pass, passes)))
		}

		b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove,
			g.format(machine[0].X), g.format(machine[0].Y)))
		if p.LaserOn != "" {
			b.WriteString(p.LaserOnCommand(g.Settings.Power) + "\n")
		}

		// The feed rate is modal, so only the first cut carries it
		for i := 1; i < len(machine); i++ {
			b.WriteString(fmt.Sprintf("%s X%s Y%s", p.FeedMove,
				g.format(machine[i].X), g.format(machine[i].Y)))
			if i == 1 {
				b.WriteString(" F" + g.format(g.Settings.FeedRate))
			}
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.FeedMove,
			g.format(machine[0].X), g.format(machine[0].Y)))

		if p.LaserOff != "" {
			b.WriteString(p.LaserOff + "\n")
		}
	}

	b.WriteString("\n")
}

// comment wraps text in the profile's comment syntax.
func (g *Generator) comment(text string) string {
	return g.profile.CommentPrefix + " " + text + g.profile.CommentSuffix + "\n"
}

// format formats a coordinate according to the profile's decimal places.
func (g *Generator) format(v float64) string {
	format := fmt.Sprintf("%%.%df", g.profile.DecimalPlaces)
	s := fmt.Sprintf(format, v)
	if strings.TrimLeft(s, "-0.") == "" {
		return strings.TrimPrefix(s, "-")
	}
	return s
}
