package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	primaryColor   = lipgloss.Color("#7C3AED")
	secondaryColor = lipgloss.Color("#06B6D4")
	accentColor    = lipgloss.Color("#10B981")
	warningColor   = lipgloss.Color("#F59E0B")
	errorColor     = lipgloss.Color("#EF4444")
	textColor      = lipgloss.Color("#F8FAFC")
	mutedColor     = lipgloss.Color("#94A3B8")

	baseStyle = lipgloss.NewStyle().Foreground(textColor)

	basePanelStyle = baseStyle.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2).
			Margin(1, 0)

	headerStyle = baseStyle.
			Foreground(primaryColor).
			Bold(true).
			Align(lipgloss.Center)

	resourceValueStyle = baseStyle.Bold(true).Foreground(accentColor)
	queueStyle         = baseStyle.Foreground(warningColor)
	inactiveStyle      = baseStyle.Foreground(mutedColor)
)

// UI manages the terminal rendering of a village's dashboard.
type UI struct {
	state         *VillageState
	lastCommand   string
	lastResult    string
	termWidth     int
	termHeight    int
}

// NewUI creates a new UI instance sized to the current terminal.
func NewUI() *UI {
	ui := &UI{}
	ui.updateTerminalSize()
	return ui
}

func (ui *UI) updateTerminalSize() {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width, height, err = term.GetSize(int(os.Stderr.Fd()))
	}
	if err != nil {
		if cols := os.Getenv("COLUMNS"); cols != "" {
			if w, perr := strconv.Atoi(cols); perr == nil {
				width = w
			}
		}
		if width == 0 {
			width = 80
		}
		if lines := os.Getenv("LINES"); lines != "" {
			if h, perr := strconv.Atoi(lines); perr == nil {
				height = h
			}
		}
		if height == 0 {
			height = 24
		}
	}
	if width < 40 {
		width = 40
	}
	ui.termWidth = width
	ui.termHeight = height
}

func (ui *UI) getPanelStyle() lipgloss.Style {
	style := basePanelStyle
	if ui.termWidth >= 80 {
		style = style.Width((ui.termWidth - 8) / 3)
	}
	return style
}

// UpdateState sets the village state the next render will reflect.
func (ui *UI) UpdateState(state *VillageState) {
	ui.state = state
}

// SetLastCommand records the last command and its result for display.
func (ui *UI) SetLastCommand(command, result string) {
	ui.lastCommand = command
	ui.lastResult = result
}

// RenderFullDisplay renders the village panels plus the command log.
func (ui *UI) RenderFullDisplay() string {
	ui.updateTerminalSize()

	var parts []string
	parts = append(parts, ui.renderStatus())
	parts = append(parts, baseStyle.Foreground(mutedColor).Render(strings.Repeat("-", ui.termWidth)))
	if ui.lastCommand != "" || ui.lastResult != "" {
		parts = append(parts, ui.renderCommandArea())
	}
	return strings.Join(parts, "\n")
}

func (ui *UI) renderStatus() string {
	if ui.state == nil {
		return ui.getPanelStyle().BorderForeground(warningColor).Render(
			headerStyle.Render("No village loaded") + "\n" +
				inactiveStyle.Render("Run with a village id to begin"))
	}

	sections := []string{
		ui.renderVillageInfo(),
		ui.renderResources(),
		ui.renderQueues(),
	}
	if ui.termWidth < 80 {
		return strings.Join(sections, "\n")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, sections...)
}

func (ui *UI) renderVillageInfo() string {
	s := ui.state
	title := headerStyle.Render("Village")

	lines := []string{"", fmt.Sprintf("Name: %s", s.Village.Name)}
	lines = append(lines, fmt.Sprintf("Coords: (%d, %d)", s.Village.X, s.Village.Y))
	lines = append(lines, fmt.Sprintf("Loyalty: %s", resourceValueStyle.Render(fmt.Sprintf("%.0f", s.Village.Loyalty))))
	lines = append(lines, fmt.Sprintf("Garrison: %d", s.Village.Garrison.Total()))

	return ui.getPanelStyle().Render(title + "\n" + strings.Join(lines, "\n"))
}

func (ui *UI) renderResources() string {
	s := ui.state
	title := headerStyle.Render("Stock")

	lines := []string{
		"",
		fmt.Sprintf("Wood: %s", resourceValueStyle.Render(fmt.Sprintf("%.0f", s.Village.Stock.Wood))),
		fmt.Sprintf("Clay: %s", resourceValueStyle.Render(fmt.Sprintf("%.0f", s.Village.Stock.Clay))),
		fmt.Sprintf("Iron: %s", resourceValueStyle.Render(fmt.Sprintf("%.0f", s.Village.Stock.Iron))),
	}

	return ui.getPanelStyle().BorderForeground(secondaryColor).Render(title + "\n" + strings.Join(lines, "\n"))
}

func (ui *UI) renderQueues() string {
	title := headerStyle.Render("Movements")

	var lines []string
	if len(ui.state.Movements) == 0 {
		lines = append(lines, inactiveStyle.Render("none outbound"))
	}
	for _, m := range ui.state.Movements {
		kind := "attack"
		if m.IsSupport {
			kind = "support"
		} else if m.IsSpy {
			kind = "spy"
		}
		lines = append(lines, queueStyle.Render(fmt.Sprintf("#%d %s -> %d", m.ID, kind, m.TargetVillageID)))
	}

	return ui.getPanelStyle().BorderForeground(accentColor).Render(title + "\n" + strings.Join(lines, "\n"))
}

func (ui *UI) renderCommandArea() string {
	var lines []string
	if ui.lastCommand != "" {
		lines = append(lines, baseStyle.Foreground(primaryColor).Render("village> ")+baseStyle.Render(ui.lastCommand))
	}
	if ui.lastResult != "" {
		lines = append(lines, ui.lastResult)
	}
	return strings.Join(lines, "\n")
}

func errorText(msg string) string {
	return baseStyle.Foreground(errorColor).Render(msg)
}
