package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kbukum/slotkit/plug"
	"github.com/kbukum/slotkit/registry"
	"github.com/kbukum/slotkit/scope"
	"github.com/kbukum/slotkit/slot"
)

const (
	slotHeader  = "header"
	slotSidebar = "sidebar"
	slotStatus  = "status"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Padding(0, 1)
	sidebarStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(24)
	statusStyle  = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	itemStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

type tickMsg time.Time

// toggle is one key-bound producer the user can mount and unmount.
type toggle struct {
	key     string
	label   string
	binding *plug.Binding
	active  bool
}

type model struct {
	scope   *scope.Scope
	toggles []*toggle

	header  *slot.Resolver
	sidebar *slot.Resolver
	status  *slot.Resolver

	reversed bool
	now      time.Time
	width    int
	err      error
}

func newModel(ctx context.Context) (*model, error) {
	sc, err := scope.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	m := &model{scope: sc, now: time.Now()}

	if m.header, err = slot.NewResolver(sc, slotHeader); err != nil {
		return nil, err
	}
	if m.sidebar, err = slot.NewResolver(sc, slotSidebar); err != nil {
		return nil, err
	}
	if m.status, err = slot.NewResolver(sc, slotStatus); err != nil {
		return nil, err
	}

	// The title is always mounted.
	title, err := plug.NewBinding(sc, slotHeader, "title",
		func(params any) (any, error) { return headerStyle.Render("slotdemo"), nil },
		plug.Options{Order: 0, Name: "Title"})
	if err != nil {
		return nil, err
	}
	if err := title.Activate(); err != nil {
		return nil, err
	}

	if err := m.addToggles(sc); err != nil {
		return nil, err
	}
	return m, nil
}

// addToggles creates the key-bound producers. Orders are chosen so that
// mounting order and display order visibly differ: settings (order 0) always
// renders above files (order 1) no matter when it was mounted.
func (m *model) addToggles(sc *scope.Scope) error {
	specs := []struct {
		key, label, slot, id string
		order                int
		render               registry.RenderFunc
	}{
		{"1", "clock", slotHeader, "clock", 10, func(params any) (any, error) {
			t, ok := params.(string)
			if !ok {
				return nil, fmt.Errorf("clock expects a time string, got %T", params)
			}
			return itemStyle.Render(t), nil
		}},
		{"2", "files", slotSidebar, "files", 1, staticItem("~ files")},
		{"3", "search", slotSidebar, "search", 2, staticItem("? search")},
		{"4", "settings", slotSidebar, "settings", 0, staticItem("* settings")},
	}

	for _, s := range specs {
		b, err := plug.NewBinding(sc, s.slot, s.id, s.render, plug.Options{Order: s.order, Name: s.label})
		if err != nil {
			return err
		}
		m.toggles = append(m.toggles, &toggle{key: s.key, label: s.label, binding: b})
	}
	return nil
}

func staticItem(text string) registry.RenderFunc {
	return func(params any) (any, error) { return itemStyle.Render(text), nil }
}

func (m *model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		return m, tick()

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.reversed = !m.reversed
			return m, nil
		default:
			for _, t := range m.toggles {
				if t.key != key {
					continue
				}
				if t.active {
					m.err = t.binding.Deactivate()
				} else {
					m.err = t.binding.Activate()
				}
				if m.err == nil {
					t.active = !t.active
				}
				return m, nil
			}
		}
	}
	return m, nil
}

func (m *model) View() string {
	if m.err != nil {
		return "error: " + m.err.Error() + "\n"
	}

	header := m.renderJoined(m.header, slot.Options{Params: m.now.Format("15:04:05")}, lipgloss.JoinHorizontal)
	sidebar := m.renderJoined(m.sidebar, slot.Options{Reversed: m.reversed}, joinVertical)

	// The status line takes full manual control of its records.
	status, err := m.status.Resolve(slot.Options{RenderFn: m.renderStatus})
	if err != nil {
		return "error: " + err.Error() + "\n"
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		sidebarStyle.Render(sidebar),
		statusStyle.Render(status.(string)),
	)
	return body + "\n"
}

// renderJoined resolves a slot with auto-render and joins the item values.
func (m *model) renderJoined(r *slot.Resolver, opts slot.Options, join func(pos lipgloss.Position, parts ...string) string) string {
	out, err := r.Resolve(opts)
	if err != nil {
		return "error: " + err.Error()
	}
	items := out.([]slot.Rendered)
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.Value.(string)
	}
	if len(parts) == 0 {
		return itemStyle.Render("(empty)")
	}
	return join(lipgloss.Top, parts...)
}

func joinVertical(_ lipgloss.Position, parts ...string) string {
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderStatus builds the status line from the toggle states plus any
// records other producers registered into the status slot.
func (m *model) renderStatus(recs []registry.Record) (any, error) {
	hints := make([]string, 0, len(m.toggles)+2)
	for _, t := range m.toggles {
		marker := " "
		if t.active {
			marker = "*"
		}
		hints = append(hints, fmt.Sprintf("[%s]%s%s", t.key, marker, t.label))
	}
	hints = append(hints, "[r] reverse", "[q] quit")
	for _, r := range recs {
		if r.Render == nil {
			continue
		}
		v, err := r.Render(nil)
		if err != nil {
			return nil, err
		}
		hints = append(hints, fmt.Sprint(v))
	}
	return strings.Join(hints, "  "), nil
}
