//go:build linux

package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ja7ad/procsnap/pkg/procfs"
	"github.com/ja7ad/procsnap/pkg/types"
)

// ema is an exponential moving average; alpha=0 passes values through.
type ema struct {
	alpha, prev float64
	ok          bool
}

func newEMA(alpha float64) *ema { return &ema{alpha: alpha} }

func (e *ema) next(v float64) float64 {
	if e.alpha == 0 {
		return v
	}
	if !e.ok {
		e.prev, e.ok = v, true
		return v
	}
	e.prev = e.alpha*v + (1-e.alpha)*e.prev
	return e.prev
}

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#89B4FA")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A6E3A1"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F38BA8"))
)

type tickMsg time.Time

type watchModel struct {
	reg      *procfs.Registry
	interval time.Duration

	prevCPU *procfs.Snapshot
	prevNet *procfs.Snapshot

	cpuUtil  map[string]float64 // "cpu", "cpu0", ...
	mem      *procfs.MemInfo
	load     *procfs.LoadAvg
	netRates map[string][2]float64 // iface -> rx,tx bytes/s

	err error
}

func runWatch(o opts) error {
	m := watchModel{
		reg:      procfs.NewRegistry(procfs.DefaultFS()),
		interval: o.interval,
		cpuUtil:  map[string]float64{},
		netRates: map[string][2]float64{},
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m watchModel) Init() tea.Cmd {
	return m.tick()
}

func (m watchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case tickMsg:
		m.sample()
		return m, m.tick()
	}
	return m, nil
}

// sample refreshes every panel from one pass over the registry. A
// failing source blanks its panel for this tick; the others carry on.
func (m *watchModel) sample() {
	m.err = nil

	if snap, err := m.reg.Snapshot(procfs.SourceCPU); err == nil {
		if m.prevCPU != nil {
			if d, err := procfs.Delta(m.prevCPU, snap); err == nil {
				for _, rec := range snap.Records {
					if u, ok := procfs.CPUUtilization(d, rec.Name()); ok {
						m.cpuUtil[rec.Name()] = u
					}
				}
			}
		}
		m.prevCPU = snap
	} else {
		m.err = err
	}

	if snap, err := m.reg.Snapshot(procfs.SourceMemInfo); err == nil {
		m.mem = snap.Records[0].(*procfs.MemInfo)
	}
	if snap, err := m.reg.Snapshot(procfs.SourceLoadAvg); err == nil {
		m.load = snap.Records[0].(*procfs.LoadAvg)
	}

	if snap, err := m.reg.Snapshot(procfs.SourceNetDev); err == nil {
		if m.prevNet != nil {
			if d, err := procfs.Delta(m.prevNet, snap); err == nil {
				for _, rec := range snap.Records {
					rx, _ := d.Rate(rec.Name() + "/rx_bytes")
					tx, _ := d.Rate(rec.Name() + "/tx_bytes")
					m.netRates[rec.Name()] = [2]float64{rx, tx}
				}
			}
		}
		m.prevNet = snap
	}
}

func (m watchModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("procsnap watch"))
	b.WriteString(helpStyle.Render(fmt.Sprintf("  every %s  (q to quit)", m.interval)))
	b.WriteString("\n\n")

	b.WriteString(m.cpuBox())
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.memBox(), " ", m.loadBox()))
	b.WriteString("\n")
	b.WriteString(m.netBox())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	return b.String()
}

func (m watchModel) cpuBox() string {
	if m.prevCPU == nil {
		return boxStyle.Render("CPU\nsampling...")
	}
	var lines []string
	for _, rec := range m.prevCPU.Records {
		name := rec.Name()
		u, ok := m.cpuUtil[name]
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-5s %5.1f%% |%s|", name, u*100, bar(u, 30)))
	}
	if len(lines) == 0 {
		return boxStyle.Render("CPU\nsampling...")
	}
	return boxStyle.Render("CPU\n" + strings.Join(lines, "\n"))
}

func (m watchModel) memBox() string {
	if m.mem == nil {
		return boxStyle.Render("MEM\n-")
	}
	total := m.mem.KB["MemTotal"]
	avail := m.mem.KB["MemAvailable"]
	if total == 0 {
		return boxStyle.Render("MEM\n-")
	}
	used := total - avail
	frac := float64(used) / float64(total)
	line := fmt.Sprintf("%s / %s (%4.1f%%) |%s|",
		types.FromKB(used).Humanized(), types.FromKB(total).Humanized(), frac*100, bar(frac, 20))
	return boxStyle.Render("MEM\n" + line)
}

func (m watchModel) loadBox() string {
	if m.load == nil {
		return boxStyle.Render("LOAD\n-")
	}
	line := fmt.Sprintf("%.2f %.2f %.2f  (%d/%d)",
		m.load.One, m.load.Five, m.load.Fifteen, m.load.Runnable, m.load.TotalEntities)
	return boxStyle.Render("LOAD\n" + line)
}

func (m watchModel) netBox() string {
	if len(m.netRates) == 0 {
		return boxStyle.Render("NET\nsampling...")
	}
	var lines []string
	if m.prevNet != nil {
		for _, rec := range m.prevNet.Records {
			r, ok := m.netRates[rec.Name()]
			if !ok {
				continue
			}
			lines = append(lines, fmt.Sprintf("%-8s rx %12s/s  tx %12s/s",
				rec.Name(),
				types.Bytes(uint64(r[0])).Humanized(),
				types.Bytes(uint64(r[1])).Humanized()))
		}
	}
	return boxStyle.Render("NET\n" + strings.Join(lines, "\n"))
}

func bar(frac float64, width int) string {
	filled := int(frac * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("─", width-filled)
}
