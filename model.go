package main

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type focusArea int

const (
	focusCircuit focusArea = iota
	focusQASM
	focusMenu
	focusSelectTarget
	focusInputParam
	focusRules
)

// dephasing angle per idle moment used by the status readout and chart
const defaultTheta = 0.15

// Model holds the full workbench state: the edited circuit, the optional
// decoupled view of it, cursors, and the active popup.
type Model struct {
	circuit   *Circuit
	decoupled *Circuit // non-nil after a rule has been applied

	catalog     *Catalog
	appliedRule string
	ruleItem    int

	cursorQubit  int
	cursorMoment int
	showSlack    bool

	focus focusArea

	menuCat  int
	menuItem int

	pendingGate   string
	pendingParams bool
	targetQubit   int

	qasmEditor textarea.Model
	paramInput textinput.Model

	statusMsg string
	width     int
	height    int
}

func initialModel() Model {
	circuit := &Circuit{NumQubits: 4}
	circuit.AddGate("H", 0, 0)
	circuit.AddGate("X", 2, 0)
	circuit.AddGate("CX", 1, 3, 0)
	circuit.AddGate("H", 2, 3)

	editor := textarea.New()
	editor.Placeholder = "OPENQASM 2.0;"
	editor.SetValue(circuit.ToQASM())
	editor.ShowLineNumbers = true
	editor.CharLimit = 0

	param := textinput.New()
	param.Placeholder = "pi/2"
	param.CharLimit = 32
	param.Width = 20

	return Model{
		circuit:    circuit,
		catalog:    DefaultCatalog(),
		qasmEditor: editor,
		paramInput: param,
		width:      120,
		height:     36,
	}
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// displayed returns the circuit currently shown: the decoupled one when a
// rule has been applied, otherwise the edited original.
func (m Model) displayed() *Circuit {
	if m.decoupled != nil {
		return m.decoupled
	}
	return m.circuit
}

// eligibleSlackCells returns the grid cells belonging to slack windows long
// enough for at least one catalog rule.
func (m Model) eligibleSlackCells() map[[2]int]bool {
	slack, err := CircuitSlack(m.circuit)
	if err != nil {
		return nil
	}
	minLen := 0
	for _, name := range m.catalog.Names() {
		rule, err := m.catalog.Lookup(name)
		if err != nil {
			continue
		}
		if minLen == 0 || rule.MinLength() < minLen {
			minLen = rule.MinLength()
		}
	}
	cells := make(map[[2]int]bool)
	for _, w := range SlackWindows(slack) {
		if w.Length < minLen {
			continue
		}
		for t := w.Start; t < w.Start+w.Length; t++ {
			cells[[2]int{w.Qubit, t}] = true
		}
	}
	return cells
}

// fidelityLine summarizes ground-state probability under ideal and dephased
// execution of the displayed circuit.
func (m Model) fidelityLine() string {
	c := m.displayed()
	ideal, errI := NoiselessExecutor()(c)
	noisy, errN := DephasingExecutor(defaultTheta)(c)
	if errI != nil || errN != nil {
		return "P(|0…0⟩): n/a"
	}
	line := fmt.Sprintf("P(|0…0⟩) ideal %.3f  dephased %.3f", ideal, noisy)
	if m.decoupled != nil {
		if base, err := DephasingExecutor(defaultTheta)(m.circuit); err == nil {
			line += fmt.Sprintf("  (was %.3f)", base)
		}
	}
	return line
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.focus {
		case focusQASM:
			return m.updateQASM(msg)
		case focusMenu:
			return m.updateMenu(msg)
		case focusSelectTarget:
			return m.updateSelectTarget(msg)
		case focusInputParam:
			return m.updateInputParam(msg)
		case focusRules:
			return m.updateRules(msg)
		default:
			return m.updateCircuit(msg)
		}
	}
	return m, nil
}

func (m Model) updateCircuit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "tab":
		m.focus = focusQASM
		m.qasmEditor.SetValue(m.displayed().ToQASM())
		m.qasmEditor.Focus()
		return m, textarea.Blink

	case "up", "k":
		if m.cursorQubit > 0 {
			m.cursorQubit--
		}
	case "down", "j":
		if m.cursorQubit < m.circuit.NumQubits-1 {
			m.cursorQubit++
		}
	case "left", "h":
		if m.cursorMoment > 0 {
			m.cursorMoment--
		}
	case "right", "l":
		m.cursorMoment++

	case "+", "=":
		m.circuit.NumQubits++
		m.decoupled = nil
		m.statusMsg = ""
	case "-", "_":
		if m.circuit.NumQubits > 1 {
			m.circuit.RemoveGatesOnQubit(m.circuit.NumQubits - 1)
			m.circuit.NumQubits--
			if m.cursorQubit >= m.circuit.NumQubits {
				m.cursorQubit = m.circuit.NumQubits - 1
			}
			m.decoupled = nil
			m.statusMsg = ""
		}

	case "backspace", "delete":
		m.circuit.RemoveGateAt(m.cursorMoment, m.cursorQubit)
		m.decoupled = nil
		m.statusMsg = ""

	case "a":
		m.focus = focusMenu
		m.menuCat = 0
		m.menuItem = 0

	case "d":
		m.focus = focusRules
		m.ruleItem = 0

	case "u":
		m.decoupled = nil
		m.appliedRule = ""
		m.statusMsg = "reverted to original circuit"

	case "s":
		m.showSlack = !m.showSlack

	case "x":
		if err := m.exportSweep(); err != nil {
			m.statusMsg = fmt.Sprintf("chart failed: %v", err)
		} else {
			m.statusMsg = "wrote ddd_sweep.html"
		}

	case "ctrl+s":
		if err := os.WriteFile("circuit.qasm", []byte(m.displayed().ToQASM()), 0o644); err != nil {
			m.statusMsg = fmt.Sprintf("save failed: %v", err)
		} else {
			m.statusMsg = "saved circuit.qasm"
		}
	}
	return m, nil
}

func (m Model) updateQASM(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "esc":
		m.focus = focusCircuit
		m.qasmEditor.Blur()
		parsed := &Circuit{}
		if err := parsed.ParseQASM(m.qasmEditor.Value()); err != nil {
			m.statusMsg = fmt.Sprintf("QASM error: %v", err)
		} else {
			m.circuit = parsed
			m.decoupled = nil
			m.appliedRule = ""
			m.statusMsg = "circuit loaded from QASM"
			if m.cursorQubit >= m.circuit.NumQubits {
				m.cursorQubit = max(m.circuit.NumQubits-1, 0)
			}
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.qasmEditor, cmd = m.qasmEditor.Update(msg)
	return m, cmd
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.focus = focusCircuit
	case "left":
		m.menuCat = (m.menuCat + len(gateMenu) - 1) % len(gateMenu)
		m.menuItem = 0
	case "right":
		m.menuCat = (m.menuCat + 1) % len(gateMenu)
		m.menuItem = 0
	case "up", "k":
		if m.menuItem > 0 {
			m.menuItem--
		}
	case "down", "j":
		if m.menuItem < len(gateMenu[m.menuCat].items)-1 {
			m.menuItem++
		}
	case "enter":
		item := gateMenu[m.menuCat].items[m.menuItem]
		m.pendingGate = item.label
		m.pendingParams = item.needsParams
		switch {
		case item.needsParams && !item.needsTarget:
			m.focus = focusInputParam
			m.paramInput.SetValue("")
			m.paramInput.Placeholder = item.paramHint
			m.paramInput.Focus()
			return m, textinput.Blink
		case item.needsTarget:
			m.focus = focusSelectTarget
			m.targetQubit = (m.cursorQubit + 1) % m.circuit.NumQubits
		default:
			m.placeSingle(item.label, nil)
			m.focus = focusCircuit
		}
	}
	return m, nil
}

func (m Model) updateSelectTarget(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.focus = focusCircuit
	case "up", "k":
		m.targetQubit = (m.targetQubit + m.circuit.NumQubits - 1) % m.circuit.NumQubits
		if m.targetQubit == m.cursorQubit {
			m.targetQubit = (m.targetQubit + m.circuit.NumQubits - 1) % m.circuit.NumQubits
		}
	case "down", "j":
		m.targetQubit = (m.targetQubit + 1) % m.circuit.NumQubits
		if m.targetQubit == m.cursorQubit {
			m.targetQubit = (m.targetQubit + 1) % m.circuit.NumQubits
		}
	case "enter":
		if m.pendingParams {
			m.focus = focusInputParam
			m.paramInput.SetValue("")
			m.paramInput.Focus()
			return m, textinput.Blink
		}
		m.placeTwoQubit(nil)
		m.focus = focusCircuit
	}
	return m, nil
}

func (m Model) updateInputParam(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.focus = focusCircuit
		m.paramInput.Blur()
		return m, nil
	case "enter":
		input := m.paramInput.Value()
		if input == "" {
			input = m.paramInput.Placeholder
		}
		params := parseParams(input)
		if len(params) == 0 {
			params = []float64{math.Pi / 2}
		}
		if m.pendingGate == "CRX" || m.pendingGate == "CRY" || m.pendingGate == "CRZ" {
			m.placeTwoQubit(params)
		} else {
			m.placeSingle(m.pendingGate, params)
		}
		m.paramInput.Blur()
		m.focus = focusCircuit
		return m, nil
	}
	var cmd tea.Cmd
	m.paramInput, cmd = m.paramInput.Update(msg)
	return m, cmd
}

func (m Model) updateRules(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	names := m.catalog.Names()
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.focus = focusCircuit
	case "up", "k":
		if m.ruleItem > 0 {
			m.ruleItem--
		}
	case "down", "j":
		if m.ruleItem < len(names)-1 {
			m.ruleItem++
		}
	case "enter":
		m.focus = focusCircuit
		rule, err := m.catalog.Lookup(names[m.ruleItem])
		if err != nil {
			m.statusMsg = err.Error()
			return m, nil
		}
		out, err := InsertSequences(m.circuit, rule, WithCompositionCheck())
		if err != nil {
			m.statusMsg = fmt.Sprintf("insertion failed: %v", err)
			return m, nil
		}
		m.decoupled = out
		m.appliedRule = rule.Name()
		inserted := 0
		for _, g := range out.Gates {
			if g.Inserted {
				inserted++
			}
		}
		m.statusMsg = fmt.Sprintf("inserted %d gates with rule %q", inserted, rule.Name())
	}
	return m, nil
}

// ──────────────────────────── Gate placement ────────────────────────────

// placeSingle puts a single-qubit gate (or barrier) at the cursor,
// replacing whatever occupies the cell. Any decoupled view is discarded.
func (m *Model) placeSingle(label string, params []float64) {
	m.circuit.RemoveGateAt(m.cursorMoment, m.cursorQubit)
	switch label {
	case "BARRIER":
		m.circuit.AddBarrier(m.cursorMoment)
	case "SDG", "TDG":
		m.circuit.AddDaggerGate(strings.TrimSuffix(label, "DG"), m.cursorQubit, m.cursorMoment)
	default:
		if params != nil {
			m.circuit.AddParameterizedGate(label, m.cursorQubit, m.cursorMoment, params)
		} else {
			m.circuit.AddGate(label, m.cursorQubit, m.cursorMoment)
		}
	}
	m.decoupled = nil
	m.appliedRule = ""
	m.statusMsg = ""
}

// placeTwoQubit puts the pending two-qubit gate between the cursor qubit
// (control) and the selected target.
func (m *Model) placeTwoQubit(params []float64) {
	m.circuit.RemoveGateAt(m.cursorMoment, m.cursorQubit)
	m.circuit.RemoveGateAt(m.cursorMoment, m.targetQubit)
	if params != nil {
		m.circuit.AddParameterizedGate(m.pendingGate, m.targetQubit, m.cursorMoment, params, m.cursorQubit)
	} else {
		m.circuit.AddGate(m.pendingGate, m.targetQubit, m.cursorMoment, m.cursorQubit)
	}
	m.decoupled = nil
	m.appliedRule = ""
	m.statusMsg = ""
}

// exportSweep renders the dephasing-sweep comparison chart next to the
// working directory.
func (m Model) exportSweep() error {
	thetas := make([]float64, 0, 21)
	for i := 0; i <= 20; i++ {
		thetas = append(thetas, float64(i)*0.025)
	}
	return WriteSweepChart("ddd_sweep.html", m.circuit, m.catalog, thetas)
}

// ──────────────────────────── View ────────────────────────────

func (m Model) View() string {
	qasmW := 40
	circuitW := max(m.width-qasmW-2, 60)
	panelH := max(m.height-6, 16)

	circuitPanel := m.renderCircuitPanel(circuitW, panelH)
	qasmPanel := m.renderQASMPanel(qasmW, panelH)
	controls := m.renderControlsPanel(circuitW+qasmW+2, 3)

	top := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, qasmPanel)
	view := lipgloss.JoinVertical(lipgloss.Left, top, controls)

	switch m.focus {
	case focusMenu:
		menu := m.renderMenu()
		view = overlayAt(view, menu, 12, 4)
	case focusRules:
		menu := m.renderRuleMenu()
		view = overlayAt(view, menu, 12, 4)
	case focusInputParam:
		prompt := menuBorderStyle.Render(
			titleStyle.Render("Parameter") + "\n\n" +
				m.pendingGate + "(" + m.paramInput.View() + ")\n" +
				dimStyle.Render(" ⏎ Ok  Esc ✕"))
		view = overlayAt(view, prompt, 12, 6)
	}
	return view
}
