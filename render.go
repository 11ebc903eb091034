package main

import (
	"fmt"
	"strings"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	total := width - len(s)
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// gateDisplayName returns a short display name for a gate label.
func gateDisplayName(label string) string {
	switch label {
	case "MEASURE":
		return "M"
	default:
		return label
	}
}

// controlSymbol returns the wire symbol for the control qubit of a two-qubit gate.
func controlSymbol(label string) string {
	if label == "SWAP" {
		return "×"
	}
	return "●"
}

// targetSymbol returns the wire symbol for the target qubit of a two-qubit gate.
func targetSymbol(label string) string {
	switch label {
	case "CZ":
		return "●"
	case "SWAP":
		return "×"
	default:
		return "⊕"
	}
}

// ──────────────────────────── Cell rendering ────────────────────────────

type cellHighlight int

const (
	hlNone cellHighlight = iota
	hlCursor
	hlTargetSelect
)

// renderCell returns 3 lines (top, mid, bot) for a single cell, each
// exactly cellW visual characters wide. slackCell marks an idle cell that
// belongs to a fillable slack window (drawn as a dotted wire).
func renderCell(info cellInfo, hl cellHighlight, slackCell bool) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)

	st := gateStyle
	if info.gate != nil && info.gate.Inserted {
		st = insertedGateStyle
	}

	// ── Highlighted cell (cursor or target selection) ──
	if hl == hlCursor || hl == hlTargetSelect {
		bdr := cursorBoxStyle
		if hl == hlTargetSelect {
			bdr = targetSelectStyle
		}
		innerW := cellW - 2
		dashL := (innerW - 1) / 2
		dashR := innerW - dashL - 1

		if info.isBarrier {
			top = vertRow
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + "│" + strings.Repeat("─", dashR) + bdr.Render("║")
			bot = vertRow
			return
		}

		top = bdr.Render("╔" + strings.Repeat("═", innerW) + "╗")
		bot = bdr.Render("╚" + strings.Repeat("═", innerW) + "╝")

		switch {
		case info.gate != nil && info.isControl:
			sym := controlSymbol(info.gate.Label)
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + st.Render(sym) + strings.Repeat("─", dashR) + bdr.Render("║")
		case info.gate != nil && info.isTarget:
			sym := targetSymbol(info.gate.Label)
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + st.Render(sym) + strings.Repeat("─", dashR) + bdr.Render("║")
		case info.gate != nil:
			name := padCenter(gateDisplayName(info.gate.Label), gateNameW)
			mid = bdr.Render("║") + "─┤" + st.Render(name) + "├─" + bdr.Render("║")
		case info.passThrough:
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR) + bdr.Render("║")
		default:
			mid = bdr.Render("║") + strings.Repeat("─", innerW) + bdr.Render("║")
		}
		return
	}

	// ── Normal (non-highlighted) cells ──
	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1

	switch {
	case info.isBarrier:
		top = vertRow
		mid = strings.Repeat("─", dashL) + "│" + strings.Repeat("─", dashR)
		bot = vertRow

	case info.gate != nil && info.isControl:
		top = emptyRow
		if info.vertAbove {
			top = vertRow
		}
		mid = strings.Repeat("─", dashL) + st.Render(controlSymbol(info.gate.Label)) + strings.Repeat("─", dashR)
		bot = emptyRow
		if info.vertBelow {
			bot = vertRow
		}

	case info.gate != nil && info.isTarget:
		top = emptyRow
		if info.vertAbove {
			top = vertRow
		}
		mid = strings.Repeat("─", dashL) + st.Render(targetSymbol(info.gate.Label)) + strings.Repeat("─", dashR)
		bot = emptyRow
		if info.vertBelow {
			bot = vertRow
		}

	case info.gate != nil:
		margin := (cellW - gateBoxW) / 2
		rightMargin := cellW - margin - gateBoxW
		name := padCenter(gateDisplayName(info.gate.Label), gateNameW)
		top = strings.Repeat(" ", margin) + st.Render("┌"+strings.Repeat("─", gateNameW)+"┐") + strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) + st.Render("┤"+name+"├") + strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) + st.Render("└"+strings.Repeat("─", gateNameW)+"┘") + strings.Repeat(" ", rightMargin)

	case info.passThrough:
		top = vertRow
		mid = strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR)
		bot = vertRow

	case slackCell:
		top = emptyRow
		mid = slackStyle.Render(strings.Repeat("┈", cellW))
		bot = emptyRow

	default:
		// Empty wire
		top = emptyRow
		if info.vertAbove {
			top = vertRow
		}
		mid = strings.Repeat("─", cellW)
		bot = emptyRow
		if info.vertBelow {
			bot = vertRow
		}
	}
	return
}

// ──────────────────────────── Panel rendering ────────────────────────────

// renderCircuitPanel renders the circuit grid panel, with the slack-window
// overlay when enabled.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	circuit := m.displayed()
	title := "Quantum Circuit"
	if m.decoupled != nil {
		title = fmt.Sprintf("Quantum Circuit · ddd %q applied", m.appliedRule)
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")

	// Slack overlay: cells of windows the current rule would fill.
	var slackCells map[[2]int]bool
	if m.showSlack && m.decoupled == nil {
		slackCells = m.eligibleSlackCells()
	}

	// How many moments fit
	availWidth := width - labelVisualW - 4
	maxMoments := max(availWidth/cellW, 1)

	startMoment := 0
	if m.cursorMoment >= maxMoments {
		startMoment = m.cursorMoment - maxMoments + 1
	}

	if startMoment > 0 {
		fmt.Fprintf(&sb, "  ◀ showing moments %d–%d\n", startMoment, startMoment+maxMoments-1)
	}

	// Moment number header
	header := strings.Repeat(" ", labelVisualW)
	for moment := startMoment; moment < startMoment+maxMoments; moment++ {
		header += dimStyle.Render(padCenter(fmt.Sprintf("%d", moment), cellW))
	}
	sb.WriteString(header + "\n")

	// Render each qubit as 3 lines
	for qubit := 0; qubit < circuit.NumQubits; qubit++ {
		topLine := strings.Repeat(" ", labelVisualW)
		label := fmt.Sprintf("q[%d]", qubit)
		midLine := qubitLabelStyle.Render(fmt.Sprintf("%-5s", label)) + "──"
		botLine := strings.Repeat(" ", labelVisualW)

		for moment := startMoment; moment < startMoment+maxMoments; moment++ {
			info := circuit.getCellInfo(moment, qubit)

			hl := hlNone
			if moment == m.cursorMoment && qubit == m.cursorQubit &&
				(m.focus == focusCircuit || m.focus == focusSelectTarget || m.focus == focusMenu) {
				hl = hlCursor
			} else if moment == m.cursorMoment && qubit == m.targetQubit && m.focus == focusSelectTarget {
				hl = hlTargetSelect
			}

			top, mid, bot := renderCell(info, hl, slackCells[[2]int{qubit, moment}])
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	// Status line
	if m.focus == focusSelectTarget {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "  %s", activeGateStyle.Render(m.pendingGate))
		sb.WriteString("  Select target qubit: ")
		fmt.Fprintf(&sb, "%s", targetSelectStyle.Render(fmt.Sprintf("q[%d]", m.targetQubit)))
		sb.WriteString(dimStyle.Render("   ↑↓ Move  Enter Confirm  Esc Cancel"))
	} else {
		fmt.Fprintf(&sb, "\n  Moment %d, Qubit %d  │  %s", m.cursorMoment, m.cursorQubit, m.fidelityLine())
		if m.statusMsg != "" {
			fmt.Fprintf(&sb, "\n  %s", activeGateStyle.Render(m.statusMsg))
		}
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// renderQASMPanel renders the QASM editor panel.
func (m Model) renderQASMPanel(width, height int) string {
	var sb strings.Builder

	title := "QASM Editor"
	if m.focus == focusQASM {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.qasmEditor.View())

	return qasmStyle.Width(width).Height(height).Render(sb.String())
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeGateStyle.Render("Navigate: "))
	sb.WriteString("↑↓/jk Qubit  ←→/hl Moment  +/- Qubits    ")
	sb.WriteString(activeGateStyle.Render("a"))
	sb.WriteString(" Add gate  ")
	sb.WriteString(activeGateStyle.Render("Bksp"))
	sb.WriteString(" Delete\n")

	sb.WriteString(activeGateStyle.Render("Decouple: "))
	sb.WriteString("s Slack overlay  d Insert rule  u Revert  x Sweep chart    ")
	sb.WriteString(activeGateStyle.Render("Misc: "))
	sb.WriteString("Tab Focus  ^S Save  q Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites the overlay string on top of the background at
// position (x, y), tracking visible columns across ANSI escape sequences.
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	ovLines := strings.Split(overlay, "\n")

	for i, ovLine := range ovLines {
		bgIdx := y + i
		if bgIdx < 0 || bgIdx >= len(bgLines) {
			continue
		}
		bgLines[bgIdx] = spliceLineAt(bgLines[bgIdx], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// spliceLineAt replaces visible columns starting at position x in bgLine
// with overlay content, preserving ANSI escape sequences around the splice.
func spliceLineAt(bgLine, overlay string, x int) string {
	runes := []rune(bgLine)
	ovWidth := visibleLen(overlay)

	var prefix strings.Builder
	var suffix strings.Builder

	col := 0
	i := 0
	inEsc := false

	// Collect prefix: everything up to visible column x
	for i < len(runes) && col < x {
		if runes[i] == '\x1b' {
			inEsc = true
			for i < len(runes) {
				prefix.WriteRune(runes[i])
				if inEsc && runes[i] != '\x1b' && runes[i] != '[' && ((runes[i] >= 'A' && runes[i] <= 'Z') || (runes[i] >= 'a' && runes[i] <= 'z')) {
					inEsc = false
					i++
					break
				}
				i++
			}
		} else {
			prefix.WriteRune(runes[i])
			col++
			i++
		}
	}

	// Pad prefix if bg line is shorter than x
	for col < x {
		prefix.WriteRune(' ')
		col++
	}

	// Skip over ovWidth visible columns in the background
	skipped := 0
	for i < len(runes) && skipped < ovWidth {
		if runes[i] == '\x1b' {
			for i < len(runes) {
				i++
				if i > 0 && runes[i-1] != '\x1b' && runes[i-1] != '[' && ((runes[i-1] >= 'A' && runes[i-1] <= 'Z') || (runes[i-1] >= 'a' && runes[i-1] <= 'z')) {
					break
				}
			}
		} else {
			skipped++
			i++
		}
	}

	// Collect suffix: rest of the background line
	for i < len(runes) {
		suffix.WriteRune(runes[i])
		i++
	}

	return prefix.String() + overlay + suffix.String()
}

// visibleLen returns the number of visible (non-ANSI-escape) characters.
func visibleLen(s string) int {
	n := 0
	inEsc := false
	for _, r := range s {
		if r == '\x1b' {
			inEsc = true
			continue
		}
		if inEsc {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEsc = false
			}
			continue
		}
		n++
	}
	return n
}
