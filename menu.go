package main

import (
	"fmt"
	"strings"
)

// menuItem represents a single gate choice in the picker.
type menuItem struct {
	name        string
	label       string
	symbol      string
	needsTarget bool
	needsParams bool
	paramHint   string
}

// menuCategory groups related menu items under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

// gateMenu defines the gate picker categories and items.
var gateMenu = []menuCategory{
	{
		name: "Single Qubit",
		items: []menuItem{
			{name: "Hadamard", label: "H", symbol: "H"},
			{name: "Pauli-X (NOT)", label: "X", symbol: "X"},
			{name: "Pauli-Y", label: "Y", symbol: "Y"},
			{name: "Pauli-Z", label: "Z", symbol: "Z"},
			{name: "Identity", label: "I", symbol: "I"},
			{name: "Phase (S)", label: "S", symbol: "S"},
			{name: "Phase Dagger (S†)", label: "SDG", symbol: "S†"},
			{name: "T Gate", label: "T", symbol: "T"},
			{name: "T Dagger (T†)", label: "TDG", symbol: "T†"},
		},
	},
	{
		name: "Rotation",
		items: []menuItem{
			{name: "Rotate X", label: "RX", symbol: "RX", needsParams: true, paramHint: "pi/2"},
			{name: "Rotate Y", label: "RY", symbol: "RY", needsParams: true, paramHint: "pi/2"},
			{name: "Rotate Z", label: "RZ", symbol: "RZ", needsParams: true, paramHint: "pi/2"},
			{name: "Phase Shift", label: "P", symbol: "P", needsParams: true, paramHint: "pi/4"},
		},
	},
	{
		name: "Multi Qubit",
		items: []menuItem{
			{name: "CNOT", label: "CX", symbol: "●─⊕", needsTarget: true},
			{name: "Controlled-Z", label: "CZ", symbol: "●─●", needsTarget: true},
			{name: "SWAP", label: "SWAP", symbol: "×─×", needsTarget: true},
			{name: "C-Rotate X", label: "CRX", symbol: "●─RX", needsTarget: true, needsParams: true, paramHint: "pi/2"},
		},
	},
	{
		name: "Special",
		items: []menuItem{
			{name: "Measure", label: "MEASURE", symbol: "M"},
			{name: "Barrier", label: "BARRIER", symbol: "┃"},
		},
	},
}

// renderMenu renders the floating gate-picker popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Add Gate"))
	sb.WriteString("\n")

	for i, cat := range gateMenu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(activeGateStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(gateMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 42)))
	sb.WriteString("\n")

	cat := gateMenu[m.menuCat]
	for i, item := range cat.items {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-18s", item.name)))
			sb.WriteString(gateStyle.Render(item.symbol))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-18s", item.name)))
			sb.WriteString(dimStyle.Render(item.symbol))
		}
		if item.needsTarget {
			sb.WriteString(dimStyle.Render(" →target"))
		}
		if item.needsParams {
			sb.WriteString(dimStyle.Render(fmt.Sprintf(" (%s)", item.paramHint)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Ok  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}

// renderRuleMenu renders the decoupling-rule picker popup.
func (m Model) renderRuleMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Decoupling Rule"))
	sb.WriteString("\n\n")

	names := m.catalog.Names()
	for i, name := range names {
		rule, err := m.catalog.Lookup(name)
		if err != nil {
			continue
		}
		desc := fmt.Sprintf("%-8s min window %d", name, rule.MinLength())
		if i == m.ruleItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ " + desc))
		} else {
			sb.WriteString(menuNormalStyle.Render("   " + desc))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ⏎ Insert  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}
