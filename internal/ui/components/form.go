// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/deerbank-tui/internal/ui/styles"
)

// Field is a labeled text input for forms and modals.
type Field struct {
	Label string
	Input textinput.Model
}

// NewField creates a field with the given label and placeholder.
func NewField(label, placeholder string) Field {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 64
	in.Width = 32
	return Field{Label: label, Input: in}
}

// NewPasswordField creates a field that masks its input.
func NewPasswordField(label string) Field {
	f := NewField(label, "")
	f.Input.EchoMode = textinput.EchoPassword
	f.Input.EchoCharacter = '*'
	return f
}

// Value returns the trimmed field value.
func (f *Field) Value() string {
	return f.Input.Value()
}

// SetValue replaces the field content.
func (f *Field) SetValue(v string) {
	f.Input.SetValue(v)
}

// Focus puts the cursor in this field.
func (f *Field) Focus() tea.Cmd {
	return f.Input.Focus()
}

// Blur removes the cursor from this field.
func (f *Field) Blur() {
	f.Input.Blur()
}

// Update forwards input events to the underlying text input.
func (f Field) Update(msg tea.Msg) (Field, tea.Cmd) {
	var cmd tea.Cmd
	f.Input, cmd = f.Input.Update(msg)
	return f, cmd
}

// View renders the label and input with a focus-aware border.
func (f Field) View(theme *styles.Theme) string {
	box := theme.FieldBlurred
	if f.Input.Focused() {
		box = theme.FieldFocused
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		theme.FormLabel.Render(f.Label),
		box.Render(f.Input.View()))
}

// FieldSet manages tab focus across a group of fields.
type FieldSet struct {
	Fields []Field
	cursor int
}

// NewFieldSet creates a field group with focus on the first field.
func NewFieldSet(fields ...Field) FieldSet {
	return FieldSet{Fields: fields}
}

// Init focuses the first field.
func (fs *FieldSet) Init() tea.Cmd {
	if len(fs.Fields) == 0 {
		return nil
	}
	fs.cursor = 0
	return fs.Fields[0].Focus()
}

// Cursor returns the focused field index.
func (fs *FieldSet) Cursor() int {
	return fs.cursor
}

// OnLast reports whether focus is on the final field.
func (fs *FieldSet) OnLast() bool {
	return fs.cursor == len(fs.Fields)-1
}

// Next moves focus to the following field, wrapping around.
func (fs *FieldSet) Next() tea.Cmd {
	return fs.moveTo((fs.cursor + 1) % len(fs.Fields))
}

// Prev moves focus to the previous field, wrapping around.
func (fs *FieldSet) Prev() tea.Cmd {
	return fs.moveTo((fs.cursor - 1 + len(fs.Fields)) % len(fs.Fields))
}

func (fs *FieldSet) moveTo(idx int) tea.Cmd {
	fs.Fields[fs.cursor].Blur()
	fs.cursor = idx
	return fs.Fields[fs.cursor].Focus()
}

// Update forwards input to the focused field.
func (fs FieldSet) Update(msg tea.Msg) (FieldSet, tea.Cmd) {
	if len(fs.Fields) == 0 {
		return fs, nil
	}
	var cmd tea.Cmd
	fs.Fields[fs.cursor], cmd = fs.Fields[fs.cursor].Update(msg)
	return fs, cmd
}

// View renders all fields stacked vertically.
func (fs FieldSet) View(theme *styles.Theme) string {
	var parts []string
	for _, f := range fs.Fields {
		parts = append(parts, f.View(theme))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Reset clears every field and returns focus to the first.
func (fs *FieldSet) Reset() tea.Cmd {
	for i := range fs.Fields {
		fs.Fields[i].SetValue("")
		fs.Fields[i].Blur()
	}
	return fs.Init()
}
