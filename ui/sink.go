package ui

import tea "github.com/charmbracelet/bubbletea"

// ProgramSink delivers messages from background workers to a running program.
type ProgramSink struct {
	program *tea.Program
}

func NewProgramSink(program *tea.Program) *ProgramSink {
	return &ProgramSink{program: program}
}

func (s *ProgramSink) Publish(msg any) {
	s.program.Send(msg)
}
