package component

import "fmt"

// ProgramState is the externally visible state of an entity's program.
type ProgramState uint8

const (
	ProgramIdle      ProgramState = iota // no instructions loaded
	ProgramExecuting                     // Counter names the next instruction
	ProgramWaiting                       // a multi-tick instruction is in progress
)

func (s ProgramState) String() string {
	switch s {
	case ProgramIdle:
		return "idle"
	case ProgramExecuting:
		return "executing"
	case ProgramWaiting:
		return "waiting"
	}
	return fmt.Sprintf("ProgramState(%d)", uint8(s))
}

// Memory is an entity's program: a cyclic instruction list and its cursor.
// Counter is always a valid index while Commands is non-empty.
type Memory struct {
	Counter  uint32
	Waiting  bool
	Commands []Command
}

func (m *Memory) State() ProgramState {
	switch {
	case len(m.Commands) == 0:
		return ProgramIdle
	case m.Waiting:
		return ProgramWaiting
	default:
		return ProgramExecuting
	}
}

// Current returns the instruction under the cursor. Calling it on an idle
// program or with the cursor out of range panics.
func (m *Memory) Current() Command {
	if int(m.Counter) >= len(m.Commands) {
		panic(fmt.Sprintf("program counter %d out of range for %d commands", m.Counter, len(m.Commands)))
	}
	return m.Commands[m.Counter]
}

// Advance moves the cursor to the next instruction, wrapping to 0.
func (m *Memory) Advance() {
	m.Waiting = false
	m.Counter++
	if int(m.Counter) >= len(m.Commands) {
		m.Counter = 0
	}
}

// Hold keeps the cursor on the current instruction for another tick.
func (m *Memory) Hold() {
	m.Waiting = true
}

// Load replaces the program wholesale and rewinds the cursor.
func (m *Memory) Load(cmds []Command) {
	m.Commands = append(m.Commands[:0:0], cmds...)
	m.Counter = 0
	m.Waiting = false
}

// Append adds one instruction to the end of the program.
func (m *Memory) Append(c Command) {
	m.Commands = append(m.Commands, c)
}

// CloneMemory deep-copies a Memory so the clone's program is not shared.
func CloneMemory(m Memory) Memory {
	m.Commands = append([]Command(nil), m.Commands...)
	return m
}
