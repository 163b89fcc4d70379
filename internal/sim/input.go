package sim

import (
	"github.com/hivesim/server/internal/component"
	"github.com/hivesim/server/internal/core/ecs"
)

// UserCommandKind distinguishes the two ways a player can program a unit.
type UserCommandKind uint8

const (
	KindLoadCommand UserCommandKind = iota // append one instruction
	KindLoadProgram                        // replace the whole program
)

func (k UserCommandKind) String() string {
	if k == KindLoadProgram {
		return "load_program"
	}
	return "load_command"
}

// UserCommand is an external request to change an entity's program.
type UserCommand struct {
	Kind    UserCommandKind
	Entity  ecs.Entity
	Command component.Command   // KindLoadCommand
	Program []component.Command // KindLoadProgram
}

func LoadCommand(e ecs.Entity, c component.Command) UserCommand {
	return UserCommand{Kind: KindLoadCommand, Entity: e, Command: c}
}

func LoadProgram(e ecs.Entity, prog []component.Command) UserCommand {
	return UserCommand{Kind: KindLoadProgram, Entity: e, Program: prog}
}

// Input is everything the outside world asks of one tick.
// Callers Reset it after every Update.
type Input struct {
	CreateUnit   bool
	CreateHive   bool
	UserCommands []UserCommand
}

func (in *Input) Reset() {
	in.CreateUnit = false
	in.CreateHive = false
	in.UserCommands = in.UserCommands[:0]
}
