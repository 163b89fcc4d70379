package component

import (
	"fmt"

	"github.com/hivesim/server/internal/core/ecs"
	"github.com/hivesim/server/internal/position"
)

// Op identifies a program instruction.
type Op uint8

const (
	OpMoveP   Op = iota + 1 // teleport to Pos, subject to collision
	OpMoveD                 // walk toward Pos over several ticks
	OpHarvest               // pull one unit from Target
	OpDeposit               // push one unit into Target
)

func (o Op) String() string {
	switch o {
	case OpMoveP:
		return "MoveP"
	case OpMoveD:
		return "MoveD"
	case OpHarvest:
		return "Harvest"
	case OpDeposit:
		return "Deposit"
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// Command is one program instruction. Pos is meaningful for the move ops,
// Target for Harvest and Deposit.
type Command struct {
	Op     Op
	Pos    position.Position
	Target ecs.Entity
}

func MoveP(p position.Position) Command { return Command{Op: OpMoveP, Pos: p} }
func MoveD(p position.Position) Command { return Command{Op: OpMoveD, Pos: p} }
func Harvest(e ecs.Entity) Command      { return Command{Op: OpHarvest, Target: e} }
func Deposit(e ecs.Entity) Command      { return Command{Op: OpDeposit, Target: e} }

func (c Command) String() string {
	switch c.Op {
	case OpMoveP, OpMoveD:
		return fmt.Sprintf("%s%s", c.Op, c.Pos)
	case OpHarvest, OpDeposit:
		return fmt.Sprintf("%s(%d)", c.Op, c.Target)
	}
	return c.Op.String()
}
