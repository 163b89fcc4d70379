package scripting

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hivesim/server/internal/component"
	"github.com/hivesim/server/internal/core/ecs"
	"github.com/hivesim/server/internal/position"
	"github.com/hivesim/server/internal/sim"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM bound to the running kernel loop.
// Scripts see the read-only query surface and may only queue UserCommands and
// spawn requests into the loop's pending input.
// Single-goroutine access only (game loop).
type Engine struct {
	vm   *lua.LState
	loop *sim.Loop
	log  *zap.Logger
}

// NewEngine creates a Lua engine and loads every .lua file in scriptsDir.
// A missing directory is not an error.
func NewEngine(scriptsDir string, loop *sim.Loop, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, loop: loop, log: log}
	e.register()

	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// SetNumber publishes a numeric global to scripts.
func (e *Engine) SetNumber(name string, v float64) {
	e.vm.SetGlobal(name, lua.LNumber(v))
}

// HasAutopilot reports whether a script defined autopilot(tick).
func (e *Engine) HasAutopilot() bool {
	return e.vm.GetGlobal("autopilot") != lua.LNil
}

// Autopilot calls the Lua autopilot(tick) function, if one is defined.
func (e *Engine) Autopilot() {
	fn := e.vm.GetGlobal("autopilot")
	if fn == lua.LNil {
		return
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, lua.LNumber(e.loop.Tick)); err != nil {
		e.log.Error("lua autopilot error", zap.Error(err), zap.Uint64("tick", e.loop.Tick))
	}
}

// Eval runs one console line. Expressions are returned as strings; plain
// statements return nothing.
func (e *Engine) Eval(src string) ([]string, error) {
	fn, err := e.vm.LoadString("return " + src)
	if err != nil {
		if fn, err = e.vm.LoadString(src); err != nil {
			return nil, fmt.Errorf("compile: %w", err)
		}
	}

	base := e.vm.GetTop()
	e.vm.Push(fn)
	if err := e.vm.PCall(0, lua.MultRet, nil); err != nil {
		e.vm.SetTop(base)
		return nil, err
	}
	n := e.vm.GetTop() - base
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, describe(e.vm.Get(base+i)))
	}
	e.vm.SetTop(base)
	return out, nil
}

// describe renders a Lua value for console output. Named table fields are
// sorted so the same value always prints the same way.
func describe(v lua.LValue) string {
	t, ok := v.(*lua.LTable)
	if !ok {
		return v.String()
	}
	var list, named []string
	t.ForEach(func(k, v lua.LValue) {
		if _, isNum := k.(lua.LNumber); isNum {
			return
		}
		named = append(named, k.String()+"="+describe(v))
	})
	for i := 1; i <= t.Len(); i++ {
		list = append(list, describe(t.RawGetInt(i)))
	}
	sort.Strings(named)
	return "{" + strings.Join(append(list, named...), ", ") + "}"
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}

func (e *Engine) register() {
	for name, fn := range map[string]lua.LGFunction{
		"units":              e.luaUnits,
		"programmable_units": e.luaProgrammableUnits,
		"mineable_nodes":     e.luaMineableNodes,
		"resource_nodes":     e.luaResourceNodes,
		"position":           e.luaPosition,
		"mineable_count":     e.luaMineableCount,
		"node_kind":          e.luaNodeKind,
		"program_state":      e.luaProgramState,
		"has_hive":           e.luaHasHive,
		"hive":               e.luaHive,
		"tick":               e.luaTick,
		"dump":               e.luaDump,
		"display":            e.luaDisplay,
		"move_p":             e.luaMoveP,
		"move_d":             e.luaMoveD,
		"harvest":            e.luaHarvest,
		"deposit":            e.luaDeposit,
		"load_program":       e.luaLoadProgram,
		"load_command":       e.luaLoadCommand,
		"create_unit":        e.luaCreateUnit,
		"create_hive":        e.luaCreateHive,
		"log":                e.luaLog,
	} {
		e.vm.SetGlobal(name, e.vm.NewFunction(fn))
	}
}

// ── Query surface ─────────────────────────────────────────────────

func (e *Engine) luaUnits(L *lua.LState) int {
	L.Push(entityList(L, e.loop.State.Units()))
	return 1
}

func (e *Engine) luaProgrammableUnits(L *lua.LState) int {
	L.Push(entityList(L, e.loop.State.ProgrammableUnits()))
	return 1
}

func (e *Engine) luaMineableNodes(L *lua.LState) int {
	L.Push(entityList(L, e.loop.State.MineableNodes()))
	return 1
}

func (e *Engine) luaResourceNodes(L *lua.LState) int {
	L.Push(entityList(L, e.loop.State.ResourceNodes()))
	return 1
}

// position(e) returns tile_x, tile_y, offset_x, offset_y, or nil.
func (e *Engine) luaPosition(L *lua.LState) int {
	p, ok := e.loop.State.EntityPosition(checkEntity(L, 1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(p.TileX))
	L.Push(lua.LNumber(p.TileY))
	L.Push(lua.LNumber(p.OffsetX))
	L.Push(lua.LNumber(p.OffsetY))
	return 4
}

func (e *Engine) luaMineableCount(L *lua.LState) int {
	n, ok := e.loop.State.MineableCount(checkEntity(L, 1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(n))
	return 1
}

func (e *Engine) luaNodeKind(L *lua.LState) int {
	n, ok := e.loop.State.Nodes.Get(checkEntity(L, 1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(n.Kind.String()))
	return 1
}

func (e *Engine) luaProgramState(L *lua.LState) int {
	m, ok := e.loop.State.Memories.Get(checkEntity(L, 1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(m.State().String()))
	L.Push(lua.LNumber(m.Counter))
	return 2
}

func (e *Engine) luaHasHive(L *lua.LState) int {
	L.Push(lua.LBool(e.loop.State.HasHive()))
	return 1
}

func (e *Engine) luaHive(L *lua.LState) int {
	h, ok := e.loop.State.Hive()
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(h))
	return 1
}

func (e *Engine) luaTick(L *lua.LState) int {
	L.Push(lua.LNumber(e.loop.Tick))
	return 1
}

func (e *Engine) luaDump(L *lua.LState) int {
	L.Push(lua.LString(e.loop.State.String()))
	return 1
}

// display(e, pixels_per_tile) returns the entity's pixel coordinates.
func (e *Engine) luaDisplay(L *lua.LState) int {
	p, ok := e.loop.State.EntityPosition(checkEntity(L, 1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	ppt := L.CheckInt(2)
	if ppt <= 0 {
		L.ArgError(2, "pixels per tile must be positive")
	}
	x, y := position.ToDisplay(p, uint32(ppt))
	L.Push(lua.LNumber(x))
	L.Push(lua.LNumber(y))
	return 2
}

// ── Command constructors ──────────────────────────────────────────

func (e *Engine) luaMoveP(L *lua.LState) int {
	L.Push(commandTable(L, component.MoveP(checkPosition(L, 1))))
	return 1
}

func (e *Engine) luaMoveD(L *lua.LState) int {
	L.Push(commandTable(L, component.MoveD(checkPosition(L, 1))))
	return 1
}

func (e *Engine) luaHarvest(L *lua.LState) int {
	L.Push(commandTable(L, component.Harvest(checkEntity(L, 1))))
	return 1
}

func (e *Engine) luaDeposit(L *lua.LState) int {
	L.Push(commandTable(L, component.Deposit(checkEntity(L, 1))))
	return 1
}

// ── Input ─────────────────────────────────────────────────────────

func (e *Engine) luaLoadProgram(L *lua.LState) int {
	ent := checkEntity(L, 1)
	tbl := L.CheckTable(2)
	prog := make([]component.Command, 0, tbl.Len())
	for i := 1; i <= tbl.Len(); i++ {
		row, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			L.ArgError(2, fmt.Sprintf("program[%d] is not a command", i))
		}
		cmd, err := toCommand(row)
		if err != nil {
			L.ArgError(2, fmt.Sprintf("program[%d]: %v", i, err))
		}
		prog = append(prog, cmd)
	}
	e.loop.Input.UserCommands = append(e.loop.Input.UserCommands, sim.LoadProgram(ent, prog))
	return 0
}

func (e *Engine) luaLoadCommand(L *lua.LState) int {
	ent := checkEntity(L, 1)
	cmd, err := toCommand(L.CheckTable(2))
	if err != nil {
		L.ArgError(2, err.Error())
	}
	e.loop.Input.UserCommands = append(e.loop.Input.UserCommands, sim.LoadCommand(ent, cmd))
	return 0
}

func (e *Engine) luaCreateUnit(L *lua.LState) int {
	e.loop.Input.CreateUnit = true
	return 0
}

func (e *Engine) luaCreateHive(L *lua.LState) int {
	e.loop.Input.CreateHive = true
	return 0
}

func (e *Engine) luaLog(L *lua.LState) int {
	e.log.Info("script", zap.String("msg", L.CheckString(1)), zap.Uint64("tick", e.loop.Tick))
	return 0
}

// ── Conversions ───────────────────────────────────────────────────

func entityList(L *lua.LState, es []ecs.Entity) *lua.LTable {
	t := L.CreateTable(len(es), 0)
	for i, e := range es {
		t.RawSetInt(i+1, lua.LNumber(e))
	}
	return t
}

func checkEntity(L *lua.LState, n int) ecs.Entity {
	e, ok := toEntity(float64(L.CheckNumber(n)))
	if !ok {
		L.ArgError(n, "entity id must be a positive integer")
	}
	return e
}

// toEntity accepts only whole numbers in [1, 2^64).
func toEntity(v float64) (ecs.Entity, bool) {
	if v < 1 || v >= math.MaxUint64 || v != math.Trunc(v) {
		return 0, false
	}
	return ecs.Entity(v), true
}

// checkPosition reads tile_x, tile_y[, offset_x, offset_y] starting at n.
func checkPosition(L *lua.LState, n int) position.Position {
	u := mgl64.Vec2{
		float64(L.CheckNumber(n))*position.Scale + float64(L.OptNumber(n+2, 0)),
		float64(L.CheckNumber(n+1))*position.Scale + float64(L.OptNumber(n+3, 0)),
	}
	if !inWorld(u) {
		L.ArgError(n, "position lies outside the world")
	}
	return position.FromUnits(u)
}

const maxUnits = float64(math.MaxUint32) * position.Scale

func inWorld(u mgl64.Vec2) bool {
	for _, c := range u {
		if math.IsNaN(c) || c < 0 || c >= maxUnits {
			return false
		}
	}
	return true
}

func commandTable(L *lua.LState, c component.Command) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("op", lua.LString(c.Op.String()))
	switch c.Op {
	case component.OpMoveP, component.OpMoveD:
		t.RawSetString("x", lua.LNumber(c.Pos.TileX))
		t.RawSetString("y", lua.LNumber(c.Pos.TileY))
		t.RawSetString("ox", lua.LNumber(c.Pos.OffsetX))
		t.RawSetString("oy", lua.LNumber(c.Pos.OffsetY))
	default:
		t.RawSetString("target", lua.LNumber(c.Target))
	}
	return t
}

func toCommand(t *lua.LTable) (component.Command, error) {
	op := lua.LVAsString(t.RawGetString("op"))
	switch op {
	case "MoveP", "MoveD":
		u := mgl64.Vec2{
			float64(lua.LVAsNumber(t.RawGetString("x")))*position.Scale + float64(lua.LVAsNumber(t.RawGetString("ox"))),
			float64(lua.LVAsNumber(t.RawGetString("y")))*position.Scale + float64(lua.LVAsNumber(t.RawGetString("oy"))),
		}
		if !inWorld(u) {
			return component.Command{}, fmt.Errorf("position %v outside the world", u)
		}
		p := position.FromUnits(u)
		if op == "MoveP" {
			return component.MoveP(p), nil
		}
		return component.MoveD(p), nil
	case "Harvest", "Deposit":
		target, ok := toEntity(float64(lua.LVAsNumber(t.RawGetString("target"))))
		if !ok {
			return component.Command{}, fmt.Errorf("%s needs a target entity", op)
		}
		if op == "Harvest" {
			return component.Harvest(target), nil
		}
		return component.Deposit(target), nil
	}
	return component.Command{}, fmt.Errorf("unknown op %q", op)
}
