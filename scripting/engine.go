package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"hades-rogue/components"
)

// Engine wraps a single gopher-lua VM that evaluates upgrade formulas.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine with the standard libraries opened
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return &Engine{vm: vm, log: log}
}

// Formula compiles a Lua expression over `level` into an upgrade formula,
// e.g. "25 * (level + 1)"
func (e *Engine) Formula(src string) (components.Formula, error) {
	chunk := fmt.Sprintf("return function(level) return (%s) end", src)
	if err := e.vm.DoString(chunk); err != nil {
		return nil, fmt.Errorf("compile formula %q: %w", src, err)
	}
	fn, ok := e.vm.Get(-1).(*lua.LFunction)
	e.vm.Pop(1)
	if !ok {
		return nil, fmt.Errorf("compile formula %q: not a function", src)
	}

	return func(level int) float64 {
		if err := e.vm.CallByParam(lua.P{
			Fn:      fn,
			NRet:    1,
			Protect: true,
		}, lua.LNumber(level)); err != nil {
			e.log.Error("lua formula error", zap.String("formula", src), zap.Error(err))
			return 0
		}
		result := e.vm.Get(-1)
		e.vm.Pop(1)
		return float64(lua.LVAsNumber(result))
	}, nil
}

// Close shuts down the Lua VM
func (e *Engine) Close() {
	e.vm.Close()
}
