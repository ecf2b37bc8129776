package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for build-mode rules.
// Single-goroutine access only (tick loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts under scriptsDir/build.
// A missing directory is not an error; every hook then falls back to its
// built-in behaviour.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	if err := e.loadDir(filepath.Join(scriptsDir, "build")); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load build scripts: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
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

// DoString runs a chunk of Lua in the engine's VM.
func (e *Engine) DoString(src string) error {
	return e.vm.DoString(src)
}

// HasFunc reports whether a global Lua function is defined.
func (e *Engine) HasFunc(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// SnapPreview calls the Lua snap_preview function to adjust a traced
// preview position. The context table carries kind, grid, x, y and z; the
// function returns a table with x, y and z. Missing fields keep their input
// value. Without the function, or on any Lua error, pos is returned as is.
func (e *Engine) SnapPreview(kind string, grid float64, pos mgl64.Vec3) mgl64.Vec3 {
	fn, ok := e.vm.GetGlobal("snap_preview").(*lua.LFunction)
	if !ok {
		return pos
	}

	t := e.vm.NewTable()
	t.RawSetString("kind", lua.LString(kind))
	t.RawSetString("grid", lua.LNumber(grid))
	t.RawSetString("x", lua.LNumber(pos.X()))
	t.RawSetString("y", lua.LNumber(pos.Y()))
	t.RawSetString("z", lua.LNumber(pos.Z()))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua snap_preview error", zap.String("kind", kind), zap.Error(err))
		return pos
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua snap_preview returned non-table", zap.String("type", result.Type().String()))
		return pos
	}
	return mgl64.Vec3{
		lFloat(rt, "x", pos.X()),
		lFloat(rt, "y", pos.Y()),
		lFloat(rt, "z", pos.Z()),
	}
}

// --- Lua helpers ---

// lFloat reads a number field from a Lua table, def when absent or not a number.
func lFloat(t *lua.LTable, key string, def float64) float64 {
	if n, ok := t.RawGetString(key).(lua.LNumber); ok {
		return float64(n)
	}
	return def
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
