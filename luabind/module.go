// Package luabind exposes luapat to gopher-lua states as a module with
// the shape of Lua's string library pattern functions.
//
//	L := lua.NewState()
//	defer L.Close()
//	luabind.Preload(L)
//	err := L.DoString(`
//	    local pat = require("luapat")
//	    for k, v in pat.gmatch("a=1, b=2", "(%w+)=(%w+)") do print(k, v) end
//	`)
//
// Positions are 1-based and a negative init counts from the end of the
// subject, as in Lua. Pattern errors and exceeded recursion depth are
// raised as Lua errors. As in Lua 5.2, gmatch treats a leading '^' as a
// literal byte, and gsub reports a bad replacement template only when it
// is first applied to a match.
package luabind

import (
	"strconv"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/coregx/luapat"
)

// ModuleName is the name the module is preloaded under.
const ModuleName = "luapat"

// DefaultCacheSize is the number of compiled patterns kept per state.
const DefaultCacheSize = 64

// luaSpecials are the bytes whose absence lets find do a plain search.
const luaSpecials = "^$*+?.([%-"

// Module implements the luapat Lua module. A Module keeps a cache of
// compiled patterns and, like the lua.LState it is registered in, must be
// used from a single goroutine.
type Module struct {
	config    luapat.Config
	cacheSize int
	cache     map[string]*luapat.Pattern
}

// Option configures a Module.
type Option func(*Module)

// WithConfig sets the configuration patterns are compiled with.
func WithConfig(config luapat.Config) Option {
	return func(m *Module) {
		m.config = config
	}
}

// WithCacheSize sets how many compiled patterns are kept. Zero disables
// the cache.
func WithCacheSize(n int) Option {
	return func(m *Module) {
		m.cacheSize = n
	}
}

// NewModule creates a Module.
func NewModule(opts ...Option) *Module {
	m := &Module{
		config:    luapat.DefaultConfig(),
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.cache = make(map[string]*luapat.Pattern)
	return m
}

// Name returns the module name.
func (m *Module) Name() string {
	return ModuleName
}

// Loader is a lua.LGFunction that pushes the module table; use it with
// L.PreloadModule or call it directly.
func (m *Module) Loader(L *lua.LState) int {
	mod := L.NewTable()
	L.SetFuncs(mod, map[string]lua.LGFunction{
		"find":   m.find,
		"match":  m.match,
		"gmatch": m.gmatch,
		"gsub":   m.gsub,
		"quote":  m.quote,
	})
	L.Push(mod)
	return 1
}

// Preload registers a new Module with L so that require("luapat") loads it.
func Preload(L *lua.LState, opts ...Option) *Module {
	m := NewModule(opts...)
	L.PreloadModule(ModuleName, m.Loader)
	return m
}

// Loader is a module loader using the default configuration.
func Loader(L *lua.LState) int {
	return NewModule().Loader(L)
}

// compile returns the compiled pattern, raising a Lua error for an invalid one.
func (m *Module) compile(L *lua.LState, pattern string) *luapat.Pattern {
	if p, ok := m.cache[pattern]; ok {
		return p
	}
	p, err := luapat.CompileWithConfig([]byte(pattern), m.config)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return nil
	}
	if m.cacheSize > 0 {
		if len(m.cache) >= m.cacheSize {
			clear(m.cache)
		}
		m.cache[pattern] = p
	}
	return p
}

// CacheLen returns the number of cached patterns.
func (m *Module) CacheLen() int {
	return len(m.cache)
}

// startOffset converts Lua's 1-based, possibly negative init argument to a
// 0-based offset. It reports false when init lies past the end of s.
func startOffset(L *lua.LState, n, length int) (int, bool) {
	init := L.OptInt(n, 1)
	switch {
	case init < 0:
		init = max(length+init+1, 1)
	case init == 0:
		init = 1
	}
	if init > length+1 {
		return 0, false
	}
	return init - 1, true
}

// captureValue converts capture i to a Lua value: a string, or the 1-based
// position of a positional capture.
func captureValue(m *luapat.Match, i int) lua.LValue {
	if pos, ok := m.Position(i); ok {
		return lua.LNumber(pos + 1)
	}
	s, _ := m.GroupString(i)
	return lua.LString(s)
}

// pushCaptures pushes the explicit captures, or the whole match when there
// are none and whole is set. It returns the number of values pushed.
func pushCaptures(L *lua.LState, m *luapat.Match, whole bool) int {
	if m.NumCaptures() == 0 {
		if !whole {
			return 0
		}
		L.Push(lua.LString(m.String()))
		return 1
	}
	for i := 1; i <= m.NumCaptures(); i++ {
		L.Push(captureValue(m, i))
	}
	return m.NumCaptures()
}

// find(s, pattern [, init [, plain]]) -> start, end, captures... | nil
func (m *Module) find(L *lua.LState) int {
	s := L.CheckString(1)
	pattern := L.CheckString(2)
	start, ok := startOffset(L, 3, len(s))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}

	if lua.LVAsBool(L.Get(4)) || !strings.ContainsAny(pattern, luaSpecials) {
		i := strings.Index(s[start:], pattern)
		if i < 0 {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LNumber(start + i + 1))
		L.Push(lua.LNumber(start + i + len(pattern)))
		return 2
	}

	p := m.compile(L, pattern)
	match, err := p.Engine().FindAt([]byte(s), start)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	if match == nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(match.Start() + 1))
	L.Push(lua.LNumber(match.End()))
	return 2 + pushCaptures(L, match, false)
}

// match(s, pattern [, init]) -> captures... | whole match | nil
func (m *Module) match(L *lua.LState) int {
	s := L.CheckString(1)
	pattern := L.CheckString(2)
	start, ok := startOffset(L, 3, len(s))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}

	p := m.compile(L, pattern)
	match, err := p.Engine().FindAt([]byte(s), start)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	if match == nil {
		L.Push(lua.LNil)
		return 1
	}
	return pushCaptures(L, match, true)
}

// gmatch(s, pattern) -> iterator
func (m *Module) gmatch(L *lua.LState) int {
	s := L.CheckString(1)
	pattern := L.CheckString(2)
	if strings.HasPrefix(pattern, "^") {
		pattern = "%" + pattern
	}
	p := m.compile(L, pattern)
	subject := []byte(s)

	at := 0
	done := false
	L.Push(L.NewFunction(func(L *lua.LState) int {
		if done || at > len(subject) {
			return 0
		}
		match, err := p.Engine().FindAt(subject, at)
		if err != nil {
			done = true
			L.RaiseError("%s", err.Error())
			return 0
		}
		if match == nil {
			done = true
			return 0
		}
		at = match.End()
		if match.IsEmpty() {
			at++
		}
		return pushCaptures(L, match, true)
	}))
	return 1
}

// gsub(s, pattern, repl [, n]) -> string, count
// repl is a template string (or number), a table indexed by the first
// capture, or a function called with the captures. A nil or false lookup
// result keeps the matched text.
func (m *Module) gsub(L *lua.LState) int {
	s := L.CheckString(1)
	p := m.compile(L, L.CheckString(2))
	repl := L.CheckAny(3)
	n := -1
	if L.Get(4) != lua.LNil {
		n = max(L.CheckInt(4), 0)
	}

	var (
		out   string
		count int
		err   error
	)
	switch r := repl.(type) {
	case lua.LString, lua.LNumber:
		t, terr := luapat.ParseTemplate(r.String())
		out, count, err = p.GsubFunc(s, n, func(match *luapat.Match) (string, bool, error) {
			if terr != nil {
				return "", false, terr
			}
			b, err := t.Expand(nil, match)
			return string(b), true, err
		})
	case *lua.LTable:
		out, count, err = p.GsubFunc(s, n, func(match *luapat.Match) (string, bool, error) {
			return replacement(L.GetTable(r, firstCapture(match)))
		})
	case *lua.LFunction:
		out, count, err = p.GsubFunc(s, n, func(match *luapat.Match) (string, bool, error) {
			top := L.GetTop()
			L.Push(r)
			nargs := pushCaptures(L, match, true)
			if err := L.PCall(nargs, 1, nil); err != nil {
				L.SetTop(top)
				return "", false, err
			}
			v := L.Get(-1)
			L.SetTop(top)
			return replacement(v)
		})
	default:
		L.ArgError(3, "string/function/table expected, got "+repl.Type().String())
		return 0
	}
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LString(out))
	L.Push(lua.LNumber(count))
	return 2
}

// firstCapture is the table key gsub looks up for a match.
func firstCapture(match *luapat.Match) lua.LValue {
	if match.NumCaptures() == 0 {
		return lua.LString(match.String())
	}
	return captureValue(match, 1)
}

// replacement converts the value produced for a match to its replacement
// text. nil and false keep the match.
func replacement(v lua.LValue) (string, bool, error) {
	switch v := v.(type) {
	case lua.LString:
		return string(v), true, nil
	case lua.LNumber:
		return v.String(), true, nil
	case lua.LBool:
		if !bool(v) {
			return "", false, nil
		}
	case *lua.LNilType:
		return "", false, nil
	}
	return "", false, &replacementError{typ: v.Type().String()}
}

type replacementError struct {
	typ string
}

func (e *replacementError) Error() string {
	return "invalid replacement value (a " + e.typ + ")"
}

// quote(s) -> pattern matching s literally
func (m *Module) quote(L *lua.LState) int {
	L.Push(lua.LString(luapat.QuoteMeta(L.CheckString(1))))
	return 1
}

// String describes the module and its cache.
func (m *Module) String() string {
	return ModuleName + " module (" + strconv.Itoa(len(m.cache)) + " cached patterns)"
}
