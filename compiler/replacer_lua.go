package compiler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shibukawa/sexpjs/sexp"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// ErrInvalidLuaNode indicates a table passed to compile() is not a node
var ErrInvalidLuaNode = errors.New("lua value is not a node table")

const luaReplaceFunction = "replace"

// compileLua compiles a chunk that defines replace(node). Every call runs
// in its own LState, which keeps the rule table shareable.
func compileLua(name, source string) (Replacer, error) {
	chunk, err := parse.Parse(strings.NewReader(source), name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRule, err)
	}

	proto, err := lua.Compile(chunk, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRule, err)
	}

	// make sure the chunk loads and defines replace()
	l := lua.NewState()
	defer l.Close()

	if _, err := loadReplaceFunction(l, proto); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRule, err)
	}

	return func(n *sexp.Node, rules *RuleTable) (string, error) {
		l := lua.NewState()
		defer l.Close()

		// errors raised by nested dispatch keep their type
		var compileErr error

		l.SetGlobal("compile", l.NewFunction(func(l *lua.LState) int {
			child, err := nodeFromLua(l.CheckTable(1))
			if err != nil {
				compileErr = err
				l.RaiseError("%v", err)

				return 0
			}

			out, err := Compile(child, rules)
			if err != nil {
				compileErr = err
				l.RaiseError("%v", err)

				return 0
			}

			l.Push(lua.LString(out))

			return 1
		}))

		fn, err := loadReplaceFunction(l, proto)
		if err != nil {
			return "", fmt.Errorf("rule '%s': %w", name, err)
		}

		err = l.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, nodeToLua(l, n))
		if err != nil {
			if compileErr != nil {
				return "", compileErr
			}

			return "", fmt.Errorf("rule '%s': %w", name, err)
		}

		ret := l.Get(-1)
		l.Pop(1)

		s, ok := ret.(lua.LString)
		if !ok {
			return "", fmt.Errorf("%w: rule '%s' returned %s", ErrInvalidReplacement, name, ret.Type())
		}

		return string(s), nil
	}, nil
}

func loadReplaceFunction(l *lua.LState, proto *lua.FunctionProto) (*lua.LFunction, error) {
	l.Push(l.NewFunctionFromProto(proto))
	if err := l.PCall(0, lua.MultRet, nil); err != nil {
		return nil, err
	}

	fn, ok := l.GetGlobal(luaReplaceFunction).(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("chunk does not define function %s(node)", luaReplaceFunction)
	}

	return fn, nil
}

// nodeToLua converts a node to {atom="text"} or {list={...}}
func nodeToLua(l *lua.LState, n *sexp.Node) *lua.LTable {
	t := l.NewTable()

	if n.IsAtom() {
		t.RawSetString("atom", lua.LString(n.Text))
		return t
	}

	list := l.NewTable()
	for _, child := range n.List {
		list.Append(nodeToLua(l, child))
	}

	t.RawSetString("list", list)

	return t
}

func nodeFromLua(t *lua.LTable) (*sexp.Node, error) {
	if atom, ok := t.RawGetString("atom").(lua.LString); ok {
		return sexp.Atom(string(atom)), nil
	}

	list, ok := t.RawGetString("list").(*lua.LTable)
	if !ok {
		return nil, ErrInvalidLuaNode
	}

	children := make([]*sexp.Node, 0, list.Len())
	for i := 1; i <= list.Len(); i++ {
		childTable, ok := list.RawGetInt(i).(*lua.LTable)
		if !ok {
			return nil, ErrInvalidLuaNode
		}

		child, err := nodeFromLua(childTable)
		if err != nil {
			return nil, err
		}

		children = append(children, child)
	}

	return sexp.List(children...), nil
}
