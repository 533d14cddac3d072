package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/editsys/internal/document"
)

func (r *Runner) installModules() {
	r.L.SetGlobal("doc", r.L.SetFuncs(r.L.NewTable(), r.docFuncs()))
	r.L.SetGlobal("history", r.L.SetFuncs(r.L.NewTable(), r.historyFuncs()))
}

// raise reports err as a Lua error. It does not return.
func raise(L *lua.LState, err error) {
	L.RaiseError("%s", err.Error())
}

// checkIndex reads a 1-based index argument and returns it 0-based.
func checkIndex(L *lua.LState, n int) int {
	i := L.CheckInt(n)
	if i < 1 {
		L.ArgError(n, "index must be 1 or greater")
	}
	return i - 1
}

func pushStrings(L *lua.LState, values []string) {
	t := L.CreateTable(len(values), 0)
	for _, v := range values {
		t.Append(lua.LString(v))
	}
	L.Push(t)
}

func (r *Runner) docFuncs() map[string]lua.LGFunction {
	d := r.doc

	return map[string]lua.LGFunction{
		"title": func(L *lua.LState) int {
			L.Push(lua.LString(d.Title()))
			return 1
		},
		"set_title": func(L *lua.LState) int {
			L.Push(lua.LBool(d.SetTitle(L.CheckString(1))))
			return 1
		},
		"count": func(L *lua.LState) int {
			L.Push(lua.LNumber(d.Count()))
			return 1
		},
		"set_count": func(L *lua.LState) int {
			L.Push(lua.LBool(d.SetCount(L.CheckInt(1))))
			return 1
		},
		"flag": func(L *lua.LState) int {
			f, err := document.ParseFlag(L.CheckString(1))
			if err != nil {
				raise(L, err)
			}
			L.Push(lua.LBool(d.HasFlag(f)))
			return 1
		},
		"set_flag": func(L *lua.LState) int {
			f, err := document.ParseFlag(L.CheckString(1))
			if err != nil {
				raise(L, err)
			}
			L.Push(lua.LBool(d.SetFlag(f, L.CheckBool(2))))
			return 1
		},
		"add": func(L *lua.LState) int {
			name := L.CheckString(1)
			index := -1
			if L.GetTop() >= 2 {
				index = checkIndex(L, 2)
			}
			if _, err := d.Add(name, index); err != nil {
				raise(L, err)
			}
			return 0
		},
		"remove": func(L *lua.LState) int {
			item, err := d.Remove(checkIndex(L, 1))
			if err != nil {
				raise(L, err)
			}
			L.Push(lua.LString(item.Name()))
			return 1
		},
		"move": func(L *lua.LState) int {
			if err := d.Move(checkIndex(L, 1), checkIndex(L, 2)); err != nil {
				raise(L, err)
			}
			return 0
		},
		"replace": func(L *lua.LState) int {
			index := checkIndex(L, 1)
			if _, err := d.Replace(index, L.CheckString(2)); err != nil {
				raise(L, err)
			}
			return 0
		},
		"clear": func(L *lua.LState) int {
			if err := d.Clear(); err != nil {
				raise(L, err)
			}
			return 0
		},
		"items": func(L *lua.LState) int {
			pushStrings(L, d.Names())
			return 1
		},
		"add_tag": func(L *lua.LState) int {
			L.Push(lua.LBool(d.AddTag(L.CheckString(1))))
			return 1
		},
		"remove_tag": func(L *lua.LState) int {
			L.Push(lua.LBool(d.RemoveTag(L.CheckString(1))))
			return 1
		},
		"tags": func(L *lua.LState) int {
			pushStrings(L, d.Tags())
			return 1
		},
	}
}

func (r *Runner) historyFuncs() map[string]lua.LGFunction {
	h := r.history

	// call adapts a history operation that can fail.
	call := func(op func() error) lua.LGFunction {
		return func(L *lua.LState) int {
			if err := op(); err != nil {
				raise(L, err)
			}
			return 0
		}
	}

	return map[string]lua.LGFunction{
		"undo":      call(h.Undo),
		"redo":      call(h.Redo),
		"end_batch": call(h.EndBatch),
		"end_pause": call(h.EndPause),
		"clear": func(*lua.LState) int {
			h.Clear()
			return 0
		},
		"begin_batch": func(*lua.LState) int {
			h.BeginBatch()
			return 0
		},
		"begin_pause": func(*lua.LState) int {
			h.BeginPause()
			return 0
		},
		"batch": func(L *lua.LState) int {
			fn := L.CheckFunction(1)
			err := h.Batch(func() error {
				L.Push(fn)
				return L.PCall(0, 0, nil)
			})
			if err != nil {
				raise(L, err)
			}
			return 0
		},
		"can_undo": func(L *lua.LState) int {
			L.Push(lua.LBool(h.CanUndo()))
			return 1
		},
		"can_redo": func(L *lua.LState) int {
			L.Push(lua.LBool(h.CanRedo()))
			return 1
		},
		"undo_count": func(L *lua.LState) int {
			L.Push(lua.LNumber(h.UndoCount()))
			return 1
		},
		"redo_count": func(L *lua.LState) int {
			L.Push(lua.LNumber(h.RedoCount()))
			return 1
		},
	}
}
