// Package script drives a document and its history from Lua.
//
// A Runner owns one sandboxed gopher-lua state with the base, table, string
// and math libraries. Functions that reach outside the process (dofile,
// loadfile, load, loadstring, require) are removed. Two global modules are
// installed:
//
//	doc.title()                doc.set_title(s)
//	doc.count()                doc.set_count(n)
//	doc.flag(name)             doc.set_flag(name, on)
//	doc.add(name[, index])     doc.remove(index)
//	doc.move(from, to)         doc.replace(index, name)
//	doc.clear()                doc.items()
//	doc.add_tag(t)             doc.remove_tag(t)
//	doc.tags()
//
//	history.undo()             history.redo()
//	history.clear()            history.batch(fn)
//	history.begin_batch()      history.end_batch()
//	history.begin_pause()      history.end_pause()
//	history.can_undo()         history.can_redo()
//	history.undo_count()       history.redo_count()
//
// Indices are 1-based. Go errors are raised as Lua errors, so a script can
// catch them with pcall. print writes to the runner's output.
//
// Example:
//
//	history.batch(function()
//	    doc.set_title("Draft")
//	    doc.add("intro")
//	    doc.add("body")
//	end)
//	history.undo()
//	assert(#doc.items() == 0)
package script
