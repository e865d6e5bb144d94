// Package editor implements the editing and viewport engine.
//
// An Editor owns one document.Document, a cursor in document space and a
// viewport offset (the document position drawn at the top-left cell). Run
// loops over three steps until the user quits:
//
//	render frame -> read one key -> dispatch it, then scroll
//
// Save-as and search share a nested prompt loop. The prompt re-renders on
// every keystroke and hands each one to a PromptHandler, which is how live
// search moves the cursor while the query is typed.
//
// The editor is single threaded: all state is mutated between frames and
// the only blocking point is backend.Backend.PollEvent.
package editor
