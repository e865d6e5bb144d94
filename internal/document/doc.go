// Package document provides the in-memory text buffer edited by the editor.
//
// A Document is an ordered list of Rows plus the name of the file it was
// loaded from (or will be saved to) and a dirty flag. All addressing is done
// in characters (runes), never bytes:
//
//	doc := document.New()
//	doc.Insert(document.Position{}, 'h')
//	doc.Insert(document.Position{X: 1}, 'i')
//	doc.Row(0).String() // "hi"
//
// Out of range positions never panic. Reads return nil / false and
// mutations clamp or become no-ops.
//
// Persistence goes through the FileSystem interface so tests can run
// against an in-memory file system.
package document
