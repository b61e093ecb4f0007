// Package mmap maps snapshot files read-only into memory.
//
//	m, err := mmap.Open("model.cks")
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()
//
// Unix platforms use mmap(2) through golang.org/x/sys/unix. Windows uses
// CreateFileMapping/MapViewOfFile. Empty files map to a nil slice.
package mmap
