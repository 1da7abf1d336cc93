// Package file reads script and data files as text and provides the file
// access helper exposed to scripts.
//
// # Encoding Detection
//
// [ReadText] and [Decode] recognise a UTF-8 or UTF-16 byte order mark and
// strip it. Without a BOM the content is taken as UTF-8 when valid and as
// Windows-1252 otherwise, so legacy extension files still load.
//
// # Helper
//
// [Helper] is bound into every script context. Its methods are visible to
// scripts with lower-camel names:
//
//	var src = zenFile.read(zenFile.locateFile(editorFile, "style.css"), 0);
//	zenFile.save(zenFile.createPath(editorFile, "out.html"), html);
package file
