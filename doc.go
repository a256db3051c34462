// Package mediainfo drives sessions against the native MediaInfo library
// (libmediainfo) to read technical metadata from media files.
//
// Key pieces include:
//   - MediaInfo, a session owning one native handle (Open, Get, GetI,
//     Option, State, Count, Close)
//   - encoding negotiation between UTF-32, UTF-16 and narrow entry points
//   - Inspect/InspectAll helpers that turn a file into a Report
//
// # Architecture
//
//	New: load library -> MediaInfo_New -> negotiate encoding -> bind entry points
//	Call: marshal string args -> wide or narrow entry point -> decode result -> free args
//	Close: MediaInfo_Delete, once
//
// # Native Library
//
// By default the package uses purego (CGO_ENABLED=0) and loads
// libmediainfo at runtime. Set MEDIAINFO_LIB_PATH to the library file or
// MEDIAINFO_LIB_DIR to its directory to override the search. With CGO
// enabled it links against -lmediainfo instead.
//
// # Encoding
//
// libmediainfo does not report the width of its wchar_t. A session probes
// Info_Version under UTF-32, then UTF-16, then the narrow "A" entry points
// and keeps the first mode that decodes to "MediaInfoLib...". Windows is
// always UTF-16. UTF-32 results are scanned for at most 1024 bytes; longer
// strings are truncated.
//
// # Sessions
//
// A session has one owner and must be closed. A finalizer releases leaked
// handles but is not a substitute for Close. Native calls block and cannot
// be cancelled. Independent sessions may run in parallel.
package mediainfo
