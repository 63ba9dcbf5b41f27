// Package stringslog decodes and builds the OCP strings log, the companion
// log that names vendor unique statistics, vendor unique events and the
// vendor unique data attached to fixed class events.
//
// A strings log is a 432-byte header followed by three identifier tables
// of 16-byte entries and an ASCII table holding the names:
//
//	+------------------+
//	| header (108 dw)  |  version, GUID, size, table locations, FIFO names
//	+------------------+
//	| statistics table |  sorted by identifier, identifiers >= 8000h
//	+------------------+
//	| event table      |  sorted by (class, identifier), classes >= 80h
//	+------------------+
//	| VU event table   |  sorted by (class, identifier), classes 1..9
//	+------------------+
//	| ASCII table      |  names, each space padded to a dword boundary
//	+------------------+
//
// Decode validates every table and resolves each entry's name. Builder goes
// the other way: it collects names, removes duplicates and lays out a log
// that Decode accepts.
package stringslog
