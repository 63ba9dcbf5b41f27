// Package event encodes and decodes the debug event descriptors stored in
// telemetry FIFOs.
//
// Every event starts with a 4-byte prefix: class, 16-bit identifier and the
// number of dwords that follow. Classes 01h..09h have a fixed payload and
// may append vendor unique data, class 0Ah embeds a statistic descriptor,
// and classes 80h and above carry opaque vendor data named by the strings
// log. Decode dispatches on the class byte and returns one of the concrete
// types; Generator produces random events the same decoder accepts.
package event
