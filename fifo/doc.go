// Package fifo encodes and decodes the debug event FIFOs of Data Areas 1
// and 2.
//
// A FIFO is a dword aligned region holding back-to-back event descriptors.
// The first event whose class byte is zero, or fewer than four remaining
// bytes, ends the walk; everything after the last event must be zero.
package fifo
