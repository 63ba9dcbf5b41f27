// Package gen holds the shared state of a telemetry log generation run.
//
// Generation is random but reproducible: every random choice is drawn from
// the State's source, so a fixed seed yields byte-identical logs. State also
// owns the millisecond clock stamped into timestamp fields and the
// registries that collect the vendor unique names a strings log must carry.
package gen
