package main

import (
	"fmt"
	"io"
	"os"

	"github.com/opencomputeproject/ocp-telemetry/bundle"
	"github.com/opencomputeproject/ocp-telemetry/dataarea"
	"github.com/opencomputeproject/ocp-telemetry/event"
	"github.com/opencomputeproject/ocp-telemetry/fifo"
	"github.com/opencomputeproject/ocp-telemetry/format"
	"github.com/opencomputeproject/ocp-telemetry/internal/logging"
	"github.com/opencomputeproject/ocp-telemetry/section"
	"github.com/opencomputeproject/ocp-telemetry/statistic"
	"github.com/opencomputeproject/ocp-telemetry/telemetry"
	"github.com/spf13/cobra"
)

type dumpFlags struct {
	telemetry string
	strings   string
	bundle    string
	hex       bool
}

func newDumpCmd(root *rootFlags) *cobra.Command {
	flags := &dumpFlags{}

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Decode, validate and print a telemetry log",
		Long: `Decode a telemetry log together with its strings log and print the
headers, SMART pages, statistics and FIFO events. Any structural or
cross-reference violation is reported as an error.`,
		Example: `  # Dump a pair of log files
  ocptel dump --telemetry telemetry.bin --strings strings.bin

  # Dump a bundle and print event payloads
  ocptel dump --bundle log.ocpt --hex`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, root, flags)
		},
	}

	cmd.Flags().StringVar(&flags.telemetry, "telemetry", "telemetry.bin", "Telemetry log input file")
	cmd.Flags().StringVar(&flags.strings, "strings", "strings.bin", "Strings log input file")
	cmd.Flags().StringVar(&flags.bundle, "bundle", "", "Read both logs from a bundle")
	cmd.Flags().BoolVar(&flags.hex, "hex", false, "Print raw event bytes")

	return cmd
}

func runDump(cmd *cobra.Command, root *rootFlags, flags *dumpFlags) error {
	logger, err := root.logger()
	if err != nil {
		return err
	}
	defer logger.Close()

	tel, strs, err := readLogs(flags.bundle, flags.telemetry, flags.strings)
	if err != nil {
		return err
	}
	logger.Verbose("telemetry log %d bytes, strings log %d bytes", len(tel), len(strs))

	log, err := telemetry.DecodePair(tel, strs)
	if err != nil {
		return err
	}

	d := &dumper{out: cmd.OutOrStdout(), logger: logger, hex: flags.hex}
	d.dump(log)

	return nil
}

func readLogs(bundlePath, telPath, strsPath string) ([]byte, []byte, error) {
	if bundlePath != "" {
		data, err := readFile(bundlePath)
		if err != nil {
			return nil, nil, err
		}
		b, err := bundle.Unpack(data)
		if err != nil {
			return nil, nil, err
		}

		return b.Telemetry, b.Strings, nil
	}

	tel, err := readFile(telPath)
	if err != nil {
		return nil, nil, err
	}
	strs, err := readFile(strsPath)
	if err != nil {
		return nil, nil, err
	}

	return tel, strs, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return data, nil
}

type dumper struct {
	out    io.Writer
	logger *logging.Logger
	hex    bool
}

func (d *dumper) printf(format string, args ...any) {
	fmt.Fprintf(d.out, format, args...)
}

func (d *dumper) dump(log *telemetry.Log) {
	d.header(&log.Header)
	d.area1Header(&log.Area1.Header, log.Strings.Size())
	d.smart(log.Area1)

	d.printf("\nData Area 1 statistics (%d)\n", len(log.Area1.Statistics))
	d.statistics(log.Area1.Statistics)
	d.printf("\nData Area 2 statistics (%d)\n", len(log.Area2.Statistics))
	d.statistics(log.Area2.Statistics)

	for _, f := range log.Fifos() {
		d.fifo(f)
	}

	d.printf("\nData Area 3: %d bytes\n", len(log.Area3))
	d.printf("Data Area 4: %d bytes\n", len(log.Area4))
}

func (d *dumper) header(h *section.TelemetryHeader) {
	d.printf("Telemetry log %s\n", h.Kind)
	d.printf("  OUI:                      %02x-%02x-%02x\n", h.OUI[0], h.OUI[1], h.OUI[2])
	for n := 1; n <= 4; n++ {
		start, end := h.AreaRange(n)
		d.printf("  Data Area %d:              last block %d, %d bytes\n", n, h.LastBlock[n-1], end-start)
	}
	d.printf("  Scope:                    %s\n", h.Scope)
	if h.Kind == format.LogHostInitiated {
		d.printf("  Host generation:          %d\n", h.HostGeneration)
	}
	d.printf("  Controller data:          %d\n", h.ControllerDataAvailable)
	d.printf("  Controller generation:    %d\n", h.ControllerGeneration)
	d.printf("  Reason:                   %q (flags 0x%02x)\n", h.Reason.ErrorText(), h.Reason.Flags)
}

func (d *dumper) area1Header(h *section.DataArea1Header, stringsSize int) {
	d.printf("\nData Area 1 header %d.%d\n", h.MajorVersion, h.MinorVersion)
	d.printf("  Timestamp:                %s\n", h.Timestamp)
	d.printf("  Profiles:                 %d (selected %d)\n", h.Profiles, h.SelectedProfile)
	d.printf("  Strings log:              %d dwords (%d bytes)\n", h.StringLogSizeDw, stringsSize)
	d.printf("  Firmware version:         %q\n", h.FirmwareVersion)
	d.printf("  Statistics:               DA1 start %d size %d, DA2 start %d size %d\n",
		h.DA1Statistics.Start, h.DA1Statistics.Size, h.DA2Statistics.Start, h.DA2Statistics.Size)
}

func (d *dumper) smart(a *dataarea.Area1) {
	s := &a.SmartHealth
	d.printf("\nSMART / Health (02h)\n")
	d.printf("  Critical warning:         0x%02x\n", s.CriticalWarning)
	d.printf("  Composite temperature:    %d K\n", s.CompositeTemperature)
	d.printf("  Available spare:          %d%% (threshold %d%%)\n", s.AvailableSpare, s.AvailableSpareThreshold)
	d.printf("  Percentage used:          %d%%\n", s.PercentageUsed)
	d.printf("  Data units read:          %s\n", s.DataUnitsRead)
	d.printf("  Data units written:       %s\n", s.DataUnitsWritten)
	d.printf("  Power cycles:             %s\n", s.PowerCycles)
	d.printf("  Power on hours:           %s\n", s.PowerOnHours)
	d.printf("  Unsafe shutdowns:         %s\n", s.UnsafeShutdowns)
	d.printf("  Media errors:             %s\n", s.MediaErrors)

	x := &a.SmartExtended
	d.printf("\nSMART / Health Extended (C0h)\n")
	d.printf("  Media units written:      %s\n", x.PhysicalMediaUnitsWritten)
	d.printf("  Media units read:         %s\n", x.PhysicalMediaUnitsRead)
	d.printf("  Bad user blocks:          %d (normalized %d)\n", x.BadUserBlocksRaw, x.BadUserBlocksNormalized)
	d.printf("  Bad system blocks:        %d (normalized %d)\n", x.BadSystemBlocksRaw, x.BadSystemBlocksNormalized)
	d.printf("  Refresh counts:           %d\n", x.RefreshCounts)
	d.printf("  Throttling status:        %d\n", x.ThermalThrottlingStatus)
	d.printf("  Percent free blocks:      %d%%\n", x.PercentFreeBlocks)
	d.printf("  Capacitor health:         %d\n", x.CapacitorHealth)
}

func (d *dumper) statistics(t statistic.Table) {
	for i := range t {
		s := &t[i]
		ns := "-"
		if s.Namespace != 0 {
			ns = fmt.Sprintf("%d", s.Namespace)
		}
		d.printf("  0x%04x %-40s %-24s ns %-3s %s\n", s.ID, s.Name, s.Behavior, ns, s.ValueString())
	}
}

func (d *dumper) fifo(f *fifo.Fifo) {
	d.printf("\nFIFO %d %q in %s: %d of %d bytes, %d events\n", f.Index, f.Name, f.Area, f.Used(), f.Size(), len(f.Events))
	for i, e := range f.Events {
		d.printf("  %4d %-12s 0x%04x %s\n", i, e.Class(), e.ID(), describeEvent(e))
		if d.hex {
			d.printf("       %s\n", logging.FormatHex(e.Bytes()))
		}
		if d.logger.Enabled(logging.LevelDebug) {
			d.logger.Hex(fmt.Sprintf("FIFO %d event %d", f.Index, i), e.Bytes())
		}
	}
}

func describeEvent(e event.Event) string {
	var desc string
	switch e := e.(type) {
	case *event.Timestamp:
		desc = fmt.Sprintf("%s %s", e.Name(), e.Timestamp)
	case *event.PCIe:
		desc = e.Name()
		if e.Link != nil {
			desc += ": " + e.Link.String()
		}
	case *event.NVMe:
		desc = e.Name()
		switch e.EventID {
		case event.NVMeAdminCommandError, event.NVMeIOCommandError:
			desc += fmt.Sprintf(": opcode 0x%02x status 0x%04x", e.Opcode, e.Status)
		case event.NVMeCCChanged, event.NVMeCSTSChanged:
			desc += fmt.Sprintf(": register 0x%08x", e.Register)
		}
	case *event.MediaWear:
		desc = fmt.Sprintf("%s: host %d TB, media written %d TB, media erased %d TB",
			e.Name(), e.HostTBWritten, e.MediaTBWritten, e.MediaTBErased)
	case *event.Snapshot:
		desc = fmt.Sprintf("%s = %s", e.Statistic.Name, e.Statistic.ValueString())
	case *event.VendorUnique:
		desc = fmt.Sprintf("%s (%d data bytes)", e.Name, len(e.Data))
	case interface{ Name() string }:
		desc = e.Name()
	}

	if vu := event.Suffix(e); vu != nil {
		desc += fmt.Sprintf(" [VU 0x%04x %s]", vu.ID, vu.Name)
	}

	return desc
}
