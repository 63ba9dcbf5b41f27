package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/opencomputeproject/ocp-telemetry/errs"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), err
}

func generatePair(t *testing.T, dir string, extra ...string) (string, string) {
	t.Helper()

	tel := filepath.Join(dir, "telemetry.bin")
	strs := filepath.Join(dir, "strings.bin")
	args := append([]string{"generate", "--seed", "7", "--telemetry", tel, "--strings", strs}, extra...)
	out, err := execute(t, args...)
	require.NoError(t, err)
	require.Contains(t, out, "Seed: 7")
	require.Contains(t, out, "Fingerprint: ")

	return tel, strs
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, version)
}

func TestGenerateDump(t *testing.T) {
	dir := t.TempDir()
	tel, strs := generatePair(t, dir)

	out, err := execute(t, "dump", "--telemetry", tel, "--strings", strs, "--hex")
	require.NoError(t, err)
	require.Contains(t, out, "Data Area 1 header 3.1")
	require.Contains(t, out, `Firmware version:         "FIRM: XX"`)
	require.Contains(t, out, "SMART / Health Extended (C0h)")
	require.Contains(t, out, "Data Area 2 statistics")
	require.Contains(t, out, "FIFO 1 ")
}

func TestGenerate_Deterministic(t *testing.T) {
	tel1, strs1 := generatePair(t, t.TempDir())
	tel2, strs2 := generatePair(t, t.TempDir())

	for _, pair := range [][2]string{{tel1, tel2}, {strs1, strs2}} {
		a, err := os.ReadFile(pair[0])
		require.NoError(t, err)
		b, err := os.ReadFile(pair[1])
		require.NoError(t, err)
		require.Equal(t, a, b)
	}
}

func TestGenerate_Options(t *testing.T) {
	dir := t.TempDir()
	tel, strs := generatePair(t, dir, "--controller", "--firmware", "FW 1.0", "--oui", "aabbcc", "--reason", "assert")

	out, err := execute(t, "dump", "--telemetry", tel, "--strings", strs)
	require.NoError(t, err)
	require.Contains(t, out, "aa-bb-cc")
	require.Contains(t, out, `"FW 1.0"`)
	require.Contains(t, out, `"assert"`)
	require.NotContains(t, out, "Host generation")
}

func TestGenerate_Errors(t *testing.T) {
	dir := t.TempDir()
	tel := filepath.Join(dir, "t.bin")
	strs := filepath.Join(dir, "s.bin")

	tests := []struct {
		name string
		args []string
	}{
		{"short oui", []string{"--oui", "0102"}},
		{"bad oui", []string{"--oui", "zzzzzz"}},
		{"long firmware", []string{"--firmware", "FIRMWARE1"}},
		{"missing config", []string{"--config", filepath.Join(dir, "missing.yaml")}},
		{"bad compression", []string{"--bundle", filepath.Join(dir, "b.ocpt"), "--compression", "gzip"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"generate", "--telemetry", tel, "--strings", strs}, tt.args...)
			_, err := execute(t, args...)
			require.Error(t, err)
		})
	}
}

func TestSampleConfigGenerate(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "telemetry.yaml")

	out, err := execute(t, "sample-config", "-o", cfg)
	require.NoError(t, err)
	require.Contains(t, out, "Wrote "+cfg)

	tel, strs := generatePair(t, dir, "--config", cfg)
	_, err = execute(t, "dump", "--telemetry", tel, "--strings", strs)
	require.NoError(t, err)

	out, err = execute(t, "sample-config")
	require.NoError(t, err)
	require.Contains(t, out, "fifos:")
}

func TestPackUnpack(t *testing.T) {
	dir := t.TempDir()
	tel, strs := generatePair(t, dir)
	bundlePath := filepath.Join(dir, "log.ocpt")

	for _, compression := range []string{"none", "zstd", "s2", "lz4"} {
		t.Run(compression, func(t *testing.T) {
			out, err := execute(t, "pack", "--telemetry", tel, "--strings", strs,
				"-o", bundlePath, "--compression", compression, "--verify")
			require.NoError(t, err)
			require.Contains(t, out, "Wrote "+bundlePath)

			_, err = execute(t, "dump", "--bundle", bundlePath)
			require.NoError(t, err)

			outTel := filepath.Join(dir, compression+".tel")
			outStrs := filepath.Join(dir, compression+".strs")
			_, err = execute(t, "unpack", "-i", bundlePath, "--telemetry", outTel, "--strings", outStrs)
			require.NoError(t, err)

			for _, pair := range [][2]string{{tel, outTel}, {strs, outStrs}} {
				want, err := os.ReadFile(pair[0])
				require.NoError(t, err)
				got, err := os.ReadFile(pair[1])
				require.NoError(t, err)
				require.Equal(t, want, got)
			}
		})
	}
}

func TestGenerateBundle(t *testing.T) {
	dir := t.TempDir()
	bundlePath := filepath.Join(dir, "log.ocpt")

	out, err := execute(t, "generate", "--seed", "3", "--bundle", bundlePath, "--compression", "s2")
	require.NoError(t, err)
	require.Contains(t, out, "Wrote bundle "+bundlePath)

	_, err = execute(t, "dump", "--bundle", bundlePath)
	require.NoError(t, err)
}

func TestDump_Errors(t *testing.T) {
	dir := t.TempDir()
	tel, strs := generatePair(t, dir)

	_, err := execute(t, "dump", "--telemetry", filepath.Join(dir, "missing"), "--strings", strs)
	require.ErrorIs(t, err, os.ErrNotExist)

	data, err := os.ReadFile(tel)
	require.NoError(t, err)
	data[0] = 0x01
	corrupt := filepath.Join(dir, "corrupt.bin")
	require.NoError(t, os.WriteFile(corrupt, data, 0o600))

	_, err = execute(t, "dump", "--telemetry", corrupt, "--strings", strs)
	require.ErrorIs(t, err, errs.ErrStructural)

	_, err = execute(t, "unpack", "-i", tel)
	require.ErrorIs(t, err, errs.ErrInvalidBundle)
}

func TestLogFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "ocptel.log")
	tel, strs := generatePair(t, dir)

	_, err := execute(t, "--debug", "--log-file", logPath, "dump", "--telemetry", tel, "--strings", strs)
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "VERBOSE: telemetry log")
	require.Contains(t, string(data), "DEBUG: FIFO ")
}
