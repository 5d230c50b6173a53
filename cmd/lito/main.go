// Command lito decodes a hex byte stream and prints one row per
// instruction: offset, raw bytes, length, and - for control-flow
// instructions - the resolved absolute target. The flag/table/color
// plumbing here follows the same cobra + go-pretty + fatih/color shape
// client-facing scan commands elsewhere in this codebase use to turn a
// batch result into a terminal table.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/bishopfox/lito"
	"github.com/bishopfox/lito/arm"
	"github.com/bishopfox/lito/internal/config"
	"github.com/bishopfox/lito/internal/logging"
	"github.com/bishopfox/lito/x86"
)

var log = logging.Named("cmd", "lito")

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		archFlag    string
		profileFlag string
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:   "lito <hex-bytes>",
		Short: "Decode a stream of x86/x64/ARM instruction lengths",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile := config.DefaultProfile()
			if profileFlag != "" {
				p, err := config.LoadProfile(profileFlag)
				if err != nil {
					return err
				}
				profile = p
			}
			if archFlag != "" {
				profile.Arch = config.Arch(archFlag)
				if err := profile.Validate(); err != nil {
					return err
				}
			}

			code, err := hex.DecodeString(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("invalid hex input: %w", err)
			}

			if quiet {
				profile.Output.Color = false
			}
			return runDecode(code, profile)
		},
	}

	cmd.Flags().StringVar(&archFlag, "arch", "", "architecture: x86, x64, arm, thumb, thumb2 (overrides profile)")
	cmd.Flags().StringVar(&profileFlag, "profile", "", "path to a YAML decode profile")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "disable colored output")

	return cmd
}

func runDecode(code []byte, profile *config.Profile) error {
	it, err := newIterator(code, profile.Arch)
	if err != nil {
		return err
	}

	tw := table.NewWriter()
	header := table.Row{"Offset", "Length"}
	if profile.Output.ShowBytes {
		header = append(header, "Bytes")
	}
	header = append(header, "Errors")
	if profile.Output.ShowRel {
		header = append(header, "Target")
	}
	tw.AppendHeader(header)

	errCount := 0
	for it.HasNext() {
		pc := it.PC()
		r := it.Decode()

		row := table.Row{fmt.Sprintf("0x%04x", pc), r.Length}
		if profile.Output.ShowBytes {
			end := pc + r.Length
			if end > len(code) {
				end = len(code)
			}
			row = append(row, hex.EncodeToString(code[pc:end]))
		}
		row = append(row, renderErrors(r.Errors, profile.Output.Color))
		if profile.Output.ShowRel {
			if r.HasRel {
				row = append(row, fmt.Sprintf("0x%x", r.RelAbs))
			} else {
				row = append(row, "-")
			}
		}
		tw.AppendRow(row)

		if !r.Errors.None() {
			errCount++
			if r.Errors.Has(lito.ErrOpcode) {
				log.WithField("offset", fmt.Sprintf("0x%x", pc)).Debug("unknown opcode, resynchronizing")
			}
			if profile.StopOnError {
				it.Next()
				break
			}
		}
		it.Next()
	}

	fmt.Println(tw.Render())
	log.WithField("errors", errCount).Info("decode complete")
	return nil
}

func renderErrors(errs lito.ErrorFlags, useColor bool) string {
	if errs.None() {
		return "-"
	}
	msg := errs.Error()
	if useColor {
		return color.RedString(msg)
	}
	return msg
}

func newIterator(code []byte, arch config.Arch) (lito.Iterator, error) {
	switch arch {
	case config.ArchX86:
		return x86.NewStream(code, x86.Mode32), nil
	case config.ArchX64:
		return x86.NewStream(code, x86.Mode64), nil
	case config.ArchARM:
		return arm.NewStream(code, arm.StateARM), nil
	case config.ArchThumb:
		return arm.NewStream(code, arm.StateThumb), nil
	case config.ArchThumb2:
		return arm.NewStream(code, arm.StateThumb2), nil
	default:
		return nil, fmt.Errorf("unsupported arch: %q", arch)
	}
}
