package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"narralign/internal/lingua"
	"narralign/internal/segment"
)

func newSplitCommand(ctx *commandContext) *cobra.Command {
	var languageFlag string
	var lineMode bool

	cmd := &cobra.Command{
		Use:   "split <text>",
		Short: "Show where a subtitle text would be split",
		Long: `Split runs the segmentation pass on a single piece of text and prints
the resulting pieces, one per line. By default it uses cue-level caps;
--lines switches to the tighter per-line wrapping caps.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			text := args[0]

			lang := strings.ToLower(strings.TrimSpace(languageFlag))
			if lang == "" {
				lang = cfg.Segmentation.Language
			}
			if lang == "auto" {
				lang = "en"
				if lingua.DetectScript(text) == lingua.ScriptHangul {
					lang = "ko"
				}
			}

			soft, hard := cfg.Segmentation.LineCaps(lang)
			segmenter := segment.New(segment.Params{
				LineSoftCap:         soft,
				LineHardCap:         hard,
				MaxLines:            cfg.Segmentation.MaxLines,
				SplitOnConjunctions: cfg.Segmentation.SplitOnConjunctions,
			}, nil)

			offsets := segmenter.SegmentSplitPoints(text)
			if lineMode {
				offsets = segmenter.LineSplitPoints(text)
			}

			out := cmd.OutOrStdout()
			if len(offsets) == 0 {
				fmt.Fprintln(out, text)
				return nil
			}
			runes := []rune(text)
			prev := 0
			for _, off := range append(offsets, len(runes)) {
				fmt.Fprintln(out, strings.TrimSpace(string(runes[prev:off])))
				prev = off
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Override segmentation language (ko, en)")
	cmd.Flags().BoolVar(&lineMode, "lines", false, "Use per-line wrapping caps instead of cue caps")
	return cmd
}
