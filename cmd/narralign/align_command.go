package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	xlang "golang.org/x/text/language"

	"narralign/internal/align"
	"narralign/internal/config"
	"narralign/internal/lingua"
	"narralign/internal/logging"
	"narralign/internal/script"
	"narralign/internal/segment"
	"narralign/internal/srt"
	"narralign/internal/transcript"
	"narralign/internal/transcriptcache"
)

func newAlignCommand(ctx *commandContext) *cobra.Command {
	var transcriptFlags []string
	var outputPath string
	var languageFlag string
	var thresholdFlag float64
	var noCache bool

	cmd := &cobra.Command{
		Use:   "align <script-file>",
		Short: "Align a dialogue script against timed transcripts and write an SRT file",
		Long: `Align locates each dialogue line of the script inside the matching
speaker's timed transcript, rebuilds word-level timestamps for the script
text, splits long lines into subtitle cues, and writes the result as an
SRT file.

Transcripts are word-level JSON exports (whisper-style) supplied per
speaker with --transcript "Speaker=path". Speakers without a transcript
are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return fmt.Errorf("set up logging: %w", err)
			}
			logger = logging.NewComponentLogger(logger, "align")

			lines, err := script.ParseFile(args[0])
			if err != nil {
				return err
			}
			if len(lines) == 0 {
				return fmt.Errorf("no dialogue lines found in %s", args[0])
			}

			transcripts, err := loadTranscripts(cmd.Context(), cfg, logger, transcriptFlags, noCache)
			if err != nil {
				return err
			}
			if len(transcripts) == 0 {
				return fmt.Errorf("at least one --transcript \"Speaker=path\" is required")
			}

			threshold := cfg.Alignment.SimilarityThreshold
			if thresholdFlag > 0 {
				threshold = thresholdFlag
			}
			matcher := lingua.ExactMatcher()
			if cfg.Alignment.FuzzyMatching {
				matcher = lingua.DefaultMatcher()
			}
			var speller lingua.Speller
			if cfg.Alignment.SpellNumbers {
				speller = lingua.DefaultSpeller()
			}

			aligner := align.New(align.Options{
				SimilarityThreshold: threshold,
				Matcher:             matcher,
				Speller:             speller,
			})
			segments := aligner.AlignAll(lines, transcripts)
			logger.Info("aligned script",
				logging.Args(
					logging.Int("dialogue_lines", len(lines)),
					logging.Int("matched", len(segments)),
				)...)

			lang := resolveLanguage(languageFlag, cfg, lines)
			soft, hard := cfg.Segmentation.LineCaps(lang)
			params := segment.Params{
				LineSoftCap:         soft,
				LineHardCap:         hard,
				MaxLines:            cfg.Segmentation.MaxLines,
				SplitOnConjunctions: cfg.Segmentation.SplitOnConjunctions,
			}
			builder := srt.NewBuilder(
				segment.New(params, nil),
				segment.NewProjector(matcher),
				float64(cfg.Subtitles.LeadInMS)/1000,
			)
			entries := builder.Build(segments)

			target := strings.TrimSpace(outputPath)
			if target == "" {
				base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				target = filepath.Join(cfg.Paths.OutputDir, base+".srt")
			}
			if err := srt.WriteFile(target, entries); err != nil {
				return err
			}
			logger.Info("wrote subtitles",
				logging.Args(
					logging.String("path", target),
					logging.Int("cues", len(entries)),
					logging.String("language", lang),
				)...)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, alignmentReport(lines, segments, transcripts, interactive(out)))
			fmt.Fprintf(out, "Wrote %d cues to %s\n", len(entries), target)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&transcriptFlags, "transcript", "t", nil, `Speaker transcript as "Speaker=path" (repeatable)`)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output SRT path (default: <output_dir>/<script>.srt)")
	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Override segmentation language (ko, en)")
	cmd.Flags().Float64Var(&thresholdFlag, "threshold", 0, "Override the similarity threshold (0-100)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the transcript cache")
	return cmd
}

// loadTranscripts parses the repeated --transcript flags and loads each
// word-level JSON file, via the cache when enabled.
func loadTranscripts(ctx context.Context, cfg *config.Config, logger *slog.Logger, flags []string, noCache bool) (map[string]*transcript.Transcript, error) {
	transcripts := make(map[string]*transcript.Transcript, len(flags))
	if len(flags) == 0 {
		return transcripts, nil
	}

	var store *transcriptcache.Store
	if cfg.Cache.Enabled && !noCache {
		opened, err := transcriptcache.Open(cfg.Cache.Dir)
		if err != nil {
			return nil, fmt.Errorf("open transcript cache: %w", err)
		}
		store = opened
		defer store.Close()
	}

	for _, flag := range flags {
		speaker, path, ok := strings.Cut(flag, "=")
		speaker = strings.TrimSpace(speaker)
		path = strings.TrimSpace(path)
		if !ok || speaker == "" || path == "" {
			return nil, fmt.Errorf("invalid --transcript value %q (expected \"Speaker=path\")", flag)
		}
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return nil, fmt.Errorf("resolve transcript path: %w", err)
		}

		var loaded *transcript.Transcript
		cached := false
		if store != nil {
			loaded, cached, err = store.Load(ctx, expanded)
		} else {
			loaded, err = transcript.LoadJSON(expanded)
		}
		if err != nil {
			return nil, fmt.Errorf("load transcript for %s: %w", speaker, err)
		}
		logger.Info("loaded transcript",
			logging.Args(
				logging.String("speaker", speaker),
				logging.Int("words", len(loaded.Words)),
				logging.Bool("cached", cached),
			)...)
		transcripts[speaker] = loaded
	}
	return transcripts, nil
}

// resolveLanguage picks the segmentation language: explicit flag, then
// config, then detection from the dialogue text.
func resolveLanguage(flag string, cfg *config.Config, lines []script.DialogueLine) string {
	lang := strings.ToLower(strings.TrimSpace(flag))
	if lang == "" {
		lang = cfg.Segmentation.Language
	}
	if lang != "auto" {
		return lang
	}
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line.Text)
		b.WriteByte(' ')
	}
	if lingua.DetectScript(b.String()) == lingua.ScriptHangul {
		return "ko"
	}
	return "en"
}

// alignmentReport renders a per-speaker summary of match counts and
// confidence: a table on terminals, plain lines when piped.
func alignmentReport(lines []script.DialogueLine, segments []align.AlignedSegment, transcripts map[string]*transcript.Transcript, fancy bool) string {
	totals := make(map[string]int)
	for _, line := range lines {
		totals[line.Speaker]++
	}
	matched := make(map[string]int)
	confidence := make(map[string]float64)
	for _, seg := range segments {
		matched[seg.Dialogue.Speaker]++
		confidence[seg.Dialogue.Speaker] += seg.Confidence
	}

	titler := cases.Title(xlang.Und)
	rows := make([][]string, 0, len(totals))
	for _, speaker := range script.UniqueSpeakers(lines) {
		status := "ok"
		if _, ok := transcripts[speaker]; !ok {
			status = "no transcript"
		}
		avg := "-"
		if n := matched[speaker]; n > 0 {
			avg = strconv.FormatFloat(confidence[speaker]/float64(n), 'f', 1, 64)
		}
		rows = append(rows, []string{
			titler.String(strings.ToLower(speaker)),
			strconv.Itoa(totals[speaker]),
			strconv.Itoa(matched[speaker]),
			avg,
			status,
		})
	}

	if fancy {
		return renderTable(
			[]string{"Speaker", "Lines", "Matched", "Avg Score", "Status"},
			rows,
			[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignLeft},
		)
	}
	var b strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&b, "%s: %s/%s matched (avg %s, %s)\n", row[0], row[2], row[1], row[3], row[4])
	}
	return strings.TrimRight(b.String(), "\n")
}
