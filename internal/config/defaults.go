package config

const (
	defaultOutputDir           = "~/narralign/output"
	defaultLogDir              = "~/.local/share/narralign/logs"
	defaultSimilarityThreshold = 60.0
	defaultLanguage            = "auto"
	defaultMaxLines            = 2
	defaultLeadInMS            = 0
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"

	// Hangul line caps count syllable blocks, so they sit far below the
	// Latin caps.
	koreanLineSoftCap = 16
	koreanLineHardCap = 21
	latinLineSoftCap  = 37
	latinLineHardCap  = 42
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Alignment: Alignment{
			SimilarityThreshold: defaultSimilarityThreshold,
			FuzzyMatching:       true,
			SpellNumbers:        true,
		},
		Segmentation: Segmentation{
			Language:            defaultLanguage,
			MaxLines:            defaultMaxLines,
			SplitOnConjunctions: true,
		},
		Subtitles: Subtitles{
			LeadInMS: defaultLeadInMS,
		},
		Cache: Cache{
			Enabled: true,
			Dir:     defaultCacheDir(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// LineCaps resolves the soft and hard per-line caps for the given language
// code. Explicitly configured caps win; otherwise the language picks the
// repository defaults.
func (s Segmentation) LineCaps(language string) (soft, hard int) {
	soft, hard = latinLineSoftCap, latinLineHardCap
	if language == "ko" {
		soft, hard = koreanLineSoftCap, koreanLineHardCap
	}
	if s.LineSoftCap > 0 {
		soft = s.LineSoftCap
	}
	if s.LineHardCap > 0 {
		hard = s.LineHardCap
	}
	return soft, hard
}
