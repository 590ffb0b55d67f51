package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/color-match/internal/batch"
	"github.com/ironsheep/color-match/internal/config"
	"github.com/ironsheep/color-match/internal/imaging"
)

func newRunCmd(root *Root) *cobra.Command {
	var (
		refs      []string
		targets   []string
		outDir    string
		maskSpec  string
		noMask    bool
		tolerance int
		yes       bool
	)

	cmd := &cobra.Command{
		Use:   "run --refs <path>... --targets <path>... --out <dir>",
		Short: "Tone-match target images to their paired references",
		Long: `Process reference/target pairs in order: reference[0] with target[0],
reference[1] with target[1], and so on. Both lists must be the same
length. A path may be a single image file or a directory, which expands
to its image files in lexicographic order.

Each output is written to the output directory as
<target base name>_AVGCOLOR<extension>. Items fail independently: a
corrupt input skips only its own pair.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := root.logger()

			settings, path, err := root.loadSettings()
			if err != nil {
				return err
			}

			if maskSpec != "" {
				mc, err := config.ParseMaskColor(maskSpec)
				if err != nil {
					return err
				}
				settings.MaskColor = mc
			}
			if cmd.Flags().Changed("tolerance") {
				settings.MaskTolerance = tolerance
			}
			if err := settings.Validate(); err != nil {
				return err
			}

			refList, err := expandInputs(refs)
			if err != nil {
				return err
			}
			targetList, err := expandInputs(targets)
			if err != nil {
				return err
			}

			var mask *imaging.Mask
			if !noMask {
				mask = settings.Mask()
			}

			matcher := batch.New(imaging.NewCodec(), batch.Options{
				Mask:     mask,
				Confirm:  confirmOverwrite(yes),
				Progress: stderrProgress(),
				Logger:   log,
			})

			result, err := matcher.Run(refList, targetList, outDir)
			if errors.Is(err, batch.ErrOverwriteDeclined) {
				fmt.Fprintln(os.Stderr, "Aborted: existing output files were not overwritten.")
				return err
			}
			if err != nil {
				return err
			}

			rememberDirs(&settings, refList, targetList, outDir)
			if err := config.Save(path, settings); err != nil {
				log.Warn("could not save settings", "path", path, "error", err)
			}

			fmt.Println(result.Summary())
			if !result.Ok() {
				return fmt.Errorf("%d of %d images failed", len(result.Failures), result.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&refs, "refs", nil, "reference images or directories, in pairing order")
	cmd.Flags().StringSliceVar(&targets, "targets", nil, "target images or directories, in pairing order")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory")
	cmd.Flags().StringVar(&maskSpec, "mask", "", "mask color as R,G,B (default from config, 0,0,0)")
	cmd.Flags().BoolVar(&noMask, "no-mask", false, "average all reference pixels, ignoring the mask")
	cmd.Flags().IntVar(&tolerance, "tolerance", 0, "per-channel mask tolerance 0-255 (default from config)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "overwrite existing output files without asking")
	_ = cmd.MarkFlagRequired("refs")
	_ = cmd.MarkFlagRequired("targets")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

// loadSettings resolves the config path and reads persisted settings.
func (r *Root) loadSettings() (config.Settings, string, error) {
	path := r.configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Default(), "", err
		}
	}
	s, err := config.Load(path)
	if err != nil {
		return config.Default(), path, err
	}
	return s, path, nil
}

// expandInputs flattens files and directories into an ordered list of
// image paths. Explicit files keep their given order; a directory
// contributes its image files sorted lexicographically so pairing is
// deterministic.
func expandInputs(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if !info.IsDir() {
			if !imaging.IsImageFile(p) {
				return nil, fmt.Errorf("%s is not a supported image file", p)
			}
			out = append(out, p)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("read directory %s: %w", p, err)
		}
		var found []string
		for _, e := range entries {
			if !e.IsDir() && imaging.IsImageFile(e.Name()) && !batch.IsOutputName(e.Name()) {
				found = append(found, filepath.Join(p, e.Name()))
			}
		}
		sort.Strings(found)
		out = append(out, found...)
	}
	return out, nil
}

// confirmOverwrite builds the overwrite confirmation port: auto-approve
// with --yes, otherwise a y/N prompt on the terminal.
func confirmOverwrite(yes bool) batch.ConfirmFunc {
	return func(existing int) bool {
		if yes {
			return true
		}
		fmt.Fprintf(os.Stderr, "%d existing output files found. Overwrite? [y/N] ", existing)
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}
}

// stderrProgress renders a one-line progress meter. The trailing reset
// to zero ends the line.
func stderrProgress() batch.ProgressFunc {
	return func(percent float64) {
		if percent == 0 {
			fmt.Fprintln(os.Stderr)
			return
		}
		fmt.Fprintf(os.Stderr, "\rprocessing: %5.1f%%", percent)
	}
}

func rememberDirs(s *config.Settings, refs, targets []string, outDir string) {
	if len(refs) > 0 {
		s.LastRefDir = filepath.Dir(refs[0])
	}
	if len(targets) > 0 {
		s.LastTargetDir = filepath.Dir(targets[0])
	}
	s.LastOutDir = outDir
}
