package batch

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ironsheep/color-match/internal/imaging"
)

// Codec is the image I/O port the matcher drives. It is satisfied by
// *imaging.Codec; tests substitute fakes to exercise failure paths.
type Codec interface {
	Decode(path string) (*image.NRGBA, error)
	Encode(img image.Image, path string) error
}

// ConfirmFunc answers whether a run may overwrite existing output
// files. It receives the number of conflicting files found and is
// called at most once per run, before any processing.
type ConfirmFunc func(existing int) bool

// ProgressFunc receives the completion percentage (0-100) once per
// finished item, and a final 0 when the run ends regardless of outcome.
type ProgressFunc func(percent float64)

// Options configures a Matcher.
type Options struct {
	// Mask excludes background pixels from reference averages.
	// Nil averages every reference pixel.
	Mask *imaging.Mask

	// Confirm is consulted when output files would be overwritten.
	// Nil declines nothing (overwrites proceed).
	Confirm ConfirmFunc

	// Progress receives per-item completion updates. Nil discards them.
	Progress ProgressFunc

	// Logger for per-item diagnostics. Nil discards log output.
	Logger *slog.Logger
}

// Matcher tone-matches ordered target images to their paired references.
type Matcher struct {
	codec    Codec
	mask     *imaging.Mask
	confirm  ConfirmFunc
	progress ProgressFunc
	log      *slog.Logger
}

// New creates a Matcher over the given codec.
func New(codec Codec, opts Options) *Matcher {
	m := &Matcher{
		codec:    codec,
		mask:     opts.Mask,
		confirm:  opts.Confirm,
		progress: opts.Progress,
		log:      opts.Logger,
	}
	if m.confirm == nil {
		m.confirm = func(int) bool { return true }
	}
	if m.progress == nil {
		m.progress = func(float64) {}
	}
	if m.log == nil {
		m.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return m
}

// Run processes every (reference, target) pair in order and writes each
// shifted target into outDir under the output naming convention.
//
// Validation happens before any file is touched: a length mismatch
// returns *CountMismatchError, and if outDir already contains files
// matching the naming convention and the confirmation port declines,
// Run returns ErrOverwriteDeclined. Both leave the filesystem untouched.
//
// After validation, items are processed strictly sequentially. A decode
// or encode failure is recorded against its item and the run continues;
// the returned Result is non-nil and lists every failure in item order.
// Progress is reported once per completed item and reset to 0 at the
// end of the run.
func (m *Matcher) Run(refs, targets []string, outDir string) (*Result, error) {
	if len(refs) != len(targets) {
		return nil, &CountMismatchError{References: len(refs), Targets: len(targets)}
	}

	if existing := countExistingOutputs(outDir); existing > 0 {
		if !m.confirm(existing) {
			return nil, ErrOverwriteDeclined
		}
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	n := len(targets)
	result := &Result{Total: n}

	for i := 0; i < n; i++ {
		if err := m.processItem(refs[i], targets[i], outDir); err != nil {
			result.Failures = append(result.Failures, Failure{
				Index:   i,
				Message: fmt.Sprintf("Image %d: %v", i+1, err),
			})
			m.log.Warn("item failed",
				"index", i,
				"reference", refs[i],
				"target", targets[i],
				"error", err,
			)
		}
		m.progress(float64(i+1) / float64(n) * 100)
	}

	m.progress(0)
	result.Succeeded = n - len(result.Failures)
	m.log.Info("batch complete",
		"total", result.Total,
		"succeeded", result.Succeeded,
		"failed", len(result.Failures),
	)
	return result, nil
}

// processItem runs the full pipeline for one pair: decode both images,
// measure averages, shift the target toward the reference, encode.
func (m *Matcher) processItem(ref, target, outDir string) error {
	refImg, err := m.codec.Decode(ref)
	if err != nil {
		return err
	}
	tgtImg, err := m.codec.Decode(target)
	if err != nil {
		return err
	}

	refAvg := imaging.Average(refImg, m.mask)
	tgtAvg := imaging.Average(tgtImg, nil)
	delta := imaging.ComputeDelta(tgtAvg, refAvg)

	outPath := filepath.Join(outDir, OutputName(target))
	if err := m.codec.Encode(imaging.Shift(tgtImg, delta), outPath); err != nil {
		return err
	}

	m.log.Debug("item processed",
		"target", target,
		"output", outPath,
		"reference_avg", refAvg.Hex(),
		"target_avg", tgtAvg.Hex(),
		"delta_r", delta.R,
		"delta_g", delta.G,
		"delta_b", delta.B,
	)
	return nil
}
