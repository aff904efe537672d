package engine

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-audio-mdct/internal/simdops"
	"github.com/tphakala/go-audio-mdct/internal/testutil"
	"gonum.org/v1/gonum/mat"
)

func newTestEngine[F simdops.Float](t *testing.T, cfg Config) *Engine[F] {
	t.Helper()
	if cfg.Alpha == 0 {
		cfg.Alpha = DefaultAlpha
	}
	e, err := New[F](cfg)
	require.NoError(t, err)
	return e
}

func TestNew_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"odd_filter_length", Config{FilterLength: 1441, WindowLength: 1441, Alpha: DefaultAlpha}},
		{"window_exceeds_filter", Config{FilterLength: 1440, WindowLength: 1442, Alpha: DefaultAlpha}},
		{"zero_filter_length", Config{FilterLength: 0, WindowLength: 0, Alpha: DefaultAlpha}},
		{"zero_window_length", Config{FilterLength: 8, WindowLength: 0, Alpha: DefaultAlpha}},
		{"negative_alpha", Config{FilterLength: 8, WindowLength: 8, Alpha: -1}},
		{"unknown_pad_mode", Config{FilterLength: 8, WindowLength: 8, Alpha: DefaultAlpha, PadMode: PadMode(7)}},
		{"unknown_projection", Config{FilterLength: 8, WindowLength: 8, Alpha: DefaultAlpha, Projection: Projection(9)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New[float64](tt.cfg)
			require.ErrorIs(t, err, ErrInvalidConfiguration)
			assert.Nil(t, e)
		})
	}
}

// TestNew_MinimalFilterLength checks N=2 builds and still reconstructs.
func TestNew_MinimalFilterLength(t *testing.T) {
	for _, proj := range []Projection{ProjectionDense, ProjectionFFT} {
		t.Run(proj.String(), func(t *testing.T) {
			e := newTestEngine[float64](t, Config{FilterLength: 2, WindowLength: 2, Projection: proj})
			assert.Equal(t, 1, e.Bins())
			assert.Equal(t, 1, e.HopSize())

			x := testutil.RandomSignal(1, 16)
			y, err := e.Reconstruct([][]float64{x})
			require.NoError(t, err)
			testutil.AssertCloseSlices(t, x, y[0], testutil.ReconstructionTolerance)
		})
	}
}

// TestForward_ShapeContract checks the (2, 4800) / N=1440 shapes.
func TestForward_ShapeContract(t *testing.T) {
	e := newTestEngine[float64](t, Config{FilterLength: 1440, WindowLength: 1440})
	x := testutil.RandomBatch(2, 2, 4800)

	coeffs, pad, err := e.Forward(x)
	require.NoError(t, err)

	batch, bins, frames := coeffs.Shape()
	assert.Equal(t, 2, batch)
	assert.Equal(t, 720, bins)
	assert.Equal(t, 7, frames)
	assert.Equal(t, frames, e.NumFrames(4800))
	assert.Equal(t, Padding{Left: 720, Right: 720}, pad)

	y, err := e.Inverse(coeffs, pad)
	require.NoError(t, err)
	require.Len(t, y, 2)
	for _, row := range y {
		assert.Len(t, row, 4320)
	}
	assert.Equal(t, 4320, e.OutputLength(4800))
}

// TestReconstruct_Centered verifies perfect reconstruction over the region
// covered by two frames for a range of filter and window lengths.
func TestReconstruct_Centered(t *testing.T) {
	configs := []struct {
		filterLength int
		windowLength int
	}{
		{2, 2},
		{8, 8},
		{16, 8},
		{18, 7},
		{64, 64},
		{256, 128},
		{1024, 1024},
		{1440, 480},
		{1440, 1440},
	}

	for _, c := range configs {
		for _, proj := range []Projection{ProjectionDense, ProjectionFFT} {
			name := fmt.Sprintf("N%d_W%d_%s", c.filterLength, c.windowLength, proj)
			t.Run(name, func(t *testing.T) {
				e := newTestEngine[float64](t, Config{
					FilterLength: c.filterLength,
					WindowLength: c.windowLength,
					Projection:   proj,
				})

				length := 3*c.filterLength + 17
				x := testutil.RandomBatch(uint64(c.filterLength), 2, length)

				y, err := e.Reconstruct(x)
				require.NoError(t, err)

				want := length - length%e.HopSize()
				for b := range x {
					require.Len(t, y[b], want)
					testutil.AssertCloseSlices(t, x[b][:want], y[b], testutil.ReconstructionTolerance)
				}
			})
		}
	}
}

// TestReconstruct_LengthNormalizingSavedPad covers the 48000-sample
// scenario: every input sample comes back and the pad is trimmed.
func TestReconstruct_LengthNormalizingSavedPad(t *testing.T) {
	for _, proj := range []Projection{ProjectionDense, ProjectionFFT} {
		t.Run(proj.String(), func(t *testing.T) {
			e := newTestEngine[float64](t, Config{
				FilterLength: 1440,
				WindowLength: 480,
				PadMode:      PadLengthNormalizing,
				SavePad:      true,
				Projection:   proj,
			})

			x := testutil.RandomSignal(48000, 48000)
			coeffs, pad, err := e.Forward([][]float64{x})
			require.NoError(t, err)
			assert.Equal(t, Padding{Left: 480, Right: 480}, pad)

			y, err := e.Inverse(coeffs, pad)
			require.NoError(t, err)
			testutil.AssertCloseSlices(t, x, y[0], testutil.ReconstructionTolerance)
		})
	}
}

// TestLengthNormalizing_WithoutSavePad checks the token falls back to the
// centered trim when the pad is not saved.
func TestLengthNormalizing_WithoutSavePad(t *testing.T) {
	e := newTestEngine[float64](t, Config{
		FilterLength: 1440,
		WindowLength: 480,
		PadMode:      PadLengthNormalizing,
	})

	applied, token := e.GetPadding(48000)
	assert.Equal(t, Padding{Left: 480, Right: 480}, applied)
	assert.Equal(t, Padding{Left: 720, Right: 720}, token)

	y, err := e.Reconstruct([][]float64{make([]float64, 48000)})
	require.NoError(t, err)
	assert.Len(t, y[0], 48960-1440)
	assert.Equal(t, len(y[0]), e.OutputLength(48000))
}

func TestLengthNormalizing_DivisibleLength(t *testing.T) {
	e := newTestEngine[float64](t, Config{
		FilterLength: 8,
		WindowLength: 8,
		PadMode:      PadLengthNormalizing,
		SavePad:      true,
	})

	applied, token := e.GetPadding(64)
	assert.Equal(t, Padding{}, applied)
	assert.Equal(t, Padding{}, token)
	assert.Equal(t, 15, e.NumFrames(64))
}

// TestForward_ZeroFrame checks a silent input projects to exactly zero.
func TestForward_ZeroFrame(t *testing.T) {
	for _, proj := range []Projection{ProjectionDense, ProjectionFFT} {
		e := newTestEngine[float64](t, Config{FilterLength: 64, WindowLength: 32, Projection: proj})

		coeffs, _, err := e.Forward([][]float64{make([]float64, 256)})
		require.NoError(t, err)
		for _, bin := range coeffs[0] {
			for _, v := range bin {
				assert.Zero(t, v, "projection %s", proj)
			}
		}
	}
}

// TestNew_BitIdenticalBases checks construction is deterministic.
func TestNew_BitIdenticalBases(t *testing.T) {
	cfg := Config{FilterLength: 1440, WindowLength: 480, PadMode: PadLengthNormalizing}
	a := newTestEngine[float64](t, cfg)
	b := newTestEngine[float64](t, cfg)

	assert.True(t, mat.Equal(a.ForwardBasis(), b.ForwardBasis()))
	assert.True(t, mat.Equal(a.InverseBasis(), b.InverseBasis()))
	assert.Equal(t, a.Window(), b.Window())
}

func TestInverseBasis_IsTranspose(t *testing.T) {
	e := newTestEngine[float64](t, Config{FilterLength: 32, WindowLength: 16})

	fwd := e.ForwardBasis()
	inv := e.InverseBasis()
	rows, cols := inv.Dims()
	assert.Equal(t, 32, rows)
	assert.Equal(t, 16, cols)
	assert.True(t, mat.Equal(fwd.T(), inv))
}

// TestAccessors_ReturnCopies ensures callers cannot mutate engine state.
func TestAccessors_ReturnCopies(t *testing.T) {
	e := newTestEngine[float64](t, Config{FilterLength: 8, WindowLength: 8})

	w := e.Window()
	w[0] = 42
	assert.NotEqual(t, 42.0, e.Window()[0])

	fb := e.ForwardBasis()
	fb.Set(0, 0, 42)
	assert.NotEqual(t, 42.0, e.ForwardBasis().At(0, 0))
}

// TestProjectors_Agree checks the FFT projector matches the dense basis.
func TestProjectors_Agree(t *testing.T) {
	for _, n := range []int{2, 8, 18, 64, 1440} {
		t.Run(fmt.Sprintf("N%d", n), func(t *testing.T) {
			dense := newTestEngine[float64](t, Config{FilterLength: n, WindowLength: n, Projection: ProjectionDense})
			fft := newTestEngine[float64](t, Config{FilterLength: n, WindowLength: n, Projection: ProjectionFFT})

			frame := testutil.RandomSignal(uint64(n), n)
			testutil.AssertCloseSlices(t, dense.ProjectForward(frame), fft.ProjectForward(frame), 1e-9)

			column := testutil.RandomSignal(uint64(n)+1, n/2)
			testutil.AssertCloseSlices(t, dense.ProjectInverse(column), fft.ProjectInverse(column), 1e-9)
		})
	}
}

func TestForward_ShapeErrors(t *testing.T) {
	centered := newTestEngine[float64](t, Config{FilterLength: 1440, WindowLength: 1440})
	normalizing := newTestEngine[float64](t, Config{
		FilterLength: 1440, WindowLength: 1440, PadMode: PadLengthNormalizing, SavePad: true,
	})

	tests := []struct {
		name    string
		engine  *Engine[float64]
		samples [][]float64
	}{
		{"empty_batch", centered, nil},
		{"ragged_rows", centered, [][]float64{make([]float64, 10), make([]float64, 11)}},
		{"too_short_after_padding", normalizing, [][]float64{make([]float64, 100)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coeffs, _, err := tt.engine.Forward(tt.samples)
			require.ErrorIs(t, err, ErrShapeMismatch)
			assert.Nil(t, coeffs)
		})
	}
}

func TestInverse_ShapeErrors(t *testing.T) {
	e := newTestEngine[float64](t, Config{FilterLength: 8, WindowLength: 8})
	good := func() Coefficients[float64] {
		c, _, err := e.Forward([][]float64{make([]float64, 32)})
		require.NoError(t, err)
		return c
	}

	ragged := good()
	ragged[0][2] = ragged[0][2][:1]

	tests := []struct {
		name   string
		coeffs Coefficients[float64]
		pad    Padding
	}{
		{"empty_batch", nil, Padding{}},
		{"wrong_bin_count", Coefficients[float64]{make([][]float64, 3)}, Padding{}},
		{"ragged_frames", ragged, Padding{}},
		{"zero_frames", Coefficients[float64]{{{}, {}, {}, {}}}, Padding{}},
		{"negative_pad", good(), Padding{Left: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := e.Inverse(tt.coeffs, tt.pad)
			require.ErrorIs(t, err, ErrShapeMismatch)
			assert.Nil(t, out)
		})
	}
}

func TestInverse_TrimExceedsOutput(t *testing.T) {
	e := newTestEngine[float64](t, Config{FilterLength: 8, WindowLength: 8})
	coeffs, _, err := e.Forward([][]float64{testutil.RandomSignal(3, 16)})
	require.NoError(t, err)

	y, err := e.Inverse(coeffs, Padding{Left: 100, Right: 100})
	require.NoError(t, err)
	assert.Empty(t, y[0])
}

func TestForward_EmptySignal(t *testing.T) {
	e := newTestEngine[float64](t, Config{FilterLength: 8, WindowLength: 8})

	y, err := e.Reconstruct([][]float64{{}})
	require.NoError(t, err)
	assert.Empty(t, y[0])
	assert.Equal(t, 1, e.NumFrames(0))
}

// TestParallel_MatchesSequential checks parallel batch processing is bit-exact.
func TestParallel_MatchesSequential(t *testing.T) {
	cfg := Config{FilterLength: 256, WindowLength: 128}
	seq := newTestEngine[float64](t, cfg)
	cfg.Parallel = true
	par := newTestEngine[float64](t, cfg)

	x := testutil.RandomBatch(7, 6, 2000)

	cs, ps, err := seq.Forward(x)
	require.NoError(t, err)
	cp, pp, err := par.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, cs, cp)
	assert.Equal(t, ps, pp)

	ys, err := seq.Inverse(cs, ps)
	require.NoError(t, err)
	yp, err := par.Inverse(cp, pp)
	require.NoError(t, err)
	assert.Equal(t, ys, yp)
}

// TestConcurrentUse shares one engine between goroutines.
func TestConcurrentUse(t *testing.T) {
	e := newTestEngine[float64](t, Config{FilterLength: 1024, WindowLength: 512, Projection: ProjectionFFT})

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	diffs := make([]float64, workers)

	for w := range workers {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			x := testutil.RandomSignal(uint64(worker), 5000+worker*37)
			y, err := e.Reconstruct([][]float64{x})
			if err != nil {
				errs[worker] = err
				return
			}
			diffs[worker] = testutil.MaxAbsDiff(x, y[0])
		}(w)
	}
	wg.Wait()

	for w := range workers {
		require.NoError(t, errs[w])
		assert.Less(t, diffs[w], testutil.ReconstructionTolerance, "worker %d", w)
	}
}

func TestFloat32_Reconstruct(t *testing.T) {
	for _, proj := range []Projection{ProjectionDense, ProjectionFFT} {
		t.Run(proj.String(), func(t *testing.T) {
			e := newTestEngine[float32](t, Config{FilterLength: 256, WindowLength: 256, Projection: proj})

			x := simdops.Convert[float32](testutil.RandomSignal(11, 2048))
			y, err := e.Reconstruct([][]float32{x})
			require.NoError(t, err)
			require.Len(t, y[0], 2048)

			testutil.AssertCloseSlices(t,
				simdops.Convert[float64](x), simdops.Convert[float64](y[0]), testutil.Float32Tolerance)
		})
	}
}

func TestResolveProjection(t *testing.T) {
	assert.Equal(t, ProjectionDense, ExportedResolveProjection(ProjectionAuto, 256))
	assert.Equal(t, ProjectionFFT, ExportedResolveProjection(ProjectionAuto, 1024))
	assert.Equal(t, ProjectionDense, ExportedResolveProjection(ProjectionDense, 4096))
	assert.Equal(t, ProjectionFFT, ExportedResolveProjection(ProjectionFFT, 8))
}

func TestNumFrames(t *testing.T) {
	assert.Equal(t, 0, ExportedNumFrames(1439, 1440, 720))
	assert.Equal(t, 1, ExportedNumFrames(1440, 1440, 720))
	assert.Equal(t, 7, ExportedNumFrames(6240, 1440, 720))
	assert.Equal(t, 67, ExportedNumFrames(48960, 1440, 720))
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "centered", PadCentered.String())
	assert.Equal(t, "normalize", PadLengthNormalizing.String())
	assert.Equal(t, "PadMode(5)", PadMode(5).String())
	assert.Equal(t, "fft", ProjectionFFT.String())
	assert.Equal(t, "Projection(5)", Projection(5).String())
}

func TestInfo(t *testing.T) {
	e := newTestEngine[float32](t, Config{FilterLength: 64, WindowLength: 32, Projection: ProjectionDense})

	assert.Equal(t, 64, e.FilterLength())
	assert.Equal(t, 32, e.WindowLength())
	assert.Equal(t, DefaultAlpha, e.Alpha())
	assert.Equal(t, PadCentered, e.PadMode())
	assert.Equal(t, ProjectionDense, e.Projection())
	assert.Positive(t, e.MemoryUsage())
	assert.NotEmpty(t, e.SIMDInfo())
}
