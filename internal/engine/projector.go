package engine

import (
	"math"
	"math/cmplx"
	"sync"

	"github.com/tphakala/go-audio-mdct/internal/basis"
	"github.com/tphakala/go-audio-mdct/internal/simdops"
	"github.com/tphakala/simd/c128"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/mat"
)

// projector maps one frame onto the windowed basis and back. Implementations
// are read-only after construction and safe for concurrent use.
type projector[F simdops.Float] interface {
	// forward writes N/2 coefficients of frame (length N) into dst.
	forward(dst, frame []F)

	// inverse writes the N-sample windowed synthesis of column (length N/2)
	// into dst. The 4/N scale is applied by the caller after overlap-add.
	inverse(dst, column []F)

	// memoryUsage reports the bytes held by the projector.
	memoryUsage() int64
}

// denseProjector multiplies frames by the basis matrices with SIMD dot
// products: O(N²/2) per frame.
type denseProjector[F simdops.Float] struct {
	n, bins int
	fwd     []F // ForwardBasis, row-major (bins × n)
	inv     []F // InverseBasis, row-major (n × bins)
	ops     *simdops.Ops[F]
}

func newDenseProjector[F simdops.Float](forward, inverse *mat.Dense) *denseProjector[F] {
	bins, n := forward.Dims()
	return &denseProjector[F]{
		n:    n,
		bins: bins,
		fwd:  simdops.Convert[F](forward.RawMatrix().Data),
		inv:  simdops.Convert[F](inverse.RawMatrix().Data),
		ops:  simdops.For[F](),
	}
}

func (p *denseProjector[F]) forward(dst, frame []F) {
	for k := range p.bins {
		dst[k] = p.ops.DotProductUnsafe(p.fwd[k*p.n:(k+1)*p.n], frame)
	}
}

func (p *denseProjector[F]) inverse(dst, column []F) {
	for i := range p.n {
		dst[i] = p.ops.DotProductUnsafe(p.inv[i*p.bins:(i+1)*p.bins], column)
	}
}

func (p *denseProjector[F]) memoryUsage() int64 {
	return int64(len(p.fwd)+len(p.inv)) * bytesOf[F]()
}

// fftProjector evaluates the same projection with an N-point complex FFT:
//
//	X[k] = Re{ e^{-i2π·n0·(k+½)/N} · FFT(w[n]·x[n]·e^{-iπn/N})[k] }
//	y[n] = w[n] · Re{ e^{iπn/N} · IFFT(X[k]·e^{i2π·n0·(k+½)/N})[n] }
//
// The window is folded into the time-domain twiddles. gonum's Sequence is
// unnormalized, which matches the basis-transpose definition of the inverse.
type fftProjector[F simdops.Float] struct {
	n, bins int

	analysisPre   []complex128 // w[n]·e^{-iπn/N}, length n
	analysisPost  []complex128 // e^{-i2π·n0·(k+½)/N}, length bins
	synthesisPre  []complex128 // e^{+i2π·n0·(k+½)/N}, length bins
	synthesisPost []complex128 // w[n]·e^{+iπn/N}, length n

	// gonum FFT plans keep internal work space, so each goroutine borrows
	// its own workspace.
	pool sync.Pool
}

type fftWorkspace struct {
	fft  *fourier.CmplxFFT
	time []complex128
	freq []complex128
	prod []complex128
}

func newFFTProjector[F simdops.Float](window []float64) *fftProjector[F] {
	n := len(window)
	bins := n / hopDivisor
	n0 := basis.Offset(n)

	p := &fftProjector[F]{
		n:             n,
		bins:          bins,
		analysisPre:   make([]complex128, n),
		analysisPost:  make([]complex128, bins),
		synthesisPre:  make([]complex128, bins),
		synthesisPost: make([]complex128, n),
	}

	for i := range n {
		phase := math.Pi * float64(i) / float64(n)
		p.analysisPre[i] = complex(window[i], 0) * cmplx.Exp(complex(0, -phase))
		p.synthesisPost[i] = complex(window[i], 0) * cmplx.Exp(complex(0, phase))
	}
	for k := range bins {
		phase := 2 * math.Pi * n0 * (float64(k) + 0.5) / float64(n)
		p.analysisPost[k] = cmplx.Exp(complex(0, -phase))
		p.synthesisPre[k] = cmplx.Exp(complex(0, phase))
	}

	p.pool.New = func() any {
		return &fftWorkspace{
			fft:  fourier.NewCmplxFFT(n),
			time: make([]complex128, n),
			freq: make([]complex128, n),
			prod: make([]complex128, n),
		}
	}

	return p
}

func (p *fftProjector[F]) forward(dst, frame []F) {
	ws := p.pool.Get().(*fftWorkspace)
	defer p.pool.Put(ws)

	for i, v := range frame {
		ws.time[i] = complex(float64(v), 0)
	}
	c128.Mul(ws.prod, ws.time, p.analysisPre)

	ws.freq = ws.fft.Coefficients(ws.freq, ws.prod)

	post := ws.prod[:p.bins]
	c128.Mul(post, ws.freq[:p.bins], p.analysisPost)
	for k, v := range post {
		dst[k] = F(real(v))
	}
}

func (p *fftProjector[F]) inverse(dst, column []F) {
	ws := p.pool.Get().(*fftWorkspace)
	defer p.pool.Put(ws)

	for k, v := range column {
		ws.time[k] = complex(float64(v), 0)
	}
	c128.Mul(ws.freq[:p.bins], ws.time[:p.bins], p.synthesisPre)
	clear(ws.freq[p.bins:])

	ws.time = ws.fft.Sequence(ws.time, ws.freq)

	c128.Mul(ws.prod, ws.time, p.synthesisPost)
	for i, v := range ws.prod {
		dst[i] = F(real(v))
	}
}

func (p *fftProjector[F]) memoryUsage() int64 {
	twiddles := len(p.analysisPre) + len(p.analysisPost) + len(p.synthesisPre) + len(p.synthesisPost)
	return int64(twiddles) * bytesPerComplex128
}

// bytesOf returns the element size of F.
func bytesOf[F simdops.Float]() int64 {
	var zero F
	if _, ok := any(zero).(float64); ok {
		return bytesPerFloat64
	}
	return bytesPerFloat32
}
