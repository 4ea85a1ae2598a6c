package window

import (
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Shape identifies a window function.
type Shape int

const (
	Rectangular Shape = iota
	Triangular
	Welch
	Hann
	BlackmanHarris
	Nuttall
	Kaiser
	FlatTop

	numShapes
)

// DefaultKaiserBeta is the Kaiser beta used when WithAlpha is not given (α = 3).
const DefaultKaiserBeta = 3 * math.Pi

// Metadata holds spectral properties of a window shape.
type Metadata struct {
	Name            string
	ENBW            float64
	HighestSidelobe float64
	CoherentGain    float64
}

var metadataByShape = [numShapes]Metadata{
	Rectangular:    {Name: "Rectangular", ENBW: 1.0, HighestSidelobe: -13.3, CoherentGain: 1.0},
	Triangular:     {Name: "Triangular", ENBW: 1.333, HighestSidelobe: -26.5, CoherentGain: 0.5},
	Welch:          {Name: "Welch", ENBW: 1.2, HighestSidelobe: -21.3, CoherentGain: 0.667},
	Hann:           {Name: "Hann", ENBW: 1.5, HighestSidelobe: -31.5, CoherentGain: 0.5},
	BlackmanHarris: {Name: "Blackman-Harris", ENBW: 2.004, HighestSidelobe: -92.0, CoherentGain: 0.359},
	Nuttall:        {Name: "Nuttall", ENBW: 2.021, HighestSidelobe: -93.3, CoherentGain: 0.356},
	Kaiser:         {Name: "Kaiser", ENBW: 1.8, HighestSidelobe: -69.6, CoherentGain: 0.4},
	FlatTop:        {Name: "Flat-Top", ENBW: 3.77, HighestSidelobe: -93.0, CoherentGain: 0.216},
}

var shapeAliases = map[string]Shape{
	"rectangular":     Rectangular,
	"rect":            Rectangular,
	"triangular":      Triangular,
	"triangle":        Triangular,
	"welch":           Welch,
	"hann":            Hann,
	"hanning":         Hann,
	"blackman-harris": BlackmanHarris,
	"blackmanharris":  BlackmanHarris,
	"nuttall":         Nuttall,
	"kaiser":          Kaiser,
	"flat-top":        FlatTop,
	"flattop":         FlatTop,
}

var (
	hannCoeffs           = []float64{0.5, -0.5}
	blackmanHarrisCoeffs = []float64{0.35875, -0.48829, 0.14128, -0.01168}
	nuttallCoeffs        = []float64{0.355768, -0.487396, 0.144232, -0.012604}
	flatTopCoeffs        = []float64{0.21557895, -0.41663158, 0.277263158, -0.083578947, 0.006947368}
)

// String returns the display name of s.
func (s Shape) String() string {
	if !s.Valid() {
		return "Shape(" + strconv.Itoa(int(s)) + ")"
	}
	return metadataByShape[s].Name
}

// Valid reports whether s is one of the defined shapes.
func (s Shape) Valid() bool { return s >= 0 && s < numShapes }

// Shapes returns every defined shape in declaration order.
func Shapes() []Shape {
	out := make([]Shape, numShapes)
	for i := range out {
		out[i] = Shape(i)
	}
	return out
}

// ParseShape looks up a shape by name. Matching ignores case, spaces and
// underscores.
func ParseShape(name string) (Shape, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer(" ", "-", "_", "-").Replace(key)
	if s, ok := shapeAliases[key]; ok {
		return s, nil
	}
	return 0, unknownShape(name)
}

// Option configures window generation.
type Option func(*config)

type config struct {
	alpha    float64
	periodic bool
}

func defaultConfig() config {
	return config{alpha: -1}
}

// WithAlpha sets the Kaiser beta. Negative values are ignored.
func WithAlpha(v float64) Option {
	return func(c *config) {
		if v >= 0 {
			c.alpha = v
		}
	}
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length.
func Generate(s Shape, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	out := make([]float64, length)
	Fill(out, s, opts...)

	return out
}

// Fill writes len(dst) coefficients of shape s into dst without allocating.
func Fill(dst []float64, s Shape, opts ...Option) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.alpha < 0 {
		cfg.alpha = DefaultKaiserBeta
	}

	for i := range dst {
		dst[i] = evalWindow(s, samplePosition(i, len(dst), cfg.periodic), cfg)
	}
}

// Apply multiplies buf in-place by the selected window.
func Apply(s Shape, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}

	vecmath.MulBlockInPlace(buf, Generate(s, len(buf), opts...))
}

// ApplyTo writes src multiplied by coeffs into dst. All three slices must
// have the same length.
func ApplyTo(dst, src, coeffs []float64) error {
	if len(src) != len(coeffs) || len(dst) != len(src) {
		return errMismatchedLength
	}

	vecmath.MulBlock(dst, src, coeffs)

	return nil
}

// Info returns static metadata for a window shape.
func Info(s Shape) Metadata {
	if !s.Valid() {
		return Metadata{}
	}
	return metadataByShape[s]
}

func evalWindow(s Shape, x float64, cfg config) float64 {
	x = math.Min(math.Max(x, 0), 1)

	switch s {
	case Triangular:
		if x <= 0.5 {
			return 2 * x
		}
		return 2 * (1 - x)
	case Welch:
		d := x - 0.5
		return 1 - 4*d*d
	case Hann:
		return cosineFromCoeffs(x, hannCoeffs)
	case BlackmanHarris:
		return cosineFromCoeffs(x, blackmanHarrisCoeffs)
	case Nuttall:
		return cosineFromCoeffs(x, nuttallCoeffs)
	case Kaiser:
		return kaiserAt(x, cfg.alpha)
	case FlatTop:
		return cosineFromCoeffs(x, flatTopCoeffs)
	default:
		return 1
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}

func kaiserAt(x, beta float64) float64 {
	if beta <= 0 {
		return 1
	}

	r := 2*x - 1
	term := math.Sqrt(math.Max(0, 1-r*r))

	return besselI0(beta*term) / besselI0(beta)
}

// besselI0 returns a numerical approximation of the modified Bessel function I0.
func besselI0(x float64) float64 {
	ax := math.Abs(x)
	if ax < 3.75 {
		y := x / 3.75
		y *= y

		return 1.0 + y*(3.5156229+y*(3.0899424+y*(1.2067492+y*(0.2659732+y*(0.0360768+y*0.0045813)))))
	}

	y := 3.75 / ax

	return (math.Exp(ax) / math.Sqrt(ax)) *
		(0.39894228 + y*(0.01328592+y*(0.00225319+y*(-0.00157565+y*(0.00916281+y*(-0.02057706+y*(0.02635537+y*(-0.01647633+y*0.00392377))))))))
}
