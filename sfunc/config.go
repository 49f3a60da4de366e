package sfunc

import "fmt"

// Config carries the grid, domain and run parameters. All compute
// functions receive the parameters they depend on through it; there is no
// global state.
type Config struct {
	Nx, Ny, Nz int     // grid points per axis
	Lx, Ly, Lz float64 // physical extents
	Dx, Dy, Dz float64 // grid spacings, 0 on a degenerate axis
	Q1, Q2     int     // inclusive order range
	P          int     // total ranks
	Px         int     // ranks along x; Py = P/Px spans the y (or z) axis
	Scalar     bool
	TwoDim     bool
	LongOnly   bool
	Test       bool
}

// DecompositionError reports a process grid that cannot partition the
// displacement half-domain.
type DecompositionError struct {
	Msg string
}

func (e *DecompositionError) Error() string { return e.Msg }

// SetSpacings derives Dx, Dy, Dz from the extents. An axis with a single
// point gets spacing 0.
func (cfg *Config) SetSpacings() {
	spacing := func(n int, l float64) float64 {
		if n <= 1 {
			return 0
		}
		return l / float64(n-1)
	}
	cfg.Dx = spacing(cfg.Nx, cfg.Lx)
	cfg.Dy = spacing(cfg.Ny, cfg.Ly)
	cfg.Dz = spacing(cfg.Nz, cfg.Lz)
}

// NOrders is the number of structure function orders, q2-q1+1.
func (cfg *Config) NOrders() int { return cfg.Q2 - cfg.Q1 + 1 }

// Py is the process count along the second distributed axis: y in 3D,
// z in 2D.
func (cfg *Config) Py() int { return cfg.P / cfg.Px }

// N2 is the grid size along the second distributed axis.
func (cfg *Config) N2() int {
	if cfg.TwoDim {
		return cfg.Nz
	}
	return cfg.Ny
}

func isPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

// Validate enforces the process grid constraints before any compute
// starts.
func (cfg *Config) Validate() error {
	if cfg.P < 1 {
		return &DecompositionError{Msg: fmt.Sprintf("total number of processors must be positive, got %d", cfg.P)}
	}
	if cfg.Px > cfg.P {
		return &DecompositionError{
			Msg: "number of processors in x direction has to be less than or equal to the total number of processors"}
	}
	if cfg.Px < 1 || cfg.P%cfg.Px != 0 {
		return &DecompositionError{
			Msg: fmt.Sprintf("number of processors in x direction (%d) must divide the total (%d)", cfg.Px, cfg.P)}
	}
	if cfg.Nx/2%cfg.Px != 0 || !isPowerOfTwo(cfg.Nx/2/cfg.Px) {
		return &DecompositionError{
			Msg: "number of processors in x direction should be less or equal to Nx/2 and some power of 2"}
	}
	n2 := cfg.N2()
	py := cfg.Py()
	if n2/2%py != 0 || !isPowerOfTwo(n2/2/py) {
		return &DecompositionError{
			Msg: "number of processors in y (or z) direction should be less or equal to Ny/2 (or Nz/2) and some power of 2"}
	}
	if cfg.Q2 < cfg.Q1 {
		return &DecompositionError{
			Msg: fmt.Sprintf("order range [%d, %d] is empty", cfg.Q1, cfg.Q2)}
	}
	return nil
}
