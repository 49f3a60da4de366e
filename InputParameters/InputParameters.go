package InputParameters

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file in/para.yaml
type Parameters struct {
	Program struct {
		ScalarSwitch     bool `yaml:"scalar_switch" json:"scalar_switch"`
		OnlyLongitudinal bool `yaml:"Only_longitudinal" json:"Only_longitudinal"`
		TwoDSwitch       bool `yaml:"2D_switch" json:"2D_switch"`
		ProcessorsX      int  `yaml:"Processors_X" json:"Processors_X"`
	} `yaml:"program" json:"program"`
	Grid struct {
		Nx int `yaml:"Nx" json:"Nx"`
		Ny int `yaml:"Ny" json:"Ny"`
		Nz int `yaml:"Nz" json:"Nz"`
	} `yaml:"grid" json:"grid"`
	DomainDimension struct {
		Lx float64 `yaml:"Lx" json:"Lx"`
		Ly float64 `yaml:"Ly" json:"Ly"`
		Lz float64 `yaml:"Lz" json:"Lz"`
	} `yaml:"domain_dimension" json:"domain_dimension"`
	StructureFunction struct {
		Q1 int `yaml:"q1" json:"q1"`
		Q2 int `yaml:"q2" json:"q2"`
	} `yaml:"structure_function" json:"structure_function"`
	Test struct {
		TestSwitch bool `yaml:"test_switch" json:"test_switch"`
	} `yaml:"test" json:"test"`
}

// ConfigError covers a missing or unparseable parameter file and malformed
// option values.
type ConfigError struct {
	Msg string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

func (ip *Parameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, ip); err != nil {
		return &ConfigError{Msg: "error reading parameter file", Err: err}
	}
	return nil
}

// ReadParameters loads and parses the parameter file at path.
func ReadParameters(path string) (ip *Parameters, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Msg: fmt.Sprintf("unable to open '%s'", path), Err: err}
	}
	ip = &Parameters{}
	if err = ip.Parse(data); err != nil {
		return nil, err
	}
	return
}

func (ip *Parameters) Print() {
	fmt.Printf("[%d %d %d]\t\t= Nx Ny Nz\n", ip.Grid.Nx, ip.Grid.Ny, ip.Grid.Nz)
	fmt.Printf("[%8.5f %8.5f %8.5f]\t= Lx Ly Lz\n",
		ip.DomainDimension.Lx, ip.DomainDimension.Ly, ip.DomainDimension.Lz)
	fmt.Printf("[%d %d]\t\t\t= q1 q2\n", ip.StructureFunction.Q1, ip.StructureFunction.Q2)
	fmt.Printf("[%v]\t\t\t= scalar_switch\n", ip.Program.ScalarSwitch)
	fmt.Printf("[%v]\t\t\t= Only_longitudinal\n", ip.Program.OnlyLongitudinal)
	fmt.Printf("[%v]\t\t\t= 2D_switch\n", ip.Program.TwoDSwitch)
	fmt.Printf("[%d]\t\t\t\t= Processors_X\n", ip.Program.ProcessorsX)
	fmt.Printf("[%v]\t\t\t= test_switch\n", ip.Test.TestSwitch)
}

// StrToBool accepts the command line boolean spellings "true", "1", "false"
// and "0".
func StrToBool(s string) (bool, error) {
	switch s {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, &ConfigError{Msg: fmt.Sprintf("invalid boolean input '%s'", s)}
}
