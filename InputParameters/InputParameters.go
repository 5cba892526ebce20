package InputParameters

import (
	"fmt"
	"io"
	"os"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
)

// Parameters obtained from the YAML input file
type InputParametersHGB struct {
	Title   string            `json:"Title"`
	Grid    GridParameters    `json:"Grid"`
	Problem ProblemParameters `json:"Problem"`
	Physics PhysicsParameters `json:"Physics"`
}

type GridParameters struct {
	Nx1   int      `json:"nx1"`
	Nx2   int      `json:"nx2"`
	Nx3   int      `json:"nx3"`
	X1min *float64 `json:"x1min"`
	X1max *float64 `json:"x1max"`
	X2min *float64 `json:"x2min"`
	X2max *float64 `json:"x2max"`
	X3min *float64 `json:"x3min"`
	X3max *float64 `json:"x3max"`
}

// Optional keys are pointers so that an absent key can be told apart from a
// zero value
type ProblemParameters struct {
	Omega  *float64 `json:"omega"`
	Amp    *float64 `json:"amp"`
	Beta   *float64 `json:"beta"`
	IField *int     `json:"ifield"`
	IPert  *int     `json:"ipert"`
	Nwx    *int     `json:"nwx"`
	Nwy    *int     `json:"nwy"`
	Nwz    *int     `json:"nwz"`
	Eta    *float64 `json:"eta"`
	Nu     *float64 `json:"nu"`
}

// Switches that select the equation set
type PhysicsParameters struct {
	EOS             string   `json:"EOS"` // adiabatic or isothermal
	Gamma           *float64 `json:"Gamma"`
	IsoCsound       *float64 `json:"IsoCsound"`
	MHD             *bool    `json:"MHD"`
	FARGO           bool     `json:"FARGO"`
	VerticalGravity bool     `json:"VerticalGravity"`
	Ohmic           bool     `json:"Ohmic"`
	NavierStokes    bool     `json:"NavierStokes"`
}

const (
	DefaultOmega     = 1.0e-3
	DefaultIField    = 1
	DefaultIPert     = 1
	DefaultGamma     = 5. / 3.
	DefaultIsoCsound = 1.
)

func (ip *InputParametersHGB) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return errors.Wrap(err, "unable to parse input parameters")
	}
	ip.SetDefaults()
	return ip.Validate()
}

func ReadFile(fileName string) (ip *InputParametersHGB, err error) {
	var data []byte
	if data, err = os.ReadFile(fileName); err != nil {
		err = errors.Wrapf(err, "unable to read input file %s", fileName)
		return
	}
	ip = &InputParametersHGB{}
	if err = ip.Parse(data); err != nil {
		err = errors.Wrapf(err, "input file %s", fileName)
	}
	return
}

func fdef(p **float64, val float64) {
	if *p == nil {
		v := val
		*p = &v
	}
}

func idef(p **int, val int) {
	if *p == nil {
		v := val
		*p = &v
	}
}

func (ip *InputParametersHGB) SetDefaults() {
	pp, ph := &ip.Problem, &ip.Physics
	fdef(&pp.Omega, DefaultOmega)
	idef(&pp.IField, DefaultIField)
	idef(&pp.IPert, DefaultIPert)
	idef(&pp.Nwx, 1)
	idef(&pp.Nwy, 1)
	idef(&pp.Nwz, 1)
	if len(ph.EOS) == 0 {
		ph.EOS = "adiabatic"
	}
	fdef(&ph.Gamma, DefaultGamma)
	fdef(&ph.IsoCsound, DefaultIsoCsound)
	if ph.MHD == nil {
		mhd := true
		ph.MHD = &mhd
	}
	g := &ip.Grid
	for _, n := range []*int{&g.Nx1, &g.Nx2, &g.Nx3} {
		if *n == 0 {
			*n = 1
		}
	}
}

// Validate reports the first missing required key
func (ip *InputParametersHGB) Validate() (err error) {
	var (
		pp = &ip.Problem
		g  = &ip.Grid
	)
	required := []struct {
		block, key string
		set        bool
	}{
		{"Grid", "x1min", g.X1min != nil},
		{"Grid", "x1max", g.X1max != nil},
		{"Grid", "x2min", g.X2min != nil},
		{"Grid", "x2max", g.X2max != nil},
		{"Grid", "x3min", g.X3min != nil},
		{"Grid", "x3max", g.X3max != nil},
		{"Problem", "amp", pp.Amp != nil},
		{"Problem", "beta", pp.Beta != nil},
		{"Problem", "eta", !ip.Physics.Ohmic || pp.Eta != nil},
		{"Problem", "nu", !ip.Physics.NavierStokes || pp.Nu != nil},
	}
	for _, r := range required {
		if !r.set {
			return errors.Errorf("missing required parameter %s/%s", r.block, r.key)
		}
	}
	switch ip.Physics.EOS {
	case "adiabatic", "isothermal":
	default:
		return errors.Errorf("unknown EOS %q, must be adiabatic or isothermal", ip.Physics.EOS)
	}
	if *pp.Beta <= 0 {
		return errors.Errorf("beta must be positive, have %g", *pp.Beta)
	}
	return
}

func (ip *InputParametersHGB) Adiabatic() bool {
	return ip.Physics.EOS == "adiabatic"
}

func (ip *InputParametersHGB) GridBounds() (Nx [3]int, Xmin, Xmax [3]float64) {
	g := &ip.Grid
	Nx = [3]int{g.Nx1, g.Nx2, g.Nx3}
	Xmin = [3]float64{*g.X1min, *g.X2min, *g.X3min}
	Xmax = [3]float64{*g.X1max, *g.X2max, *g.X3max}
	return
}

func (ip *InputParametersHGB) Print(w io.Writer) {
	var (
		pp = &ip.Problem
		ph = &ip.Physics
		g  = &ip.Grid
	)
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", ip.Title)
	fmt.Fprintf(w, "[%d x %d x %d]\t\t= Grid\n", g.Nx1, g.Nx2, g.Nx3)
	fmt.Fprintf(w, "[%g, %g]x[%g, %g]x[%g, %g]\t= Bounds\n",
		*g.X1min, *g.X1max, *g.X2min, *g.X2max, *g.X3min, *g.X3max)
	fmt.Fprintf(w, "%8.5g\t\t= Omega\n", *pp.Omega)
	fmt.Fprintf(w, "%8.5g\t\t= Amp\n", *pp.Amp)
	fmt.Fprintf(w, "%8.5g\t\t= Beta\n", *pp.Beta)
	fmt.Fprintf(w, "[%d]\t\t\t= IField\n", *pp.IField)
	fmt.Fprintf(w, "[%d]\t\t\t= IPert\n", *pp.IPert)
	fmt.Fprintf(w, "[%d, %d, %d]\t\t= Waves per box\n", *pp.Nwx, *pp.Nwy, *pp.Nwz)
	fmt.Fprintf(w, "[%s]\t\t= EOS\n", ph.EOS)
	fmt.Fprintf(w, "MHD = %v, FARGO = %v, VerticalGravity = %v\n", *ph.MHD, ph.FARGO, ph.VerticalGravity)
}
