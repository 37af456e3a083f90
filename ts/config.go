/*
 * config.go, part of gozmat
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

package ts

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	zmat "github.com/rmera/gozmat"
)

var validate = validator.New()

//DefaultMaxRebuildAttempts is the number of times a reactant z-matrix is built, counting the
//first one, before a builder gives up on a reference problem.
const DefaultMaxRebuildAttempts = 3

//Config holds the numbers the builders use to place atoms for which there is no
//reactant geometry. Distances are in bohr, angles in degrees.
type Config struct {
	//Distance between the attacking and the attacked atom in bimolecular reactions.
	JoinDistance float64 `yaml:"join_distance" validate:"gt=0"`
	//Angles used to join the second reactant to the first.
	JoinAngle float64 `yaml:"join_angle" validate:"gt=0,lt=180"`
	//The near-linear angle used for the first dihedral of a join through a dummy atom.
	JoinLinearAngle float64 `yaml:"join_linear_angle" validate:"gt=0,lte=180"`
	//Angle used for every join coordinate in additions.
	AdditionAngle float64 `yaml:"addition_angle" validate:"gt=0,lt=180"`

	DummyDistance float64 `yaml:"dummy_distance" validate:"gt=0"`
	DummyAngle    float64 `yaml:"dummy_angle" validate:"gt=0,lt=180"`
	DummyDihedral float64 `yaml:"dummy_dihedral" validate:"gte=-180,lte=180"`

	MaxRebuildAttempts int `yaml:"max_rebuild_attempts" validate:"min=1,max=20"`
	//Dihedrals closer than DihedralTolerance to 0 or 180 are moved by DihedralNudge.
	DihedralNudge     float64 `yaml:"dihedral_nudge" validate:"gte=0,lt=90"`
	DihedralTolerance float64 `yaml:"dihedral_tolerance" validate:"gte=0,lt=90"`
	LinearTolerance   float64 `yaml:"linear_tolerance" validate:"gt=0,lt=90"`
}

//DefaultConfig returns the default builder configuration.
func DefaultConfig() Config {
	return Config{
		JoinDistance:       3.0,
		JoinAngle:          85,
		JoinLinearAngle:    170,
		AdditionAngle:      85,
		DummyDistance:      zmat.A2Bohr,
		DummyAngle:         90,
		DummyDihedral:      180,
		MaxRebuildAttempts: DefaultMaxRebuildAttempts,
		DihedralNudge:      15,
		DihedralTolerance:  5,
		LinearTolerance:    zmat.DefaultLinearTol * zmat.Rad2Deg,
	}
}

//Validate checks that every field of the configuration is in its allowed range.
func (C Config) Validate() error {
	if err := validate.Struct(C); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return fmt.Errorf("ts: invalid configuration: %s", strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "gt":
		return fmt.Sprintf("%s must be larger than %s", field, e.Param())
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "lt":
		return fmt.Sprintf("%s must be smaller than %s", field, e.Param())
	case "lte", "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

//ParseConfig reads a YAML configuration. Fields not present keep their default values,
//unknown fields are an error.
func ParseConfig(data []byte) (Config, error) {
	C := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&C); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("ts.ParseConfig: %w", err)
	}
	if err := C.Validate(); err != nil {
		return Config{}, err
	}
	return C, nil
}

//LoadConfig reads a YAML configuration from the file path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("ts.LoadConfig: %w", err)
	}
	return ParseConfig(data)
}

//The values below are in the internal units, bohr and radians.

func (C Config) dummyValues() (r, a, d float64) {
	return C.DummyDistance, C.DummyAngle * zmat.Deg2Rad, C.DummyDihedral * zmat.Deg2Rad
}

func (C Config) linearTol() float64 {
	return C.LinearTolerance * zmat.Deg2Rad
}
