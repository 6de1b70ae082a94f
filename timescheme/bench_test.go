// SPDX-License-Identifier: MIT

package timescheme_test

import (
	"testing"

	"github.com/YoshaTogame/TER/flux"
	"github.com/YoshaTogame/TER/mesh"
	"github.com/YoshaTogame/TER/physics"
	"github.com/YoshaTogame/TER/timescheme"
)

func benchmarkStep(b *testing.B, kind string, cells int) {
	geom, err := mesh.NewUniform(0, 20, cells)
	if err != nil {
		b.Fatal(err)
	}
	model, err := physics.New(physics.CaseDamBreak, geom, physics.DefaultGravity, nil)
	if err != nil {
		b.Fatal(err)
	}
	f, err := flux.New(flux.KindRusanov, model.Gravity())
	if err != nil {
		b.Fatal(err)
	}
	s, err := timescheme.New(kind, f, model)
	if err != nil {
		b.Fatal(err)
	}
	init0, err := model.InitialCondition()
	if err != nil {
		b.Fatal(err)
	}
	if err = s.Initialize(timescheme.Params{TimeStep: 1e-4}, geom, init0); err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err = s.Step(float64(i) * 1e-4); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEuler_1000(b *testing.B)  { benchmarkStep(b, timescheme.KindEuler, 1000) }
func BenchmarkRK2_1000(b *testing.B)    { benchmarkStep(b, timescheme.KindRK2, 1000) }
func BenchmarkSSPRK3_1000(b *testing.B) { benchmarkStep(b, timescheme.KindSSPRK3, 1000) }
