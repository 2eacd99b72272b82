// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command trainer exhaustively verifies the logic trainer circuit against its
// reference model.
//
// Usage:
//
//	trainer [-dut gates|model] [-workers n] [-spc n] [-collect] [-full] [-v]
package main

import (
	"flag"
	"log"
	"os"

	lt "github.com/db47h/logictrainer"
	"github.com/db47h/logictrainer/harness"
	"github.com/db47h/logictrainer/hwlib"
	"github.com/db47h/logictrainer/hwsim"
	"github.com/db47h/logictrainer/hwtest"
)

func main() {
	var (
		dut     = flag.String("dut", "gates", "circuit under test: gates (gate-level) or model (behavioral)")
		workers = flag.Int("workers", 0, "simulation worker goroutines (0 = GOMAXPROCS)")
		spc     = flag.Uint("spc", 0, "simulation steps per clock cycle (0 = default)")
		collect = flag.Bool("collect", false, "report all mismatches instead of stopping at the first")
		full    = flag.Bool("full", false, "also test the undefined select code 7")
		verbose = flag.Bool("v", false, "log every vector")
	)
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("trainer: ")

	var (
		part  hwsim.NewPartFn
		depth uint
	)
	switch *dut {
	case "gates":
		part, depth = hwlib.LogicTrainer, hwlib.LogicTrainerDepth
	case "model":
		// the model samples its inputs directly
		part = lt.ModelPart
	default:
		log.Fatalf("unknown circuit %q", *dut)
	}

	d, err := hwtest.NewDriver(*workers, *spc, depth, part)
	if err != nil {
		log.Fatal(err)
	}
	defer d.Close()

	cfg := harness.Config{
		CollectAll:       *collect,
		IncludeUndefined: *full,
	}
	if *verbose {
		cfg.Logger = log.New(os.Stderr, "trainer: ", 0)
	}

	r, err := harness.Run(d, cfg)
	if err != nil {
		log.Fatalf("%s: %v", r.Phase, err)
	}
	log.Printf("%s: all %d checks passed in %d cycles (%d steps per cycle)", d.Spec().Name, r.Vectors, r.Cycles, d.SPC())
}
