package driver

import (
	"context"
	"fmt"
	"os"

	"github.com/flowrt/flowrt/block"
	"github.com/flowrt/flowrt/graph"
)

// RunChild checks ChildBlockEnv and, if set, rebinds the named block's
// ports onto the descriptors inherited through exec.Cmd.ExtraFiles, runs
// that one block to completion, and exits the process — it never returns
// in that case. If the variable is unset, RunChild returns false
// immediately and the caller should proceed as the top-level process
// (call Session.Start/Wait as normal).
//
// The hosting program must call RunChild, passing the exact same
// graph.Prepared its top-level path would use, before doing anything else
// blocking: the process driver's child is a fresh process that reconstructs
// the whole graph the normal way and then discards every block except the
// one it was asked to run, rebinding that block's pipes onto the inherited
// descriptors in the same order Process.spawn handed them out (each input's
// read end, then each output's fan-out write ends, in port declaration and
// connection order).
func RunChild(prepared *graph.Prepared) (ran bool) {
	name, ok := os.LookupEnv(ChildBlockEnv)
	if !ok {
		return false
	}

	var target block.Block
	for _, b := range prepared.Blocks {
		if b.Name() == name {
			target = b
			break
		}
	}
	if target == nil {
		fmt.Fprintf(os.Stderr, "flowrt: child requested unknown block %q\n", name)
		os.Exit(1)
	}

	nextFD := uintptr(3)
	for _, in := range target.InputPorts() {
		f := os.NewFile(nextFD, in.PortName()+".r")
		nextFD++
		if p := in.Pipe(); p != nil {
			p.Rebind(f, nil)
		}
	}
	for _, out := range target.OutputPorts() {
		for _, p := range out.Pipes() {
			f := os.NewFile(nextFD, out.PortName()+".w")
			nextFD++
			p.Rebind(nil, f)
		}
	}
	// target.Files() descriptors were preserved across exec at the fds
	// immediately following the pipe ends above; they are not rebound onto
	// the block here. The block was already initialized by the
	// PrepareToRun call that produced prepared.

	runErr := target.Run(context.Background())
	cleanupErr := target.Cleanup()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "flowrt: block %q failed: %v\n", name, runErr)
		os.Exit(1)
	}
	if cleanupErr != nil {
		fmt.Fprintf(os.Stderr, "flowrt: block %q cleanup failed: %v\n", name, cleanupErr)
		os.Exit(1)
	}
	os.Exit(0)
	return true // unreachable; satisfies the compiler's return-path check
}
