// Package stream measures sustained memory bandwidth with eight vector
// kernels in the style of the STREAM benchmark.
//
// A run allocates four aligned arrays a, b, c and d, fills them with known
// constants, and executes the fixed kernel sequence
//
//	Init, Sum, Copy, Update, Triad, Daxpy, STriad, SDaxpy
//
// NTimes times without re-initializing in between. Each kernel reports its
// own elapsed time. Repetition 0 is a warm-up and is excluded from the
// statistics; bandwidth is derived from the minimum time. Finally the array
// contents are checked against a closed-form replay of the same arithmetic.
//
//	res, err := stream.Run(ctx, stream.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	_ = stream.WriteReport(os.Stdout, res, false)
package stream
