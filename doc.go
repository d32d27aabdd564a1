// Package vellobench benchmarks the gg GPU vector-graphics renderer.
//
// # Overview
//
// vellobench renders a set of scenes into an off-screen target many times
// and reports, per scene, the CPU time spent encoding it, the end-to-end
// wall time per render and, optionally, the GPU time of one pipeline stage
// as recorded by timestamp queries.
//
// The same module builds a library (this package) and the vellobench
// executable in cmd/vellobench, which only parses flags and calls [Run].
//
// # Quick Start
//
//	err := vellobench.Run(ctx, vellobench.Cli{
//		Stage:   "raster",
//		Command: vellobench.TestScenesArgs{Matches: "mmark"},
//		Options: vellobench.DefaultOptions(),
//	})
//
// # Output
//
// The default text report looks like:
//
//	samples: 1000
//	------
//	mean,median,min,max,plot
//	scene: mmark, CPU encode time: 12.34ms
//	render: 4.56ms,4.50ms,4.10ms,6.02ms,▁▂▁▁█▁
//	stage (raster): 3.21ms,3.20ms,3.01ms,4.80ms,▁▁▂▁█▁
//
// YAML, JSON and a styled terminal variant are available through
// [Cli.Format].
//
// # Stages
//
// Each render is one profiler frame with the scopes "render", and nested
// in it "clear", "encode" and "raster". Any of these names can be passed
// as Cli.Stage.
//
// # Logging
//
// vellobench is silent by default. Call [SetLogger] to enable diagnostics;
// the logger is shared with gg and wgpu.
package vellobench
