package scene

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/furl/common"
	"github.com/chewxy/math32"
)

const (
	// maxFurlInstances is the number of per-instance curve entries, and the most instances the
	// density parameter can ask for.
	maxFurlInstances = 1024
	// curveComponents is linear, wow, hump and flutter.
	curveComponents = 4
	// flutterSeed seeds the flutter curve.
	flutterSeed = 123
)

// linearCurve returns maxFurlInstances values in [0, 1) ordered so that any power-of-two prefix
// is spread evenly: 0, 0.5, then the quarters, the eighths and so on.
func linearCurve() []float32 {
	out := make([]float32, 0, maxFurlInstances)
	out = append(out, 0, 0.5)
	const maxi = float32(maxFurlInstances)
	for step := maxi / 2; step >= 2; step /= 2 {
		i := step/2 - step
		for i < maxi-step {
			i += step
			out = append(out, i/maxi)
		}
	}
	return out
}

// fillCurves writes the curves of instances [from, to) into out.
func fillCurves(out, linear, flutter []float32, from, to int) {
	for i := from; i < to; i++ {
		lin := linear[i]
		o := out[i*curveComponents : i*curveComponents+curveComponents]
		o[0] = lin
		o[1] = common.Wow(lin)
		o[2] = math32.Sin(lin * math32.Pi)
		o[3] = flutter[i]
	}
}

// flutterCurve draws one pseudo-random value per instance from a fixed seed.
func flutterCurve() []float32 {
	prng := common.NewPrng(flutterSeed)
	out := make([]float32, maxFurlInstances)
	for i := range out {
		out[i] = prng.NextFloat()
	}
	return out
}

// sequentialCurves builds the interleaved curves buffer on the calling goroutine.
func sequentialCurves() []float32 {
	out := make([]float32, maxFurlInstances*curveComponents)
	fillCurves(out, linearCurve(), flutterCurve(), 0, maxFurlInstances)
	return out
}

// pooledCurves builds the interleaved curves buffer with the instances split into one chunk per
// worker. The flutter sequence is drawn up front so the result matches sequentialCurves.
func pooledCurves(workers int) []float32 {
	workers = max(workers, 1)
	linear := linearCurve()
	flutter := flutterCurve()
	out := make([]float32, maxFurlInstances*curveComponents)

	pool := worker.NewDynamicWorkerPool(workers, workers, 1*time.Second)
	defer pool.Stop()

	chunk := (maxFurlInstances + workers - 1) / workers
	var wg sync.WaitGroup
	for id, from := 0, 0; from < maxFurlInstances; id, from = id+1, from+chunk {
		to := min(from+chunk, maxFurlInstances)
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				fillCurves(out, linear, flutter, from, to)
				return nil, nil
			},
		})
	}
	wg.Wait()
	return out
}
