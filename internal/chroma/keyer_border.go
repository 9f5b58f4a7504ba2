package chroma

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"gonum.org/v1/gonum/stat"
)

const (
	// borderClusterCount is how many k-means clusters the border ring is
	// partitioned into. Four is enough to separate a backdrop from a
	// subject plus its fringe without making tiny images uncluster-able.
	borderClusterCount = 4

	// borderSampleCap bounds the number of ring pixels fed to k-means;
	// beyond this the ring is sampled at a stride.
	borderSampleCap = 2048

	// borderAgreementQuantile is the fraction of border samples that
	// must sit close to the winning cluster for detection to be trusted.
	borderAgreementQuantile = 0.75

	// defaultBorderHueSpread is the hue distance (degrees) the agreement
	// quantile may reach before the border is declared non-uniform.
	defaultBorderHueSpread = 30.0
)

// BorderKeyer detects the key by clustering the one-pixel border ring.
//
// The ring is partitioned with k-means and the most populated cluster
// wins; a subject poking through the border lands in its own cluster and
// cannot drag the key color. Unlike the other strategies this one can
// refuse an image: if too much of the ring disagrees with the winning
// cluster there is no uniform backdrop to key on, and guessing would
// silently punch holes in the subject.
type BorderKeyer struct {
	// MaxHueSpread overrides the hue-distance limit (degrees) applied to
	// the agreement quantile of the border samples. Zero selects the
	// default of 30 degrees.
	MaxHueSpread float64
}

// Detect clusters the border ring and validates its uniformity.
func (k BorderKeyer) Detect(img *image.NRGBA) (Key, error) {
	w, h, err := pixelDimensions(img)
	if err != nil {
		return Key{}, err
	}

	samples := borderSamples(img, w, h)
	r, g, b := dominantBorderColor(samples)
	key := KeyFromRGB(r, g, b)

	// Measure how far each ring sample sits from the winning color. Hue
	// distances are linear in [0,180], so ordinary order statistics
	// apply even though hue itself wraps.
	dists := make([]float64, len(samples))
	for i, s := range samples {
		dists[i] = HueDistance(RGBToHSV(s[0], s[1], s[2]).H, key.Hue)
	}
	sort.Float64s(dists)

	spread := stat.Quantile(borderAgreementQuantile, stat.Empirical, dists, nil)
	limit := k.MaxHueSpread
	if limit <= 0 {
		limit = defaultBorderHueSpread
	}
	if spread > limit {
		return Key{}, fmt.Errorf(
			"border is not a uniform background: hue spread %.0f deg at the %.0fth percentile (mean %.0f deg, limit %.0f deg)",
			spread, borderAgreementQuantile*100, stat.Mean(dists, nil), limit)
	}
	return key, nil
}

// borderSamples collects the RGB values of the one-pixel border ring,
// thinned to at most borderSampleCap samples.
func borderSamples(img *image.NRGBA, w, h int) [][3]uint8 {
	var coords [][2]int
	for x := 0; x < w; x++ {
		coords = append(coords, [2]int{x, 0})
		if h > 1 {
			coords = append(coords, [2]int{x, h - 1})
		}
	}
	for y := 1; y < h-1; y++ {
		coords = append(coords, [2]int{0, y})
		if w > 1 {
			coords = append(coords, [2]int{w - 1, y})
		}
	}

	step := 1
	if len(coords) > borderSampleCap {
		step = (len(coords) + borderSampleCap - 1) / borderSampleCap
	}

	samples := make([][3]uint8, 0, min(len(coords), borderSampleCap))
	for i := 0; i < len(coords); i += step {
		c := coords[i]
		off := c[1]*img.Stride + c[0]*4
		samples = append(samples, [3]uint8{img.Pix[off], img.Pix[off+1], img.Pix[off+2]})
	}
	return samples
}

// dominantBorderColor returns the center of the most populated k-means
// cluster of the samples. Rings too small to cluster fall back to a
// plain per-channel average.
func dominantBorderColor(samples [][3]uint8) (r, g, b uint8) {
	if len(samples) < borderClusterCount*2 {
		return averageColor(samples)
	}

	dataset := make(clusters.Observations, 0, len(samples))
	for _, s := range samples {
		dataset = append(dataset, clusters.Coordinates{
			float64(s[0]) / 255.0,
			float64(s[1]) / 255.0,
			float64(s[2]) / 255.0,
		})
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, borderClusterCount)
	if err != nil || len(cc) == 0 {
		return averageColor(samples)
	}

	sort.Slice(cc, func(i, j int) bool {
		return len(cc[i].Observations) > len(cc[j].Observations)
	})

	center := cc[0].Center
	return clampChannel(center[0]), clampChannel(center[1]), clampChannel(center[2])
}

// averageColor averages each channel independently, rounding to nearest.
func averageColor(samples [][3]uint8) (r, g, b uint8) {
	if len(samples) == 0 {
		return 0, 0, 0
	}
	var sumR, sumG, sumB int
	for _, s := range samples {
		sumR += int(s[0])
		sumG += int(s[1])
		sumB += int(s[2])
	}
	n := len(samples)
	return uint8((sumR + n/2) / n), uint8((sumG + n/2) / n), uint8((sumB + n/2) / n)
}

// clampChannel converts a normalized [0,1] cluster coordinate back to a
// channel byte.
func clampChannel(v float64) uint8 {
	return uint8(math.Round(math.Min(1, math.Max(0, v)) * 255))
}
