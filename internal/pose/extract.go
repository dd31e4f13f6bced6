// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pose implements single-image keypoint extraction: it validates
// and decodes the image, hands the normalized frame to an Estimator, and
// shapes the landmarks into the Result the caller prints. Pipeline
// failures travel through the Result type, not through errors; only a
// panic is treated as a fault and converted at the Extract boundary.
package pose

import (
	"fmt"
	"image"
	"image/draw"
	"os"
	"runtime/debug"

	// Image formats the decode step accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/pdiddy/posekit/internal/runner"
	"github.com/pdiddy/posekit/pkg/types"
)

// Extractor runs the extraction pipeline against an Estimator.
type Extractor struct {
	est runner.Estimator
}

// NewExtractor returns an Extractor backed by the given estimator.
func NewExtractor(est runner.Estimator) *Extractor {
	return &Extractor{est: est}
}

// Extract runs the full pipeline for one image path and always returns a
// printable Result. Missing files, undecodable images, and no-detection
// outcomes are failure-shaped Results, not errors; a panic anywhere in the
// pipeline is recovered here and reported as a failure with a stack trace.
func (e *Extractor) Extract(imagePath string) (result types.Result) {
	defer func() {
		if r := recover(); r != nil {
			result = types.FailureTrace(fmt.Sprintf("%v", r), string(debug.Stack()))
		}
	}()

	info, err := os.Stat(imagePath)
	if err != nil || !info.Mode().IsRegular() {
		return types.Failure(fmt.Sprintf("Image file not found: %s", imagePath))
	}

	img, width, height, err := decodeImage(imagePath)
	if err != nil {
		return types.Failure(fmt.Sprintf("Could not read image file: %s", imagePath))
	}

	landmarks, err := e.est.Estimate(rgbFrame(img), width, height)
	if err != nil {
		return types.Failure(err.Error())
	}
	if len(landmarks) == 0 {
		return types.Failure("No pose detected in image")
	}

	keypoints := make([]types.Keypoint, 0, len(landmarks))
	var visibilitySum float64
	for i, lm := range landmarks {
		keypoints = append(keypoints, types.Keypoint{
			ID:         i,
			Name:       LandmarkName(i),
			X:          lm.X,
			Y:          lm.Y,
			Z:          lm.Z,
			Visibility: lm.Visibility,
		})
		visibilitySum += lm.Visibility
	}

	return types.Result{
		Success:        true,
		Keypoints:      keypoints,
		KeypointsCount: len(keypoints),
		Confidence:     meanConfidence(visibilitySum, len(keypoints)),
		Dimensions:     &types.Dimensions{Width: width, Height: height},
		PoseDetected:   true,
	}
}

// decodeImage opens and decodes the image, returning the decoded frame and
// its pixel dimensions.
func decodeImage(imagePath string) (image.Image, int, int, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("opening image %s: %w", imagePath, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decoding image %s: %w", imagePath, err)
	}

	bounds := img.Bounds()
	return img, bounds.Dx(), bounds.Dy(), nil
}

// rgbFrame converts a decoded image to the tightly packed RGB24 channel
// order the pose model consumes, dropping alpha.
func rgbFrame(img image.Image) []byte {
	bounds := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)

	frame := make([]byte, bounds.Dx()*bounds.Dy()*3)
	for i, j := 0, 0; i < len(nrgba.Pix); i, j = i+4, j+3 {
		frame[j] = nrgba.Pix[i]
		frame[j+1] = nrgba.Pix[i+1]
		frame[j+2] = nrgba.Pix[i+2]
	}
	return frame
}

// meanConfidence averages the accumulated visibility; an empty keypoint
// list yields 0.0.
func meanConfidence(sum float64, count int) float64 {
	if count == 0 {
		return 0.0
	}
	return sum / float64(count)
}
